package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/postgres/generated"
	"github.com/iho/walletledger/internal/usecase"
)

// CashflowRepository implements usecase.CashflowRepository.
type CashflowRepository struct {
	queries *generated.Queries
}

// NewCashflowRepository creates a new CashflowRepository.
func NewCashflowRepository(db generated.DBTX) *CashflowRepository {
	return &CashflowRepository{
		queries: generated.New(db),
	}
}

// Create inserts the cashflow and its document within a transaction.
// The document foreign key on cashflows is deferred, so the cashflow row
// goes first.
func (r *CashflowRepository) Create(ctx context.Context, tx usecase.Transaction, cashflow *domain.Cashflow) error {
	if cashflow.Document == nil {
		return fmt.Errorf("cashflow %s has no document", cashflow.ID)
	}

	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	err := queries.CreateCashflow(ctx, generated.CreateCashflowParams{
		ID:            cashflow.ID,
		CashflowType:  string(cashflow.Type),
		UserID:        cashflow.UserID,
		AccountID:     cashflow.AccountID,
		FromAccountID: stringPtrToPgText(cashflow.FromAccountID),
		ToAccountID:   stringPtrToPgText(cashflow.ToAccountID),
		CurrencyID:    cashflow.CurrencyID,
		Debit:         decimalToNumeric(cashflow.Debit),
		Credit:        decimalToNumeric(cashflow.Credit),
		DebitBase:     decimalToNumeric(cashflow.DebitBase),
		CreditBase:    decimalToNumeric(cashflow.CreditBase),
		CurrencyRate:  decimalToNumeric(cashflow.CurrencyRate),
		DocumentID:    cashflow.DocumentID,
		Description:   cashflow.Description,
		CreatedAt:     timeToPgTimestamptz(cashflow.CreatedAt),
	})
	if err != nil {
		return fmt.Errorf("insert cashflow: %w", err)
	}

	doc := cashflow.Document
	err = queries.CreateCashflowDocument(ctx, generated.CreateCashflowDocumentParams{
		ID:             doc.ID,
		CashflowID:     doc.CashflowID,
		DocumentNumber: doc.DocumentNumber,
		CreatedAt:      timeToPgTimestamptz(doc.CreatedAt),
	})
	if err != nil {
		return fmt.Errorf("insert cashflow document: %w", err)
	}

	return nil
}

// GetByID retrieves a cashflow together with its document.
func (r *CashflowRepository) GetByID(ctx context.Context, id string) (*domain.Cashflow, error) {
	row, err := r.queries.GetCashflowByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCashflowNotFound
		}
		return nil, err
	}

	return rowToCashflow(generated.ListCashflowsByAccountRow(row)), nil
}

// ListByAccount lists the cashflows of an account, newest first.
func (r *CashflowRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Cashflow, error) {
	rows, err := r.queries.ListCashflowsByAccount(ctx, generated.ListCashflowsByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	cashflows := make([]*domain.Cashflow, 0, len(rows))
	for _, row := range rows {
		cashflows = append(cashflows, rowToCashflow(row))
	}

	return cashflows, nil
}

func rowToCashflow(row generated.ListCashflowsByAccountRow) *domain.Cashflow {
	return &domain.Cashflow{
		ID:            row.ID,
		Type:          domain.CashflowType(row.CashflowType),
		UserID:        row.UserID,
		AccountID:     row.AccountID,
		FromAccountID: pgTextToStringPtr(row.FromAccountID),
		ToAccountID:   pgTextToStringPtr(row.ToAccountID),
		CurrencyID:    row.CurrencyID,
		Debit:         numericToDecimal(row.Debit),
		Credit:        numericToDecimal(row.Credit),
		DebitBase:     numericToDecimal(row.DebitBase),
		CreditBase:    numericToDecimal(row.CreditBase),
		CurrencyRate:  numericToDecimal(row.CurrencyRate),
		DocumentID:    row.DocumentID,
		Document: &domain.CashflowDocument{
			ID:             row.DocumentID,
			CashflowID:     row.ID,
			DocumentNumber: row.DocumentNumber,
			CreatedAt:      row.DocumentCreatedAt.Time,
		},
		Description: row.Description,
		CreatedAt:   row.CreatedAt.Time,
		DeletedAt:   pgTimestamptzToTimePtr(row.DeletedAt),
	}
}
