package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/postgres/generated"
	"github.com/iho/walletledger/internal/usecase"
)

// IncomeExpenseRepository implements usecase.IncomeExpenseRepository.
type IncomeExpenseRepository struct {
	queries *generated.Queries
}

// NewIncomeExpenseRepository creates a new IncomeExpenseRepository.
func NewIncomeExpenseRepository(db generated.DBTX) *IncomeExpenseRepository {
	return &IncomeExpenseRepository{
		queries: generated.New(db),
	}
}

func (r *IncomeExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, category *domain.IncomeExpense) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.CreateIncomeExpense(ctx, generated.CreateIncomeExpenseParams{
		ID:          category.ID,
		UserID:      category.UserID,
		TypeID:      string(category.TypeID),
		ParentID:    stringPtrToPgText(category.ParentID),
		Name:        category.Name,
		Description: category.Description,
		Icon:        category.Icon,
		CreatedAt:   timeToPgTimestamptz(category.CreatedAt),
	})
}

func (r *IncomeExpenseRepository) GetByID(ctx context.Context, id string) (*domain.IncomeExpense, error) {
	row, err := r.queries.GetIncomeExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIncomeExpenseNotFound
		}
		return nil, err
	}
	return rowToIncomeExpense(row), nil
}

func (r *IncomeExpenseRepository) ListByUser(ctx context.Context, userID string) ([]*domain.IncomeExpense, error) {
	rows, err := r.queries.ListIncomeExpensesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.IncomeExpense, 0, len(rows))
	for _, row := range rows {
		items = append(items, rowToIncomeExpense(row))
	}
	return items, nil
}

func rowToIncomeExpense(row generated.IncomeExpense) *domain.IncomeExpense {
	return &domain.IncomeExpense{
		ID:          row.ID,
		UserID:      row.UserID,
		TypeID:      domain.IncomeExpenseType(row.TypeID),
		ParentID:    pgTextToStringPtr(row.ParentID),
		Name:        row.Name,
		Description: row.Description,
		Icon:        row.Icon,
		CreatedAt:   row.CreatedAt.Time,
		DeletedAt:   pgTimestamptzToTimePtr(row.DeletedAt),
	}
}
