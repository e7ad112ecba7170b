package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	currencyRepo CurrencyRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	currencyRepo CurrencyRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		metrics:      metrics,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	CurrencyID string
	UserID     string
	Name       string
}

// CreateAccount validates the input, stores a new account and returns its id.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (string, error) {
	if err := domain.ValidateRequiredID("currencyId", input.CurrencyID); err != nil {
		return "", err
	}
	if err := domain.ValidateRequiredID("userId", input.UserID); err != nil {
		return "", err
	}
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return "", err
	}

	if _, err := uc.currencyRepo.GetByID(ctx, input.CurrencyID); err != nil {
		if errors.Is(err, domain.ErrCurrencyNotFound) {
			return "", fmt.Errorf("%w: %s", domain.ErrCurrencyInvalid, input.CurrencyID)
		}
		return "", err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	account := &domain.Account{
		ID:         uc.idGen.Generate(),
		UserID:     input.UserID,
		CurrencyID: input.CurrencyID,
		Name:       strings.TrimSpace(input.Name),
		CreatedAt:  now,
	}

	if err := uc.accountRepo.Create(txCtx, tx, account); err != nil {
		return "", err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountCreated,
		Payload: map[string]any{
			"account_id":  account.ID,
			"user_id":     account.UserID,
			"currency_id": account.CurrencyID,
			"name":        account.Name,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return "", err
	}

	if err := tx.Commit(txCtx); err != nil {
		return "", err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account.ID, nil
}

// GetAccount retrieves an account owned by userID. Soft-deleted accounts are
// still returned to their owner.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id, userID string) (*domain.Account, error) {
	if err := domain.ValidateRequiredID("userId", userID); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}
	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListAccounts lists the non-deleted accounts of a user with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if err := domain.ValidateRequiredID("userId", input.UserID); err != nil {
		return nil, err
	}
	if input.Offset < 0 {
		input.Offset = 0
	}
	return uc.accountRepo.ListByUser(ctx, input.UserID, clampLimit(input.Limit), input.Offset)
}

// DeleteAccount soft-deletes an account owned by userID. Its cashflows are kept.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id, userID string) error {
	if err := domain.ValidateRequiredID("userId", userID); err != nil {
		return err
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if account.IsDeleted() || !account.OwnedBy(userID) {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	if err := uc.accountRepo.SoftDelete(txCtx, tx, id, now); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   id,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountDeleted,
		Payload: map[string]any{
			"account_id": id,
			"user_id":    userID,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsDeleted.Inc()
	}
	return nil
}
