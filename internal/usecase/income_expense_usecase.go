package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/metrics"
)

// IncomeExpenseUseCase manages user-defined income and expense categories.
type IncomeExpenseUseCase struct {
	txManager    TransactionManager
	categoryRepo IncomeExpenseRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

func NewIncomeExpenseUseCase(
	txManager TransactionManager,
	categoryRepo IncomeExpenseRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *IncomeExpenseUseCase {
	return &IncomeExpenseUseCase{
		txManager:    txManager,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		metrics:      metrics,
	}
}

type CreateIncomeExpenseInput struct {
	UserID      string
	TypeID      string
	ParentID    *string
	Name        string
	Description string
	Icon        string
}

// CreateIncomeExpense stores a category and returns its id. The parent is
// stored as given: it is not checked for existence, ownership or cycles.
func (uc *IncomeExpenseUseCase) CreateIncomeExpense(ctx context.Context, input CreateIncomeExpenseInput) (string, error) {
	if err := domain.ValidateRequiredID("userId", input.UserID); err != nil {
		return "", err
	}
	if err := domain.ValidateRequiredID("incomeExpenseTypeId", input.TypeID); err != nil {
		return "", err
	}
	typeID := domain.IncomeExpenseType(strings.TrimSpace(input.TypeID))
	if !typeID.IsValid() {
		return "", domain.InvalidArgument("incomeExpenseTypeId", "unknown category type "+input.TypeID)
	}
	if err := domain.ValidateLength("description", input.Description, domain.MinCategoryDescLength, domain.MaxCategoryDescLength); err != nil {
		return "", err
	}

	description := strings.TrimSpace(input.Description)
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = truncateRunes(description, domain.MaxCategoryNameLength)
	}
	if utf8.RuneCountInString(name) > domain.MaxCategoryNameLength {
		return "", domain.InvalidArgument("name", fmt.Sprintf("exceeds %d characters", domain.MaxCategoryNameLength))
	}

	var parentID *string
	if input.ParentID != nil && strings.TrimSpace(*input.ParentID) != "" {
		p := strings.TrimSpace(*input.ParentID)
		parentID = &p
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	category := &domain.IncomeExpense{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		TypeID:      typeID,
		ParentID:    parentID,
		Name:        name,
		Description: description,
		Icon:        input.Icon,
		CreatedAt:   now,
	}
	if err := uc.categoryRepo.Create(txCtx, tx, category); err != nil {
		return "", err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   category.ID,
		AggregateType: domain.AggregateTypeCategory,
		EventType:     domain.EventTypeCategoryCreated,
		Payload: map[string]any{
			"category_id": category.ID,
			"user_id":     category.UserID,
			"type":        string(category.TypeID),
			"name":        category.Name,
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
		uc.metrics.CategoriesCreated.Inc()
	}

	return category.ID, nil
}

// GetIncomeExpense retrieves a category by ID.
func (uc *IncomeExpenseUseCase) GetIncomeExpense(ctx context.Context, id string) (*domain.IncomeExpense, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

// ListIncomeExpenseTree returns the categories of a user arranged by parent.
func (uc *IncomeExpenseUseCase) ListIncomeExpenseTree(ctx context.Context, userID string) ([]*domain.IncomeExpenseNode, error) {
	if err := domain.ValidateRequiredID("userId", userID); err != nil {
		return nil, err
	}
	items, err := uc.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.BuildIncomeExpenseTree(items), nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
