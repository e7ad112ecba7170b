package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	CurrencyID string `json:"currency_id"`
	Name       string `json:"name"`
}

// ToUseCaseInput converts to use case input for the calling user.
func (r *CreateAccountRequest) ToUseCaseInput(userID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		CurrencyID: r.CurrencyID,
		UserID:     userID,
		Name:       r.Name,
	}
}

// CashflowItemRequest is one posting in a cashflow request.
type CashflowItemRequest struct {
	Type          string          `json:"type"`
	AccountID     string          `json:"account_id"`
	FromAccountID *string         `json:"from_account_id,omitempty"`
	ToAccountID   *string         `json:"to_account_id,omitempty"`
	CurrencyID    string          `json:"currency_id,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
}

func (r CashflowItemRequest) toItem() usecase.CashflowItem {
	return usecase.CashflowItem{
		Type:          domain.CashflowType(r.Type),
		AccountID:     r.AccountID,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		CurrencyID:    r.CurrencyID,
		Debit:         r.Debit,
		Credit:        r.Credit,
		Description:   r.Description,
	}
}

// PostCashflowRequest represents a request to post a single cashflow.
type PostCashflowRequest struct {
	CashflowItemRequest
}

// ToUseCaseInput converts to use case input for the calling user.
func (r *PostCashflowRequest) ToUseCaseInput(userID string) usecase.PostCashflowInput {
	return usecase.PostCashflowInput{
		UserID: userID,
		Item:   r.toItem(),
	}
}

// DistributeCashflowRequest represents a batch of postings committed together.
type DistributeCashflowRequest struct {
	Items []CashflowItemRequest `json:"items"`
}

// ToUseCaseInput converts to use case input for the calling user.
func (r *DistributeCashflowRequest) ToUseCaseInput(userID string) usecase.DistributeCashflowInput {
	items := make([]usecase.CashflowItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = item.toItem()
	}
	return usecase.DistributeCashflowInput{
		UserID: userID,
		Items:  items,
	}
}

// CreateCategoryRequest represents a request to create an income/expense category.
type CreateCategoryRequest struct {
	Type        string  `json:"type"`
	ParentID    *string `json:"parent_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// ToUseCaseInput converts to use case input for the calling user.
func (r *CreateCategoryRequest) ToUseCaseInput(userID string) usecase.CreateIncomeExpenseInput {
	return usecase.CreateIncomeExpenseInput{
		UserID:      userID,
		TypeID:      strings.TrimSpace(r.Type),
		ParentID:    r.ParentID,
		Name:        r.Name,
		Description: r.Description,
		Icon:        r.Icon,
	}
}
