package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/walletledger/internal/domain"
)

// CreatedResponse carries the id of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	CurrencyID string     `json:"currency_id"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		CurrencyID: a.CurrencyID,
		Name:       a.Name,
		CreatedAt:  a.CreatedAt,
		DeletedAt:  a.DeletedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// DocumentResponse represents the document issued for a cashflow.
type DocumentResponse struct {
	ID             string    `json:"id"`
	DocumentNumber string    `json:"document_number"`
	CreatedAt      time.Time `json:"created_at"`
}

// CashflowResponse represents a cashflow in API responses.
type CashflowResponse struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	UserID        string            `json:"user_id"`
	AccountID     string            `json:"account_id"`
	FromAccountID *string           `json:"from_account_id,omitempty"`
	ToAccountID   *string           `json:"to_account_id,omitempty"`
	CurrencyID    string            `json:"currency_id"`
	Debit         decimal.Decimal   `json:"debit"`
	Credit        decimal.Decimal   `json:"credit"`
	DebitBase     decimal.Decimal   `json:"debit_base"`
	CreditBase    decimal.Decimal   `json:"credit_base"`
	CurrencyRate  decimal.Decimal   `json:"currency_rate"`
	Description   string            `json:"description"`
	Document      *DocumentResponse `json:"document,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// CashflowFromDomain converts domain cashflow to response.
func CashflowFromDomain(c *domain.Cashflow) *CashflowResponse {
	resp := &CashflowResponse{
		ID:            c.ID,
		Type:          string(c.Type),
		UserID:        c.UserID,
		AccountID:     c.AccountID,
		FromAccountID: c.FromAccountID,
		ToAccountID:   c.ToAccountID,
		CurrencyID:    c.CurrencyID,
		Debit:         c.Debit,
		Credit:        c.Credit,
		DebitBase:     c.DebitBase,
		CreditBase:    c.CreditBase,
		CurrencyRate:  c.CurrencyRate,
		Description:   c.Description,
		CreatedAt:     c.CreatedAt,
	}
	if c.Document != nil {
		resp.Document = &DocumentResponse{
			ID:             c.Document.ID,
			DocumentNumber: c.Document.DocumentNumber,
			CreatedAt:      c.Document.CreatedAt,
		}
	}
	return resp
}

// CashflowsFromDomain converts domain cashflows to responses.
func CashflowsFromDomain(cashflows []*domain.Cashflow) []*CashflowResponse {
	result := make([]*CashflowResponse, len(cashflows))
	for i, c := range cashflows {
		result[i] = CashflowFromDomain(c)
	}
	return result
}

// ListCashflowsResponse represents a list of cashflows.
type ListCashflowsResponse struct {
	Cashflows []*CashflowResponse `json:"cashflows"`
	Total     int64               `json:"total"`
}

// CategoryResponse represents a category node with its children.
type CategoryResponse struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	ParentID    *string             `json:"parent_id,omitempty"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	Children    []*CategoryResponse `json:"children"`
}

// CategoryTreeFromDomain converts a category forest to responses.
func CategoryTreeFromDomain(nodes []*domain.IncomeExpenseNode) []*CategoryResponse {
	result := make([]*CategoryResponse, len(nodes))
	for i, n := range nodes {
		result[i] = &CategoryResponse{
			ID:          n.ID,
			Type:        string(n.TypeID),
			ParentID:    n.ParentID,
			Name:        n.Name,
			Description: n.Description,
			Icon:        n.Icon,
			CreatedAt:   n.CreatedAt,
			Children:    CategoryTreeFromDomain(n.Children),
		}
	}
	return result
}

// CurrencyResponse represents a catalog currency.
type CurrencyResponse struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	IsLocal bool   `json:"is_local"`
}

// CurrenciesFromDomain converts domain currencies to responses.
func CurrenciesFromDomain(currencies []*domain.Currency) []*CurrencyResponse {
	result := make([]*CurrencyResponse, len(currencies))
	for i, c := range currencies {
		result[i] = &CurrencyResponse{ID: c.ID, Code: c.Code, Name: c.Name, IsLocal: c.IsLocal}
	}
	return result
}

// ExchangeRateResponse represents the stored rate of a currency for one day.
type ExchangeRateResponse struct {
	CurrencyCode string          `json:"currency_code"`
	CurrencyID   string          `json:"currency_id"`
	RateType     string          `json:"rate_type"`
	Rate         decimal.Decimal `json:"rate"`
	RateDate     string          `json:"rate_date"`
}

// ExchangeRateFromDomain converts a stored rate to response.
func ExchangeRateFromDomain(code string, r *domain.ExchangeRate) *ExchangeRateResponse {
	return &ExchangeRateResponse{
		CurrencyCode: code,
		CurrencyID:   r.CurrencyID,
		RateType:     string(r.RateType),
		Rate:         r.Rate,
		RateDate:     r.RateDate.Format(time.DateOnly),
	}
}

// RateUpdateResponse reports the outcome of a daily rate update.
type RateUpdateResponse struct {
	Updated bool `json:"updated"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
