package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// CashflowType classifies a ledger posting.
type CashflowType string

const (
	CashflowTypeIncome   CashflowType = "Income"
	CashflowTypeExpense  CashflowType = "Expense"
	CashflowTypeTransfer CashflowType = "Transfer"
)

// IsValid reports whether t is a known cashflow type.
func (t CashflowType) IsValid() bool {
	switch t {
	case CashflowTypeIncome, CashflowTypeExpense, CashflowTypeTransfer:
		return true
	}
	return false
}

// Cashflow is one append-only ledger posting.
//
// DebitBase, CreditBase and CurrencyRate are computed by the posting procedure
// and are never taken from the caller.
type Cashflow struct {
	ID            string
	Type          CashflowType
	UserID        string
	AccountID     string
	FromAccountID *string
	ToAccountID   *string
	CurrencyID    string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	DebitBase     decimal.Decimal
	CreditBase    decimal.Decimal
	CurrencyRate  decimal.Decimal
	DocumentID    string
	Document      *CashflowDocument
	Description   string
	CreatedAt     time.Time
	DeletedAt     *time.Time
}

// Validate checks the caller supplied fields of a posting.
func (c *Cashflow) Validate() error {
	if c.Type == "" {
		return InvalidArgument("cashflowTypeId", "must not be empty")
	}
	if !c.Type.IsValid() {
		return InvalidArgument("cashflowTypeId", "unknown cashflow type "+string(c.Type))
	}
	if err := ValidateRequiredID("userId", c.UserID); err != nil {
		return err
	}
	if err := ValidateAmount("credit", c.Credit); err != nil {
		return err
	}
	if err := ValidateAmount("debit", c.Debit); err != nil {
		return err
	}
	if utf8.RuneCountInString(c.Description) > MaxCashflowDescLength {
		return InvalidArgument("description", fmt.Sprintf("exceeds %d characters", MaxCashflowDescLength))
	}
	return nil
}

// ApplyRate records rate on the posting and fills the base-currency amounts.
// Local-currency postings keep their base amounts at zero.
func (c *Cashflow) ApplyRate(rate decimal.Decimal, local bool) {
	c.CurrencyRate = rate
	if local {
		c.DebitBase = decimal.Zero
		c.CreditBase = decimal.Zero
		return
	}
	c.DebitBase = c.Debit.Mul(rate)
	c.CreditBase = c.Credit.Mul(rate)
}

// AttachDocument links doc to the posting in both directions.
func (c *Cashflow) AttachDocument(doc *CashflowDocument) {
	doc.CashflowID = c.ID
	c.DocumentID = doc.ID
	c.Document = doc
}

// CashflowDocument is the generated reference record of a posting.
type CashflowDocument struct {
	ID             string
	CashflowID     string
	DocumentNumber string
	CreatedAt      time.Time
}
