package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCashflow_Validate(t *testing.T) {
	valid := func() *Cashflow {
		return &Cashflow{
			Type:        CashflowTypeExpense,
			UserID:      "user-1",
			Credit:      decimal.NewFromInt(10),
			Description: "coffee",
		}
	}

	tests := []struct {
		name   string
		modify func(c *Cashflow)
		field  string
	}{
		{name: "valid"},
		{name: "empty type", modify: func(c *Cashflow) { c.Type = "" }, field: "cashflowTypeId"},
		{name: "unknown type", modify: func(c *Cashflow) { c.Type = "Refund" }, field: "cashflowTypeId"},
		{name: "empty user", modify: func(c *Cashflow) { c.UserID = "" }, field: "userId"},
		{name: "negative credit", modify: func(c *Cashflow) { c.Credit = decimal.NewFromInt(-1) }, field: "credit"},
		{name: "negative debit", modify: func(c *Cashflow) { c.Debit = decimal.NewFromInt(-1) }, field: "debit"},
		{name: "debit beyond stored scale", modify: func(c *Cashflow) { c.Debit = decimal.RequireFromString("0.000000000012") }, field: "debit"},
		{name: "blank user", modify: func(c *Cashflow) { c.UserID = "   " }, field: "userId"},
		{name: "description too long", modify: func(c *Cashflow) { c.Description = strings.Repeat("d", MaxCashflowDescLength+1) }, field: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			if tt.modify != nil {
				tt.modify(c)
			}

			err := c.Validate()

			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidArgument) || !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("expected invalid %s, got %v", tt.field, err)
			}
		})
	}
}

func TestCashflow_ApplyRate(t *testing.T) {
	foreign := &Cashflow{Debit: decimal.NewFromInt(10), Credit: decimal.RequireFromString("2.5")}
	foreign.ApplyRate(decimal.NewFromInt(30), false)

	if !foreign.DebitBase.Equal(decimal.NewFromInt(300)) || !foreign.CreditBase.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("unexpected base amounts: %s / %s", foreign.DebitBase, foreign.CreditBase)
	}
	if !foreign.CurrencyRate.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected rate 30, got %s", foreign.CurrencyRate)
	}

	local := &Cashflow{Debit: decimal.NewFromInt(10)}
	local.ApplyRate(decimal.NewFromInt(1), true)

	if !local.DebitBase.IsZero() || !local.CreditBase.IsZero() {
		t.Fatalf("expected zero base amounts for local postings, got %s / %s", local.DebitBase, local.CreditBase)
	}
	if !local.CurrencyRate.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected rate 1, got %s", local.CurrencyRate)
	}
}

func TestCashflow_ApplyRate_BaseFitsTwiceTheAmountScale(t *testing.T) {
	c := &Cashflow{
		Debit:  decimal.RequireFromString("0.0000000001"),
		Credit: decimal.RequireFromString("123.4567890123"),
	}
	rate := decimal.RequireFromString("30.1234567891")
	if err := ValidateAmount("debit", c.Debit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.ApplyRate(rate, false)

	if !c.DebitBase.Equal(c.Debit.Mul(rate)) || !c.CreditBase.Equal(c.Credit.Mul(rate)) {
		t.Fatalf("base amounts drifted: %s / %s", c.DebitBase, c.CreditBase)
	}
	for _, base := range []decimal.Decimal{c.DebitBase, c.CreditBase} {
		if !base.Equal(base.Truncate(2 * MaxAmountScale)) {
			t.Fatalf("base amount %s exceeds %d decimal places", base, 2*MaxAmountScale)
		}
	}
}

func TestCashflow_AttachDocument(t *testing.T) {
	c := &Cashflow{ID: "cf-1"}
	doc := &CashflowDocument{ID: "doc-1", DocumentNumber: "CF-20240301-X"}

	c.AttachDocument(doc)

	if c.DocumentID != "doc-1" || c.Document != doc || doc.CashflowID != "cf-1" {
		t.Fatalf("document not linked both ways: %+v / %+v", c, doc)
	}
}
