package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a tradeable currency known to the catalog.
type Currency struct {
	ID        string
	Code      string
	Name      string
	IsLocal   bool
	CreatedAt time.Time
	DeletedAt *time.Time
}

// RateType is a quotation method for exchange rates.
type RateType string

const (
	RateTypeForexBuying     RateType = "ForexBuying"
	RateTypeForexSelling    RateType = "ForexSelling"
	RateTypeBanknoteBuying  RateType = "BanknoteBuying"
	RateTypeBanknoteSelling RateType = "BanknoteSelling"
)

// DefaultRateType is the quotation used to convert postings into the local currency.
const DefaultRateType = RateTypeForexBuying

// RateTypes returns the fixed seed set in a stable order.
func RateTypes() []RateType {
	return []RateType{
		RateTypeForexBuying,
		RateTypeForexSelling,
		RateTypeBanknoteBuying,
		RateTypeBanknoteSelling,
	}
}

// IsValid reports whether t is one of the seeded rate types.
func (t RateType) IsValid() bool {
	switch t {
	case RateTypeForexBuying, RateTypeForexSelling, RateTypeBanknoteBuying, RateTypeBanknoteSelling:
		return true
	}
	return false
}

// ExchangeRate is the rate of one currency against the local currency for a day.
type ExchangeRate struct {
	ID         string
	CurrencyID string
	RateType   RateType
	Rate       decimal.Decimal
	RateDate   time.Time
	CreatedAt  time.Time
}

// RateSnapshot is one daily publication from the rate provider.
type RateSnapshot struct {
	Date       time.Time
	Currencies []SnapshotCurrency
}

// SnapshotCurrency carries the raw, unparsed quotations of a single currency.
type SnapshotCurrency struct {
	Code            string
	Name            string
	Unit            int
	ForexBuying     string
	ForexSelling    string
	BanknoteBuying  string
	BanknoteSelling string
}

// IsEmpty reports whether the snapshot carries no currencies.
func (s *RateSnapshot) IsEmpty() bool {
	return s == nil || len(s.Currencies) == 0
}

// RateDate normalizes t to its calendar day in loc, expressed as midnight UTC.
// Writers and readers of exchange rates must both go through it.
func RateDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
