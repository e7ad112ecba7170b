package domain

import (
	"errors"
	"fmt"
)

var (
	// Validation errors
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrEmptyDistribution = errors.New("distribution must contain at least one item")

	// Catalog integrity errors
	ErrCurrencyInvalid         = errors.New("currency invalid")
	ErrDefaultRateTypeNotFound = errors.New("default exchange rate type not found")
	ErrExchangeRateNotFound    = errors.New("exchange rate not found")
	ErrCatalogMismatch         = errors.New("currency catalog does not match rate provider")
	ErrLocalCurrencyNotFound   = errors.New("local currency not found")

	// Upstream provider errors
	ErrRateProviderUnavailable = errors.New("rate provider unavailable")
	ErrNoRateData              = errors.New("rate provider returned no data")
	ErrInvalidRate             = errors.New("invalid exchange rate")

	// Not found errors
	ErrAccountNotFound       = errors.New("account not found")
	ErrCurrencyNotFound      = errors.New("currency not found")
	ErrCashflowNotFound      = errors.New("cashflow not found")
	ErrIncomeExpenseNotFound = errors.New("income/expense category not found")
)

// InvalidArgument builds an ErrInvalidArgument naming the offending field.
func InvalidArgument(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, field, reason)
}
