package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MinAccountNameLength  = 3
	MaxAccountNameLength  = 100
	MinCategoryDescLength = 3
	MaxCategoryDescLength = 500
	MaxCategoryNameLength = 100
	MaxCashflowDescLength = 500
	MaxDistributionItems  = 100
	MaxPostingAmount      = "1000000000000" // 1 trillion
	// MaxAmountScale is the number of fractional digits stored for amounts
	// and rates.
	MaxAmountScale     = 10
	currencyCodeLength = 3
)

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateRequiredID checks that an identifier is present.
func ValidateRequiredID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return InvalidArgument(field, "must not be empty")
	}
	return nil
}

// ValidateLength checks the trimmed rune length of value is within [min, max].
func ValidateLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < min || n > max {
		return InvalidArgument(field, fmt.Sprintf("must be between %d and %d characters", min, max))
	}
	return nil
}

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	return ValidateLength("name", name, MinAccountNameLength, MaxAccountNameLength)
}

// NormalizeCurrencyCode upper-cases and trims a currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCurrencyCode checks code is three upper-case letters.
func ValidateCurrencyCode(code string) error {
	code = NormalizeCurrencyCode(code)
	if len(code) != currencyCodeLength || !currencyCodeRegex.MatchString(code) {
		return InvalidArgument("currencyCode", fmt.Sprintf("%q is not a 3-letter code", code))
	}
	return nil
}

// ValidateAmount checks that a posted amount is non-negative and within limits.
func ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return InvalidArgument(field, "must not be negative")
	}
	maxAmount := decimal.RequireFromString(MaxPostingAmount)
	if amount.GreaterThan(maxAmount) {
		return InvalidArgument(field, "exceeds maximum of "+MaxPostingAmount)
	}
	if !fitsScale(amount) {
		return InvalidArgument(field, fmt.Sprintf("has more than %d decimal places", MaxAmountScale))
	}
	return nil
}

// ParseRate parses a provider quotation. The provider always uses '.' as the
// decimal separator, so no locale handling is applied.
func ParseRate(code, raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: cannot parse %q", ErrInvalidRate, code, raw)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s: negative rate %s", ErrInvalidRate, code, rate)
	}
	if !fitsScale(rate) {
		return decimal.Zero, fmt.Errorf("%w: %s: more than %d decimal places in %s", ErrInvalidRate, code, MaxAmountScale, rate)
	}
	return rate, nil
}

// fitsScale reports whether d has no significant digits past MaxAmountScale.
// Trailing zeros do not count.
func fitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MaxAmountScale))
}
