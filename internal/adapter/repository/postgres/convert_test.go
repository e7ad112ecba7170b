package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestDecimalNumericRoundTrip(t *testing.T) {
	values := []string{"0", "30", "30.00", "0.205", "1234567890.1234567891", "-12.5"}
	for _, v := range values {
		d := decimal.RequireFromString(v)
		got := numericToDecimal(decimalToNumeric(d))
		if !got.Equal(d) {
			t.Fatalf("round trip of %s gave %s", v, got)
		}
	}

	if !numericToDecimal(pgtype.Numeric{}).IsZero() {
		t.Fatalf("expected NULL numeric to map to zero")
	}
}

func TestDateToPgDateDropsTimeOfDay(t *testing.T) {
	d := dateToPgDate(time.Date(2026, 10, 16, 18, 45, 12, 0, time.UTC))
	want := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	if !d.Valid || !d.Time.Equal(want) {
		t.Fatalf("expected %v, got %+v", want, d)
	}
}

func TestTextHelpers(t *testing.T) {
	if stringPtrToPgText(nil).Valid {
		t.Fatalf("nil must map to NULL")
	}
	s := "acc-1"
	text := stringPtrToPgText(&s)
	if got := pgTextToStringPtr(text); got == nil || *got != s {
		t.Fatalf("expected %q, got %v", s, got)
	}
	if pgTextToStringPtr(pgtype.Text{}) != nil {
		t.Fatalf("NULL must map to nil")
	}
	if pgTimestamptzToTimePtr(pgtype.Timestamptz{}) != nil {
		t.Fatalf("NULL timestamp must map to nil")
	}
}
