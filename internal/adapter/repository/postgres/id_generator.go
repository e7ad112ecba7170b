package postgres

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// DocumentNumberGenerator builds cashflow document numbers of the form
// PREFIX-YYYYMMDD-ULID. The ULID part keeps numbers unique across processes.
type DocumentNumberGenerator struct {
	prefix string
}

// NewDocumentNumberGenerator creates a generator; an empty prefix defaults to "CF".
func NewDocumentNumberGenerator(prefix string) *DocumentNumberGenerator {
	if prefix == "" {
		prefix = "CF"
	}
	return &DocumentNumberGenerator{prefix: prefix}
}

// Next returns a new document number dated at.
func (g *DocumentNumberGenerator) Next(at time.Time) string {
	at = at.UTC()
	id := ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy())
	return g.prefix + "-" + at.Format("20060102") + "-" + id.String()
}
