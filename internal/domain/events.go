package domain

import "time"

// Event types
const (
	EventTypeAccountCreated  = "account.created"
	EventTypeAccountDeleted  = "account.deleted"
	EventTypeCashflowPosted  = "cashflow.posted"
	EventTypeRatesUpdated    = "rates.updated"
	EventTypeCatalogSeeded   = "catalog.seeded"
	EventTypeCategoryCreated = "category.created"
)

// Aggregate types
const (
	AggregateTypeAccount  = "account"
	AggregateTypeCashflow = "cashflow"
	AggregateTypeCatalog  = "catalog"
	AggregateTypeCategory = "category"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}
