package domain

import (
	"time"
)

// Account is a user-owned bucket denominated in a single currency.
type Account struct {
	ID         string
	UserID     string
	CurrencyID string
	Name       string
	CreatedAt  time.Time
	DeletedAt  *time.Time
}

// IsDeleted reports whether the account was soft-deleted.
func (a *Account) IsDeleted() bool {
	return a.DeletedAt != nil
}

// OwnedBy reports whether the account belongs to userID.
func (a *Account) OwnedBy(userID string) bool {
	return a.UserID == userID
}
