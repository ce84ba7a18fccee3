// Package models provides the shared domain types for the cauth service.
//
// This package contains all data models used across the service, including
// permissions, groups, users, login sessions and pending events. It provides
// a single source of truth for domain types with GORM annotations for
// database persistence.
package models

// Length limits enforced on insert. Names exceeding them are rejected with
// ErrNameConflict before the row reaches the database.
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 3000
)

// Order selects the direction of paginated listings.
type Order string

const (
	OrderAscending  Order = "asc"
	OrderDescending Order = "desc"
)

// IsValid returns true if this is a valid ordering.
func (o Order) IsValid() bool {
	return o == OrderAscending || o == OrderDescending
}

// ParseOrder converts a string to an Order, defaulting to ascending.
func ParseOrder(s string) Order {
	o := Order(s)
	if o.IsValid() {
		return o
	}
	return OrderAscending
}

// AllModels returns all models for GORM auto-migration.
func AllModels() []any {
	return []any{
		&Permission{},
		&Group{},
		&GroupPermission{},
		&User{},
		&UserGroup{},
		&LoginSession{},
		&Event{},
	}
}
