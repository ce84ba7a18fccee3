package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cauth-dev/cauth/pkg/models"
)

// ============================================================================
// Pagination
// ============================================================================

const (
	// DefaultListLimit is applied when the caller does not specify a limit.
	DefaultListLimit = 10

	// MaxListLimit caps caller-specified limits.
	MaxListLimit = 100
)

// ListOptions controls paginated enumeration. The zero value lists the first
// DefaultListLimit rows in ascending name order.
type ListOptions struct {
	Order  models.Order
	Offset int
	Limit  int
}

// normalize clamps the options to server bounds.
func (o ListOptions) normalize() ListOptions {
	if !o.Order.IsValid() {
		o.Order = models.OrderAscending
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.Limit <= 0 {
		o.Limit = DefaultListLimit
	}
	if o.Limit > MaxListLimit {
		o.Limit = MaxListLimit
	}
	return o
}

// orderClause renders the ORDER BY expression for the given key column.
func (o ListOptions) orderClause(column string) string {
	dir := "ASC"
	if o.Order == models.OrderDescending {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", column, dir)
}

// ============================================================================
// Generic GORM helpers
// ============================================================================
//
// These helpers reduce repetitive CRUD boilerplate across store files. They
// are unexported and operate on the raw *gorm.DB. Each helper handles the
// standard concerns: context propagation, not-found conversion and unique
// constraint detection.

// getByField retrieves a single record of type T by matching field=value,
// converting gorm.ErrRecordNotFound to the provided domain error.
func getByField[T any](db *gorm.DB, ctx context.Context, field string, value any, notFoundErr error) (*T, error) {
	var result T
	if err := db.WithContext(ctx).Where(field+" = ?", value).First(&result).Error; err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// listPage retrieves one page of records of type T ordered by the key column.
// Returns an empty slice (not nil) on success with no records.
func listPage[T any](db *gorm.DB, ctx context.Context, column string, opts ListOptions) ([]*T, error) {
	opts = opts.normalize()
	results := make([]*T, 0, opts.Limit)
	err := db.WithContext(ctx).
		Order(opts.orderClause(column)).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// create inserts the entity, converting unique constraint violations to dupErr.
func create[T any](db *gorm.DB, ctx context.Context, entity *T, dupErr error) error {
	if err := db.WithContext(ctx).Create(entity).Error; err != nil {
		if isUniqueConstraintError(err) {
			return dupErr
		}
		return err
	}
	return nil
}
