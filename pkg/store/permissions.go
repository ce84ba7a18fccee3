package store

import (
	"context"

	"github.com/cauth-dev/cauth/pkg/models"
)

// ============================================
// PERMISSION OPERATIONS
// ============================================

// ListPermissions returns one page of permissions ordered by name.
func (s *Store) ListPermissions(ctx context.Context, opts ListOptions) ([]*models.Permission, error) {
	return listPage[models.Permission](s.db, ctx, "name", opts)
}

// GetPermission returns a permission by name.
// Returns models.ErrNotFound if the permission doesn't exist.
func (s *Store) GetPermission(ctx context.Context, name string) (*models.Permission, error) {
	return getByField[models.Permission](s.db, ctx, "name", name, models.ErrNotFound)
}

// CreatePermission inserts a new permission.
// Returns models.ErrNameConflict on duplicate name or when length limits are
// exceeded.
func (s *Store) CreatePermission(ctx context.Context, name, description string) error {
	perm := &models.Permission{Name: name, Description: description}
	if err := perm.Validate(); err != nil {
		return err
	}
	return create(s.db, ctx, perm, models.ErrNameConflict)
}

// DeletePermission removes a permission and every group grant that references
// it, in one transaction. Groups themselves are not deleted.
// Returns models.ErrNotFound if the permission doesn't exist.
func (s *Store) DeletePermission(ctx context.Context, name string) error {
	return s.Transaction(ctx, func(tx *Store) error {
		result := tx.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Permission{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}

		return tx.db.WithContext(ctx).
			Where("permission_name = ?", name).
			Delete(&models.GroupPermission{}).Error
	})
}
