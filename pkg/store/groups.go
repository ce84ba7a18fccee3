package store

import (
	"context"

	"github.com/cauth-dev/cauth/pkg/models"
)

// ============================================
// GROUP OPERATIONS
// ============================================

// ListGroups returns one page of groups ordered by name.
func (s *Store) ListGroups(ctx context.Context, opts ListOptions) ([]*models.Group, error) {
	return listPage[models.Group](s.db, ctx, "name", opts)
}

// GetGroup returns a group by name.
// Returns models.ErrNotFound if the group doesn't exist.
func (s *Store) GetGroup(ctx context.Context, name string) (*models.Group, error) {
	return getByField[models.Group](s.db, ctx, "name", name, models.ErrNotFound)
}

// CreateGroup inserts a new group together with its initial permission
// grants, atomically. If any referenced permission does not exist the whole
// insert fails with models.ErrNameError and no row is created.
// Returns models.ErrNameConflict on duplicate name or exceeded length limits.
func (s *Store) CreateGroup(ctx context.Context, name, description string, permissions []string) error {
	group := &models.Group{Name: name, Description: description}
	if err := group.Validate(); err != nil {
		return err
	}

	return s.Transaction(ctx, func(tx *Store) error {
		for _, perm := range permissions {
			if _, err := tx.GetPermission(ctx, perm); err != nil {
				return models.ErrNameError
			}
		}

		if err := create(tx.db, ctx, group, models.ErrNameConflict); err != nil {
			return err
		}

		for _, perm := range permissions {
			grant := &models.GroupPermission{GroupName: name, PermissionName: perm}
			if err := create(tx.db, ctx, grant, models.ErrNameError); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteGroup removes a group, all of its user memberships and all of its
// permission grants, in one transaction. Users are not deleted.
// Returns models.ErrNotFound if the group doesn't exist.
func (s *Store) DeleteGroup(ctx context.Context, name string) error {
	return s.Transaction(ctx, func(tx *Store) error {
		result := tx.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Group{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}

		if err := tx.db.WithContext(ctx).
			Where("group_name = ?", name).
			Delete(&models.UserGroup{}).Error; err != nil {
			return err
		}

		return tx.db.WithContext(ctx).
			Where("group_name = ?", name).
			Delete(&models.GroupPermission{}).Error
	})
}

// GrantPermission adds a permission to a group.
// Returns models.ErrNameError if either does not exist or the grant is
// already present.
func (s *Store) GrantPermission(ctx context.Context, group, permission string) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.GetGroup(ctx, group); err != nil {
			return models.ErrNameError
		}
		if _, err := tx.GetPermission(ctx, permission); err != nil {
			return models.ErrNameError
		}

		grant := &models.GroupPermission{GroupName: group, PermissionName: permission}
		return create(tx.db, ctx, grant, models.ErrNameError)
	})
}

// RevokePermission removes a permission from a group.
// Returns models.ErrNameError if the grant did not exist.
func (s *Store) RevokePermission(ctx context.Context, group, permission string) error {
	result := s.db.WithContext(ctx).
		Where("group_name = ? AND permission_name = ?", group, permission).
		Delete(&models.GroupPermission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNameError
	}
	return nil
}

// GroupPermissions returns the names of all permissions granted to a group.
// Returns models.ErrNotFound if the group doesn't exist.
func (s *Store) GroupPermissions(ctx context.Context, name string) ([]string, error) {
	if _, err := s.GetGroup(ctx, name); err != nil {
		return nil, err
	}

	var permissions []string
	err := s.db.WithContext(ctx).
		Model(&models.GroupPermission{}).
		Where("group_name = ?", name).
		Order("permission_name ASC").
		Pluck("permission_name", &permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}
