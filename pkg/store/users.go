package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cauth-dev/cauth/pkg/identity"
	"github.com/cauth-dev/cauth/pkg/models"
)

// ============================================
// USER OPERATIONS
// ============================================

// ListUsers returns one page of users ordered by login.
func (s *Store) ListUsers(ctx context.Context, opts ListOptions) ([]*models.User, error) {
	return listPage[models.User](s.db, ctx, "login", opts)
}

// GetUser returns a user by login.
// Returns models.ErrNotFound if the user doesn't exist.
func (s *Store) GetUser(ctx context.Context, login string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "login", login, models.ErrNotFound)
}

// CreateUser hashes the password and inserts a new user row.
// Returns models.ErrNameConflict on duplicate login and identity.ErrHash when
// the KDF rejects the password. The plaintext password is not retained.
func (s *Store) CreateUser(ctx context.Context, login, password string, details json.RawMessage) error {
	hash, err := identity.HashPassword(password)
	if err != nil {
		return err
	}
	return s.CreateUserPrehashed(ctx, &models.User{
		Login:        login,
		PasswordHash: hash,
		Details:      details,
	})
}

// CreateUserPrehashed inserts a user whose password hash was produced
// earlier, e.g. at UserRegister event creation. Empty details are stored as
// an empty JSON object.
func (s *Store) CreateUserPrehashed(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if len(user.Details) == 0 {
		user.Details = json.RawMessage("{}")
	}
	return create(s.db, ctx, user, models.ErrNameConflict)
}

// DeleteUser removes a user, all of its group memberships and all of its
// login sessions, in one transaction.
// Returns models.ErrNotFound if the user doesn't exist.
func (s *Store) DeleteUser(ctx context.Context, login string) error {
	return s.Transaction(ctx, func(tx *Store) error {
		result := tx.db.WithContext(ctx).Where("login = ?", login).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}

		if err := tx.db.WithContext(ctx).
			Where("user_login = ?", login).
			Delete(&models.UserGroup{}).Error; err != nil {
			return err
		}

		return tx.db.WithContext(ctx).
			Where("user_login = ?", login).
			Delete(&models.LoginSession{}).Error
	})
}

// Authenticate verifies login credentials and returns the user.
// Returns models.ErrNotFound when the login does not exist and
// models.ErrInvalidCredentials when the password does not verify. Callers
// facing untrusted clients must present both failures identically to avoid
// user enumeration.
func (s *Store) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.GetUser(ctx, login)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if !identity.VerifyPassword(password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

// GrantGroup adds a user to a group.
// Returns models.ErrNameError if either does not exist or the membership is
// already present.
func (s *Store) GrantGroup(ctx context.Context, login, group string) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.GetUser(ctx, login); err != nil {
			return models.ErrNameError
		}
		if _, err := tx.GetGroup(ctx, group); err != nil {
			return models.ErrNameError
		}

		membership := &models.UserGroup{UserLogin: login, GroupName: group}
		return create(tx.db, ctx, membership, models.ErrNameError)
	})
}

// RevokeGroup removes a user from a group.
// Returns models.ErrNameError if the membership did not exist.
func (s *Store) RevokeGroup(ctx context.Context, login, group string) error {
	result := s.db.WithContext(ctx).
		Where("user_login = ? AND group_name = ?", login, group).
		Delete(&models.UserGroup{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNameError
	}
	return nil
}

// UserGroups returns the names of all groups the user belongs to.
// Returns models.ErrNotFound if the user doesn't exist.
func (s *Store) UserGroups(ctx context.Context, login string) ([]string, error) {
	if _, err := s.GetUser(ctx, login); err != nil {
		return nil, err
	}

	var groups []string
	err := s.db.WithContext(ctx).
		Model(&models.UserGroup{}).
		Where("user_login = ?", login).
		Order("group_name ASC").
		Pluck("group_name", &groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// UserPermissions returns the union of permission names granted to the
// user's groups. Unknown users yield an empty set.
func (s *Store) UserPermissions(ctx context.Context, login string) ([]string, error) {
	var permissions []string
	err := s.db.WithContext(ctx).
		Model(&models.UserGroup{}).
		Distinct("groups_permissions.permission_name").
		Joins("JOIN groups_permissions ON groups_permissions.group_name = users_groups.group_name").
		Where("users_groups.user_login = ?", login).
		Pluck("groups_permissions.permission_name", &permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// UserHasPermission reports whether some group of the user holds a granted
// permission that authorizes the required one under the instance-scoped
// matching rules.
func (s *Store) UserHasPermission(ctx context.Context, login, required string) (bool, error) {
	granted, err := s.UserPermissions(ctx, login)
	if err != nil {
		return false, err
	}
	for _, g := range granted {
		if models.PermissionMatches(g, required) {
			return true, nil
		}
	}
	return false, nil
}
