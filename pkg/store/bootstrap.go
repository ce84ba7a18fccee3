package store

import (
	"context"
	"errors"

	"github.com/cauth-dev/cauth/pkg/models"
)

// ============================================
// BOOTSTRAP
// ============================================

// baselinePermissions are the permissions every deployment needs so the
// service itself can be administered. The names are exactly the names the
// HTTP routes require.
var baselinePermissions = []models.Permission{
	{Name: "permissions:get", Description: "retrieve the permission list"},
	{Name: "permissions:post", Description: "create new permissions"},
	{Name: "permissions:delete", Description: "delete permissions"},
	{Name: "groups:get", Description: "retrieve the group list"},
	{Name: "groups:post", Description: "create new groups"},
	{Name: "groups:delete", Description: "delete groups"},
	{Name: "groups:update", Description: "grant and revoke permissions on groups"},
	{Name: "users:get", Description: "retrieve users and probe their permissions"},
	{Name: "users:post", Description: "approve staged user registrations"},
	{Name: "users:update", Description: "grant and revoke groups on users"},
	{Name: "users:delete", Description: "delete ANY user on the service, use with caution"},
	{Name: "events:commit", Description: "commit pending events"},
	{Name: "events:cancel", Description: "cancel pending events created by others"},
}

const rootGroupDescription = "the most privileged group, holding every baseline permission. " +
	"Do not grant it to untrusted users; create a narrower group fitting their needs instead."

// EnsureDefaults seeds the baseline permissions and the root group holding
// all of them. Rows that already exist are left untouched, so the call is
// idempotent and safe to run on every start. The whole seeding runs in one
// transaction.
func (s *Store) EnsureDefaults(ctx context.Context) error {
	return s.Transaction(ctx, func(tx *Store) error {
		for _, perm := range baselinePermissions {
			err := tx.CreatePermission(ctx, perm.Name, perm.Description)
			if err != nil && !errors.Is(err, models.ErrNameConflict) {
				return err
			}
		}

		_, err := tx.GetGroup(ctx, models.RootGroupName)
		if errors.Is(err, models.ErrNotFound) {
			names := make([]string, len(baselinePermissions))
			for i, perm := range baselinePermissions {
				names[i] = perm.Name
			}
			return tx.CreateGroup(ctx, models.RootGroupName, rootGroupDescription, names)
		}
		if err != nil {
			return err
		}

		// Group exists; top up any grants missing from older deployments.
		for _, perm := range baselinePermissions {
			err := tx.GrantPermission(ctx, models.RootGroupName, perm.Name)
			if err != nil && !errors.Is(err, models.ErrNameError) {
				return err
			}
		}
		return nil
	})
}
