//go:build integration

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cauth-dev/cauth/pkg/models"
)

// createTestStore creates an in-memory SQLite store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(&Config{
		Type: DatabaseTypeSQLite,
		SQLite: SQLiteConfig{
			Path: ":memory:",
		},
	})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

func TestNew(t *testing.T) {
	t.Run("default config uses sqlite", func(t *testing.T) {
		config := &Config{}
		config.ApplyDefaults()

		if config.Type != DatabaseTypeSQLite {
			t.Errorf("expected SQLite, got %s", config.Type)
		}
	})

	t.Run("invalid config returns error", func(t *testing.T) {
		config := &Config{
			Type: "invalid",
		}
		_, err := New(config)
		if err == nil {
			t.Error("expected error for invalid config")
		}
	})

	t.Run("creates in-memory store", func(t *testing.T) {
		store := createTestStore(t)
		defer store.Close()

		if err := store.Healthcheck(context.Background()); err != nil {
			t.Errorf("healthcheck failed: %v", err)
		}
	})
}

func TestPermissionOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("create permission", func(t *testing.T) {
		if err := store.CreatePermission(ctx, "files:read", "read files"); err != nil {
			t.Fatalf("failed to create permission: %v", err)
		}
	})

	t.Run("duplicate permission fails", func(t *testing.T) {
		err := store.CreatePermission(ctx, "files:read", "read files again")
		if !errors.Is(err, models.ErrNameConflict) {
			t.Errorf("expected ErrNameConflict, got %v", err)
		}
	})

	t.Run("invalid name fails", func(t *testing.T) {
		err := store.CreatePermission(ctx, "", "nameless")
		if !errors.Is(err, models.ErrNameConflict) {
			t.Errorf("expected ErrNameConflict, got %v", err)
		}
	})

	t.Run("get permission", func(t *testing.T) {
		perm, err := store.GetPermission(ctx, "files:read")
		if err != nil {
			t.Fatalf("failed to get permission: %v", err)
		}
		if perm.Description != "read files" {
			t.Errorf("expected description 'read files', got %q", perm.Description)
		}
	})

	t.Run("get permission not found", func(t *testing.T) {
		_, err := store.GetPermission(ctx, "missing")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete permission", func(t *testing.T) {
		if err := store.DeletePermission(ctx, "files:read"); err != nil {
			t.Fatalf("failed to delete permission: %v", err)
		}
		_, err := store.GetPermission(ctx, "files:read")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("delete missing permission fails", func(t *testing.T) {
		err := store.DeletePermission(ctx, "files:read")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPermissionDeleteCascades(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	if err := store.CreatePermission(ctx, "files:read", ""); err != nil {
		t.Fatalf("failed to create permission: %v", err)
	}
	if err := store.CreateGroup(ctx, "readers", "", []string{"files:read"}); err != nil {
		t.Fatalf("failed to create group: %v", err)
	}

	if err := store.DeletePermission(ctx, "files:read"); err != nil {
		t.Fatalf("failed to delete permission: %v", err)
	}

	// The grant disappears silently; the group survives.
	perms, err := store.GroupPermissions(ctx, "readers")
	if err != nil {
		t.Fatalf("failed to list group permissions: %v", err)
	}
	if len(perms) != 0 {
		t.Errorf("expected no remaining grants, got %v", perms)
	}
}

func TestGroupOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	if err := store.CreatePermission(ctx, "files:read", ""); err != nil {
		t.Fatalf("failed to create permission: %v", err)
	}
	if err := store.CreatePermission(ctx, "files:write", ""); err != nil {
		t.Fatalf("failed to create permission: %v", err)
	}

	t.Run("create group with permissions", func(t *testing.T) {
		if err := store.CreateGroup(ctx, "editors", "can edit", []string{"files:read", "files:write"}); err != nil {
			t.Fatalf("failed to create group: %v", err)
		}

		perms, err := store.GroupPermissions(ctx, "editors")
		if err != nil {
			t.Fatalf("failed to list group permissions: %v", err)
		}
		if len(perms) != 2 {
			t.Errorf("expected 2 grants, got %v", perms)
		}
	})

	t.Run("create group with unknown permission fails atomically", func(t *testing.T) {
		err := store.CreateGroup(ctx, "broken", "", []string{"files:read", "no:such"})
		if !errors.Is(err, models.ErrNameError) {
			t.Fatalf("expected ErrNameError, got %v", err)
		}

		_, err = store.GetGroup(ctx, "broken")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected group not to exist, got %v", err)
		}
	})

	t.Run("duplicate group fails", func(t *testing.T) {
		err := store.CreateGroup(ctx, "editors", "", nil)
		if !errors.Is(err, models.ErrNameConflict) {
			t.Errorf("expected ErrNameConflict, got %v", err)
		}
	})

	t.Run("grant and revoke permission", func(t *testing.T) {
		if err := store.CreateGroup(ctx, "viewers", "", nil); err != nil {
			t.Fatalf("failed to create group: %v", err)
		}

		if err := store.GrantPermission(ctx, "viewers", "files:read"); err != nil {
			t.Fatalf("failed to grant: %v", err)
		}
		if err := store.GrantPermission(ctx, "viewers", "files:read"); !errors.Is(err, models.ErrNameError) {
			t.Errorf("expected ErrNameError for duplicate grant, got %v", err)
		}
		if err := store.GrantPermission(ctx, "viewers", "no:such"); !errors.Is(err, models.ErrNameError) {
			t.Errorf("expected ErrNameError for unknown permission, got %v", err)
		}

		if err := store.RevokePermission(ctx, "viewers", "files:read"); err != nil {
			t.Fatalf("failed to revoke: %v", err)
		}
		if err := store.RevokePermission(ctx, "viewers", "files:read"); !errors.Is(err, models.ErrNameError) {
			t.Errorf("expected ErrNameError for absent grant, got %v", err)
		}
	})

	t.Run("delete group cascades memberships and grants", func(t *testing.T) {
		if err := store.CreateUser(ctx, "alice", "secret-password", nil); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
		if err := store.GrantGroup(ctx, "alice", "editors"); err != nil {
			t.Fatalf("failed to grant group: %v", err)
		}

		if err := store.DeleteGroup(ctx, "editors"); err != nil {
			t.Fatalf("failed to delete group: %v", err)
		}

		groups, err := store.UserGroups(ctx, "alice")
		if err != nil {
			t.Fatalf("failed to list user groups: %v", err)
		}
		if len(groups) != 0 {
			t.Errorf("expected no memberships after cascade, got %v", groups)
		}
	})
}

func TestUserOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("create user", func(t *testing.T) {
		if err := store.CreateUser(ctx, "alice", "correct horse battery", nil); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		user, err := store.GetUser(ctx, "alice")
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if user.PasswordHash == "" || user.PasswordHash == "correct horse battery" {
			t.Error("expected password to be stored hashed")
		}
		if string(user.Details) != "{}" {
			t.Errorf("expected empty details object, got %q", user.Details)
		}
	})

	t.Run("duplicate user fails", func(t *testing.T) {
		err := store.CreateUser(ctx, "alice", "other", nil)
		if !errors.Is(err, models.ErrNameConflict) {
			t.Errorf("expected ErrNameConflict, got %v", err)
		}
	})

	t.Run("authenticate", func(t *testing.T) {
		if _, err := store.Authenticate(ctx, "alice", "correct horse battery"); err != nil {
			t.Errorf("expected successful authentication, got %v", err)
		}
		if _, err := store.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := store.Authenticate(ctx, "nobody", "whatever"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete user cascades sessions and memberships", func(t *testing.T) {
		token, err := store.CreateSession(ctx, "alice", models.SessionActive, time.Hour)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if err := store.DeleteUser(ctx, "alice"); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		if _, err := store.GetSession(ctx, token); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected session to be gone, got %v", err)
		}
		if err := store.DeleteUser(ctx, "alice"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound for second delete, got %v", err)
		}
	})
}

func TestUserPermissions(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	if err := store.CreatePermission(ctx, "users:delete", ""); err != nil {
		t.Fatalf("failed to create permission: %v", err)
	}
	if err := store.CreateGroup(ctx, "admins", "", []string{"users:delete"}); err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	if err := store.CreateUser(ctx, "root", "root-password", nil); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := store.GrantGroup(ctx, "root", "admins"); err != nil {
		t.Fatalf("failed to grant group: %v", err)
	}

	t.Run("class permission authorizes instances", func(t *testing.T) {
		cases := map[string]bool{
			"users:delete":           true,
			"users:delete:alice":     true,
			"users:delete:alice:now": false,
			"users:get":              false,
		}
		for required, want := range cases {
			got, err := store.UserHasPermission(ctx, "root", required)
			if err != nil {
				t.Fatalf("check %q failed: %v", required, err)
			}
			if got != want {
				t.Errorf("UserHasPermission(root, %q) = %v, want %v", required, got, want)
			}
		}
	})

	t.Run("unknown user has no permissions", func(t *testing.T) {
		got, err := store.UserHasPermission(ctx, "ghost", "users:delete")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if got {
			t.Error("expected no permission for unknown user")
		}
	})

	t.Run("revoking the group removes the permission", func(t *testing.T) {
		if err := store.RevokeGroup(ctx, "root", "admins"); err != nil {
			t.Fatalf("failed to revoke group: %v", err)
		}
		got, err := store.UserHasPermission(ctx, "root", "users:delete")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if got {
			t.Error("expected permission to be gone after revoke")
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	if err := store.CreatePermission(ctx, "users:get", ""); err != nil {
		t.Fatalf("failed to create permission: %v", err)
	}
	if err := store.CreateGroup(ctx, "staff", "", []string{"users:get"}); err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	if err := store.CreateUser(ctx, "bob", "bob-password", nil); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := store.GrantGroup(ctx, "bob", "staff"); err != nil {
		t.Fatalf("failed to grant group: %v", err)
	}

	t.Run("on-hold session conveys nothing", func(t *testing.T) {
		token, err := store.CreateSession(ctx, "bob", models.SessionOnHold, time.Hour)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		ok, err := store.SessionHasPermission(ctx, token, "users:get")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if ok {
			t.Error("on-hold session must not convey permissions")
		}

		if err := store.ActivateSession(ctx, token); err != nil {
			t.Fatalf("failed to activate: %v", err)
		}
		ok, err = store.SessionHasPermission(ctx, token, "users:get")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if !ok {
			t.Error("active session should convey the user's permissions")
		}
	})

	t.Run("activation is idempotent, revocation is final", func(t *testing.T) {
		token, err := store.CreateSession(ctx, "bob", models.SessionActive, time.Hour)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if err := store.ActivateSession(ctx, token); err != nil {
			t.Errorf("re-activating an active session should be a no-op, got %v", err)
		}
		if err := store.RevokeSession(ctx, token); err != nil {
			t.Fatalf("failed to revoke: %v", err)
		}
		if err := store.ActivateSession(ctx, token); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound activating a revoked session, got %v", err)
		}

		ok, err := store.SessionHasPermission(ctx, token, "users:get")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if ok {
			t.Error("revoked session must not convey permissions")
		}
	})

	t.Run("expired session conveys nothing", func(t *testing.T) {
		token, err := store.CreateSession(ctx, "bob", models.SessionActive, -time.Minute)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		ok, err := store.SessionHasPermission(ctx, token, "users:get")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if ok {
			t.Error("expired session must not convey permissions")
		}
	})

	t.Run("unknown token conveys nothing", func(t *testing.T) {
		ok, err := store.SessionHasPermission(ctx, "deadbeef", "users:get")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if ok {
			t.Error("unknown token must not convey permissions")
		}
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 16; i++ {
			token, err := store.CreateSession(ctx, "bob", models.SessionActive, time.Hour)
			if err != nil {
				t.Fatalf("failed to create session: %v", err)
			}
			if seen[token] {
				t.Fatal("duplicate session token")
			}
			seen[token] = true
		}
	})
}

func TestEventOperations(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	t.Run("ids are strictly increasing", func(t *testing.T) {
		var last int64
		for i := 0; i < 5; i++ {
			event, err := store.CreateEvent(ctx, models.EventPermissionInsert, []byte(`{"name":"x"}`), "")
			if err != nil {
				t.Fatalf("failed to create event: %v", err)
			}
			if event.ID <= last {
				t.Errorf("expected increasing ids, got %d after %d", event.ID, last)
			}
			last = event.ID
		}
	})

	t.Run("new events are pending", func(t *testing.T) {
		event, err := store.CreateEvent(ctx, models.EventGroupDelete, []byte(`{"name":"g"}`), "tok")
		if err != nil {
			t.Fatalf("failed to create event: %v", err)
		}
		if event.Status != models.EventPending {
			t.Errorf("expected pending, got %s", event.Status)
		}

		got, err := store.GetEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("failed to get event: %v", err)
		}
		if got.IssuerToken != "tok" {
			t.Errorf("expected issuer token to round-trip, got %q", got.IssuerToken)
		}
	})

	t.Run("set status", func(t *testing.T) {
		event, err := store.CreateEvent(ctx, models.EventGroupDelete, []byte(`{"name":"g"}`), "")
		if err != nil {
			t.Fatalf("failed to create event: %v", err)
		}

		if err := store.SetEventStatus(ctx, event.ID, models.EventCancelled); err != nil {
			t.Fatalf("failed to set status: %v", err)
		}
		got, _ := store.GetEvent(ctx, event.ID)
		if got.Status != models.EventCancelled {
			t.Errorf("expected cancelled, got %s", got.Status)
		}

		if err := store.SetEventStatus(ctx, 9999, models.EventCancelled); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestEnsureDefaults(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	if err := store.EnsureDefaults(ctx); err != nil {
		t.Fatalf("first bootstrap failed: %v", err)
	}
	if err := store.EnsureDefaults(ctx); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	perms, err := store.GroupPermissions(ctx, models.RootGroupName)
	if err != nil {
		t.Fatalf("failed to list root grants: %v", err)
	}
	if len(perms) != len(baselinePermissions) {
		t.Errorf("expected %d root grants, got %d", len(baselinePermissions), len(perms))
	}

	t.Run("survives manual tampering", func(t *testing.T) {
		if err := store.RevokePermission(ctx, models.RootGroupName, "events:commit"); err != nil {
			t.Fatalf("failed to revoke: %v", err)
		}
		if err := store.EnsureDefaults(ctx); err != nil {
			t.Fatalf("bootstrap after tampering failed: %v", err)
		}

		perms, err := store.GroupPermissions(ctx, models.RootGroupName)
		if err != nil {
			t.Fatalf("failed to list root grants: %v", err)
		}
		if len(perms) != len(baselinePermissions) {
			t.Errorf("expected grants to be topped up to %d, got %d", len(baselinePermissions), len(perms))
		}
	})
}

func TestListPagination(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()
	ctx := context.Background()

	names := []string{"a", "b", "c", "d", "e"}
	for _, name := range names {
		if err := store.CreatePermission(ctx, name, ""); err != nil {
			t.Fatalf("failed to create permission: %v", err)
		}
	}

	t.Run("ascending page", func(t *testing.T) {
		page, err := store.ListPermissions(ctx, ListOptions{Order: models.OrderAscending, Offset: 1, Limit: 2})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(page) != 2 || page[0].Name != "b" || page[1].Name != "c" {
			t.Errorf("unexpected page: %+v", page)
		}
	})

	t.Run("descending page", func(t *testing.T) {
		page, err := store.ListPermissions(ctx, ListOptions{Order: models.OrderDescending, Limit: 2})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(page) != 2 || page[0].Name != "e" || page[1].Name != "d" {
			t.Errorf("unexpected page: %+v", page)
		}
	})

	t.Run("limit is clamped", func(t *testing.T) {
		opts := ListOptions{Limit: MaxListLimit + 50}.normalize()
		if opts.Limit != MaxListLimit {
			t.Errorf("expected limit clamped to %d, got %d", MaxListLimit, opts.Limit)
		}
	})
}
