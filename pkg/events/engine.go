// Package events implements the two-phase mutation workflow.
//
// Privileged mutations can be staged as persistent events instead of being
// applied immediately. A pending event is later either committed, which
// replays the staged mutation against the stores, or cancelled, which
// discards it. The split lets one principal stage a change and a second,
// possibly higher-privileged principal approve it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cauth-dev/cauth/pkg/identity"
	"github.com/cauth-dev/cauth/pkg/models"
	"github.com/cauth-dev/cauth/pkg/store"
)

// Permissions gating the workflow itself, required in addition to the staged
// action's own permission.
const (
	PermCommit = "events:commit"
	PermCancel = "events:cancel"
)

// Policy tunes the engine's authorization behavior.
type Policy struct {
	// AllowSelfCommit permits the session that created an event to also
	// commit it. Enabled by default; disable to force four-eyes approval.
	AllowSelfCommit bool
}

// DefaultPolicy places no restriction on self-commits.
func DefaultPolicy() Policy {
	return Policy{AllowSelfCommit: true}
}

// Engine stages, commits and cancels events on top of the store.
type Engine struct {
	store      *store.Store
	policy     Policy
	sessionTTL time.Duration
}

// New creates an event engine. sessionTTL bounds the lifetime of sessions
// created by UserLogin events.
func New(s *store.Store, policy Policy, sessionTTL time.Duration) *Engine {
	return &Engine{store: s, policy: policy, sessionTTL: sessionTTL}
}

// ============================================
// EVENT CREATION
// ============================================
//
// The HTTP adapter checks the action permission before staging an event, the
// same check it would run for the direct mutation. The issuer token is
// recorded so cancellation can be authorized for the creator.

// CreateUserRegister stages a user insert. The password is hashed here and
// only the hash is persisted with the event.
func (e *Engine) CreateUserRegister(ctx context.Context, issuer, login, password string, details json.RawMessage) (*models.Event, error) {
	hash, err := identity.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return e.stage(ctx, models.EventUserRegister, issuer, &UserRegisterPayload{
		Login:        login,
		PasswordHash: hash,
		Details:      details,
	})
}

// CreateUserLogin authenticates the credentials, creates an on-hold session
// and stages its activation. The token is returned to the caller but conveys
// no permissions until the event is committed. The session itself is recorded
// as the event's issuer so its holder may cancel the pending login.
func (e *Engine) CreateUserLogin(ctx context.Context, login, password string) (*models.Event, string, error) {
	if _, err := e.store.Authenticate(ctx, login, password); err != nil {
		return nil, "", err
	}

	token, err := e.store.CreateSession(ctx, login, models.SessionOnHold, e.sessionTTL)
	if err != nil {
		return nil, "", err
	}

	event, err := e.stage(ctx, models.EventUserLogin, token, &UserLoginPayload{SessionToken: token})
	if err != nil {
		return nil, "", err
	}
	return event, token, nil
}

// CreateUserDelete stages a user delete.
func (e *Engine) CreateUserDelete(ctx context.Context, issuer, login string) (*models.Event, error) {
	return e.stage(ctx, models.EventUserDelete, issuer, &UserDeletePayload{Login: login})
}

// CreateUserGrantGroup stages a user-to-group grant.
func (e *Engine) CreateUserGrantGroup(ctx context.Context, issuer, login, group string) (*models.Event, error) {
	return e.stage(ctx, models.EventUserGrantGroup, issuer, &UserGroupPayload{Login: login, Group: group})
}

// CreateUserRevokeGroup stages a user-to-group revoke.
func (e *Engine) CreateUserRevokeGroup(ctx context.Context, issuer, login, group string) (*models.Event, error) {
	return e.stage(ctx, models.EventUserRevokeGroup, issuer, &UserGroupPayload{Login: login, Group: group})
}

// CreateGroupInsert stages a group insert.
func (e *Engine) CreateGroupInsert(ctx context.Context, issuer, name, description string, permissions []string) (*models.Event, error) {
	return e.stage(ctx, models.EventGroupInsert, issuer, &GroupInsertPayload{
		Name:        name,
		Description: description,
		Permissions: permissions,
	})
}

// CreateGroupDelete stages a group delete.
func (e *Engine) CreateGroupDelete(ctx context.Context, issuer, name string) (*models.Event, error) {
	return e.stage(ctx, models.EventGroupDelete, issuer, &GroupDeletePayload{Name: name})
}

// CreateGroupGrantPermission stages a group-to-permission grant.
func (e *Engine) CreateGroupGrantPermission(ctx context.Context, issuer, group, permission string) (*models.Event, error) {
	return e.stage(ctx, models.EventGroupGrantPermission, issuer, &GroupPermissionPayload{Group: group, Permission: permission})
}

// CreateGroupRevokePermission stages a group-to-permission revoke.
func (e *Engine) CreateGroupRevokePermission(ctx context.Context, issuer, group, permission string) (*models.Event, error) {
	return e.stage(ctx, models.EventGroupRevokePermission, issuer, &GroupPermissionPayload{Group: group, Permission: permission})
}

// CreatePermissionInsert stages a permission insert.
func (e *Engine) CreatePermissionInsert(ctx context.Context, issuer, name, description string) (*models.Event, error) {
	return e.stage(ctx, models.EventPermissionInsert, issuer, &PermissionInsertPayload{Name: name, Description: description})
}

// CreatePermissionDelete stages a permission delete.
func (e *Engine) CreatePermissionDelete(ctx context.Context, issuer, name string) (*models.Event, error) {
	return e.stage(ctx, models.EventPermissionDelete, issuer, &PermissionDeletePayload{Name: name})
}

// stage validates the payload and persists the pending event.
func (e *Engine) stage(ctx context.Context, typ models.EventType, issuer string, payload any) (*models.Event, error) {
	raw, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}
	return e.store.CreateEvent(ctx, typ, raw, issuer)
}

// ============================================
// COMMIT / CANCEL
// ============================================

// Commit applies a pending event's staged mutation and marks it committed,
// atomically. The caller's session must carry events:commit plus the staged
// action's own permission. Committing an already-committed event succeeds
// without re-applying; committing a cancelled event fails with
// models.ErrInvalidState. If the store mutation fails the event stays
// pending and the store error surfaces.
func (e *Engine) Commit(ctx context.Context, token string, id int64) error {
	if err := requirePermission(ctx, e.store, token, PermCommit); err != nil {
		return err
	}

	return e.store.Transaction(ctx, func(tx *store.Store) error {
		event, err := tx.GetEventForUpdate(ctx, id)
		if err != nil {
			return err
		}

		switch event.Status {
		case models.EventCommitted:
			return nil
		case models.EventCancelled:
			return models.ErrInvalidState
		}

		if !e.policy.AllowSelfCommit && event.IssuerToken != "" && event.IssuerToken == token {
			return models.ErrUnauthorized
		}

		required, err := RequiredPermission(event)
		if err != nil {
			return err
		}
		if required != "" {
			if err := requirePermission(ctx, tx, token, required); err != nil {
				return err
			}
		}

		if err := e.apply(ctx, tx, event); err != nil {
			return err
		}
		return tx.SetEventStatus(ctx, event.ID, models.EventCommitted)
	})
}

// Cancel discards a pending event. Allowed for the event's creator or any
// session carrying events:cancel. Cancelling an already-cancelled event
// succeeds; cancelling a committed one fails with models.ErrInvalidState.
// Cancelling a pending UserLogin additionally revokes its on-hold session so
// no dangling token remains.
func (e *Engine) Cancel(ctx context.Context, token string, id int64) error {
	return e.store.Transaction(ctx, func(tx *store.Store) error {
		event, err := tx.GetEventForUpdate(ctx, id)
		if err != nil {
			return err
		}

		switch event.Status {
		case models.EventCancelled:
			return nil
		case models.EventCommitted:
			return models.ErrInvalidState
		}

		if event.IssuerToken == "" || event.IssuerToken != token {
			if err := requirePermission(ctx, tx, token, PermCancel); err != nil {
				return err
			}
		}

		if event.Type == models.EventUserLogin {
			var payload UserLoginPayload
			if err := decodePayload(event.Payload, &payload); err != nil {
				return err
			}
			if err := tx.RevokeSession(ctx, payload.SessionToken); err != nil {
				return err
			}
		}

		return tx.SetEventStatus(ctx, event.ID, models.EventCancelled)
	})
}

// RequiredPermission returns the permission needed to perform the event's
// staged action directly. An empty string means no action permission beyond
// the workflow's own (UserLogin: the credentials were already verified when
// the event was staged).
func RequiredPermission(event *models.Event) (string, error) {
	switch event.Type {
	case models.EventUserRegister:
		return "users:post", nil
	case models.EventUserLogin:
		return "", nil
	case models.EventUserDelete:
		var p UserDeletePayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return "", err
		}
		return fmt.Sprintf("users:delete:%s", p.Login), nil
	case models.EventUserGrantGroup, models.EventUserRevokeGroup:
		return "users:update", nil
	case models.EventGroupInsert:
		return "groups:post", nil
	case models.EventGroupDelete:
		return "groups:delete", nil
	case models.EventGroupGrantPermission, models.EventGroupRevokePermission:
		return "groups:update", nil
	case models.EventPermissionInsert:
		return "permissions:post", nil
	case models.EventPermissionDelete:
		return "permissions:delete", nil
	default:
		return "", fmt.Errorf("%w: unknown event type %q", models.ErrInvalidPayload, event.Type)
	}
}

// apply re-validates the payload and replays the staged mutation on the
// transactional store.
func (e *Engine) apply(ctx context.Context, tx *store.Store, event *models.Event) error {
	switch event.Type {
	case models.EventUserRegister:
		var p UserRegisterPayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return err
		}
		return tx.CreateUserPrehashed(ctx, &models.User{
			Login:        p.Login,
			PasswordHash: p.PasswordHash,
			Details:      p.Details,
		})

	case models.EventUserLogin:
		var p UserLoginPayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return err
		}
		return tx.ActivateSession(ctx, p.SessionToken)

	case models.EventUserDelete:
		var p UserDeletePayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return err
		}
		return tx.DeleteUser(ctx, p.Login)

	case models.EventUserGrantGroup:
		var p UserGroupPayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return err
		}
		return tx.GrantGroup(ctx, p.Login, p.Group)

	case models.EventUserRevokeGroup:
		var p UserGroupPayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return err
		}
		return tx.RevokeGroup(ctx, p.Login, p.Group)

	case models.EventGroupInsert:
		var p GroupInsertPayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return err
		}
		return tx.CreateGroup(ctx, p.Name, p.Description, p.Permissions)

	case models.EventGroupDelete:
		var p GroupDeletePayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return err
		}
		return tx.DeleteGroup(ctx, p.Name)

	case models.EventGroupGrantPermission:
		var p GroupPermissionPayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return err
		}
		return tx.GrantPermission(ctx, p.Group, p.Permission)

	case models.EventGroupRevokePermission:
		var p GroupPermissionPayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return err
		}
		return tx.RevokePermission(ctx, p.Group, p.Permission)

	case models.EventPermissionInsert:
		var p PermissionInsertPayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return err
		}
		return tx.CreatePermission(ctx, p.Name, p.Description)

	case models.EventPermissionDelete:
		var p PermissionDeletePayload
		if err := decodePayload(event.Payload, &p); err != nil {
			return err
		}
		return tx.DeletePermission(ctx, p.Name)

	default:
		return fmt.Errorf("%w: unknown event type %q", models.ErrInvalidPayload, event.Type)
	}
}

// requirePermission maps a failed session permission check to ErrUnauthorized.
// The check runs on the store it is given so that callers inside a transaction
// pass the transactional store: reading through the outer pool would block on
// backends that serialize connections, such as in-memory SQLite.
func requirePermission(ctx context.Context, s *store.Store, token, permission string) error {
	ok, err := s.SessionHasPermission(ctx, token, permission)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrUnauthorized
	}
	return nil
}
