package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/cauth-dev/cauth/pkg/models"
)

// ============================================
// SESSION OPERATIONS
// ============================================

// sessionTokenBytes is the entropy of a session token. 32 bytes (256 bits)
// comfortably exceeds the 128-bit floor.
const sessionTokenBytes = 32

// newSessionToken draws an opaque token from the secure random source.
func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CreateSession issues a session token for the user with the given status
// and time-to-live. Status must be SessionOnHold or SessionActive; on-hold
// sessions exist only to back uncommitted UserLogin events.
func (s *Store) CreateSession(ctx context.Context, login string, status models.SessionStatus, ttl time.Duration) (string, error) {
	if status != models.SessionOnHold && status != models.SessionActive {
		return "", fmt.Errorf("invalid initial session status: %s", status)
	}

	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	session := &models.LoginSession{
		Token:     token,
		UserLogin: login,
		Status:    status,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := create(s.db, ctx, session, models.ErrNameConflict); err != nil {
		return "", err
	}
	return token, nil
}

// GetSession returns a session by token.
// Returns models.ErrNotFound if the token is unknown.
func (s *Store) GetSession(ctx context.Context, token string) (*models.LoginSession, error) {
	return getByField[models.LoginSession](s.db, ctx, "token", token, models.ErrNotFound)
}

// ActivateSession transitions an on-hold session to active. Activating an
// already-active session is a no-op.
// Returns models.ErrNotFound for unknown tokens and for revoked sessions;
// a revoked token is as good as gone.
func (s *Store) ActivateSession(ctx context.Context, token string) error {
	return s.Transaction(ctx, func(tx *Store) error {
		session, err := tx.GetSession(ctx, token)
		if err != nil {
			return err
		}

		switch session.Status {
		case models.SessionActive:
			return nil
		case models.SessionRevoked:
			return models.ErrNotFound
		}

		return tx.db.WithContext(ctx).
			Model(&models.LoginSession{}).
			Where("token = ?", token).
			Update("status", models.SessionActive).Error
	})
}

// RevokeSession marks a session revoked.
// Returns models.ErrNotFound if the token is unknown.
func (s *Store) RevokeSession(ctx context.Context, token string) error {
	result := s.db.WithContext(ctx).
		Model(&models.LoginSession{}).
		Where("token = ?", token).
		Update("status", models.SessionRevoked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SessionHasPermission reports whether the session carries the required
// permission. Absent, expired, revoked and on-hold sessions convey nothing;
// otherwise the check delegates to the session user's effective permission
// set.
func (s *Store) SessionHasPermission(ctx context.Context, token, required string) (bool, error) {
	session, err := s.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if session.Status != models.SessionActive || session.Expired(time.Now()) {
		return false, nil
	}

	return s.UserHasPermission(ctx, session.UserLogin, required)
}
