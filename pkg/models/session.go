package models

import "time"

// SessionStatus represents the observable state of a login session.
type SessionStatus string

const (
	// SessionOnHold marks a session created by an uncommitted UserLogin
	// event. On-hold sessions exist only to hand a token back to the caller
	// and convey no permissions until activated.
	SessionOnHold SessionStatus = "on_hold"

	// SessionActive marks a usable session.
	SessionActive SessionStatus = "active"

	// SessionRevoked marks a session ended by logout or cancellation.
	SessionRevoked SessionStatus = "revoked"
)

// IsValid returns true if this is a valid session status.
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionOnHold, SessionActive, SessionRevoked:
		return true
	default:
		return false
	}
}

// LoginSession binds an opaque token to a user. Tokens are drawn from a
// cryptographically secure source and used as primary keys; expiry is
// enforced lazily on every permission check.
type LoginSession struct {
	Token     string        `gorm:"primaryKey;size:64" json:"token"`
	UserLogin string        `gorm:"size:255;not null;index" json:"user_login"`
	Status    SessionStatus `gorm:"size:16;not null" json:"status"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// TableName returns the table name for LoginSession.
func (LoginSession) TableName() string {
	return "login_sessions"
}

// Expired reports whether the session is past its expiry at the given time.
func (s *LoginSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
