package events

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cauth-dev/cauth/pkg/models"
)

// Payloads stored with pending events. Each type carries validate tags; the
// engine checks them both when the event is staged and again at commit time,
// so a non-cancelled event row is always structurally valid for its type.

// UserRegisterPayload stages a user insert. The password is hashed when the
// event is created, never at commit, so plaintext never reaches the row.
type UserRegisterPayload struct {
	Login        string          `json:"login" validate:"required,max=255"`
	PasswordHash string          `json:"password_hash" validate:"required"`
	Details      json.RawMessage `json:"details"`
}

// UserLoginPayload references the on-hold session created together with the
// event. Committing activates it.
type UserLoginPayload struct {
	SessionToken string `json:"session_id" validate:"required"`
}

// UserDeletePayload stages a user delete.
type UserDeletePayload struct {
	Login string `json:"login" validate:"required,max=255"`
}

// UserGroupPayload stages a user-to-group grant or revoke.
type UserGroupPayload struct {
	Login string `json:"login" validate:"required,max=255"`
	Group string `json:"group" validate:"required,max=255"`
}

// GroupInsertPayload stages a group insert with its initial permissions.
type GroupInsertPayload struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=3000"`
	Permissions []string `json:"permissions" validate:"dive,required,max=255"`
}

// GroupDeletePayload stages a group delete.
type GroupDeletePayload struct {
	Name string `json:"name" validate:"required,max=255"`
}

// GroupPermissionPayload stages a group-to-permission grant or revoke.
type GroupPermissionPayload struct {
	Group      string `json:"group" validate:"required,max=255"`
	Permission string `json:"permission" validate:"required,max=255"`
}

// PermissionInsertPayload stages a permission insert.
type PermissionInsertPayload struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=3000"`
}

// PermissionDeletePayload stages a permission delete.
type PermissionDeletePayload struct {
	Name string `json:"name" validate:"required,max=255"`
}

// validate is shared across the package; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New()

// decodePayload unmarshals raw payload bytes into dst and validates the
// result, mapping any failure to models.ErrInvalidPayload.
func decodePayload(raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	return nil
}

// encodePayload validates the payload and marshals it for storage.
func encodePayload(src any) (json.RawMessage, error) {
	if err := validate.Struct(src); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	return raw, nil
}
