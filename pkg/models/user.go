package models

import "encoding/json"

// User represents a cauth principal. The password hash is an opaque PHC
// string produced by pkg/identity; plaintext passwords never reach this type.
type User struct {
	Login        string          `gorm:"primaryKey;size:255" json:"login"`
	PasswordHash string          `gorm:"not null" json:"-"`
	Details      json.RawMessage `gorm:"type:text" json:"details"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// Validate checks the length limit on the login.
func (u *User) Validate() error {
	if u.Login == "" || len(u.Login) > MaxNameLength {
		return ErrNameConflict
	}
	return nil
}

// UserGroup is a row in the user-to-group relation.
// Cascades are handled explicitly in the store layer, not by the database.
type UserGroup struct {
	UserLogin string `gorm:"primaryKey;size:255" json:"user_login"`
	GroupName string `gorm:"primaryKey;size:255" json:"group_name"`
}

// TableName returns the table name for UserGroup.
func (UserGroup) TableName() string {
	return "users_groups"
}
