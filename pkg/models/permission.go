package models

import "strings"

// Permission represents a named capability. A permission name is a
// colon-separated identifier; a trailing segment may denote a resource
// instance (e.g. "users:delete:alice").
type Permission struct {
	Name        string `gorm:"primaryKey;size:255" json:"name"`
	Description string `gorm:"size:3000" json:"description"`
}

// TableName returns the table name for Permission.
func (Permission) TableName() string {
	return "permissions"
}

// Validate checks the length limits on the permission fields.
func (p *Permission) Validate() error {
	if p.Name == "" || len(p.Name) > MaxNameLength {
		return ErrNameConflict
	}
	if len(p.Description) > MaxDescriptionLength {
		return ErrNameConflict
	}
	return nil
}

// PermissionMatches reports whether the granted permission authorizes the
// required one. Both are colon-delimited names compared byte-wise.
//
// granted authorizes required iff they are equal, or required has exactly one
// more trailing segment than granted and every segment of granted equals the
// corresponding segment of required. No other wildcard syntax is recognized:
// "users:delete" authorizes "users:delete:alice" but not "users:delete:a:b".
func PermissionMatches(granted, required string) bool {
	if granted == required {
		return true
	}

	gparts := strings.Split(granted, ":")
	rparts := strings.Split(required, ":")
	if len(rparts) != len(gparts)+1 {
		return false
	}
	if rparts[len(rparts)-1] == "" {
		return false
	}
	for i, g := range gparts {
		if g != rparts[i] {
			return false
		}
	}
	return true
}

// GroupPermission is a row in the group-to-permission relation.
// Cascades are handled explicitly in the store layer, not by the database.
type GroupPermission struct {
	GroupName      string `gorm:"primaryKey;size:255" json:"group_name"`
	PermissionName string `gorm:"primaryKey;size:255" json:"permission_name"`
}

// TableName returns the table name for GroupPermission.
func (GroupPermission) TableName() string {
	return "groups_permissions"
}
