package models

// Group represents a named bundle of permissions. Users gain their effective
// permission set through group membership.
type Group struct {
	Name        string `gorm:"primaryKey;size:255" json:"name"`
	Description string `gorm:"size:3000" json:"description"`
}

// TableName returns the table name for Group.
func (Group) TableName() string {
	return "groups"
}

// Validate checks the length limits on the group fields.
func (g *Group) Validate() error {
	if g.Name == "" || len(g.Name) > MaxNameLength {
		return ErrNameConflict
	}
	if len(g.Description) > MaxDescriptionLength {
		return ErrNameConflict
	}
	return nil
}

// RootGroupName is the name of the all-permissions group seeded at bootstrap.
const RootGroupName = "root"
