package models

import (
	"encoding/json"
	"time"
)

// EventType discriminates the mutation staged by a pending event.
type EventType string

const (
	EventUserRegister          EventType = "UserRegister"
	EventUserLogin             EventType = "UserLogin"
	EventUserDelete            EventType = "UserDelete"
	EventUserGrantGroup        EventType = "UserGrantGroup"
	EventUserRevokeGroup       EventType = "UserRevokeGroup"
	EventGroupInsert           EventType = "GroupInsert"
	EventGroupDelete           EventType = "GroupDelete"
	EventGroupGrantPermission  EventType = "GroupGrantPermission"
	EventGroupRevokePermission EventType = "GroupRevokePermission"
	EventPermissionInsert      EventType = "PermissionInsert"
	EventPermissionDelete      EventType = "PermissionDelete"
)

// IsValid returns true if this is a known event type.
func (t EventType) IsValid() bool {
	switch t {
	case EventUserRegister, EventUserLogin, EventUserDelete,
		EventUserGrantGroup, EventUserRevokeGroup,
		EventGroupInsert, EventGroupDelete,
		EventGroupGrantPermission, EventGroupRevokePermission,
		EventPermissionInsert, EventPermissionDelete:
		return true
	default:
		return false
	}
}

// EventStatus represents the lifecycle state of an event.
//
//	(nonexistent) --create--> Pending --commit--> Committed (terminal)
//	                            |
//	                            +-------cancel--> Cancelled (terminal)
type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventCommitted EventStatus = "committed"
	EventCancelled EventStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s EventStatus) Terminal() bool {
	return s == EventCommitted || s == EventCancelled
}

// Event is a persistent record of a pending mutation. IDs come from a
// monotonic sequence and are not required to be gap-free. The issuer token
// identifies the session that created the event so cancellation can be
// authorized for the creator.
type Event struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Type        EventType       `gorm:"size:64;not null" json:"type"`
	Payload     json.RawMessage `gorm:"type:text" json:"payload"`
	Status      EventStatus     `gorm:"size:16;not null;index" json:"status"`
	IssuerToken string          `gorm:"size:64" json:"-"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for Event.
func (Event) TableName() string {
	return "events"
}
