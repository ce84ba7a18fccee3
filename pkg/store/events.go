package store

import (
	"context"
	"encoding/json"

	"gorm.io/gorm/clause"

	"github.com/cauth-dev/cauth/pkg/models"
)

// ============================================
// EVENT OPERATIONS
// ============================================

// CreateEvent persists a new pending event and returns it with its assigned
// ID. IDs come from the database sequence and are strictly increasing.
func (s *Store) CreateEvent(ctx context.Context, typ models.EventType, payload json.RawMessage, issuerToken string) (*models.Event, error) {
	event := &models.Event{
		Type:        typ,
		Payload:     payload,
		Status:      models.EventPending,
		IssuerToken: issuerToken,
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// GetEvent returns an event by ID.
// Returns models.ErrNotFound if the event doesn't exist.
func (s *Store) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return getByField[models.Event](s.db, ctx, "id", id, models.ErrNotFound)
}

// GetEventForUpdate loads an event under a row-level lock. Must be called
// inside a Transaction; concurrent commits of the same event serialize on
// this lock.
func (s *Store) GetEventForUpdate(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrNotFound)
	}
	return &event, nil
}

// SetEventStatus flips an event's lifecycle status.
// Returns models.ErrNotFound if the event doesn't exist.
func (s *Store) SetEventStatus(ctx context.Context, id int64, status models.EventStatus) error {
	result := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
