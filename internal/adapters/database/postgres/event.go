package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nedconnect/backend/internal/domain/dto"
	"github.com/nedconnect/backend/internal/domain/entity"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

const eventWithSocietySelect = "events.id, events.society_id, societies.name AS society_name, " +
	"events.title, events.description, events.event_date, events.start_time, events.end_time, " +
	"events.venue, events.poster_url, events.status, events.allowed_departments, events.created_at"

// Create is a function that creates a new event in the database.
func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Create(&event).Error
	return event, err
}

// Get is a function that gets an event from the database by id.
func (s *EventStorage) Get(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	return &event, err
}

// UpdateStatus flips the event status from `from` to `to` in a single
// compare-and-swap statement. The returned count is zero when the event
// was not in the expected state, which callers treat as an invalid
// transition. Two concurrent decisions cannot both succeed.
func (s *EventStorage) UpdateStatus(ctx context.Context, id string, from, to entity.EventStatus) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&entity.Event{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// GetPending returns the admin review queue, oldest proposal first.
func (s *EventStorage) GetPending(ctx context.Context) ([]dto.EventWithSociety, error) {
	var events []dto.EventWithSociety
	err := s.db.WithContext(ctx).
		Table("events").
		Select(eventWithSocietySelect).
		Joins("LEFT JOIN societies ON societies.id = events.society_id").
		Where("events.status = ?", entity.EventPending).
		Order("events.created_at ASC").
		Scan(&events).Error
	return events, err
}

// GetApproved returns the student-visible feed ordered by event date.
func (s *EventStorage) GetApproved(ctx context.Context) ([]dto.EventWithSociety, error) {
	var events []dto.EventWithSociety
	err := s.db.WithContext(ctx).
		Table("events").
		Select(eventWithSocietySelect).
		Joins("LEFT JOIN societies ON societies.id = events.society_id").
		Where("events.status = ?", entity.EventApproved).
		Order("events.event_date ASC").
		Scan(&events).Error
	return events, err
}

// GetBySociety returns a society's own proposals, newest first.
func (s *EventStorage) GetBySociety(ctx context.Context, societyID string) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("society_id = ?", societyID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

// GetApprovedBetween returns approved events whose date falls in [from, to),
// used by the reminder scheduler.
func (s *EventStorage) GetApprovedBetween(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("status = ? AND event_date >= ? AND event_date < ?", entity.EventApproved, from, to).
		Find(&events).Error
	return events, err
}

// Count is a function that gets the count of events from the database.
func (s *EventStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Event{}).Count(&count).Error
	return count, err
}
