package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/nedconnect/backend/internal/domain/dto"
	"github.com/nedconnect/backend/internal/domain/entity"
)

type RegistrationStorage struct {
	db *gorm.DB
}

func NewRegistrationStorage(db *gorm.DB) *RegistrationStorage {
	return &RegistrationStorage{
		db: db,
	}
}

// Create inserts a registration. The (event_id, student_id) unique index is
// the only duplicate guard; a second insert surfaces gorm.ErrDuplicatedKey.
func (s *RegistrationStorage) Create(ctx context.Context, registration *entity.Registration) (*entity.Registration, error) {
	err := s.db.WithContext(ctx).Create(&registration).Error
	return registration, err
}

func (s *RegistrationStorage) Get(ctx context.Context, eventID, studentID string) (*entity.Registration, error) {
	var registration entity.Registration
	err := s.db.WithContext(ctx).Where("event_id = ? AND student_id = ?", eventID, studentID).First(&registration).Error
	return &registration, err
}

// Delete removes a student's registration and reports how many rows went away.
func (s *RegistrationStorage) Delete(ctx context.Context, eventID, studentID string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("event_id = ? AND student_id = ?", eventID, studentID).
		Delete(&entity.Registration{})
	return res.RowsAffected, res.Error
}

// GetStudentEvents returns the personal schedule view: every event the
// student is registered for, joined flat with the hosting society.
func (s *RegistrationStorage) GetStudentEvents(ctx context.Context, studentID string) ([]dto.StudentEvent, error) {
	var events []dto.StudentEvent
	err := s.db.WithContext(ctx).
		Table("registrations").
		Select("registrations.event_id, events.title, events.event_date, events.start_time, events.end_time, "+
			"events.venue, events.poster_url, societies.name AS society_name, registrations.created_at AS registered_at").
		Joins("LEFT JOIN events ON events.id = registrations.event_id").
		Joins("LEFT JOIN societies ON societies.id = events.society_id").
		Where("registrations.student_id = ?", studentID).
		Order("events.event_date ASC").
		Scan(&events).Error
	return events, err
}

// GetByEventID returns the attendee list of an event, oldest registration first.
func (s *RegistrationStorage) GetByEventID(ctx context.Context, eventID string) ([]dto.Attendee, error) {
	var attendees []dto.Attendee
	err := s.db.WithContext(ctx).
		Table("registrations").
		Select("registrations.full_name, registrations.roll_number, registrations.phone_number, "+
			"registrations.department, registrations.created_at AS registered_at").
		Where("registrations.event_id = ?", eventID).
		Order("registrations.created_at ASC").
		Scan(&attendees).Error
	return attendees, err
}

// GetEmailsByEventID returns the account emails of everyone registered
// for the event, used for reminder mail.
func (s *RegistrationStorage) GetEmailsByEventID(ctx context.Context, eventID string) ([]string, error) {
	var emails []string
	err := s.db.WithContext(ctx).
		Table("registrations").
		Select("accounts.email").
		Joins("LEFT JOIN accounts ON accounts.id = registrations.student_id").
		Where("registrations.event_id = ?", eventID).
		Scan(&emails).Error
	return emails, err
}

func (s *RegistrationStorage) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Registration{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
