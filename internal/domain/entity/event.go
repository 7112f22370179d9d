package entity

import (
	"time"

	"github.com/lib/pq"
)

type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventApproved EventStatus = "approved"
	EventRejected EventStatus = "rejected"
)

type Event struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SocietyID   string `gorm:"not null;type:uuid"`
	Society     Society
	Title       string `gorm:"not null"`
	Description string
	EventDate   time.Time `gorm:"not null;type:date"`
	StartTime   string    `gorm:"not null"`
	EndTime     string
	Venue       string `gorm:"not null"`
	PosterURL   string
	Status      EventStatus `gorm:"not null;default:pending"`
	// Departments allowed to register. Empty means open to everyone.
	AllowedDepartments pq.StringArray `gorm:"type:text[]"`
}

// OpenTo reports whether a student from the given department may register.
func (e *Event) OpenTo(department string) bool {
	if len(e.AllowedDepartments) == 0 {
		return true
	}
	for _, d := range e.AllowedDepartments {
		if d == department {
			return true
		}
	}
	return false
}
