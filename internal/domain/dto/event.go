package dto

import (
	"time"

	"github.com/lib/pq"

	"github.com/nedconnect/backend/internal/domain/entity"
)

// EventWithSociety is the event row flattened with its society name,
// used for the approved feed and the admin pending queue.
type EventWithSociety struct {
	ID                 string             `json:"id"`
	SocietyID          string             `json:"society_id"`
	SocietyName        string             `json:"society_name"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	EventDate          time.Time          `json:"event_date"`
	StartTime          string             `json:"start_time"`
	EndTime            string             `json:"end_time,omitempty"`
	Venue              string             `json:"venue"`
	PosterURL          string             `json:"poster_url,omitempty"`
	Status             entity.EventStatus `json:"status"`
	AllowedDepartments pq.StringArray     `json:"allowed_departments,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}
