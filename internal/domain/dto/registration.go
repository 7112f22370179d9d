package dto

import "time"

// StudentEvent is one entry of a student's personal schedule: the
// registration joined with the event and the hosting society.
type StudentEvent struct {
	EventID      string    `json:"event_id"`
	Title        string    `json:"title"`
	EventDate    time.Time `json:"event_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time,omitempty"`
	Venue        string    `json:"venue"`
	PosterURL    string    `json:"poster_url,omitempty"`
	SocietyName  string    `json:"society_name"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Attendee is one row of an event's attendee list as the hosting
// society (or the admin) sees it.
type Attendee struct {
	FullName     string    `json:"full_name"`
	RollNumber   string    `json:"roll_number"`
	PhoneNumber  string    `json:"phone_number"`
	Department   string    `json:"department"`
	RegisteredAt time.Time `json:"registered_at"`
}
