package entity

import "time"

// Registration is the join row between a student account and an approved
// event. The composite unique index keeps a student from registering twice;
// concurrent duplicates are resolved by the database, not by the application.
type Registration struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	EventID     string `gorm:"not null;type:uuid;uniqueIndex:idx_registrations_event_student"`
	StudentID   string `gorm:"not null;type:uuid;uniqueIndex:idx_registrations_event_student"`
	FullName    string `gorm:"not null"`
	RollNumber  string `gorm:"not null"`
	PhoneNumber string `gorm:"not null"`
	Department  string `gorm:"not null"`
}
