package entity

import "time"

type Society struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time
	Name      string `gorm:"not null;uniqueIndex"`
}
