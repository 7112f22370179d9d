package entity

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleSociety Role = "society"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleSociety || r == RoleAdmin
}

type Account struct {
	ID           string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	FullName     string  `gorm:"not null"`
	Email        string  `gorm:"not null;uniqueIndex"`
	Username     string  `gorm:"not null;uniqueIndex"`
	PasswordHash string  `gorm:"not null"`
	Role         Role    `gorm:"not null"`
	SocietyID    *string `gorm:"type:uuid"`
	Society      *Society
}

// IsProvisioned reports whether the account may act on behalf of a society.
// Society accounts start unlinked and stay that way until an admin links them.
func (a *Account) IsProvisioned() bool {
	return a.Role != RoleSociety || a.SocietyID != nil
}
