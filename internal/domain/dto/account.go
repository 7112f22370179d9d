package dto

import (
	"time"

	"github.com/nedconnect/backend/internal/domain/entity"
)

// Profile is the flat account view with the society name joined in,
// so callers never have to chase the society reference themselves.
type Profile struct {
	ID          string      `json:"id"`
	FullName    string      `json:"fullname"`
	Email       string      `json:"email"`
	Username    string      `json:"username"`
	Role        entity.Role `json:"role"`
	SocietyID   *string     `json:"society_id,omitempty"`
	SocietyName string      `json:"society_name,omitempty"`
}

// UnlinkedAccount is what the admin sees on the provisioning screen.
type UnlinkedAccount struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUnlinkedAccount(account entity.Account) UnlinkedAccount {
	return UnlinkedAccount{
		ID:        account.ID,
		FullName:  account.FullName,
		Email:     account.Email,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
	}
}
