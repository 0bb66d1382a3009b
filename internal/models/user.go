package models

import (
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	IsAdmin      bool      `json:"is_admin"`
	IsBlocked    bool      `json:"is_blocked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated caller resolved for a request.
type Principal struct {
	UserID    int64
	Email     string
	IsAdmin   bool
	IsBlocked bool
}

func (u *User) Principal() Principal {
	return Principal{
		UserID:    u.ID,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		IsBlocked: u.IsBlocked,
	}
}
