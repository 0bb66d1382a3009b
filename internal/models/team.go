package models

import (
	"time"
)

type Team struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	OwnerCompany int64     `json:"owner_company"`
	ListID       int64     `json:"list_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TeamParticipant struct {
	TeamID    int64     `json:"team_id"`
	UserID    int64     `json:"user_id"`
	IsManager bool      `json:"is_manager"`
	CreatedAt time.Time `json:"created_at"`
	User      *User     `json:"user,omitempty"`
}
