package models

import (
	"errors"
	"time"
)

var ErrListOwner = errors.New("task list must have exactly one owner")

type TaskList struct {
	ID         int64     `json:"id"`
	IsTeamList bool      `json:"is_team_list"`
	OwnerUser  *int64    `json:"owner_user,omitempty"`
	OwnerTeam  *int64    `json:"owner_team,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListOwner names the owner of a new list. Exactly one field must be set.
type ListOwner struct {
	UserID *int64
	TeamID *int64
}

func UserOwner(id int64) ListOwner { return ListOwner{UserID: &id} }

func TeamOwner(id int64) ListOwner { return ListOwner{TeamID: &id} }

func (o ListOwner) Validate() error {
	if (o.UserID == nil) == (o.TeamID == nil) {
		return ErrListOwner
	}
	return nil
}

func (o ListOwner) IsTeam() bool {
	return o.TeamID != nil
}
