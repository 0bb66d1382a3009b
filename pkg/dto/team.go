package dto

import (
	"strings"

	"github.com/dimitrije/taskapp-api/internal/models"
)

type TeamRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

func (r *TeamRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

type TeamResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	OwnerCompany int64  `json:"owner_company"`
	ListID       int64  `json:"list_id,omitempty"`
	IsManager    bool   `json:"is_manager"`
}

func NewTeamResponse(t *models.Team) TeamResponse {
	return TeamResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		OwnerCompany: t.OwnerCompany,
		ListID:       t.ListID,
	}
}

func NewTeamResponses(teams []models.Team) []TeamResponse {
	out := make([]TeamResponse, len(teams))
	for i := range teams {
		out[i] = NewTeamResponse(&teams[i])
	}
	return out
}

type ParticipantResponse struct {
	TeamID    int64        `json:"team_id"`
	IsManager bool         `json:"is_manager"`
	User      UserResponse `json:"user"`
}

func NewParticipantResponse(p *models.TeamParticipant) ParticipantResponse {
	resp := ParticipantResponse{
		TeamID:    p.TeamID,
		IsManager: p.IsManager,
		User:      UserResponse{ID: p.UserID},
	}
	if p.User != nil {
		resp.User = NewUserResponse(p.User)
	}
	return resp
}
