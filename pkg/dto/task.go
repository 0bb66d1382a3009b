package dto

import (
	"strings"
	"time"

	"github.com/dimitrije/taskapp-api/internal/models"
)

type CreateListRequest struct {
	UserID *int64 `json:"user_id"`
	TeamID *int64 `json:"team_id"`
}

type TaskListResponse struct {
	ID         int64          `json:"id"`
	IsTeamList bool           `json:"is_team_list"`
	OwnerUser  *int64         `json:"owner_user,omitempty"`
	OwnerTeam  *int64         `json:"owner_team,omitempty"`
	Tasks      []TaskResponse `json:"tasks"`
}

func NewTaskListResponse(l *models.TaskList) TaskListResponse {
	return TaskListResponse{
		ID:         l.ID,
		IsTeamList: l.IsTeamList,
		OwnerUser:  l.OwnerUser,
		OwnerTeam:  l.OwnerTeam,
		Tasks:      []TaskResponse{},
	}
}

type CreateTaskRequest struct {
	ListID      int64  `json:"list_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=10000"`
	Priority    *int   `json:"priority" validate:"omitempty,priority"`
	DueDate     string `json:"due_date" validate:"omitempty,duedate"`
}

func (r *CreateTaskRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.DueDate = strings.TrimSpace(r.DueDate)
}

// UpdateTaskRequest replaces the editable task fields. Status is not
// editable; it only moves through the advance operation.
type UpdateTaskRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=10000"`
	Priority    *int   `json:"priority" validate:"required,priority"`
	DueDate     string `json:"due_date" validate:"omitempty,duedate"`
}

func (r *UpdateTaskRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.DueDate = strings.TrimSpace(r.DueDate)
}

type AssignPersonRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

type AllowedTo struct {
	Edit    bool `json:"edit"`
	Advance bool `json:"advance"`
	Delete  bool `json:"delete"`
	Assign  bool `json:"assign"`
}

type TaskResponse struct {
	ID          int64          `json:"id"`
	ListID      int64          `json:"list_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      int            `json:"status"`
	StatusName  string         `json:"status_name"`
	Priority    int            `json:"priority"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Persons     []UserResponse `json:"persons,omitempty"`
	AllowedTo   *AllowedTo     `json:"allowed_to,omitempty"`
}

func NewTaskResponse(t *models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		ListID:      t.ListID,
		Name:        t.Name,
		Description: t.Description,
		Status:      int(t.Status),
		StatusName:  t.Status.String(),
		Priority:    int(t.Priority),
		DueDate:     t.DueDate,
	}
	if len(t.Persons) > 0 {
		resp.Persons = NewUserResponses(t.Persons)
	}
	return resp
}
