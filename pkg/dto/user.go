package dto

import (
	"strings"

	"github.com/dimitrije/taskapp-api/internal/models"
)

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsAdmin   bool   `json:"is_admin"`
	IsBlocked bool   `json:"is_blocked"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		IsBlocked: u.IsBlocked,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(&users[i])
	}
	return out
}

// UpdateUserRequest changes profile data. Password fields are optional;
// when NewPassword is set the confirmation must match.
type UpdateUserRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	Phone           string `json:"phone" validate:"required,max=20,phone"`
	CurrentPassword string `json:"curr_password"`
	NewPassword     string `json:"new_password" validate:"omitempty,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required_with=NewPassword,eqfield=NewPassword"`
}

func (r *UpdateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
}
