package dto

import (
	"strings"

	"github.com/dimitrije/taskapp-api/internal/models"
)

type CompanyRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=2000"`
	Email       string `json:"email" validate:"required,max=255,email"`
	Phone       string `json:"phone" validate:"required,max=20,phone"`
}

func (r *CompanyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
}

type CompanyResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

func NewCompanyResponse(c *models.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Email:       c.Email,
		Phone:       c.Phone,
	}
}

func NewCompanyResponses(companies []models.Company) []CompanyResponse {
	out := make([]CompanyResponse, len(companies))
	for i := range companies {
		out[i] = NewCompanyResponse(&companies[i])
	}
	return out
}

// MemberRequest names a user either by id or by email.
type MemberRequest struct {
	UserID int64  `json:"user_id" validate:"required_without=Email"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func (r *MemberRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ManagerResponse struct {
	CompanyID int64        `json:"company_id"`
	User      UserResponse `json:"user"`
}
