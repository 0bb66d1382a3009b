package handlers

import (
	"context"
	"net/http"

	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/middleware"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/dimitrije/taskapp-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type CompanyHandler struct {
	companyService CompanyServiceInterface
	teamService    TeamServiceInterface
	userService    UserServiceInterface
	r              *respond.Renderer
}

func NewCompanyHandler(
	companyService CompanyServiceInterface,
	teamService TeamServiceInterface,
	userService UserServiceInterface,
	r *respond.Renderer,
) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		teamService:    teamService,
		userService:    userService,
		r:              r,
	}
}

func companyParams(req *dto.CompanyRequest) services.CompanyParams {
	return services.CompanyParams{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		Phone:       req.Phone,
	}
}

func (h *CompanyHandler) Create(c *drift.Context) {
	var req dto.CompanyRequest
	if !bind(c, h.r, &req) {
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), companyParams(&req))
	if err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.Created(c, i18n.SucCompanyCreated, dto.NewCompanyResponse(company))
}

func (h *CompanyHandler) List(c *drift.Context) {
	companies, err := h.companyService.List(c.Request.Context())
	if err != nil {
		h.r.Error(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.NewCompanyResponses(companies))
}

func (h *CompanyHandler) Get(c *drift.Context) {
	_ = c.JSON(http.StatusOK, dto.NewCompanyResponse(middleware.GetCompany(c)))
}

func (h *CompanyHandler) Update(c *drift.Context) {
	company := middleware.GetCompany(c)

	var req dto.CompanyRequest
	if !bind(c, h.r, &req) {
		return
	}

	updated, err := h.companyService.Update(c.Request.Context(), company.ID, companyParams(&req))
	if err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucCompanyUpdated, dto.NewCompanyResponse(updated))
}

func (h *CompanyHandler) Delete(c *drift.Context) {
	company := middleware.GetCompany(c)

	if err := h.companyService.Delete(c.Request.Context(), company.ID); err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucCompanyDeleted, nil)
}

func (h *CompanyHandler) Managers(c *drift.Context) {
	company := middleware.GetCompany(c)

	managers, err := h.companyService.GetManagers(c.Request.Context(), company.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	resp := make([]dto.ManagerResponse, len(managers))
	for i, m := range managers {
		resp[i] = dto.ManagerResponse{CompanyID: m.CompanyID, User: dto.UserResponse{ID: m.UserID}}
		if m.User != nil {
			resp[i].User = dto.NewUserResponse(m.User)
		}
	}
	_ = c.JSON(http.StatusOK, resp)
}

func (h *CompanyHandler) AddManager(c *drift.Context) {
	company := middleware.GetCompany(c)

	var req dto.MemberRequest
	if !bind(c, h.r, &req) {
		return
	}

	ctx := c.Request.Context()

	user, err := resolveMember(ctx, h.userService, &req)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	if err := h.companyService.AddManager(ctx, company.ID, user.ID); err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.Created(c, i18n.SucManagerAdded, dto.ManagerResponse{
		CompanyID: company.ID,
		User:      dto.NewUserResponse(user),
	})
}

func (h *CompanyHandler) RemoveManager(c *drift.Context) {
	company := middleware.GetCompany(c)
	userID, ok := paramID(c, h.r, "userId")
	if !ok {
		return
	}

	if err := h.companyService.RemoveManager(c.Request.Context(), company.ID, userID); err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucManagerRemoved, nil)
}

func (h *CompanyHandler) Teams(c *drift.Context) {
	company := middleware.GetCompany(c)

	teams, err := h.teamService.ListByCompany(c.Request.Context(), company.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.NewTeamResponses(teams))
}

func (h *CompanyHandler) CreateTeam(c *drift.Context) {
	company := middleware.GetCompany(c)

	var req dto.TeamRequest
	if !bind(c, h.r, &req) {
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), company.ID, req.Name, req.Description)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.Created(c, i18n.SucTeamCreated, dto.NewTeamResponse(team))
}

// resolveMember finds the user a MemberRequest names, by id first.
func resolveMember(ctx context.Context, users UserServiceInterface, req *dto.MemberRequest) (*models.User, error) {
	if req.UserID != 0 {
		return users.GetByID(ctx, req.UserID)
	}
	return users.GetByEmail(ctx, req.Email)
}
