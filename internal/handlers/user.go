package handlers

import (
	"net/http"

	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/config"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/middleware"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/dimitrije/taskapp-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type UserHandler struct {
	cfg            *config.Config
	userService    UserServiceInterface
	companyService CompanyServiceInterface
	teamService    TeamServiceInterface
	taskService    TaskServiceInterface
	tokenService   TokenServiceInterface
	r              *respond.Renderer
}

func NewUserHandler(
	cfg *config.Config,
	userService UserServiceInterface,
	companyService CompanyServiceInterface,
	teamService TeamServiceInterface,
	taskService TaskServiceInterface,
	tokenService TokenServiceInterface,
	r *respond.Renderer,
) *UserHandler {
	return &UserHandler{
		cfg:            cfg,
		userService:    userService,
		companyService: companyService,
		teamService:    teamService,
		taskService:    taskService,
		tokenService:   tokenService,
		r:              r,
	}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		h.r.Error(c, apperr.Unauthenticated(i18n.ErrNotAuthenticated))
		return
	}

	_ = c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update edits the target's profile. Changing one's own password needs the
// current one; an admin resetting someone else's does not.
func (h *UserHandler) Update(c *drift.Context) {
	p, ok := principal(c, h.r)
	if !ok {
		return
	}
	target := middleware.GetTargetUser(c)

	var req dto.UpdateUserRequest
	if !bind(c, h.r, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), target.ID, services.ProfileParams{
		Name:            req.Name,
		Phone:           req.Phone,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		RequireCurrent:  target.ID == p.UserID,
	})
	if err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucProfileUpdated, dto.NewUserResponse(user))
}

func (h *UserHandler) DeleteMe(c *drift.Context) {
	p, ok := principal(c, h.r)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), p.UserID); err != nil {
		h.r.Error(c, err)
		return
	}

	middleware.WriteCookie(c, middleware.AuthCookie, "", -1, h.cfg.CookiesSecure)
	h.r.OK(c, i18n.SucUserDeleted, nil)
}

func (h *UserHandler) List(c *drift.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.r.Error(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.NewUserResponses(users))
}

func (h *UserHandler) Block(c *drift.Context) {
	h.setBlocked(c, true)
}

func (h *UserHandler) Unblock(c *drift.Context) {
	h.setBlocked(c, false)
}

func (h *UserHandler) setBlocked(c *drift.Context, blocked bool) {
	p, ok := principal(c, h.r)
	if !ok {
		return
	}
	id, ok := paramID(c, h.r, "id")
	if !ok {
		return
	}
	if id == p.UserID {
		h.r.Error(c, apperr.Validation(i18n.ErrSelfTarget))
		return
	}

	ctx := c.Request.Context()

	user, err := h.userService.SetBlocked(ctx, id, blocked)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	code := i18n.SucUserUnblocked
	if blocked {
		code = i18n.SucUserBlocked
		if err := h.tokenService.RevokeAllUserTokens(ctx, id); err != nil {
			h.r.Error(c, err)
			return
		}
	}

	h.r.OK(c, code, dto.NewUserResponse(user))
}

func (h *UserHandler) Delete(c *drift.Context) {
	p, ok := principal(c, h.r)
	if !ok {
		return
	}
	id, ok := paramID(c, h.r, "id")
	if !ok {
		return
	}
	if id == p.UserID {
		h.r.Error(c, apperr.Validation(i18n.ErrSelfTarget))
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucUserDeleted, nil)
}

// Tasks lists the tasks the target user is responsible for.
func (h *UserHandler) Tasks(c *drift.Context) {
	target := middleware.GetTargetUser(c)

	tasks, err := h.taskService.ListForUser(c.Request.Context(), target.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	resp := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = dto.NewTaskResponse(&tasks[i])
	}
	_ = c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Companies(c *drift.Context) {
	target := middleware.GetTargetUser(c)

	companies, err := h.companyService.ListForUser(c.Request.Context(), target.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.NewCompanyResponses(companies))
}

func (h *UserHandler) Teams(c *drift.Context) {
	target := middleware.GetTargetUser(c)

	teams, err := h.teamService.ListForUser(c.Request.Context(), target.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.NewTeamResponses(teams))
}
