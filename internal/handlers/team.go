package handlers

import (
	"net/http"

	"github.com/dimitrije/taskapp-api/internal/access"
	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/middleware"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/dimitrije/taskapp-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type TeamHandler struct {
	teamService TeamServiceInterface
	userService UserServiceInterface
	taskService TaskServiceInterface
	r           *respond.Renderer
}

func NewTeamHandler(
	teamService TeamServiceInterface,
	userService UserServiceInterface,
	taskService TaskServiceInterface,
	r *respond.Renderer,
) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		userService: userService,
		taskService: taskService,
		r:           r,
	}
}

func (h *TeamHandler) Get(c *drift.Context) {
	team := middleware.GetTeam(c)

	resp := dto.NewTeamResponse(team.Team)
	resp.IsManager = team.IsManager
	_ = c.JSON(http.StatusOK, resp)
}

func (h *TeamHandler) Update(c *drift.Context) {
	team := middleware.GetTeam(c)

	var req dto.TeamRequest
	if !bind(c, h.r, &req) {
		return
	}

	updated, err := h.teamService.Update(c.Request.Context(), team.Team.ID, req.Name, req.Description)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	resp := dto.NewTeamResponse(updated)
	resp.IsManager = team.IsManager
	h.r.OK(c, i18n.SucTeamUpdated, resp)
}

func (h *TeamHandler) Delete(c *drift.Context) {
	team := middleware.GetTeam(c)

	if err := h.teamService.Delete(c.Request.Context(), team.Team.ID); err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucTeamDeleted, nil)
}

func (h *TeamHandler) Participants(c *drift.Context) {
	team := middleware.GetTeam(c)

	participants, err := h.teamService.GetParticipants(c.Request.Context(), team.Team.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	resp := make([]dto.ParticipantResponse, len(participants))
	for i := range participants {
		resp[i] = dto.NewParticipantResponse(&participants[i])
	}
	_ = c.JSON(http.StatusOK, resp)
}

func (h *TeamHandler) AddParticipant(c *drift.Context) {
	team := middleware.GetTeam(c)

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

	participant, err := h.teamService.AddParticipant(ctx, team.Team.ID, user.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}
	participant.User = user

	h.r.Created(c, i18n.SucParticipantAdded, dto.NewParticipantResponse(participant))
}

func (h *TeamHandler) RemoveParticipant(c *drift.Context) {
	team := middleware.GetTeam(c)
	userID, ok := paramID(c, h.r, "userId")
	if !ok {
		return
	}

	if err := h.teamService.RemoveParticipant(c.Request.Context(), team.Team.ID, userID); err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucParticipantRemoved, nil)
}

func (h *TeamHandler) ToggleRole(c *drift.Context) {
	team := middleware.GetTeam(c)
	userID, ok := paramID(c, h.r, "userId")
	if !ok {
		return
	}

	participant, err := h.teamService.ToggleRole(c.Request.Context(), team.Team.ID, userID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucRoleChanged, dto.NewParticipantResponse(participant))
}

// Tasks renders the team list with per-task permissions for the caller.
func (h *TeamHandler) Tasks(c *drift.Context) {
	p, ok := principal(c, h.r)
	if !ok {
		return
	}
	team := middleware.GetTeam(c)
	if team.Team.ListID == 0 {
		h.r.Error(c, apperr.NotFound(i18n.ErrNotFound))
		return
	}

	tasks, err := h.taskService.ListByList(c.Request.Context(), team.Team.ListID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	teamID := team.Team.ID
	list := &access.List{
		List: &models.TaskList{ID: team.Team.ListID, IsTeamList: true, OwnerTeam: &teamID},
		Team: team,
	}
	_ = c.JSON(http.StatusOK, renderList(list, tasks, p))
}
