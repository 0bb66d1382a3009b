package handlers

import (
	"net/http"

	"github.com/dimitrije/taskapp-api/internal/access"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/middleware"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/dimitrije/taskapp-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type TaskListHandler struct {
	listService TaskListServiceInterface
	taskService TaskServiceInterface
	userService UserServiceInterface
	teamService TeamServiceInterface
	r           *respond.Renderer
}

func NewTaskListHandler(
	listService TaskListServiceInterface,
	taskService TaskServiceInterface,
	userService UserServiceInterface,
	teamService TeamServiceInterface,
	r *respond.Renderer,
) *TaskListHandler {
	return &TaskListHandler{
		listService: listService,
		taskService: taskService,
		userService: userService,
		teamService: teamService,
		r:           r,
	}
}

func allowedTo(perms access.Permissions) *dto.AllowedTo {
	return &dto.AllowedTo{
		Edit:    perms.Edit,
		Advance: perms.Advance,
		Delete:  perms.Delete,
		Assign:  perms.Assign,
	}
}

func renderList(list *access.List, tasks []models.Task, p models.Principal) dto.TaskListResponse {
	resp := dto.NewTaskListResponse(list.List)
	for i := range tasks {
		task := dto.NewTaskResponse(&tasks[i])
		task.AllowedTo = allowedTo(access.AllowedFor(&tasks[i], list, p))
		resp.Tasks = append(resp.Tasks, task)
	}
	return resp
}

// Me renders the caller's personal list.
func (h *TaskListHandler) Me(c *drift.Context) {
	p, ok := principal(c, h.r)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	list, err := h.listService.GetByUser(ctx, p.UserID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	tasks, err := h.taskService.ListByList(ctx, list.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, renderList(&access.List{List: list}, tasks, p))
}

func (h *TaskListHandler) Get(c *drift.Context) {
	p, ok := principal(c, h.r)
	if !ok {
		return
	}
	list := middleware.GetList(c)

	tasks, err := h.taskService.ListByList(c.Request.Context(), list.List.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, renderList(list, tasks, p))
}

// Create makes a list for a user or team that lacks one. Exactly one owner
// must be named.
func (h *TaskListHandler) Create(c *drift.Context) {
	var req dto.CreateListRequest
	if !bind(c, h.r, &req) {
		return
	}

	owner := models.ListOwner{UserID: req.UserID, TeamID: req.TeamID}
	if err := owner.Validate(); err != nil {
		h.r.Error(c, err)
		return
	}

	ctx := c.Request.Context()

	var err error
	if owner.IsTeam() {
		_, err = h.teamService.GetByID(ctx, *owner.TeamID)
	} else {
		_, err = h.userService.GetByID(ctx, *owner.UserID)
	}
	if err != nil {
		h.r.Error(c, err)
		return
	}

	list, err := h.listService.Create(ctx, owner)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.Created(c, i18n.SucListCreated, dto.NewTaskListResponse(list))
}
