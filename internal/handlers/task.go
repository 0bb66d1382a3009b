package handlers

import (
	"net/http"

	"github.com/dimitrije/taskapp-api/internal/access"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/middleware"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/dimitrije/taskapp-api/internal/validation"
	"github.com/dimitrije/taskapp-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type TaskHandler struct {
	taskService TaskServiceInterface
	az          *access.Authorizer
	r           *respond.Renderer
}

func NewTaskHandler(taskService TaskServiceInterface, az *access.Authorizer, r *respond.Renderer) *TaskHandler {
	return &TaskHandler{taskService: taskService, az: az, r: r}
}

func taskResponse(task *models.Task, perms access.Permissions) dto.TaskResponse {
	if task.Status.IsCompleted() {
		perms.Edit = false
		perms.Advance = false
	}
	resp := dto.NewTaskResponse(task)
	resp.AllowedTo = allowedTo(perms)
	return resp
}

func (h *TaskHandler) Create(c *drift.Context) {
	p, ok := principal(c, h.r)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !bind(c, h.r, &req) {
		return
	}

	ctx := c.Request.Context()

	list, err := h.az.List(ctx, p, req.ListID, true)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	dueDate, err := validation.ParseDueDate(req.DueDate)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	params := services.TaskParams{
		Name:        req.Name,
		Description: req.Description,
		Priority:    models.PriorityLow,
		DueDate:     dueDate,
	}
	if req.Priority != nil {
		params.Priority = models.Priority(*req.Priority)
	}

	task, err := h.taskService.Create(ctx, list.List.ID, params)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.Created(c, i18n.SucTaskCreated, taskResponse(task, access.AllowedFor(task, list, p)))
}

func (h *TaskHandler) Get(c *drift.Context) {
	t := middleware.GetTask(c)

	persons, err := h.taskService.GetPersons(c.Request.Context(), t.Task.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}
	t.Task.Persons = persons

	_ = c.JSON(http.StatusOK, taskResponse(t.Task, t.AllowedTo))
}

func (h *TaskHandler) Update(c *drift.Context) {
	t := middleware.GetTask(c)

	var req dto.UpdateTaskRequest
	if !bind(c, h.r, &req) {
		return
	}

	dueDate, err := validation.ParseDueDate(req.DueDate)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), t.Task.ID, services.TaskParams{
		Name:        req.Name,
		Description: req.Description,
		Priority:    models.Priority(*req.Priority),
		DueDate:     dueDate,
	})
	if err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucTaskUpdated, taskResponse(task, t.AllowedTo))
}

// Advance moves the task one status forward; completed tasks stay completed.
func (h *TaskHandler) Advance(c *drift.Context) {
	t := middleware.GetTask(c)

	task, err := h.taskService.Advance(c.Request.Context(), t.Task.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucStatusAdvanced, taskResponse(task, t.AllowedTo))
}

func (h *TaskHandler) Delete(c *drift.Context) {
	t := middleware.GetTask(c)

	if err := h.taskService.Delete(c.Request.Context(), t.Task.ID); err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucTaskDeleted, nil)
}

func (h *TaskHandler) Persons(c *drift.Context) {
	t := middleware.GetTask(c)

	persons, err := h.taskService.GetPersons(c.Request.Context(), t.Task.ID)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, dto.NewUserResponses(persons))
}

func (h *TaskHandler) Assign(c *drift.Context) {
	t := middleware.GetTask(c)

	var req dto.AssignPersonRequest
	if !bind(c, h.r, &req) {
		return
	}

	if err := h.taskService.AssignPerson(c.Request.Context(), t.Task.ID, req.UserID); err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.Created(c, i18n.SucPersonAssigned, nil)
}

func (h *TaskHandler) Unassign(c *drift.Context) {
	t := middleware.GetTask(c)
	userID, ok := paramID(c, h.r, "userId")
	if !ok {
		return
	}

	if err := h.taskService.UnassignPerson(c.Request.Context(), t.Task.ID, userID); err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.OK(c, i18n.SucPersonUnassigned, nil)
}
