package handlers

import (
	"net/http"
	"testing"

	"github.com/dimitrije/taskapp-api/internal/access"
	"github.com/dimitrije/taskapp-api/internal/middleware"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/dimitrije/taskapp-api/pkg/dto"
	"github.com/dimitrije/taskapp-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ownerID(id int64) *int64 { return &id }

var (
	alicesList = &models.TaskList{ID: 5, OwnerUser: ownerID(1)}
	coreList   = &models.TaskList{ID: 30, IsTeamList: true, OwnerTeam: ownerID(20)}
)

func intPtr(n int) *int { return &n }

func setupTaskTest(t *testing.T) (*handlerMocks, *TaskHandler, *middleware.Guard) {
	t.Helper()
	m := newHandlerMocks()
	r := testutil.TestRenderer(t)
	az := m.authorizer()
	return m, NewTaskHandler(m.tasks, az, r), middleware.NewGuard(az, r)
}

func TestTaskHandler_Create_PersonalList(t *testing.T) {
	m, handler, _ := setupTaskTest(t)

	m.lists.On("GetByID", mock.Anything, alicesList.ID).Return(alicesList, nil)
	m.tasks.On("Create", mock.Anything, alicesList.ID, mock.MatchedBy(func(p services.TaskParams) bool {
		return p.Name == "Buy milk" && p.Priority == models.PriorityLow && p.DueDate == nil
	})).Return(&models.Task{
		ID: 100, ListID: alicesList.ID, Name: "Buy milk", Persons: []models.User{*alice},
	}, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(asUser(alice))
	app.Post("/tasks", handler.Create)

	rec := doRequest(t, app, http.MethodPost, "/tasks", dto.CreateTaskRequest{ListID: alicesList.ID, Name: " Buy milk "})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "SUC_16", testutil.SuccessCode(t, rec))

	var task dto.TaskResponse
	decodeData(t, rec, &task)
	assert.Equal(t, 0, task.Status)
	assert.Equal(t, "upcoming", task.StatusName)
	require.Len(t, task.Persons, 1)
	assert.Equal(t, alice.ID, task.Persons[0].ID)
	assert.Equal(t, dto.AllowedTo{Edit: true, Advance: true, Delete: true}, *task.AllowedTo)

	m.assertExpectations(t)
}

func TestTaskHandler_Create_WithDueDateAndPriority(t *testing.T) {
	m, handler, _ := setupTaskTest(t)

	m.lists.On("GetByID", mock.Anything, alicesList.ID).Return(alicesList, nil)
	m.tasks.On("Create", mock.Anything, alicesList.ID, mock.MatchedBy(func(p services.TaskParams) bool {
		return p.Priority == models.PriorityHigh && p.DueDate != nil && p.DueDate.Day() == 2
	})).Return(&models.Task{ID: 101, ListID: alicesList.ID, Name: "Taxes", Priority: models.PriorityHigh}, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(asUser(alice))
	app.Post("/tasks", handler.Create)

	rec := doRequest(t, app, http.MethodPost, "/tasks", dto.CreateTaskRequest{
		ListID:   alicesList.ID,
		Name:     "Taxes",
		Priority: intPtr(2),
		DueDate:  "2026-01-02",
	})

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	m.assertExpectations(t)
}

func TestTaskHandler_Create_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body dto.CreateTaskRequest
		code string
	}{
		{"missing name", dto.CreateTaskRequest{ListID: 5}, "ERR_01"},
		{"priority out of range", dto.CreateTaskRequest{ListID: 5, Name: "x", Priority: intPtr(3)}, "ERR_16"},
		{"unparseable due date", dto.CreateTaskRequest{ListID: 5, Name: "x", DueDate: "next tuesday"}, "ERR_17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, handler, _ := setupTaskTest(t)

			app := drift.New()
			app.Use(driftmw.BodyParser())
			app.Use(asUser(alice))
			app.Post("/tasks", handler.Create)

			rec := doRequest(t, app, http.MethodPost, "/tasks", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, []string{tt.code}, testutil.ErrorCodes(t, rec))
			m.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_Create_Forbidden(t *testing.T) {
	t.Run("someone else's personal list", func(t *testing.T) {
		m, handler, _ := setupTaskTest(t)
		m.lists.On("GetByID", mock.Anything, alicesList.ID).Return(alicesList, nil)

		app := drift.New()
		app.Use(driftmw.BodyParser())
		app.Use(asUser(bob))
		app.Post("/tasks", handler.Create)

		rec := doRequest(t, app, http.MethodPost, "/tasks", dto.CreateTaskRequest{ListID: alicesList.ID, Name: "Sneaky"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("team list without manager role", func(t *testing.T) {
		m, handler, _ := setupTaskTest(t)
		m.lists.On("GetByID", mock.Anything, coreList.ID).Return(coreList, nil)
		asParticipant(m, bob, false)

		app := drift.New()
		app.Use(driftmw.BodyParser())
		app.Use(asUser(bob))
		app.Post("/tasks", handler.Create)

		rec := doRequest(t, app, http.MethodPost, "/tasks", dto.CreateTaskRequest{ListID: coreList.ID, Name: "Plan"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		m.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin cannot write a personal list", func(t *testing.T) {
		m, handler, _ := setupTaskTest(t)
		m.lists.On("GetByID", mock.Anything, alicesList.ID).Return(alicesList, nil)

		app := drift.New()
		app.Use(driftmw.BodyParser())
		app.Use(asUser(admin))
		app.Post("/tasks", handler.Create)

		rec := doRequest(t, app, http.MethodPost, "/tasks", dto.CreateTaskRequest{ListID: alicesList.ID, Name: "Audit"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestTaskHandler_Create_TeamManager(t *testing.T) {
	m, handler, _ := setupTaskTest(t)
	m.lists.On("GetByID", mock.Anything, coreList.ID).Return(coreList, nil)
	asParticipant(m, alice, true)
	m.tasks.On("Create", mock.Anything, coreList.ID, mock.Anything).Return(&models.Task{ID: 102, ListID: coreList.ID, Name: "Plan"}, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(asUser(alice))
	app.Post("/tasks", handler.Create)

	rec := doRequest(t, app, http.MethodPost, "/tasks", dto.CreateTaskRequest{ListID: coreList.ID, Name: "Plan"})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var task dto.TaskResponse
	decodeData(t, rec, &task)
	assert.Empty(t, task.Persons)
	assert.Equal(t, dto.AllowedTo{Edit: true, Advance: true, Delete: true, Assign: true}, *task.AllowedTo)
}

// primeTeamTask sets up the task lookups the guard performs for a team task.
func primeTeamTask(m *handlerMocks, task *models.Task, user *models.User, manager, responsible bool) {
	m.tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	m.lists.On("GetByID", mock.Anything, coreList.ID).Return(coreList, nil)
	m.teams.On("GetParticipant", mock.Anything, core.ID, user.ID).Return(&models.TeamParticipant{
		TeamID: core.ID, UserID: user.ID, IsManager: manager,
	}, nil)
	m.tasks.On("IsResponsible", mock.Anything, task.ID, user.ID).Return(responsible, nil)
}

func TestTaskHandler_Get(t *testing.T) {
	t.Run("owner of a personal task", func(t *testing.T) {
		m, handler, guard := setupTaskTest(t)
		task := &models.Task{ID: 100, ListID: alicesList.ID, Name: "Buy milk"}
		m.tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
		m.lists.On("GetByID", mock.Anything, alicesList.ID).Return(alicesList, nil)
		m.tasks.On("GetPersons", mock.Anything, task.ID).Return([]models.User{*alice}, nil)

		app := drift.New()
		app.Use(asUser(alice))
		app.Get("/tasks/:id", guard.Task(access.TaskView, handler.Get))

		rec := doRequest(t, app, http.MethodGet, "/tasks/100", nil)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp dto.TaskResponse
		testutil.ParseJSON(t, rec, &resp)
		assert.Len(t, resp.Persons, 1)
		assert.Equal(t, dto.AllowedTo{Edit: true, Advance: true, Delete: true}, *resp.AllowedTo)
	})

	t.Run("admin reads but may not write", func(t *testing.T) {
		m, handler, guard := setupTaskTest(t)
		task := &models.Task{ID: 100, ListID: alicesList.ID, Name: "Buy milk"}
		m.tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
		m.lists.On("GetByID", mock.Anything, alicesList.ID).Return(alicesList, nil)
		m.tasks.On("GetPersons", mock.Anything, task.ID).Return([]models.User{*alice}, nil)

		app := drift.New()
		app.Use(asUser(admin))
		app.Get("/tasks/:id", guard.Task(access.TaskView, handler.Get))

		rec := doRequest(t, app, http.MethodGet, "/tasks/100", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.TaskResponse
		testutil.ParseJSON(t, rec, &resp)
		assert.Equal(t, dto.AllowedTo{}, *resp.AllowedTo)
	})

	t.Run("unknown task", func(t *testing.T) {
		m, handler, guard := setupTaskTest(t)
		m.tasks.On("GetByID", mock.Anything, int64(404)).Return(nil, services.ErrNotFound)

		app := drift.New()
		app.Use(asUser(alice))
		app.Get("/tasks/:id", guard.Task(access.TaskView, handler.Get))

		rec := doRequest(t, app, http.MethodGet, "/tasks/404", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaskHandler_Advance_ResponsiblePerson(t *testing.T) {
	m, handler, guard := setupTaskTest(t)
	task := &models.Task{ID: 200, ListID: coreList.ID, Name: "Deploy", Status: models.StatusOngoing}
	primeTeamTask(m, task, bob, false, true)

	advanced := *task
	advanced.Status = models.StatusCompleted
	m.tasks.On("Advance", mock.Anything, task.ID).Return(&advanced, nil)

	app := drift.New()
	app.Use(asUser(bob))
	app.Post("/tasks/:id/advance", guard.Task(access.TaskAdvance, handler.Advance))

	rec := doRequest(t, app, http.MethodPost, "/tasks/200/advance", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "SUC_21", testutil.SuccessCode(t, rec))

	var resp dto.TaskResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "completed", resp.StatusName)
	assert.False(t, resp.AllowedTo.Advance)
	assert.False(t, resp.AllowedTo.Edit)

	m.assertExpectations(t)
}

func TestTaskHandler_Advance_NotResponsible(t *testing.T) {
	m, handler, guard := setupTaskTest(t)
	task := &models.Task{ID: 200, ListID: coreList.ID, Name: "Deploy"}
	primeTeamTask(m, task, bob, false, false)

	app := drift.New()
	app.Use(asUser(bob))
	app.Post("/tasks/:id/advance", guard.Task(access.TaskAdvance, handler.Advance))

	rec := doRequest(t, app, http.MethodPost, "/tasks/200/advance", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	m.tasks.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything)
}

func TestTaskHandler_Update(t *testing.T) {
	t.Run("manager edits", func(t *testing.T) {
		m, handler, guard := setupTaskTest(t)
		task := &models.Task{ID: 200, ListID: coreList.ID, Name: "Deploy"}
		primeTeamTask(m, task, alice, true, false)

		m.tasks.On("Update", mock.Anything, task.ID, mock.MatchedBy(func(p services.TaskParams) bool {
			return p.Name == "Deploy v2" && p.Priority == models.PriorityMedium
		})).Return(&models.Task{ID: 200, ListID: coreList.ID, Name: "Deploy v2", Priority: models.PriorityMedium}, nil)

		app := drift.New()
		app.Use(driftmw.BodyParser())
		app.Use(asUser(alice))
		app.Patch("/tasks/:id", guard.Task(access.TaskEdit, handler.Update))

		rec := doRequest(t, app, http.MethodPatch, "/tasks/200", dto.UpdateTaskRequest{Name: "Deploy v2", Priority: intPtr(1)})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "SUC_17", testutil.SuccessCode(t, rec))
		m.assertExpectations(t)
	})

	t.Run("completed task", func(t *testing.T) {
		m, handler, guard := setupTaskTest(t)
		task := &models.Task{ID: 200, ListID: coreList.ID, Name: "Deploy", Status: models.StatusCompleted}
		primeTeamTask(m, task, alice, true, false)
		m.tasks.On("Update", mock.Anything, task.ID, mock.Anything).Return(nil, services.ErrTaskCompleted)

		app := drift.New()
		app.Use(driftmw.BodyParser())
		app.Use(asUser(alice))
		app.Patch("/tasks/:id", guard.Task(access.TaskEdit, handler.Update))

		rec := doRequest(t, app, http.MethodPatch, "/tasks/200", dto.UpdateTaskRequest{Name: "Deploy", Priority: intPtr(0)})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, []string{"ERR_25"}, testutil.ErrorCodes(t, rec))
	})

	t.Run("responsible person cannot edit", func(t *testing.T) {
		m, handler, guard := setupTaskTest(t)
		task := &models.Task{ID: 200, ListID: coreList.ID, Name: "Deploy"}
		primeTeamTask(m, task, bob, false, true)

		app := drift.New()
		app.Use(driftmw.BodyParser())
		app.Use(asUser(bob))
		app.Patch("/tasks/:id", guard.Task(access.TaskEdit, handler.Update))

		rec := doRequest(t, app, http.MethodPatch, "/tasks/200", dto.UpdateTaskRequest{Name: "Mine", Priority: intPtr(0)})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	m, handler, guard := setupTaskTest(t)
	task := &models.Task{ID: 200, ListID: coreList.ID, Name: "Deploy", Status: models.StatusCompleted}
	primeTeamTask(m, task, alice, true, false)
	m.tasks.On("Delete", mock.Anything, task.ID).Return(nil)

	app := drift.New()
	app.Use(asUser(alice))
	app.Delete("/tasks/:id", guard.Task(access.TaskDelete, handler.Delete))

	rec := doRequest(t, app, http.MethodDelete, "/tasks/200", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SUC_18", testutil.SuccessCode(t, rec))
	m.assertExpectations(t)
}

func TestTaskHandler_Assign(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"assigned", nil, http.StatusCreated, "SUC_22"},
		{"already assigned", services.ErrDuplicate, http.StatusConflict, "ERR_21"},
		{"not a participant", services.ErrNotParticipant, http.StatusBadRequest, "ERR_24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, handler, guard := setupTaskTest(t)
			task := &models.Task{ID: 200, ListID: coreList.ID, Name: "Deploy"}
			primeTeamTask(m, task, alice, true, false)
			m.tasks.On("AssignPerson", mock.Anything, task.ID, bob.ID).Return(tt.err)

			app := drift.New()
			app.Use(driftmw.BodyParser())
			app.Use(asUser(alice))
			app.Post("/tasks/:id/persons", guard.Task(access.TaskAssign, handler.Assign))

			rec := doRequest(t, app, http.MethodPost, "/tasks/200/persons", dto.AssignPersonRequest{UserID: bob.ID})

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.err == nil {
				assert.Equal(t, tt.code, testutil.SuccessCode(t, rec))
			} else {
				assert.Equal(t, []string{tt.code}, testutil.ErrorCodes(t, rec))
			}
		})
	}
}

func TestTaskHandler_Assign_PersonalTask(t *testing.T) {
	m, handler, guard := setupTaskTest(t)
	task := &models.Task{ID: 100, ListID: alicesList.ID, Name: "Buy milk"}
	m.tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	m.lists.On("GetByID", mock.Anything, alicesList.ID).Return(alicesList, nil)
	m.tasks.On("AssignPerson", mock.Anything, task.ID, bob.ID).Return(services.ErrNotTeamTask)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(asUser(alice))
	app.Post("/tasks/:id/persons", guard.Task(access.TaskAssign, handler.Assign))

	rec := doRequest(t, app, http.MethodPost, "/tasks/100/persons", dto.AssignPersonRequest{UserID: bob.ID})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"ERR_28"}, testutil.ErrorCodes(t, rec))
}

func TestTaskHandler_Unassign(t *testing.T) {
	m, handler, guard := setupTaskTest(t)
	task := &models.Task{ID: 200, ListID: coreList.ID, Name: "Deploy"}
	primeTeamTask(m, task, alice, true, false)
	m.tasks.On("UnassignPerson", mock.Anything, task.ID, bob.ID).Return(services.ErrNotFound)

	app := drift.New()
	app.Use(asUser(alice))
	app.Delete("/tasks/:id/persons/:userId", guard.Task(access.TaskAssign, handler.Unassign))

	rec := doRequest(t, app, http.MethodDelete, "/tasks/200/persons/2", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskHandler_Persons(t *testing.T) {
	m, handler, guard := setupTaskTest(t)
	task := &models.Task{ID: 200, ListID: coreList.ID, Name: "Deploy"}
	primeTeamTask(m, task, bob, false, false)
	m.tasks.On("GetPersons", mock.Anything, task.ID).Return([]models.User{*alice}, nil)

	app := drift.New()
	app.Use(asUser(bob))
	app.Get("/tasks/:id/persons", guard.Task(access.TaskView, handler.Persons))

	rec := doRequest(t, app, http.MethodGet, "/tasks/200/persons", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var persons []dto.UserResponse
	testutil.ParseJSON(t, rec, &persons)
	require.Len(t, persons, 1)
	assert.Equal(t, alice.ID, persons[0].ID)
}
