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

var acme = &models.Company{
	ID:          10,
	Name:        "Acme",
	Description: "Widgets",
	Email:       "office@acme.test",
	Phone:       "+37167000000",
}

func setupCompanyTest(t *testing.T) (*handlerMocks, *CompanyHandler, *middleware.Guard) {
	t.Helper()
	m := newHandlerMocks()
	r := testutil.TestRenderer(t)
	return m, NewCompanyHandler(m.companies, m.teams, m.users, r), middleware.NewGuard(m.authorizer(), r)
}

func validCompanyRequest() dto.CompanyRequest {
	return dto.CompanyRequest{
		Name:        "Acme",
		Description: "Widgets",
		Email:       "OFFICE@acme.test",
		Phone:       "+37167000000",
	}
}

func TestCompanyHandler_Create(t *testing.T) {
	m, handler, guard := setupCompanyTest(t)

	m.companies.On("Create", mock.Anything, services.CompanyParams{
		Name:        "Acme",
		Description: "Widgets",
		Email:       "office@acme.test",
		Phone:       "+37167000000",
	}).Return(acme, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(asUser(admin))
	app.Post("/companies", guard.Admin(handler.Create))

	rec := doRequest(t, app, http.MethodPost, "/companies", validCompanyRequest())

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "SUC_07", testutil.SuccessCode(t, rec))

	var company dto.CompanyResponse
	decodeData(t, rec, &company)
	assert.Equal(t, acme.ID, company.ID)

	m.assertExpectations(t)
}

func TestCompanyHandler_Create_NonAdmin(t *testing.T) {
	m, handler, guard := setupCompanyTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(asUser(alice))
	app.Post("/companies", guard.Admin(handler.Create))

	rec := doRequest(t, app, http.MethodPost, "/companies", validCompanyRequest())

	assert.Equal(t, http.StatusForbidden, rec.Code)
	m.companies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCompanyHandler_Create_InvalidPhone(t *testing.T) {
	_, handler, guard := setupCompanyTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(asUser(admin))
	app.Post("/companies", guard.Admin(handler.Create))

	req := validCompanyRequest()
	req.Phone = "call me"

	rec := doRequest(t, app, http.MethodPost, "/companies", req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"ERR_07"}, testutil.ErrorCodes(t, rec))
}

func TestCompanyHandler_Get(t *testing.T) {
	t.Run("manager", func(t *testing.T) {
		m, handler, guard := setupCompanyTest(t)
		m.companies.On("IsManager", mock.Anything, acme.ID, alice.ID).Return(true, nil)
		m.companies.On("GetByID", mock.Anything, acme.ID).Return(acme, nil)

		app := drift.New()
		app.Use(asUser(alice))
		app.Get("/companies/:id", guard.Company(access.CompanyManagerOrAdmin, handler.Get))

		rec := doRequest(t, app, http.MethodGet, "/companies/10", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var company dto.CompanyResponse
		testutil.ParseJSON(t, rec, &company)
		assert.Equal(t, "Acme", company.Name)
	})

	t.Run("non-manager is denied before the lookup", func(t *testing.T) {
		m, handler, guard := setupCompanyTest(t)
		m.companies.On("IsManager", mock.Anything, int64(999), bob.ID).Return(false, nil)

		app := drift.New()
		app.Use(asUser(bob))
		app.Get("/companies/:id", guard.Company(access.CompanyManagerOrAdmin, handler.Get))

		rec := doRequest(t, app, http.MethodGet, "/companies/999", nil)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		m.companies.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("admin gets 404 for unknown id", func(t *testing.T) {
		m, handler, guard := setupCompanyTest(t)
		m.companies.On("GetByID", mock.Anything, int64(999)).Return(nil, services.ErrNotFound)

		app := drift.New()
		app.Use(asUser(admin))
		app.Get("/companies/:id", guard.Company(access.CompanyManagerOrAdmin, handler.Get))

		rec := doRequest(t, app, http.MethodGet, "/companies/999", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, []string{"ERR_19"}, testutil.ErrorCodes(t, rec))
	})
}

func TestCompanyHandler_Update(t *testing.T) {
	m, handler, guard := setupCompanyTest(t)

	renamed := *acme
	renamed.Name = "Acme Ltd"

	m.companies.On("IsManager", mock.Anything, acme.ID, alice.ID).Return(true, nil)
	m.companies.On("GetByID", mock.Anything, acme.ID).Return(acme, nil)
	m.companies.On("Update", mock.Anything, acme.ID, mock.MatchedBy(func(p services.CompanyParams) bool {
		return p.Name == "Acme Ltd"
	})).Return(&renamed, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(asUser(alice))
	app.Patch("/companies/:id", guard.Company(access.CompanyManagerOrAdmin, handler.Update))

	req := validCompanyRequest()
	req.Name = "Acme Ltd"
	rec := doRequest(t, app, http.MethodPatch, "/companies/10", req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "SUC_08", testutil.SuccessCode(t, rec))
	m.assertExpectations(t)
}

func TestCompanyHandler_Delete_AdminOnly(t *testing.T) {
	m, handler, guard := setupCompanyTest(t)

	m.companies.On("GetByID", mock.Anything, acme.ID).Return(acme, nil)
	m.companies.On("Delete", mock.Anything, acme.ID).Return(nil)

	app := drift.New()
	app.Use(asUser(admin))
	app.Delete("/companies/:id", guard.Company(access.CompanyAdmin, handler.Delete))

	rec := doRequest(t, app, http.MethodDelete, "/companies/10", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SUC_09", testutil.SuccessCode(t, rec))
	m.assertExpectations(t)
}

func TestCompanyHandler_AddManager(t *testing.T) {
	tests := []struct {
		name   string
		body   dto.MemberRequest
		setup  func(m *handlerMocks)
		status int
		code   string
	}{
		{
			name: "by email",
			body: dto.MemberRequest{Email: " Bob@Example.com"},
			setup: func(m *handlerMocks) {
				m.users.On("GetByEmail", mock.Anything, "bob@example.com").Return(bob, nil)
				m.companies.On("AddManager", mock.Anything, acme.ID, bob.ID).Return(nil)
			},
			status: http.StatusCreated,
			code:   "SUC_10",
		},
		{
			name: "by id",
			body: dto.MemberRequest{UserID: bob.ID},
			setup: func(m *handlerMocks) {
				m.users.On("GetByID", mock.Anything, bob.ID).Return(bob, nil)
				m.companies.On("AddManager", mock.Anything, acme.ID, bob.ID).Return(nil)
			},
			status: http.StatusCreated,
			code:   "SUC_10",
		},
		{
			name: "already a manager",
			body: dto.MemberRequest{UserID: bob.ID},
			setup: func(m *handlerMocks) {
				m.users.On("GetByID", mock.Anything, bob.ID).Return(bob, nil)
				m.companies.On("AddManager", mock.Anything, acme.ID, bob.ID).Return(services.ErrDuplicate)
			},
			status: http.StatusConflict,
			code:   "ERR_21",
		},
		{
			name: "unknown user",
			body: dto.MemberRequest{Email: "ghost@example.com"},
			setup: func(m *handlerMocks) {
				m.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, services.ErrNotFound)
			},
			status: http.StatusNotFound,
			code:   "ERR_19",
		},
		{
			name:   "neither id nor email",
			body:   dto.MemberRequest{},
			setup:  func(m *handlerMocks) {},
			status: http.StatusBadRequest,
			code:   "ERR_01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, handler, guard := setupCompanyTest(t)
			m.companies.On("IsManager", mock.Anything, acme.ID, alice.ID).Return(true, nil)
			m.companies.On("GetByID", mock.Anything, acme.ID).Return(acme, nil)
			tt.setup(m)

			app := drift.New()
			app.Use(driftmw.BodyParser())
			app.Use(asUser(alice))
			app.Post("/companies/:id/managers", guard.Company(access.CompanyManagerOrAdmin, handler.AddManager))

			rec := doRequest(t, app, http.MethodPost, "/companies/10/managers", tt.body)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status < 400 {
				assert.Equal(t, tt.code, testutil.SuccessCode(t, rec))
			} else {
				assert.Equal(t, []string{tt.code}, testutil.ErrorCodes(t, rec))
			}
			m.assertExpectations(t)
		})
	}
}

func TestCompanyHandler_RemoveManager(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		m, handler, guard := setupCompanyTest(t)
		m.companies.On("GetByID", mock.Anything, acme.ID).Return(acme, nil)
		m.companies.On("RemoveManager", mock.Anything, acme.ID, bob.ID).Return(nil)

		app := drift.New()
		app.Use(asUser(admin))
		app.Delete("/companies/:id/managers/:userId", guard.Company(access.CompanyManagerOrAdmin, handler.RemoveManager))

		rec := doRequest(t, app, http.MethodDelete, "/companies/10/managers/2", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "SUC_11", testutil.SuccessCode(t, rec))
	})

	t.Run("not a manager", func(t *testing.T) {
		m, handler, guard := setupCompanyTest(t)
		m.companies.On("GetByID", mock.Anything, acme.ID).Return(acme, nil)
		m.companies.On("RemoveManager", mock.Anything, acme.ID, bob.ID).Return(services.ErrNotFound)

		app := drift.New()
		app.Use(asUser(admin))
		app.Delete("/companies/:id/managers/:userId", guard.Company(access.CompanyManagerOrAdmin, handler.RemoveManager))

		rec := doRequest(t, app, http.MethodDelete, "/companies/10/managers/2", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad user id", func(t *testing.T) {
		m, handler, guard := setupCompanyTest(t)
		m.companies.On("GetByID", mock.Anything, acme.ID).Return(acme, nil)

		app := drift.New()
		app.Use(asUser(admin))
		app.Delete("/companies/:id/managers/:userId", guard.Company(access.CompanyManagerOrAdmin, handler.RemoveManager))

		rec := doRequest(t, app, http.MethodDelete, "/companies/10/managers/abc", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{"ERR_20"}, testutil.ErrorCodes(t, rec))
	})
}

func TestCompanyHandler_Managers(t *testing.T) {
	m, handler, guard := setupCompanyTest(t)

	m.companies.On("GetByID", mock.Anything, acme.ID).Return(acme, nil)
	m.companies.On("GetManagers", mock.Anything, acme.ID).Return([]models.CompanyManager{
		{CompanyID: acme.ID, UserID: alice.ID, User: alice},
	}, nil)

	app := drift.New()
	app.Use(asUser(admin))
	app.Get("/companies/:id/managers", guard.Company(access.CompanyManagerOrAdmin, handler.Managers))

	rec := doRequest(t, app, http.MethodGet, "/companies/10/managers", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var managers []dto.ManagerResponse
	testutil.ParseJSON(t, rec, &managers)
	require.Len(t, managers, 1)
	assert.Equal(t, alice.Email, managers[0].User.Email)
}

func TestCompanyHandler_CreateTeam(t *testing.T) {
	m, handler, guard := setupCompanyTest(t)

	m.companies.On("IsManager", mock.Anything, acme.ID, alice.ID).Return(true, nil)
	m.companies.On("GetByID", mock.Anything, acme.ID).Return(acme, nil)
	m.teams.On("Create", mock.Anything, acme.ID, "Core", "Core team").Return(&models.Team{
		ID: 20, Name: "Core", Description: "Core team", OwnerCompany: acme.ID, ListID: 30,
	}, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(asUser(alice))
	app.Post("/companies/:id/teams", guard.Company(access.CompanyManagerOrAdmin, handler.CreateTeam))

	rec := doRequest(t, app, http.MethodPost, "/companies/10/teams", dto.TeamRequest{Name: " Core ", Description: "Core team"})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "SUC_12", testutil.SuccessCode(t, rec))

	var team dto.TeamResponse
	decodeData(t, rec, &team)
	assert.Equal(t, int64(30), team.ListID)
	m.assertExpectations(t)
}

func TestCompanyHandler_Teams(t *testing.T) {
	m, handler, guard := setupCompanyTest(t)

	m.companies.On("GetByID", mock.Anything, acme.ID).Return(acme, nil)
	m.teams.On("ListByCompany", mock.Anything, acme.ID).Return([]models.Team{{ID: 20, Name: "Core"}, {ID: 21, Name: "Ops"}}, nil)

	app := drift.New()
	app.Use(asUser(admin))
	app.Get("/companies/:id/teams", guard.Company(access.CompanyManagerOrAdmin, handler.Teams))

	rec := doRequest(t, app, http.MethodGet, "/companies/10/teams", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var teams []dto.TeamResponse
	testutil.ParseJSON(t, rec, &teams)
	assert.Len(t, teams, 2)
}
