package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/taskapp-api/internal/access"
	"github.com/dimitrije/taskapp-api/internal/middleware"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/require"
)

type handlerMocks struct {
	users     *testutil.MockUserService
	companies *testutil.MockCompanyService
	teams     *testutil.MockTeamService
	lists     *testutil.MockTaskListService
	tasks     *testutil.MockTaskService
	tokens    *testutil.MockTokenService
	jwt       *testutil.MockJWTService
}

func newHandlerMocks() *handlerMocks {
	return &handlerMocks{
		users:     new(testutil.MockUserService),
		companies: new(testutil.MockCompanyService),
		teams:     new(testutil.MockTeamService),
		lists:     new(testutil.MockTaskListService),
		tasks:     new(testutil.MockTaskService),
		tokens:    new(testutil.MockTokenService),
		jwt:       new(testutil.MockJWTService),
	}
}

func (m *handlerMocks) authorizer() *access.Authorizer {
	return access.New(m.users, m.companies, m.teams, m.lists, m.tasks)
}

func (m *handlerMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.users.AssertExpectations(t)
	m.companies.AssertExpectations(t)
	m.teams.AssertExpectations(t)
	m.lists.AssertExpectations(t)
	m.tasks.AssertExpectations(t)
	m.tokens.AssertExpectations(t)
	m.jwt.AssertExpectations(t)
}

// asUser stands in for the Auth middleware.
func asUser(user *models.User) drift.HandlerFunc {
	return func(c *drift.Context) {
		c.Set(middleware.PrincipalKey, user.Principal())
		c.Set(middleware.UserKey, user)
		c.Next()
	}
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the data field of a success envelope.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	envelope := struct {
		Data any `json:"data"`
	}{Data: v}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
}

var (
	alice = &models.User{ID: 1, Name: "Alice", Email: "alice@example.com", Phone: "+37120000001"}
	bob   = &models.User{ID: 2, Name: "Bob", Email: "bob@example.com", Phone: "+37120000002"}
	admin = &models.User{ID: 9, Name: "Admin", Email: "admin@example.com", Phone: "+37120000009", IsAdmin: true}
)
