package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/dimitrije/taskapp-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)
}

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, userID int64, email string) string {
	t.Helper()
	pair, err := jwtSvc.GenerateTokenPair(userID, email, false)
	require.NoError(t, err)
	return pair.AccessToken
}

func setupAuthApp(t *testing.T, jwtSvc *services.JWTService, users *testutil.MockUserService, captured *models.Principal) http.Handler {
	t.Helper()
	app := drift.New()
	app.Use(Auth(jwtSvc, users, testutil.TestRenderer(t)))
	app.Get("/protected", func(c *drift.Context) {
		if captured != nil {
			*captured, _ = GetPrincipal(c)
		}
		_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return app
}

func TestAuth_MissingCredentials(t *testing.T) {
	app := setupAuthApp(t, newTestJWTService(), new(testutil.MockUserService), nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{"ERR_15"}, testutil.ErrorCodes(t, rec))
}

func TestAuth_InvalidAuthorizationFormat(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", "Token some-token"},
		{"only bearer", "Bearer"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupAuthApp(t, newTestJWTService(), new(testutil.MockUserService), nil)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_ValidBearerToken(t *testing.T) {
	jwtSvc := newTestJWTService()
	users := new(testutil.MockUserService)
	users.On("GetByID", mock.Anything, int64(7)).Return(&models.User{ID: 7, Email: "a@x.com", IsAdmin: true}, nil)

	var captured models.Principal
	app := setupAuthApp(t, jwtSvc, users, &captured)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, jwtSvc, 7, "a@x.com"))
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), captured.UserID)
	assert.True(t, captured.IsAdmin)
	users.AssertExpectations(t)
}

func TestAuth_CookieToken(t *testing.T) {
	jwtSvc := newTestJWTService()
	users := new(testutil.MockUserService)
	users.On("GetByID", mock.Anything, int64(7)).Return(&models.User{ID: 7}, nil)

	app := setupAuthApp(t, jwtSvc, users, nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookie, Value: generateTestToken(t, jwtSvc, 7, "a@x.com")})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_BlockedUser(t *testing.T) {
	jwtSvc := newTestJWTService()
	users := new(testutil.MockUserService)
	users.On("GetByID", mock.Anything, int64(7)).Return(&models.User{ID: 7, IsBlocked: true}, nil)

	app := setupAuthApp(t, jwtSvc, users, nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, jwtSvc, 7, "a@x.com"))
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, []string{"ERR_13"}, testutil.ErrorCodes(t, rec))
}

func TestAuth_DeletedUser(t *testing.T) {
	jwtSvc := newTestJWTService()
	users := new(testutil.MockUserService)
	users.On("GetByID", mock.Anything, int64(7)).Return(nil, services.ErrNotFound)

	app := setupAuthApp(t, jwtSvc, users, nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, jwtSvc, 7, "a@x.com"))
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_UserLookupFailure(t *testing.T) {
	jwtSvc := newTestJWTService()
	users := new(testutil.MockUserService)
	users.On("GetByID", mock.Anything, int64(7)).Return(nil, errors.New("db down"))

	app := setupAuthApp(t, jwtSvc, users, nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, jwtSvc, 7, "a@x.com"))
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, []string{"ERR_18"}, testutil.ErrorCodes(t, rec))
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := services.NewJWTService("test-secret-key", -time.Minute, time.Hour)
	token := generateTestToken(t, expired, 7, "a@x.com")

	app := setupAuthApp(t, newTestJWTService(), new(testutil.MockUserService), nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	jwtSvc := newTestJWTService()
	pair, err := jwtSvc.GenerateTokenPair(7, "a@x.com", false)
	require.NoError(t, err)

	app := setupAuthApp(t, jwtSvc, new(testutil.MockUserService), nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
