package integration

import (
	"context"
	"testing"

	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/dimitrije/taskapp-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Integration_RegisterCreatesPersonalList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	_, fx := setupTest(t)

	user := fx.CreateUser(t, testutil.WithEmail("anna@example.com"), testutil.WithName("Anna"))

	assert.Equal(t, "anna@example.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.False(t, user.IsBlocked)

	list := fx.PersonalList(t, user)
	assert.False(t, list.IsTeamList)
	require.NotNil(t, list.OwnerUser)
	assert.Equal(t, user.ID, *list.OwnerUser)
	assert.Nil(t, list.OwnerTeam)
}

func TestUserService_Integration_RegisterDuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	_, fx := setupTest(t)
	fx.CreateUser(t, testutil.WithEmail("taken@example.com"))

	_, err := fx.Users.Register(context.Background(), services.RegisterParams{
		Name:     "Other",
		Email:    "taken@example.com",
		Phone:    "+37120000000",
		Password: "password123",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestUserService_Integration_Authenticate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	_, fx := setupTest(t)
	ctx := context.Background()
	user := fx.CreateUser(t, testutil.WithEmail("login@example.com"))

	got, err := fx.Users.Authenticate(ctx, "login@example.com", testutil.FixturePassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = fx.Users.Authenticate(ctx, "login@example.com", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = fx.Users.Authenticate(ctx, "nobody@example.com", testutil.FixturePassword)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserService_Integration_AuthenticateBlocked(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	_, fx := setupTest(t)
	fx.CreateUser(t, testutil.WithEmail("blocked@example.com"), testutil.Blocked())

	_, err := fx.Users.Authenticate(context.Background(), "blocked@example.com", testutil.FixturePassword)
	assert.ErrorIs(t, err, services.ErrUserBlocked)
}

func TestUserService_Integration_UpdateProfileRequiresCurrentPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	_, fx := setupTest(t)
	ctx := context.Background()
	user := fx.CreateUser(t)

	_, err := fx.Users.UpdateProfile(ctx, user.ID, services.ProfileParams{
		Name:            "Renamed",
		Phone:           user.Phone,
		CurrentPassword: "wrong-password",
		NewPassword:     "new-password-1",
		RequireCurrent:  true,
	})
	assert.ErrorIs(t, err, services.ErrWrongPassword)

	updated, err := fx.Users.UpdateProfile(ctx, user.ID, services.ProfileParams{
		Name:            "Renamed",
		Phone:           user.Phone,
		CurrentPassword: testutil.FixturePassword,
		NewPassword:     "new-password-1",
		RequireCurrent:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = fx.Users.Authenticate(ctx, user.Email, "new-password-1")
	assert.NoError(t, err)
}

func TestUserService_Integration_PromoteAdmin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	_, fx := setupTest(t)
	user := fx.CreateUser(t, testutil.AsAdmin())
	assert.True(t, user.IsAdmin)

	_, err := fx.Users.PromoteAdmin(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUserService_Integration_DeleteCascades(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb, fx := setupTest(t)
	ctx := context.Background()

	manager := fx.CreateUser(t)
	user := fx.CreateUser(t)
	company := fx.CreateCompany(t, user)
	team := fx.CreateTeam(t, company, manager, user)

	personal := fx.PersonalList(t, user)
	ownTask := fx.CreateTask(t, personal.ID, "Personal")
	teamTask := fx.CreateTask(t, team.ListID, "Shared")
	require.NoError(t, fx.Tasks.AssignPerson(ctx, teamTask.ID, user.ID))

	require.NoError(t, fx.Users.Delete(ctx, user.ID))

	_, err := fx.Users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = fx.Lists.GetByID(ctx, personal.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = fx.Tasks.GetByID(ctx, ownTask.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Team data survives, only the membership and assignment go.
	_, err = fx.Tasks.GetByID(ctx, teamTask.ID)
	assert.NoError(t, err)
	persons, err := fx.Tasks.GetPersons(ctx, teamTask.ID)
	require.NoError(t, err)
	assert.Empty(t, persons)

	isManager, err := fx.Companies.IsManager(ctx, company.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, isManager)

	var participants int
	err = tdb.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM team_participants WHERE team_id = $1`, team.ID).Scan(&participants)
	require.NoError(t, err)
	assert.Equal(t, 1, participants)
}

func TestUserService_Integration_SetBlocked(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	_, fx := setupTest(t)
	ctx := context.Background()
	user := fx.CreateUser(t)

	blocked, err := fx.Users.SetBlocked(ctx, user.ID, true)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)

	unblocked, err := fx.Users.SetBlocked(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, unblocked.IsBlocked)

	_, err = fx.Users.SetBlocked(ctx, 999999, true)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
