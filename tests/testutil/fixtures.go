package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dimitrije/taskapp-api/internal/database"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/services"
)

// FixturePassword is the password of every fixture user.
const FixturePassword = "password123"

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int

	Users     *services.UserService
	Companies *services.CompanyService
	Teams     *services.TeamService
	Lists     *services.TaskListService
	Tasks     *services.TaskService
	Tokens    *services.TokenService
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{
		db:        db,
		Users:     services.NewUserService(db),
		Companies: services.NewCompanyService(db),
		Teams:     services.NewTeamService(db),
		Lists:     services.NewTaskListService(db),
		Tasks:     services.NewTaskService(db),
		Tokens:    services.NewTokenService(db),
	}
}

type userFixture struct {
	params  services.RegisterParams
	admin   bool
	blocked bool
}

// UserOption configures a test user
type UserOption func(*userFixture)

func WithEmail(email string) UserOption {
	return func(u *userFixture) { u.params.Email = email }
}

func WithName(name string) UserOption {
	return func(u *userFixture) { u.params.Name = name }
}

func AsAdmin() UserOption {
	return func(u *userFixture) { u.admin = true }
}

func Blocked() UserOption {
	return func(u *userFixture) { u.blocked = true }
}

// CreateUser registers a user, which also creates the personal list.
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	u := &userFixture{params: services.RegisterParams{
		Name:     fmt.Sprintf("Test User %d", f.counter),
		Email:    fmt.Sprintf("user%d@example.com", f.counter),
		Phone:    fmt.Sprintf("+3712%07d", f.counter),
		Password: FixturePassword,
	}}
	for _, opt := range opts {
		opt(u)
	}

	ctx := context.Background()
	user, err := f.Users.Register(ctx, u.params)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if u.admin {
		if user, err = f.Users.PromoteAdmin(ctx, user.Email); err != nil {
			t.Fatalf("failed to promote user: %v", err)
		}
	}
	if u.blocked {
		if user, err = f.Users.SetBlocked(ctx, user.ID, true); err != nil {
			t.Fatalf("failed to block user: %v", err)
		}
	}

	return user
}

// PersonalList returns the user's personal task list.
func (f *Fixtures) PersonalList(t *testing.T, user *models.User) *models.TaskList {
	t.Helper()
	list, err := f.Lists.GetByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to load personal list: %v", err)
	}
	return list
}

// CreateCompany creates a company managed by the given users.
func (f *Fixtures) CreateCompany(t *testing.T, managers ...*models.User) *models.Company {
	t.Helper()
	f.counter++
	ctx := context.Background()

	company, err := f.Companies.Create(ctx, services.CompanyParams{
		Name:        fmt.Sprintf("Company %d", f.counter),
		Description: "Test company",
		Email:       fmt.Sprintf("company%d@example.com", f.counter),
		Phone:       "+37167000000",
	})
	if err != nil {
		t.Fatalf("failed to create company: %v", err)
	}

	for _, m := range managers {
		if err := f.Companies.AddManager(ctx, company.ID, m.ID); err != nil {
			t.Fatalf("failed to add company manager: %v", err)
		}
	}

	return company
}

// CreateTeam creates a team with its list; participants are added in order,
// so the first becomes the manager.
func (f *Fixtures) CreateTeam(t *testing.T, company *models.Company, participants ...*models.User) *models.Team {
	t.Helper()
	f.counter++
	ctx := context.Background()

	team, err := f.Teams.Create(ctx, company.ID, fmt.Sprintf("Team %d", f.counter), "Test team")
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	for _, p := range participants {
		f.AddParticipant(t, team, p)
	}

	return team
}

func (f *Fixtures) AddParticipant(t *testing.T, team *models.Team, user *models.User) *models.TeamParticipant {
	t.Helper()
	p, err := f.Teams.AddParticipant(context.Background(), team.ID, user.ID)
	if err != nil {
		t.Fatalf("failed to add participant: %v", err)
	}
	return p
}

// CreateTask creates a task with default priority in the given list.
func (f *Fixtures) CreateTask(t *testing.T, listID int64, name string) *models.Task {
	t.Helper()
	task, err := f.Tasks.Create(context.Background(), listID, services.TaskParams{Name: name})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func (f *Fixtures) CreateRefreshToken(t *testing.T, userID int64, tokenHash string, expiresAt time.Time) {
	t.Helper()
	if err := f.Tokens.StoreRefreshToken(context.Background(), userID, tokenHash, expiresAt); err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}
