package handlers

import (
	"context"
	"time"

	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, params services.RegisterParams) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id int64, params services.ProfileParams) (*models.User, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// CompanyServiceInterface defines the methods used by handlers from CompanyService
type CompanyServiceInterface interface {
	Create(ctx context.Context, params services.CompanyParams) (*models.Company, error)
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Company, error)
	Update(ctx context.Context, id int64, params services.CompanyParams) (*models.Company, error)
	Delete(ctx context.Context, id int64) error
	IsManager(ctx context.Context, companyID, userID int64) (bool, error)
	AddManager(ctx context.Context, companyID, userID int64) error
	RemoveManager(ctx context.Context, companyID, userID int64) error
	GetManagers(ctx context.Context, companyID int64) ([]models.CompanyManager, error)
}

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Create(ctx context.Context, companyID int64, name, description string) (*models.Team, error)
	GetByID(ctx context.Context, teamID int64) (*models.Team, error)
	ListByCompany(ctx context.Context, companyID int64) ([]models.Team, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Team, error)
	Update(ctx context.Context, teamID int64, name, description string) (*models.Team, error)
	Delete(ctx context.Context, teamID int64) error
	GetParticipant(ctx context.Context, teamID, userID int64) (*models.TeamParticipant, error)
	GetParticipants(ctx context.Context, teamID int64) ([]models.TeamParticipant, error)
	AddParticipant(ctx context.Context, teamID, userID int64) (*models.TeamParticipant, error)
	RemoveParticipant(ctx context.Context, teamID, userID int64) error
	ToggleRole(ctx context.Context, teamID, userID int64) (*models.TeamParticipant, error)
}

// TaskListServiceInterface defines the methods used by handlers from TaskListService
type TaskListServiceInterface interface {
	Create(ctx context.Context, owner models.ListOwner) (*models.TaskList, error)
	GetByID(ctx context.Context, id int64) (*models.TaskList, error)
	GetByUser(ctx context.Context, userID int64) (*models.TaskList, error)
}

// TaskServiceInterface defines the methods used by handlers from TaskService
type TaskServiceInterface interface {
	Create(ctx context.Context, listID int64, params services.TaskParams) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	ListByList(ctx context.Context, listID int64) ([]models.Task, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Task, error)
	Update(ctx context.Context, id int64, params services.TaskParams) (*models.Task, error)
	Advance(ctx context.Context, id int64) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	AssignPerson(ctx context.Context, taskID, userID int64) error
	UnassignPerson(ctx context.Context, taskID, userID int64) error
	IsResponsible(ctx context.Context, taskID, userID int64) (bool, error)
	GetPersons(ctx context.Context, taskID int64) ([]models.User, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (int64, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID int64, email string, isAdmin bool) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (int64, error)
	AccessExpiry() time.Duration
	RefreshExpiry() time.Duration
}

// Pinger is satisfied by the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}
