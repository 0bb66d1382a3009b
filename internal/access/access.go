// Package access resolves whether a principal may operate on a resource by
// walking membership and list ownership. Every check returns the resolved
// resource.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/services"
)

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type CompanyStore interface {
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	IsManager(ctx context.Context, companyID, userID int64) (bool, error)
}

type TeamStore interface {
	GetByID(ctx context.Context, teamID int64) (*models.Team, error)
	GetParticipant(ctx context.Context, teamID, userID int64) (*models.TeamParticipant, error)
}

type ListStore interface {
	GetByID(ctx context.Context, id int64) (*models.TaskList, error)
}

type TaskStore interface {
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	IsResponsible(ctx context.Context, taskID, userID int64) (bool, error)
}

type Authorizer struct {
	users     UserStore
	companies CompanyStore
	teams     TeamStore
	lists     ListStore
	tasks     TaskStore
}

func New(users UserStore, companies CompanyStore, teams TeamStore, lists ListStore, tasks TaskStore) *Authorizer {
	return &Authorizer{
		users:     users,
		companies: companies,
		teams:     teams,
		lists:     lists,
		tasks:     tasks,
	}
}

var (
	errDenied   = apperr.Forbidden(i18n.ErrAccessDenied)
	errNotFound = apperr.NotFound(i18n.ErrNotFound)
)

func denied() error {
	return errDenied.Wrap(nil)
}

// lookupErr turns a store error into NotFound or Internal.
func lookupErr(err error, what string) error {
	if errors.Is(err, services.ErrNotFound) {
		return errNotFound.Wrap(fmt.Errorf("%s not found", what))
	}
	return apperr.Internal(fmt.Errorf("failed to load %s: %w", what, err))
}

// Admin requires the global admin flag.
func (a *Authorizer) Admin(p models.Principal) error {
	if !p.IsAdmin {
		return denied()
	}
	return nil
}

// User allows the user themselves or an admin.
func (a *Authorizer) User(ctx context.Context, p models.Principal, id int64) (*models.User, error) {
	if p.UserID != id && !p.IsAdmin {
		return nil, denied()
	}
	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	return user, nil
}
