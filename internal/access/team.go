package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/services"
)

type TeamLevel int

const (
	// TeamRead: participant, manager of the owning company, or admin.
	TeamRead TeamLevel = iota
	// TeamManage: team manager, manager of the owning company, or admin.
	TeamManage
	// TeamAdminister: manager of the owning company, or admin.
	TeamAdminister
	// TeamTasks: team manager only.
	TeamTasks
)

// Team is the resolved team together with the caller's standing in it.
type Team struct {
	Team           *models.Team
	Participant    *models.TeamParticipant
	IsManager      bool
	CompanyManager bool
}

func (t *Team) IsParticipant() bool {
	return t.Participant != nil
}

func (a *Authorizer) Team(ctx context.Context, p models.Principal, id int64, level TeamLevel) (*Team, error) {
	res := &Team{}

	participant, err := a.teams.GetParticipant(ctx, id, p.UserID)
	switch {
	case err == nil:
		res.Participant = participant
		res.IsManager = participant.IsManager
	case !errors.Is(err, services.ErrNotFound):
		return nil, apperr.Internal(fmt.Errorf("failed to load participant: %w", err))
	}

	// Task mutations depend on the membership row alone.
	if level == TeamTasks && !res.IsManager {
		return nil, denied()
	}

	team, err := a.teams.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "team")
	}
	res.Team = team

	var needCompany bool
	switch level {
	case TeamRead:
		needCompany = !res.IsParticipant()
	case TeamManage:
		needCompany = !res.IsManager
	case TeamAdminister:
		needCompany = true
	}
	if needCompany && !p.IsAdmin {
		res.CompanyManager, err = a.companies.IsManager(ctx, team.OwnerCompany, p.UserID)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("failed to check company manager: %w", err))
		}
	}

	var allowed bool
	switch level {
	case TeamRead:
		allowed = res.IsParticipant() || res.CompanyManager || p.IsAdmin
	case TeamManage:
		allowed = res.IsManager || res.CompanyManager || p.IsAdmin
	case TeamAdminister:
		allowed = res.CompanyManager || p.IsAdmin
	case TeamTasks:
		allowed = res.IsManager
	}
	if !allowed {
		return nil, denied()
	}

	if level == TeamTasks && team.ListID == 0 {
		return nil, errNotFound.Wrap(fmt.Errorf("team %d has no task list", id))
	}
	return res, nil
}
