package access

import (
	"context"

	"github.com/dimitrije/taskapp-api/internal/models"
)

type List struct {
	List *models.TaskList
	// Team is set for team lists.
	Team *Team
}

// List resolves a task list. Personal lists belong to their owner (admins may
// read them); team lists defer to the team: any reader for reads, a team
// manager for writes.
func (a *Authorizer) List(ctx context.Context, p models.Principal, id int64, write bool) (*List, error) {
	list, err := a.lists.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "list")
	}

	if list.OwnerTeam == nil {
		owner := list.OwnerUser != nil && *list.OwnerUser == p.UserID
		if !owner && (write || !p.IsAdmin) {
			return nil, denied()
		}
		return &List{List: list}, nil
	}

	level := TeamRead
	if write {
		level = TeamTasks
	}
	team, err := a.Team(ctx, p, *list.OwnerTeam, level)
	if err != nil {
		return nil, err
	}
	return &List{List: list, Team: team}, nil
}
