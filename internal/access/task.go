package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/services"
)

type TaskAction int

const (
	TaskView TaskAction = iota
	TaskEdit
	TaskAdvance
	TaskDelete
	TaskAssign
)

type Permissions struct {
	Edit    bool
	Advance bool
	Delete  bool
	Assign  bool
}

type Task struct {
	Task        *models.Task
	List        *models.TaskList
	Responsible bool
	IsManager   bool
	// Rights ignore the task status; AllowedTo masks edit and advance once
	// the task is completed.
	Rights    Permissions
	AllowedTo Permissions
}

func (a *Authorizer) Task(ctx context.Context, p models.Principal, id int64, action TaskAction) (*Task, error) {
	task, err := a.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "task")
	}
	list, err := a.lists.GetByID(ctx, task.ListID)
	if err != nil {
		return nil, lookupErr(err, "list")
	}

	res := &Task{Task: task, List: list}
	var canView bool

	if list.OwnerTeam == nil {
		owner := list.OwnerUser != nil && *list.OwnerUser == p.UserID
		canView = owner || p.IsAdmin
		res.Responsible = owner
		res.Rights = Permissions{Edit: owner, Advance: owner, Delete: owner, Assign: owner}
	} else {
		participant, err := a.teams.GetParticipant(ctx, *list.OwnerTeam, p.UserID)
		switch {
		case err == nil:
			res.IsManager = participant.IsManager
			canView = true
		case !errors.Is(err, services.ErrNotFound):
			return nil, apperr.Internal(fmt.Errorf("failed to load participant: %w", err))
		}
		canView = canView || p.IsAdmin

		if canView {
			res.Responsible, err = a.tasks.IsResponsible(ctx, id, p.UserID)
			if err != nil {
				return nil, apperr.Internal(fmt.Errorf("failed to check responsibility: %w", err))
			}
		}
		res.Rights = Permissions{
			Edit:    res.IsManager,
			Advance: res.IsManager || res.Responsible,
			Delete:  res.IsManager,
			Assign:  res.IsManager,
		}
	}

	res.AllowedTo = res.Rights
	if list.OwnerTeam == nil {
		// The service rejects assignment on personal tasks.
		res.AllowedTo.Assign = false
	}
	if task.Status.IsCompleted() {
		res.AllowedTo.Edit = false
		res.AllowedTo.Advance = false
	}

	var allowed bool
	switch action {
	case TaskView:
		allowed = canView
	case TaskEdit:
		allowed = res.Rights.Edit
	case TaskAdvance:
		allowed = res.Rights.Advance
	case TaskDelete:
		allowed = res.Rights.Delete
	case TaskAssign:
		allowed = res.Rights.Assign
	}
	if !allowed {
		return nil, denied()
	}
	return res, nil
}

// AllowedFor computes AllowedTo for a task already known to sit in a list the
// caller can read. Used when rendering whole lists.
func AllowedFor(task *models.Task, list *List, p models.Principal) Permissions {
	var perms Permissions
	if list.Team == nil {
		owner := list.List.OwnerUser != nil && *list.List.OwnerUser == p.UserID
		perms = Permissions{Edit: owner, Advance: owner, Delete: owner}
	} else {
		manager := list.Team.IsManager
		responsible := false
		for _, person := range task.Persons {
			if person.ID == p.UserID {
				responsible = true
				break
			}
		}
		perms = Permissions{Edit: manager, Advance: manager || responsible, Delete: manager, Assign: manager}
	}
	if task.Status.IsCompleted() {
		perms.Edit = false
		perms.Advance = false
	}
	return perms
}
