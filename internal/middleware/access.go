package middleware

import (
	"strconv"

	"github.com/dimitrije/taskapp-api/internal/access"
	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	TargetUserKey = "target_user"
	CompanyKey    = "company"
	TeamKey       = "team"
	ListKey       = "list"
	TaskKey       = "task"
)

// Guard wraps handlers with an authorization check on the :id route param.
// The resolved resource is stored on the context for the handler.
type Guard struct {
	az *access.Authorizer
	r  *respond.Renderer
}

func NewGuard(az *access.Authorizer, r *respond.Renderer) *Guard {
	return &Guard{az: az, r: r}
}

// ParseID reads a positive numeric route param.
func ParseID(c *drift.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation(i18n.ErrInvalidID)
	}
	return id, nil
}

func (g *Guard) principal(c *drift.Context) (models.Principal, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		g.r.Error(c, apperr.Unauthenticated(i18n.ErrNotAuthenticated))
	}
	return p, ok
}

func (g *Guard) Admin(next drift.HandlerFunc) drift.HandlerFunc {
	return func(c *drift.Context) {
		p, ok := g.principal(c)
		if !ok {
			return
		}
		if err := g.az.Admin(p); err != nil {
			g.r.Error(c, err)
			return
		}
		next(c)
	}
}

// resolve is the shared shape of the id-based guards.
func (g *Guard) resolve(key string, next drift.HandlerFunc, check func(c *drift.Context, p models.Principal, id int64) (any, error)) drift.HandlerFunc {
	return func(c *drift.Context) {
		p, ok := g.principal(c)
		if !ok {
			return
		}
		id, err := ParseID(c, "id")
		if err != nil {
			g.r.Error(c, err)
			return
		}
		res, err := check(c, p, id)
		if err != nil {
			g.r.Error(c, err)
			return
		}
		c.Set(key, res)
		next(c)
	}
}

// User admits the user named by :id or an admin.
func (g *Guard) User(next drift.HandlerFunc) drift.HandlerFunc {
	return g.resolve(TargetUserKey, next, func(c *drift.Context, p models.Principal, id int64) (any, error) {
		return g.az.User(c.Request.Context(), p, id)
	})
}

func (g *Guard) Company(policy access.CompanyPolicy, next drift.HandlerFunc) drift.HandlerFunc {
	return g.resolve(CompanyKey, next, func(c *drift.Context, p models.Principal, id int64) (any, error) {
		return g.az.Company(c.Request.Context(), p, id, policy)
	})
}

func (g *Guard) Team(level access.TeamLevel, next drift.HandlerFunc) drift.HandlerFunc {
	return g.resolve(TeamKey, next, func(c *drift.Context, p models.Principal, id int64) (any, error) {
		return g.az.Team(c.Request.Context(), p, id, level)
	})
}

func (g *Guard) List(write bool, next drift.HandlerFunc) drift.HandlerFunc {
	return g.resolve(ListKey, next, func(c *drift.Context, p models.Principal, id int64) (any, error) {
		return g.az.List(c.Request.Context(), p, id, write)
	})
}

func (g *Guard) Task(action access.TaskAction, next drift.HandlerFunc) drift.HandlerFunc {
	return g.resolve(TaskKey, next, func(c *drift.Context, p models.Principal, id int64) (any, error) {
		return g.az.Task(c.Request.Context(), p, id, action)
	})
}

func GetTargetUser(c *drift.Context) *models.User {
	v, _ := c.Get(TargetUserKey)
	u, _ := v.(*models.User)
	return u
}

func GetCompany(c *drift.Context) *models.Company {
	v, _ := c.Get(CompanyKey)
	company, _ := v.(*models.Company)
	return company
}

func GetTeam(c *drift.Context) *access.Team {
	v, _ := c.Get(TeamKey)
	team, _ := v.(*access.Team)
	return team
}

func GetList(c *drift.Context) *access.List {
	v, _ := c.Get(ListKey)
	list, _ := v.(*access.List)
	return list
}

func GetTask(c *drift.Context) *access.Task {
	v, _ := c.Get(TaskKey)
	task, _ := v.(*access.Task)
	return task
}
