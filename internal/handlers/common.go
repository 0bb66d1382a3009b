package handlers

import (
	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/middleware"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/dimitrije/taskapp-api/internal/validation"
	"github.com/m1z23r/drift/pkg/drift"
)

// bind decodes and validates the JSON body. On failure the error response
// has already been written.
func bind(c *drift.Context, r *respond.Renderer, req any) bool {
	if err := c.BindJSON(req); err != nil {
		r.Error(c, apperr.Validation(i18n.ErrMissingField).Wrap(err))
		return false
	}
	if err := validation.Struct(req); err != nil {
		r.Error(c, err)
		return false
	}
	return true
}

func principal(c *drift.Context, r *respond.Renderer) (models.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		r.Error(c, apperr.Unauthenticated(i18n.ErrNotAuthenticated))
	}
	return p, ok
}

// paramID parses a numeric route param other than :id.
func paramID(c *drift.Context, r *respond.Renderer, name string) (int64, bool) {
	id, err := middleware.ParseID(c, name)
	if err != nil {
		r.Error(c, err)
		return 0, false
	}
	return id, true
}
