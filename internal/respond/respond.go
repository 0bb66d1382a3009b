package respond

import (
	"errors"
	"net/http"

	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/logging"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/dimitrije/taskapp-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const LocaleKey = "locale"

// Renderer writes the JSON envelopes with messages in the request locale.
type Renderer struct {
	catalog *i18n.Catalog
}

func New(catalog *i18n.Catalog) *Renderer {
	return &Renderer{catalog: catalog}
}

func (r *Renderer) Catalog() *i18n.Catalog {
	return r.catalog
}

// Locale returns the locale chosen by the locale middleware, or the default.
func (r *Renderer) Locale(c *drift.Context) string {
	if v, ok := c.Get(LocaleKey); ok {
		if locale, ok := v.(string); ok && r.catalog.Supports(locale) {
			return locale
		}
	}
	return r.catalog.DefaultLocale()
}

// Error renders err and aborts the chain. Internal errors are logged with
// their cause and shown only as ERR_18.
func (r *Renderer) Error(c *drift.Context, err error) {
	appErr := FromService(err)

	if appErr.Kind == apperr.KindInternal {
		logging.FromContext(c).WithError(appErr.Cause).Error("request failed")
	}

	codes := make([]string, len(appErr.Codes))
	for i, code := range appErr.Codes {
		codes[i] = string(code)
	}

	_ = c.JSON(appErr.Status(), dto.ErrorResponse{
		Errors: r.catalog.Messages(r.Locale(c), appErr.Codes),
		Codes:  codes,
	})
	c.Abort()
}

func (r *Renderer) Success(c *drift.Context, status int, code i18n.Code, data any) {
	_ = c.JSON(status, dto.SuccessResponse{
		Success: true,
		Message: r.catalog.Message(r.Locale(c), code),
		Code:    string(code),
		Data:    data,
	})
}

func (r *Renderer) OK(c *drift.Context, code i18n.Code, data any) {
	r.Success(c, http.StatusOK, code, data)
}

func (r *Renderer) Created(c *drift.Context, code i18n.Code, data any) {
	r.Success(c, http.StatusCreated, code, data)
}

var sentinels = []struct {
	err    error
	appErr *apperr.Error
}{
	{services.ErrNotFound, apperr.NotFound(i18n.ErrNotFound)},
	{services.ErrDuplicate, apperr.Conflict(i18n.ErrAlreadyExists)},
	{services.ErrEmailTaken, apperr.Conflict(i18n.ErrEmailTaken)},
	{services.ErrInvalidCredentials, apperr.Unauthenticated(i18n.ErrInvalidCredentials)},
	{services.ErrUserBlocked, apperr.Forbidden(i18n.ErrBlocked)},
	{services.ErrWrongPassword, apperr.Validation(i18n.ErrWrongPassword)},
	{services.ErrLastManager, apperr.Conflict(i18n.ErrLastManager)},
	{services.ErrNotParticipant, apperr.Validation(i18n.ErrNotParticipant)},
	{services.ErrNotTeamTask, apperr.Validation(i18n.ErrNotTeamTask)},
	{services.ErrTaskCompleted, apperr.Conflict(i18n.ErrTaskCompleted)},
	{models.ErrListOwner, apperr.Validation(i18n.ErrListOwner)},
}

// FromService maps service sentinel errors to their HTTP-facing form. Anything
// unrecognized becomes Internal.
func FromService(err error) *apperr.Error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.appErr.Wrap(err)
		}
	}
	return apperr.Internal(err)
}
