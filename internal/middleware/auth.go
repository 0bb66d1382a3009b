package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	PrincipalKey = "principal"
	UserKey      = "user"
)

type TokenValidator interface {
	ValidateAccessToken(token string) (*services.Claims, error)
}

type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Auth accepts a Bearer token or the jwt cookie. The user is reloaded on
// every request; a blocked user is rejected even with a valid token.
func Auth(jwtService TokenValidator, users UserLoader, r *respond.Renderer) drift.HandlerFunc {
	return func(c *drift.Context) {
		token, ok := bearerToken(c)
		if !ok {
			r.Error(c, apperr.Unauthenticated(i18n.ErrNotAuthenticated))
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			r.Error(c, apperr.Unauthenticated(i18n.ErrNotAuthenticated).Wrap(err))
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				r.Error(c, apperr.Unauthenticated(i18n.ErrNotAuthenticated))
				return
			}
			r.Error(c, err)
			return
		}

		if user.IsBlocked {
			r.Error(c, apperr.Forbidden(i18n.ErrBlocked))
			return
		}

		c.Set(PrincipalKey, user.Principal())
		c.Set(UserKey, user)

		c.Next()
	}
}

func bearerToken(c *drift.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if token := ReadCookie(c, AuthCookie); token != "" {
		return token, true
	}
	return "", false
}

func GetPrincipal(c *drift.Context) (models.Principal, bool) {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(models.Principal); ok {
			return p, true
		}
	}
	return models.Principal{}, false
}

func GetUser(c *drift.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
