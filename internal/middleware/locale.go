package middleware

import (
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/m1z23r/drift/pkg/drift"
)

// Locale negotiates the response language from ?locale=, the locale cookie
// and Accept-Language, in that order.
func Locale(catalog *i18n.Catalog) drift.HandlerFunc {
	return func(c *drift.Context) {
		locale := catalog.Negotiate(
			[]string{c.QueryParam("locale"), ReadCookie(c, LocaleCookie)},
			c.GetHeader("Accept-Language"),
		)
		c.Set(respond.LocaleKey, locale)
		c.Next()
	}
}
