package middleware

import (
	"net/http"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
)

const (
	AuthCookie   = "jwt"
	LocaleCookie = "locale"
)

func ReadCookie(c *drift.Context, name string) string {
	cookie, err := c.Request.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// WriteCookie sets an HttpOnly, SameSite=Lax cookie on the root path. A
// negative maxAge deletes it.
func WriteCookie(c *drift.Context, name, value string, maxAge time.Duration, secure bool) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.MaxAge = int(maxAge.Seconds())
	}
	c.Response.Header().Add("Set-Cookie", cookie.String())
}
