package middleware

import (
	"math"
	"net"
	"strconv"
	"time"

	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/ratelimit"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/m1z23r/drift/pkg/drift"
)

// RateLimit wraps next with a per-client-IP limit under the given bucket name.
func RateLimit(limiter ratelimit.Limiter, bucket string, limit int, window time.Duration, r *respond.Renderer, next drift.HandlerFunc) drift.HandlerFunc {
	return func(c *drift.Context) {
		if limiter == nil || limit <= 0 {
			next(c)
			return
		}

		key := bucket + ":" + clientIP(c)
		decision := limiter.Allow(c.Request.Context(), key, limit, window)

		header := c.Response.Header()
		header.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		header.Set("X-RateLimit-Remaining", strconv.Itoa(max(limit-decision.Count, 0)))

		if !decision.Allowed {
			retry := decision.RetryAfter(time.Now())
			header.Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			r.Error(c, apperr.TooManyRequests())
			return
		}

		next(c)
	}
}

// clientIP is the connection address. Forwarding headers are not trusted.
func clientIP(c *drift.Context) string {
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
