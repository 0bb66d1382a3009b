package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
)

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports 503 when the database does not answer within two seconds.
func (h *HealthHandler) Check(c *drift.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		_ = c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
		return
	}

	_ = c.JSON(http.StatusOK, map[string]string{"status": "ok", "database": "up"})
}
