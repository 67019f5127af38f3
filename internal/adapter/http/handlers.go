package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing store answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct{ db Pinger }

// NewHandler takes an optional store to probe; nil skips the check.
func NewHandler(db Pinger) *Handler { return &Handler{db: db} }

func (h *Handler) Health(c echo.Context) error {
	body := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			body["status"] = "degraded"
			body["database"] = "unreachable"
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		body["database"] = "ok"
	}
	return c.JSON(http.StatusOK, body)
}
