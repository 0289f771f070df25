package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobs-proxy-go/internal/config"
)

// Version is a string type for dependency injection of the build version.
type Version string

// HealthHandler serves the root acknowledgement and status endpoints.
type HealthHandler struct {
	cfg     *config.Config
	version Version
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(cfg *config.Config, v Version) *HealthHandler {
	return &HealthHandler{cfg: cfg, version: v}
}

// Root returns a fixed acknowledgement. It accepts any query parameters and
// performs no outbound call.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "server working",
	})
}

// Healthz returns a simple OK response for liveness probes.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Status returns gateway status information.
func (h *HealthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"version": string(h.version),
		"upstreams": map[string]string{
			"internships": h.cfg.Upstream.InternshipsURL,
			"jobs":        h.cfg.Upstream.JobsURL,
			"yc_jobs":     h.cfg.Upstream.YCJobsURL,
			"adzuna":      h.cfg.Upstream.AdzunaURL,
		},
		"adzuna_enabled": h.cfg.Adzuna.Enabled(),
	})
}
