package handler

import (
	"github.com/labstack/echo/v4"

	"jobs-proxy-go/internal/config"
)

// RegisterRoutes wires all route handlers onto the Echo instance. The Adzuna
// route is only registered when its credentials are configured.
func RegisterRoutes(e *echo.Echo, cfg *config.Config, gateway *GatewayHandler, health *HealthHandler) {
	e.GET("/", health.Root)
	e.GET("/healthz", health.Healthz)
	e.GET("/status", health.Status)

	e.GET("/fetch_internships", gateway.FetchInternships)
	e.GET("/fetch_jobs", gateway.FetchJobs)
	e.GET("/fetch_yc_jobs", gateway.FetchYCJobs)

	if cfg.Adzuna.Enabled() {
		e.GET("/fetch_adzuna_jobs", gateway.FetchAdzunaJobs)
	}
}
