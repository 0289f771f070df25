package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"regexp"

	"github.com/labstack/echo/v4"

	"jobs-proxy-go/internal/model"
	"jobs-proxy-go/internal/service"
)

// credentialPattern matches app_id/app_key query parameter values in URLs
// embedded in error messages.
var credentialPattern = regexp.MustCompile(`(?i)(app_id=|app_key=)[^&\s"]+`)

// GatewayHandler forwards listings requests to their fixed upstreams.
type GatewayHandler struct {
	service *service.GatewayService
	logger  *slog.Logger
}

// NewGatewayHandler creates a GatewayHandler.
func NewGatewayHandler(svc *service.GatewayService, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{
		service: svc,
		logger:  logger.With("component", "gateway_handler"),
	}
}

// FetchInternships proxies to the internships listings upstream.
func (h *GatewayHandler) FetchInternships(c echo.Context) error {
	return h.handle(c, service.RouteInternships)
}

// FetchJobs proxies to the active-jobs/ATS-feed upstream.
func (h *GatewayHandler) FetchJobs(c echo.Context) error {
	return h.handle(c, service.RouteJobs)
}

// FetchYCJobs proxies to the YC jobs upstream.
func (h *GatewayHandler) FetchYCJobs(c echo.Context) error {
	return h.handle(c, service.RouteYCJobs)
}

// FetchAdzunaJobs proxies to the Adzuna search API.
func (h *GatewayHandler) FetchAdzunaJobs(c echo.Context) error {
	return h.handle(c, service.RouteAdzuna)
}

// handle forwards the request's query parameters to the named route's
// upstream and streams the upstream status and body back unchanged. A non-2xx
// upstream status is relayed as-is; only transport failures produce a
// locally-generated error response.
func (h *GatewayHandler) handle(c echo.Context, route string) error {
	req := c.Request()

	fr := &model.ForwardRequest{
		Ctx:    req.Context(),
		Route:  route,
		Query:  req.URL.Query(),
		Header: req.Header,
	}

	resp, err := h.service.Forward(fr)
	if err != nil {
		return h.mapError(c, route, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Copy filtered response headers
	for key, vals := range resp.Header {
		for _, v := range vals {
			c.Response().Header().Add(key, v)
		}
	}

	c.Response().WriteHeader(resp.StatusCode)

	// Stream the upstream body directly to the client. If io.Copy fails
	// mid-stream (e.g. client disconnect, network error), the HTTP status
	// code has already been sent, so the client receives a truncated
	// response with the original status. We log the error for observability.
	if _, err := io.Copy(c.Response(), resp.Body); err != nil {
		h.logger.Error("streaming response body",
			"err", err,
			"route", route,
		)
	}

	return nil
}

func (h *GatewayHandler) mapError(c echo.Context, route string, err error) error {
	h.logger.Error("gateway error",
		"err", sanitizeError(err),
		"route", route,
	)

	if errors.Is(err, service.ErrAdzunaDisabled) {
		return c.JSON(http.StatusNotImplemented, map[string]string{
			"error": "adzuna credentials not configured",
		})
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return c.JSON(http.StatusGatewayTimeout, map[string]string{
			"error": "upstream request timed out",
		})
	}

	if errors.Is(err, context.Canceled) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "client disconnected",
		})
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "upstream host unreachable",
		})
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return c.JSON(http.StatusGatewayTimeout, map[string]string{
				"error": "upstream request timed out",
			})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "upstream connection failed",
		})
	}

	return c.JSON(http.StatusBadGateway, map[string]string{
		"error": "upstream request failed",
	})
}

// sanitizeError redacts Adzuna credentials from error messages that may
// contain upstream URLs.
func sanitizeError(err error) string {
	return credentialPattern.ReplaceAllString(err.Error(), "${1}[REDACTED]")
}
