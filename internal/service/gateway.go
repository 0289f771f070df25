// Package service implements the core request-forwarding logic.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"jobs-proxy-go/internal/client"
	"jobs-proxy-go/internal/config"
	"jobs-proxy-go/internal/model"
)

// Logical route names. Each binds a fixed upstream URL; the routes share one
// forwarding path and differ only in configuration.
const (
	RouteInternships = "internships"
	RouteJobs        = "jobs"
	RouteYCJobs      = "yc_jobs"
	RouteAdzuna      = "adzuna"
)

// ErrUnknownRoute is returned when a route name has no configured upstream.
var ErrUnknownRoute = errors.New("unknown route")

// ErrAdzunaDisabled is returned when the Adzuna route is invoked without
// configured credentials.
var ErrAdzunaDisabled = errors.New("adzuna credentials not configured")

// rapidAPIHostSuffix restricts which hosts the RapidAPI routes may forward to.
const rapidAPIHostSuffix = ".p.rapidapi.com"

// adzunaHost is the only host the Adzuna route may forward to.
const adzunaHost = "api.adzuna.com"

// forwardableRequestHeaders are the only request headers forwarded upstream.
// Credential headers are injected separately; everything else (cookies,
// authorization, client IP headers) is dropped.
var forwardableRequestHeaders = []string{
	"Accept",
	"Accept-Encoding",
	"Accept-Language",
}

// forwardableResponseHeaders are the only response headers forwarded to the client.
var forwardableResponseHeaders = map[string]bool{
	"Content-Type":     true,
	"Content-Length":   true,
	"Content-Encoding": true,
	"Cache-Control":    true,
	"Date":             true,
	"X-Request-Id":     true,
}

const userAgent = "jobs-proxy-go/1.0"

// GatewayService translates one inbound call into one outbound call per
// logical route. It holds no per-request state; the only shared state is the
// read-only configuration.
type GatewayService struct {
	client *client.ListingsClient
	cfg    *config.Config
	logger *slog.Logger
	routes map[string]*url.URL
	adzuna *url.URL
}

// NewGatewayService creates a GatewayService and validates the configured
// upstream hosts against the allowlist.
func NewGatewayService(c *client.ListingsClient, cfg *config.Config, logger *slog.Logger) (*GatewayService, error) {
	s, err := newGatewayService(c, cfg, logger)
	if err != nil {
		return nil, err
	}

	for name, u := range s.routes {
		if !strings.HasSuffix(u.Hostname(), rapidAPIHostSuffix) {
			return nil, fmt.Errorf("upstream host %q for route %q is not a RapidAPI host", u.Hostname(), name)
		}
	}
	if s.adzuna.Hostname() != adzunaHost {
		return nil, fmt.Errorf("adzuna upstream host %q is not %q", s.adzuna.Hostname(), adzunaHost)
	}

	return s, nil
}

// NewGatewayServiceForTest creates a GatewayService without host allowlist
// validation. This is intended only for tests that use httptest servers on
// localhost.
func NewGatewayServiceForTest(c *client.ListingsClient, cfg *config.Config, logger *slog.Logger) (*GatewayService, error) {
	return newGatewayService(c, cfg, logger)
}

func newGatewayService(c *client.ListingsClient, cfg *config.Config, logger *slog.Logger) (*GatewayService, error) {
	routes := make(map[string]*url.URL, 3)
	for name, raw := range map[string]string{
		RouteInternships: cfg.Upstream.InternshipsURL,
		RouteJobs:        cfg.Upstream.JobsURL,
		RouteYCJobs:      cfg.Upstream.YCJobsURL,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse upstream URL for route %q: %w", name, err)
		}
		routes[name] = u
	}

	adzuna, err := url.Parse(cfg.Upstream.AdzunaURL)
	if err != nil {
		return nil, fmt.Errorf("parse adzuna upstream URL: %w", err)
	}

	return &GatewayService{
		client: c,
		cfg:    cfg,
		logger: logger.With("component", "gateway_service"),
		routes: routes,
		adzuna: adzuna,
	}, nil
}

// Forward sends a ForwardRequest to its route's upstream and returns the
// response. The caller is responsible for closing the response body.
//
// The inbound query parameters are attached verbatim — nothing is dropped,
// renamed, or validated locally; the upstream defines what is required. The
// only additions are the credentials: the RapidAPI key/host headers for the
// listings routes, or the app_id/app_key query parameters for Adzuna.
func (s *GatewayService) Forward(fr *model.ForwardRequest) (*model.ForwardResponse, error) {
	var (
		upstreamURL string
		header      http.Header
	)

	switch fr.Route {
	case RouteInternships, RouteJobs, RouteYCJobs:
		base := s.routes[fr.Route]
		upstreamURL = s.buildUpstreamURL(base, fr.Query)
		header = s.filterRequestHeaders(fr.Header)
		header.Set("X-Rapidapi-Key", s.cfg.RapidAPI.APIKey)
		header.Set("X-Rapidapi-Host", base.Host)
	case RouteAdzuna:
		if !s.cfg.Adzuna.Enabled() {
			return nil, ErrAdzunaDisabled
		}
		upstreamURL = s.buildAdzunaURL(fr.Query)
		header = s.filterRequestHeaders(fr.Header)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, fr.Route)
	}

	s.logger.Debug("forwarding request",
		"route", fr.Route,
		"params", len(fr.Query),
	)

	resp, err := s.client.Get(fr.Ctx, fr.Route, upstreamURL, header)
	if err != nil {
		return nil, fmt.Errorf("forward to upstream: %w", err)
	}

	resp.Header = s.filterResponseHeaders(resp.Header)
	return resp, nil
}

// buildUpstreamURL attaches the caller's query parameters to the route's
// fixed base URL, unmodified.
func (s *GatewayService) buildUpstreamURL(base *url.URL, query url.Values) string {
	u := *base

	q := make(url.Values, len(query))
	for k, v := range query {
		q[k] = v
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// buildAdzunaURL composes the Adzuna search URL. Adzuna takes the country
// code and page index as path segments, so those two keys are lifted out of
// the query; everything else is forwarded verbatim, plus the injected
// app_id/app_key credentials.
func (s *GatewayService) buildAdzunaURL(query url.Values) string {
	u := *s.adzuna

	q := make(url.Values, len(query))
	for k, v := range query {
		q[k] = v
	}

	country := strings.ToLower(q.Get("country"))
	if country == "" {
		country = "us"
	}
	q.Del("country")

	page := 1
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		page = n
	}
	q.Del("page")

	q.Set("app_id", s.cfg.Adzuna.AppID)
	q.Set("app_key", s.cfg.Adzuna.AppKey)

	u.Path = fmt.Sprintf("/v1/api/jobs/%s/search/%d", url.PathEscape(country), page)
	u.RawQuery = q.Encode()

	return u.String()
}

func (s *GatewayService) filterRequestHeaders(src http.Header) http.Header {
	dst := make(http.Header)
	for _, key := range forwardableRequestHeaders {
		if vals := src.Values(key); len(vals) > 0 {
			dst[http.CanonicalHeaderKey(key)] = vals
		}
	}
	// Adzuna rejects requests with no User-Agent; always send one.
	dst.Set("User-Agent", userAgent)
	return dst
}

func (s *GatewayService) filterResponseHeaders(src http.Header) http.Header {
	dst := make(http.Header)
	for key, vals := range src {
		if forwardableResponseHeaders[http.CanonicalHeaderKey(key)] {
			dst[key] = vals
		}
	}
	return dst
}
