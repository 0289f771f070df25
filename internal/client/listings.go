// Package client provides the upstream HTTP client for the listings APIs.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"jobs-proxy-go/internal/config"
	"jobs-proxy-go/internal/metrics"
	"jobs-proxy-go/internal/model"
)

// ListingsClient sends requests to the upstream listings APIs.
type ListingsClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewListingsClient creates a ListingsClient with connection pooling and timeouts.
// The metrics parameter is optional; pass nil to disable upstream metrics recording.
func NewListingsClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *ListingsClient {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Upstream.IdleConnections,
		MaxIdleConnsPerHost: cfg.Upstream.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &ListingsClient{
		httpClient: &http.Client{
			Transport: transport,
			// Hard bound on every outbound call; a dead upstream turns into
			// a 504 instead of an open-ended hang.
			Timeout: time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		},
		logger:  logger.With("component", "listings_client"),
		metrics: m,
	}
}

// Get issues a single GET against the upstream and returns the raw response.
// The caller is responsible for closing the response body. The provided
// context controls the lifetime of the upstream request: when the context is
// canceled (e.g. client disconnects), the upstream request is also canceled.
// The route string is only used for logging and metric labels.
func (c *ListingsClient) Get(ctx context.Context, route, url string, header http.Header) (*model.ForwardResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header = header

	c.logger.Debug("upstream request",
		"route", route,
		"host", req.URL.Host,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req) //nolint:bodyclose // body ownership transfers to caller via ForwardResponse
	duration := time.Since(start).Seconds()

	if err != nil {
		if c.metrics != nil {
			c.metrics.UpstreamDuration.WithLabelValues(route).Observe(duration)
		}
		return nil, fmt.Errorf("upstream request: %w", err)
	}

	if c.metrics != nil {
		status := strconv.Itoa(resp.StatusCode)
		c.metrics.UpstreamDuration.WithLabelValues(route).Observe(duration)
		c.metrics.UpstreamResponses.WithLabelValues(route, status).Inc()
	}

	return &model.ForwardResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}
