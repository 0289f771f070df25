package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobs-proxy-go/internal/config"
)

func TestListingsClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"id":"1"}]`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{
			TimeoutSeconds:  10,
			IdleConnections: 10,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewListingsClient(cfg, logger, nil)

	resp, err := c.Get(context.Background(), "jobs", srv.URL+"/active-ats-7d", http.Header{})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(body) != `[{"id":"1"}]` {
		t.Errorf("body = %q, want %q", string(body), `[{"id":"1"}]`)
	}
}

func TestListingsClient_Get_Error(t *testing.T) {
	cfg := &config.Config{
		Upstream: config.UpstreamConfig{
			TimeoutSeconds:  1,
			IdleConnections: 10,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewListingsClient(cfg, logger, nil)

	_, err := c.Get(context.Background(), "jobs", "http://127.0.0.1:1/nonexistent", http.Header{})
	if err == nil {
		t.Fatal("Get() expected error for unreachable host, got nil")
	}
}

func TestListingsClient_Get_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Simulate a slow upstream; the request should be canceled before this completes.
		time.Sleep(5 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{
			TimeoutSeconds:  30,
			IdleConnections: 10,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewListingsClient(cfg, logger, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := c.Get(ctx, "jobs", srv.URL+"/slow", http.Header{})
	if err == nil {
		t.Fatal("Get() expected error for canceled context, got nil")
	}
}
