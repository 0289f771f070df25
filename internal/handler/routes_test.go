package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"jobs-proxy-go/internal/config"
)

func TestRegisterRoutes_Wiring(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	cfg := testConfig(upstream.URL)
	gateway := newTestHandler(t, cfg)
	health := NewHealthHandler(cfg, "test")

	e := echo.New()
	RegisterRoutes(e, cfg, gateway, health)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"GET /", http.MethodGet, "/", http.StatusOK},
		{"GET /healthz", http.MethodGet, "/healthz", http.StatusOK},
		{"GET /status", http.MethodGet, "/status", http.StatusOK},
		{"GET /fetch_internships", http.MethodGet, "/fetch_internships?title_filter=intern", http.StatusOK},
		{"GET /fetch_jobs", http.MethodGet, "/fetch_jobs?title_filter=engineer", http.StatusOK},
		{"GET /fetch_yc_jobs", http.MethodGet, "/fetch_yc_jobs", http.StatusOK},
		{"GET /fetch_adzuna_jobs", http.MethodGet, "/fetch_adzuna_jobs?what=golang", http.StatusOK},
		{"POST /fetch_jobs rejected", http.MethodPost, "/fetch_jobs", http.StatusMethodNotAllowed},
		{"GET /unknown returns 404", http.MethodGet, "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRegisterRoutes_AdzunaDisabledNotRegistered(t *testing.T) {
	cfg := testConfig("https://api.adzuna.com")
	cfg.Adzuna = config.AdzunaConfig{}
	gateway := newTestHandler(t, cfg)
	health := NewHealthHandler(cfg, "test")

	e := echo.New()
	RegisterRoutes(e, cfg, gateway, health)

	req := httptest.NewRequest(http.MethodGet, "/fetch_adzuna_jobs", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d when adzuna credentials are absent", rec.Code, http.StatusNotFound)
	}
}
