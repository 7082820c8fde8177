package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockCast/pkg/config"
	xhttp "StockCast/pkg/http"
)

func TestNewAppliesServerConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Disabled = true

	app := New(cfg, xhttp.Handlers{}, nil)
	if app.Server().ShutdownTimeout() != cfg.Server.ShutdownTimeout {
		t.Fatalf("shutdown timeout = %v", app.Server().ShutdownTimeout())
	}

	rec := httptest.NewRecorder()
	app.Server().Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("/metrics with metrics disabled = %d", rec.Code)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = time.Second

	app := New(cfg, xhttp.Handlers{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
