package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"StockCast/pkg/config"
	xhttp "StockCast/pkg/http"
	applogger "StockCast/pkg/logger"
)

// App encapsulates the HTTP service lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App serving handler with the configured server settings.
func New(cfg *config.Config, handler xhttp.Handler, l *applogger.Logger) *App {
	if l == nil {
		l = applogger.NewNop()
	}

	srv := xhttp.NewServer(handler,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithTrustedProxies(cfg.Server.TrustedProxies),
		xhttp.WithMetrics(!cfg.Metrics.Disabled),
		xhttp.WithLogger(l),
	)

	return &App{cfg: cfg, logger: l, httpServer: srv}
}

// Server exposes the underlying HTTP server.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run starts the HTTP server and blocks until ctx is cancelled or an
// interrupt arrives, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("stockcast started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("source", a.cfg.Source),
		applogger.Int("port", a.cfg.Server.Port),
	)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")

	return a.shutdown()
}

// shutdown gracefully stops the HTTP server. Infrastructure clients are
// closed by the cleanup returned from dependency injection.
func (a *App) shutdown() error {
	a.logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
