package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"FraudGuard/pkg/config"
	xhttp "FraudGuard/pkg/http"
	pkgkafka "FraudGuard/pkg/kafka"
	applogger "FraudGuard/pkg/logger"
)

// App encapsulates one HTTP service and the infrastructure it owns.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
	producer   *pkgkafka.Producer
}

// New creates an App. producer may be nil when log shipping is disabled.
func New(cfg *config.Config, logger *applogger.Logger, httpServer *xhttp.Server, producer *pkgkafka.Producer) *App {
	return &App{cfg: cfg, logger: logger, httpServer: httpServer, producer: producer}
}

// Server exposes the HTTP server, mostly for tests.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the application and blocks until ctx is done or the
// listener fails.
func (a *App) RunContext(ctx context.Context) error {
	if a.producer != nil {
		a.logger.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   a.cfg.LogShipping.FlushInterval,
			CountThreshold: a.cfg.LogShipping.CountThreshold,
			Topic:          a.cfg.LogShipping.Topic,
			Publisher:      a.producer,
		})
		a.logger.Info("log shipping enabled",
			applogger.Strings("brokers", a.cfg.LogShipping.Brokers),
			applogger.String("topic", a.cfg.LogShipping.Topic))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-a.httpServer.Errors():
		runErr = fmt.Errorf("http server: %w", err)
	}

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}

	// flush pending aggregated logs before the producer goes away
	a.logger.RemoveCollector()
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return firstErr
}
