package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrescamacho/construction-sim/internal/adapters/metrics"
	"github.com/andrescamacho/construction-sim/internal/adapters/persistence"
	"github.com/andrescamacho/construction-sim/internal/application/common"
	"github.com/andrescamacho/construction-sim/internal/application/setup"
	"github.com/andrescamacho/construction-sim/internal/domain/risk"
	"github.com/andrescamacho/construction-sim/internal/domain/shared"
	"github.com/andrescamacho/construction-sim/internal/infrastructure/config"
	"github.com/andrescamacho/construction-sim/internal/infrastructure/database"
	"github.com/andrescamacho/construction-sim/internal/infrastructure/logging"
)

// app holds the wired dependencies of one CLI invocation
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	mediator common.Mediator
	registry *setup.HandlerRegistry

	db            *gorm.DB
	logCloser     io.Closer
	metricsServer *metrics.Server
}

// loadConfig reads the configuration named by --config
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newApp wires logging, storage, metrics and the mediator
func newApp(cfg *config.Config) (*app, error) {
	logger, logCloser, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, logCloser: logCloser}

	a.db, err = database.NewConnection(&cfg.Database)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	targets := cfg.Game.Targets()
	var risks *risk.Catalog
	if cfg.Game.RiskCatalog != "" {
		risks, err = risk.LoadCatalogFile(cfg.Game.RiskCatalog, targets.ScopeTarget)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to load risk catalog: %w", err)
		}
		logger.Info("Loaded risk catalog", "path", cfg.Game.RiskCatalog, "events", risks.Len())
	}

	var middlewares []common.Middleware
	if cfg.Metrics.Enabled {
		mw, err := a.startMetrics()
		if err != nil {
			a.Close()
			return nil, err
		}
		middlewares = append(middlewares, mw)
	}

	clock := shared.NewRealClock()
	repo := persistence.NewGormSessionRepository(a.db, clock)
	a.registry = setup.NewHandlerRegistry(repo, targets, risks, clock)
	a.mediator, err = a.registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create mediator: %w", err)
	}

	return a, nil
}

// startMetrics registers the collectors and serves the registry
func (a *app) startMetrics() (common.Middleware, error) {
	metrics.InitRegistry()

	requestCollector := metrics.NewRequestMetricsCollector()
	if err := requestCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register request metrics: %w", err)
	}
	gameCollector := metrics.NewGameMetricsCollector()
	if err := gameCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register game metrics: %w", err)
	}
	metrics.SetGlobalGameCollector(gameCollector)

	server, err := metrics.NewServer(a.cfg.Metrics.Host, a.cfg.Metrics.Port, a.cfg.Metrics.Path)
	if err != nil {
		return nil, err
	}
	server.Start()
	a.metricsServer = server
	a.logger.Info("Metrics server started", "addr", server.Addr(), "path", a.cfg.Metrics.Path)

	return metrics.PrometheusMiddleware(requestCollector), nil
}

// Context returns ctx carrying the application logger for handlers
func (a *app) Context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, logging.NewSlogGameLogger(a.logger))
}

// Close releases everything newApp acquired
func (a *app) Close() {
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Metrics.ShutdownTimeout)
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.logger.Warn("Metrics server shutdown failed", "error", err)
		}
		cancel()
		metrics.SetGlobalGameCollector(nil)
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Warn("Database close failed", "error", err)
		}
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
