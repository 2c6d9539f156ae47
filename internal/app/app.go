// Package app wires the position engine, repositories and services into one
// application container shared by the CLI and the HTTP API.
package app

import (
	"database/sql"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/thenoetrevino/ordo/internal/config"
	"github.com/thenoetrevino/ordo/internal/database"
	"github.com/thenoetrevino/ordo/internal/metrics"
	"github.com/thenoetrevino/ordo/internal/position"
	"github.com/thenoetrevino/ordo/internal/retry"
	columnservice "github.com/thenoetrevino/ordo/internal/services/column"
	taskservice "github.com/thenoetrevino/ordo/internal/services/task"
)

// App holds all application services and provides dependency injection.
type App struct {
	db     *sql.DB
	repo   *database.Repository
	logger *slog.Logger

	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	// Service layer (business logic)
	ColumnService columnservice.Service
	TaskService   taskservice.Service
}

// New creates a new App with all services initialized over db.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{
		logger: slog.Default(),
		policy: retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = prometheus.NewRegistry()
		cfg.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := metrics.New(cfg.registry)

	engineOpts := []position.Option{
		position.WithLogger(cfg.logger),
		position.WithObserver(m),
	}
	if cfg.opTimeout > 0 {
		engineOpts = append(engineOpts, position.WithOpTimeout(cfg.opTimeout))
	}
	engine := position.NewEngine(db, engineOpts...)
	repo := database.NewRepository(db, engine)

	return &App{
		db:            db,
		repo:          repo,
		logger:        cfg.logger,
		Registry:      cfg.registry,
		Metrics:       m,
		ColumnService: columnservice.NewService(repo.Columns, cfg.policy, cfg.logger),
		TaskService:   taskservice.NewService(repo.Tasks, repo.Columns, cfg.policy, cfg.logger),
	}
}

// FromConfig translates the engine and retry sections of cfg into options.
func FromConfig(cfg *config.Config) []Option {
	policy := retry.Policy{
		InitialInterval: cfg.Retry.InitialInterval,
		MaxElapsedTime:  cfg.Retry.MaxElapsedTime,
	}
	if cfg.Retry.MaxRetries != nil {
		policy.MaxRetries = *cfg.Retry.MaxRetries
	}
	return []Option{
		WithRetryPolicy(policy),
		WithOpTimeout(cfg.Engine.OpTimeout),
	}
}

// Board returns the whole board as one snapshot.
func (a *App) Board() database.BoardReader {
	return a.repo
}

// Maintenance exposes the density check and repair.
func (a *App) Maintenance() database.Maintainer {
	return a.repo
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases the database.
func (a *App) Close() error {
	return a.db.Close()
}
