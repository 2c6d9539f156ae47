package app

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenoetrevino/ordo/internal/retry"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger    *slog.Logger
	registry  *prometheus.Registry
	policy    retry.Policy
	opTimeout time.Duration
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithRegistry registers the application metrics on reg instead of a fresh
// registry
func WithRegistry(reg *prometheus.Registry) Option {
	return func(cfg *appConfig) {
		cfg.registry = reg
	}
}

// WithRetryPolicy sets how contended writes are retried
func WithRetryPolicy(p retry.Policy) Option {
	return func(cfg *appConfig) {
		cfg.policy = p
	}
}

// WithOpTimeout bounds every position operation
func WithOpTimeout(d time.Duration) Option {
	return func(cfg *appConfig) {
		cfg.opTimeout = d
	}
}
