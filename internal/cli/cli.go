// Package cli holds what every ordo command shares: opening the board from
// config, output formatting and exit codes.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/thenoetrevino/ordo/internal/app"
	"github.com/thenoetrevino/ordo/internal/config"
	"github.com/thenoetrevino/ordo/internal/database"
	"github.com/thenoetrevino/ordo/internal/logging"
)

// Options are the persistent flags of the root command
type Options struct {
	ConfigPath string
	DBPath     string
	Verbose    bool

	// Foreground logs to stderr unless a log file is configured. Without it
	// one-shot commands log to ~/.ordo/logs/ordo.log to keep stdout clean.
	Foreground bool
}

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	logCloser io.Closer
	owned     bool // false when the App was injected and belongs to the caller
}

// NewCLI loads the config, sets up logging and opens the board database
func NewCLI(ctx context.Context, opts Options) (*CLI, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.DBPath != "" {
		cfg.Database.Path = opts.DBPath
	}

	logger, closer, err := initLogging(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	db, err := database.InitDB(ctx, cfg.Database.Path, database.Options{
		BusyTimeout:  cfg.Database.BusyTimeout,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	appOpts := append(app.FromConfig(cfg), app.WithLogger(logger))
	return &CLI{
		App:       app.New(db, appOpts...),
		Config:    cfg,
		logCloser: closer,
		owned:     true,
	}, nil
}

func initLogging(cfg *config.Config, opts Options) (*slog.Logger, io.Closer, error) {
	logOpts := logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}
	if opts.Verbose {
		logOpts.Level = "debug"
	}
	if logOpts.File == "" && !opts.Foreground {
		file, err := logging.DefaultFile()
		if err != nil {
			return nil, nil, err
		}
		logOpts.File = file
	}
	return logging.Init(logOpts)
}

// Close cleans up CLI resources. An injected App is left open.
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	err := c.App.Close()
	if c.logCloser != nil {
		if cerr := c.logCloser.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
