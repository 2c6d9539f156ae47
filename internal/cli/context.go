package cli

import (
	"context"

	"github.com/thenoetrevino/ordo/internal/app"
	"github.com/thenoetrevino/ordo/internal/config"
)

type contextKey string

const (
	appKey     contextKey = "app"
	optionsKey contextKey = "options"
)

// WithApp makes commands run against the given App instead of opening the
// configured database. Integration tests use it to point commands at a temp
// board.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// WithOptions stores the root command's persistent flags
func WithOptions(ctx context.Context, opts Options) context.Context {
	return context.WithValue(ctx, optionsKey, opts)
}

// OptionsFromContext returns the options stored by WithOptions, or the zero
// Options
func OptionsFromContext(ctx context.Context) Options {
	if ctx == nil {
		return Options{}
	}
	opts, _ := ctx.Value(optionsKey).(Options)
	return opts
}

// GetCLIFromContext returns a CLI for the command context: the injected App
// when there is one, otherwise a fresh CLI built from the stored options
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a, Config: config.Default()}, nil
	}
	return NewCLI(ctx, OptionsFromContext(ctx))
}
