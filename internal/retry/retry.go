// Package retry repeats position operations that lost a lock race.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/thenoetrevino/ordo/internal/position"
)

// Policy bounds how long and how often a contended operation is retried.
type Policy struct {
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration
	MaxRetries      uint64
}

// DefaultPolicy retries for at most two seconds.
func DefaultPolicy() Policy {
	return Policy{
		InitialInterval: 20 * time.Millisecond,
		MaxElapsedTime:  2 * time.Second,
		MaxRetries:      8,
	}
}

// NoRetry runs the operation exactly once.
func NoRetry() Policy {
	return Policy{}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	if p.MaxRetries == 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.MaxElapsedTime = p.MaxElapsedTime
	return backoff.WithContext(backoff.WithMaxRetries(eb, p.MaxRetries), ctx)
}

// Do runs op and retries it while it fails with position.ErrContention. Every
// other error is returned as is after the first attempt.
func Do[T any](ctx context.Context, p Policy, logger *slog.Logger, op func() (T, error)) (T, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return backoff.RetryNotifyWithData(func() (T, error) {
		v, err := op()
		if err != nil && !errors.Is(err, position.ErrContention) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, p.backOff(ctx), func(err error, wait time.Duration) {
		logger.Debug("retrying contended operation", "error", err, "wait", wait)
	})
}

// Run is Do for operations without a result.
func Run(ctx context.Context, p Policy, logger *slog.Logger, op func() error) error {
	_, err := Do(ctx, p, logger, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}
