package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foundersandcoders/lift/internal/constants"
	"github.com/foundersandcoders/lift/internal/logger"
)

// ErrMaxRetries is returned once every attempt has failed.
var ErrMaxRetries = errors.New("max retries exceeded")

// Policy configures the retry loop around a persistence call.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Timeout bounds each attempt. Zero means no per-attempt timeout.
	Timeout time.Duration
}

// DefaultPolicy returns the built-in retry policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  constants.DefaultSyncMaxAttempts,
		InitialDelay: constants.DefaultSyncInitialDelay,
		MaxDelay:     constants.DefaultSyncMaxDelay,
		Multiplier:   constants.DefaultSyncMultiplier,
		Timeout:      constants.DefaultSyncTimeout,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = d.MaxAttempts
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = d.InitialDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = d.MaxDelay
	}
	if p.Multiplier <= 0 {
		p.Multiplier = d.Multiplier
	}
	return p
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks an error as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// sleepFunc waits for d or until ctx is done.
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// WithRetry runs op until it succeeds, returns a permanent error, or the
// policy's attempts are used up.
func WithRetry(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	return withRetry(ctx, p, sleepContext, op)
}

func withRetry(ctx context.Context, p Policy, sleep sleepFunc, op func(ctx context.Context) error) error {
	p = p.withDefaults()
	delay := p.InitialDelay

	for attempt := 1; ; attempt++ {
		err := runAttempt(ctx, p.Timeout, op)
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt >= p.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempt, err)
		}

		logger.Warn("persistence call failed, retrying",
			"attempt", attempt,
			"max_attempts", p.MaxAttempts,
			"delay", delay,
			"error", err)

		if err := sleep(ctx, delay); err != nil {
			return err
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
}

func runAttempt(ctx context.Context, timeout time.Duration, op func(ctx context.Context) error) error {
	if timeout <= 0 {
		return op(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return op(ctx)
}
