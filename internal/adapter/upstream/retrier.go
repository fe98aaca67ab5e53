package upstream

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/karbiaO9/BlockMind-sub000/internal/domain"
	"github.com/karbiaO9/BlockMind-sub000/internal/infrastructure/metrics"
	"github.com/karbiaO9/BlockMind-sub000/internal/usecase"
)

// RetrierConfig bounds the retry budget for one logical upstream call.
type RetrierConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Retrier decorates a LedgerSource with bounded exponential backoff.
// UpstreamUnavailable and RateLimited count toward the same budget; a 429
// retry hint is honored before the next attempt. InvalidAddress and
// context errors are never retried.
type Retrier struct {
	next   usecase.LedgerSource
	cfg    RetrierConfig
	logger zerolog.Logger
}

// NewRetrier creates a new Retrier around next.
func NewRetrier(next usecase.LedgerSource, cfg RetrierConfig, logger zerolog.Logger) *Retrier {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 200 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	return &Retrier{next: next, cfg: cfg, logger: logger}
}

// GetBalance retries the wrapped call on transient upstream errors.
func (r *Retrier) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := r.retry(ctx, func() error {
		var err error
		balance, err = r.next.GetBalance(ctx, address)
		return err
	})

	return balance, err
}

// GetEntriesPage retries the wrapped call on transient upstream errors.
func (r *Retrier) GetEntriesPage(ctx context.Context, address string, offset, limit int) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry

	err := r.retry(ctx, func() error {
		var err error
		entries, err = r.next.GetEntriesPage(ctx, address, offset, limit)
		return err
	})

	return entries, err
}

func (r *Retrier) retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialInterval
	b.MaxInterval = r.cfg.MaxInterval
	b.MaxElapsedTime = 0

	attempts := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return backoff.Permanent(err)
		}

		attempts++
		if attempts >= r.cfg.MaxAttempts {
			return backoff.Permanent(err)
		}

		if err := r.honorRetryHint(ctx, err); err != nil {
			return backoff.Permanent(err)
		}

		metrics.IncUpstreamRetry()
		r.logger.Warn().Err(err).Int("attempt", attempts).Msg("retrying upstream call")

		return err
	}, backoff.WithContext(b, ctx))
}

// honorRetryHint waits out a 429 retry hint before the next backoff
// delay, aborting on cancellation.
func (r *Retrier) honorRetryHint(ctx context.Context, err error) error {
	var rl *RateLimitError
	if !errors.As(err, &rl) || rl.RetryAfter <= 0 {
		return nil
	}

	timer := time.NewTimer(rl.RetryAfter)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return errors.Is(err, domain.ErrUpstreamUnavailable) || errors.Is(err, domain.ErrRateLimited)
}
