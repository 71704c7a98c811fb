package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"statboard-service/internal/domain/currency"
	"statboard-service/internal/domain/players"
	"statboard-service/internal/metrics"
)

const (
	defaultRetryAttempts = 1
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retrier runs upstream calls with bounded exponential backoff and records
// every attempt. Retry-After hints from rate-limited responses take priority.
type retrier struct {
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

func newRetrier(logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initial time.Duration) *retrier {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retrier{
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			exp := backoff.NewExponentialBackOff()
			exp.InitialInterval = initial
			exp.MaxInterval = maxBackoff
			exp.MaxElapsedTime = 0
			return exp
		},
	}
}

func (r *retrier) run(ctx context.Context, op string, fn func(context.Context) error) error {
	hinted := &retryAfterBackOff{next: r.newBackOff()}
	policy := backoff.WithContext(backoff.WithMaxRetries(hinted, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()
		err := fn(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return nil
		}
		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
			hinted.hint = rlErr.RetryAfter
			return err
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "delay_ms", delay.Milliseconds(), "err", err)
	}

	err := backoff.RetryNotify(operation, policy, notify)
	if err != nil && r.maxAttempts > 1 {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
			"op", op, "attempts", attempt, "err", err)
	}
	return err
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.Temporary()
	}
	var decode *DecodeError
	return !errors.As(err, &decode)
}

// retryAfterBackOff prefers a server-provided delay over the wrapped policy once.
type retryAfterBackOff struct {
	next backoff.BackOff
	hint time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	d := b.next.NextBackOff()
	if b.hint > 0 && d != backoff.Stop {
		d = b.hint
	}
	b.hint = 0
	return d
}

func (b *retryAfterBackOff) Reset() {
	b.hint = 0
	b.next.Reset()
}

type retryingCurrencyProvider struct {
	inner CurrencyProvider
	*retrier
}

// NewRetryingCurrencyProvider wraps inner with retries. maxAttempts <= 1 disables retrying
// while still recording attempt metrics.
func NewRetryingCurrencyProvider(inner CurrencyProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initial time.Duration) CurrencyProvider {
	return &retryingCurrencyProvider{
		inner:   inner,
		retrier: newRetrier(logger, recorder, providerName, maxAttempts, initial),
	}
}

func (p *retryingCurrencyProvider) FetchOverview(ctx context.Context, league string) (currency.Overview, error) {
	if p.inner == nil {
		return currency.Overview{}, ErrProviderUnavailable
	}
	var out currency.Overview
	err := p.run(ctx, "overview", func(ctx context.Context) error {
		var err error
		out, err = p.inner.FetchOverview(ctx, league)
		return err
	})
	return out, err
}

func (p *retryingCurrencyProvider) FetchHistory(ctx context.Context, league string, currencyID int) (currency.History, error) {
	if p.inner == nil {
		return currency.History{}, ErrProviderUnavailable
	}
	var out currency.History
	err := p.run(ctx, "history", func(ctx context.Context) error {
		var err error
		out, err = p.inner.FetchHistory(ctx, league, currencyID)
		return err
	})
	return out, err
}

type retryingSeasonProvider struct {
	inner SeasonProvider
	*retrier
}

// NewRetryingSeasonProvider wraps inner with retries; see NewRetryingCurrencyProvider.
func NewRetryingSeasonProvider(inner SeasonProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initial time.Duration) SeasonProvider {
	return &retryingSeasonProvider{
		inner:   inner,
		retrier: newRetrier(logger, recorder, providerName, maxAttempts, initial),
	}
}

func (p *retryingSeasonProvider) FetchSeasons(ctx context.Context) ([]players.Season, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	var out []players.Season
	err := p.run(ctx, "seasons", func(ctx context.Context) error {
		var err error
		out, err = p.inner.FetchSeasons(ctx)
		return err
	})
	return out, err
}
