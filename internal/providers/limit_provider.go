package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"statboard-service/internal/domain/currency"
	"statboard-service/internal/domain/players"
)

const (
	defaultRatePerSecond = 1.0
	defaultBurst         = 1
)

func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		perSecond = defaultRatePerSecond
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

func wait(ctx context.Context, limiter *rate.Limiter, logger *slog.Logger, provider string) error {
	if err := limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, logger, slog.LevelWarn, provider, "rate-limited fetch canceled", "err", err)
		return err
	}
	return nil
}

// rateLimitedCurrencyProvider enforces a request rate against the upstream.
type rateLimitedCurrencyProvider struct {
	next    CurrencyProvider
	limiter *rate.Limiter
	logger  *slog.Logger
	name    string
}

// NewRateLimitedCurrencyProvider returns a provider that waits for a limiter token before every call.
func NewRateLimitedCurrencyProvider(next CurrencyProvider, name string, perSecond float64, burst int, logger *slog.Logger) CurrencyProvider {
	return &rateLimitedCurrencyProvider{
		next:    next,
		limiter: newLimiter(perSecond, burst),
		logger:  logger,
		name:    name,
	}
}

func (p *rateLimitedCurrencyProvider) FetchOverview(ctx context.Context, league string) (currency.Overview, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider unavailable")
		return currency.Overview{}, ErrProviderUnavailable
	}
	if err := wait(ctx, p.limiter, p.logger, p.name); err != nil {
		return currency.Overview{}, err
	}
	return p.next.FetchOverview(ctx, league)
}

func (p *rateLimitedCurrencyProvider) FetchHistory(ctx context.Context, league string, currencyID int) (currency.History, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider unavailable")
		return currency.History{}, ErrProviderUnavailable
	}
	if err := wait(ctx, p.limiter, p.logger, p.name); err != nil {
		return currency.History{}, err
	}
	return p.next.FetchHistory(ctx, league, currencyID)
}

type rateLimitedSeasonProvider struct {
	next    SeasonProvider
	limiter *rate.Limiter
	logger  *slog.Logger
	name    string
}

// NewRateLimitedSeasonProvider returns a provider that waits for a limiter token before every call.
func NewRateLimitedSeasonProvider(next SeasonProvider, name string, perSecond float64, burst int, logger *slog.Logger) SeasonProvider {
	return &rateLimitedSeasonProvider{
		next:    next,
		limiter: newLimiter(perSecond, burst),
		logger:  logger,
		name:    name,
	}
}

func (p *rateLimitedSeasonProvider) FetchSeasons(ctx context.Context) ([]players.Season, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider unavailable")
		return nil, ErrProviderUnavailable
	}
	if err := wait(ctx, p.limiter, p.logger, p.name); err != nil {
		return nil, err
	}
	return p.next.FetchSeasons(ctx)
}
