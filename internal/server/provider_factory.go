package server

import (
	"log/slog"

	"statboard-service/internal/config"
	"statboard-service/internal/metrics"
	"statboard-service/internal/providers"
)

// providerFactory assembles the upstreams with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) upstreams {
	return f.wrap(cfg, selectProviders(cfg, f.logger))
}

// wrap puts each upstream behind its own limiter, then retries outside the
// limiter so every attempt waits for a token.
func (f providerFactory) wrap(cfg config.Config, base upstreams) upstreams {
	up := cfg.Upstream
	currencyName := providerLabel(base.currencyName, base.currency)
	seasonsName := providerLabel(base.seasonsName, base.seasons)

	currency := providers.NewRateLimitedCurrencyProvider(base.currency, currencyName, up.RatePerSecond, up.RateBurst, f.logger)
	currency = providers.NewRetryingCurrencyProvider(currency, f.logger, f.metrics, currencyName, up.RetryAttempts, up.RetryBackoff)

	seasons := providers.NewRateLimitedSeasonProvider(base.seasons, seasonsName, up.RatePerSecond, up.RateBurst, f.logger)
	seasons = providers.NewRetryingSeasonProvider(seasons, f.logger, f.metrics, seasonsName, up.RetryAttempts, up.RetryBackoff)

	return upstreams{
		currency:     currency,
		currencyName: currencyName,
		seasons:      seasons,
		seasonsName:  seasonsName,
	}
}
