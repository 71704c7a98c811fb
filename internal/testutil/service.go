package testutil

import (
	"io"
	"log/slog"
	"time"

	appcurrency "statboard-service/internal/app/currency"
	appplayers "statboard-service/internal/app/players"
	"statboard-service/internal/domain/currency"
	"statboard-service/internal/domain/players"
	"statboard-service/internal/providers"
	"statboard-service/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewCurrencyService wires a movers service with a one-minute overview cache.
func NewCurrencyService(provider providers.CurrencyProvider, opts appcurrency.Options) *appcurrency.Service {
	cache := store.NewTTLCache[currency.Overview]("overview", time.Minute, nil)
	return appcurrency.NewService(provider, cache, opts, discardLogger())
}

// NewPlayersService wires a dashboard service with a one-minute dataset cache.
func NewPlayersService(provider providers.SeasonProvider, opts appplayers.Options) *appplayers.Service {
	cache := store.NewTTLCache[[]players.Season]("seasons", time.Minute, nil)
	return appplayers.NewService(provider, cache, "test", opts, discardLogger())
}
