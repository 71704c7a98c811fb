package server

import (
	"log/slog"
	"net/http"

	"statboard-service/internal/config"
	"statboard-service/internal/providers"
	"statboard-service/internal/providers/fixture"
	"statboard-service/internal/providers/poeninja"
	"statboard-service/internal/providers/raptor"
)

// upstreams bundles the providers behind both aggregation pipelines.
type upstreams struct {
	currency     providers.CurrencyProvider
	currencyName string
	seasons      providers.SeasonProvider
	seasonsName  string
}

func (u upstreams) complete() bool {
	return u.currency != nil && u.seasons != nil
}

func fixtureUpstreams() upstreams {
	fx := fixture.New()
	return upstreams{
		currency:     fx,
		currencyName: providerFixture,
		seasons:      fx,
		seasonsName:  providerFixture,
	}
}

func selectProviders(cfg config.Config, logger *slog.Logger) upstreams {
	switch mode := normalizeProviderMode(cfg.Provider); mode {
	case providerFixture:
		return fixtureUpstreams()
	case providerLive:
		client := &http.Client{Timeout: cfg.Upstream.Timeout}
		return upstreams{
			currency: poeninja.NewClient(poeninja.Config{
				BaseURL:    cfg.PoeNinja.BaseURL,
				Proxy:      cfg.PoeNinja.Proxy,
				HTTPClient: client,
				Timeout:    cfg.Upstream.Timeout,
			}),
			currencyName: "poeninja",
			seasons: raptor.NewClient(raptor.Config{
				CSVURL:     cfg.Raptor.CSVURL,
				HTTPClient: client,
				Timeout:    cfg.Upstream.Timeout,
			}),
			seasonsName: "raptor",
		}
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", mode))
		}
		return fixtureUpstreams()
	}
}
