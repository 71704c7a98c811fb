package providers

import (
	"context"

	"statboard-service/internal/domain/currency"
	"statboard-service/internal/domain/players"
)

// CurrencyProvider fetches league currency snapshots and price histories.
// History points are returned oldest-first.
type CurrencyProvider interface {
	FetchOverview(ctx context.Context, league string) (currency.Overview, error)
	FetchHistory(ctx context.Context, league string, currencyID int) (currency.History, error)
}

// SeasonProvider fetches typed player-season rows in feed order.
type SeasonProvider interface {
	FetchSeasons(ctx context.Context) ([]players.Season, error)
}
