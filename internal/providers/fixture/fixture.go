package fixture

import (
	"context"
	"fmt"
	"time"

	"statboard-service/internal/domain/currency"
	"statboard-service/internal/domain/players"
	"statboard-service/internal/stats"
)

const historyDays = 30

// Provider returns static currency and season data useful for local testing and bootstrapping.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

type fixtureCurrency struct {
	id     int
	name   string
	change float64
	base   float64
}

var currencies = []fixtureCurrency{
	{id: 1, name: "Chaos Orb", change: 0, base: 1},
	{id: 2, name: "Divine Orb", change: 12.4, base: 180},
	{id: 3, name: "Exalted Orb", change: -3.1, base: 14},
	{id: 4, name: "Orb of Alchemy", change: 7.8, base: 0.35},
	{id: 5, name: "Orb of Fusing", change: -0.4, base: 0.6},
	{id: 6, name: "Vaal Orb", change: 21.5, base: 0.9},
	{id: 7, name: "Gemcutter's Prism", change: 2.2, base: 0.7},
}

// FetchOverview returns a deterministic overview for any league.
func (p *Provider) FetchOverview(ctx context.Context, league string) (currency.Overview, error) {
	if err := ctx.Err(); err != nil {
		return currency.Overview{}, err
	}
	overview := currency.Overview{League: league, FetchedAt: p.now().UTC()}
	for _, c := range currencies {
		overview.Lines = append(overview.Lines, currency.Line{CurrencyTypeName: c.name, TotalChange: c.change})
		overview.Details = append(overview.Details, currency.Detail{
			Name: c.name,
			ID:   c.id,
			Icon: fmt.Sprintf("https://fixtures.local/currency/%d.png", c.id),
		})
	}
	return overview, nil
}

// FetchHistory returns a deterministic linear trend ending at the currency's base price.
func (p *Provider) FetchHistory(ctx context.Context, league string, currencyID int) (currency.History, error) {
	_ = league
	if err := ctx.Err(); err != nil {
		return currency.History{}, err
	}
	for _, c := range currencies {
		if c.id != currencyID {
			continue
		}
		// Spread the total change evenly so the series ends at base.
		start := c.base / (1 + c.change/100)
		step := (c.base - start) / float64(historyDays-1)
		points := make([]stats.TimeSeriesPoint, 0, historyDays)
		for i := 0; i < historyDays; i++ {
			points = append(points, stats.TimeSeriesPoint{
				DaysAgo: historyDays - 1 - i,
				Value:   start + step*float64(i),
			})
		}
		return currency.History{CurrencyID: currencyID, Points: points}, nil
	}
	return currency.History{CurrencyID: currencyID}, nil
}

type fixtureSeason struct {
	name, id string
	year     int
	mp       float64
	off, def float64
	war      float64
}

// Rows are grouped by player, matching the upstream file layout.
var seasons = []fixtureSeason{
	{"Avery Stone", "stoneav01", 2017, 2410, 1.8, 0.4, 6.1},
	{"Avery Stone", "stoneav01", 2018, 2602, 2.6, 0.9, 8.4},
	{"Avery Stone", "stoneav01", 2019, 2488, 3.1, 1.2, 9.0},
	{"Avery Stone", "stoneav01", 2020, 1980, 2.2, 0.7, 5.9},
	{"Blake Rivers", "riversbl01", 2019, 1320, -0.8, 1.6, 1.9},
	{"Blake Rivers", "riversbl01", 2020, 1744, -0.2, 2.1, 3.4},
	{"Casey Marsh", "marshca01", 2016, 980, 0.4, -1.1, 0.3},
	{"Devon Hale", "haledev01", 2014, 2890, 4.2, -0.3, 10.8},
	{"Devon Hale", "haledev01", 2015, 2770, 3.8, 0.2, 10.1},
	{"Devon Hale", "haledev01", 2016, 2655, 3.0, 0.5, 8.7},
	{"Emery Cole", "coleem01", 2020, 1102, 0.9, 0.8, 2.0},
	{"Emery Cole", "coleem01", 2021, 1630, 1.4, 1.1, 3.6},
	{"Emery Cole", "coleem01", 2022, 2210, 1.9, 1.5, 5.7},
}

// FetchSeasons returns a deterministic RAPTOR-like dataset.
func (p *Provider) FetchSeasons(ctx context.Context) ([]players.Season, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]players.Season, 0, len(seasons))
	for _, s := range seasons {
		total := s.off + s.def
		out = append(out, players.Season{
			PlayerName: s.name,
			PlayerID:   s.id,
			Season:     time.Date(s.year, time.January, 1, 0, 0, 0, 0, time.UTC),
			Metrics: map[string]float64{
				players.MetricPossessions:     s.mp * 2.05,
				players.MetricMinutes:         s.mp,
				players.MetricRaptorOffense:   s.off,
				players.MetricRaptorDefense:   s.def,
				players.MetricRaptorTotal:     total,
				players.MetricWarTotal:        s.war,
				players.MetricWarRegSeason:    s.war * 0.9,
				players.MetricWarPlayoffs:     s.war * 0.1,
				players.MetricPredatorOffense: s.off * 1.05,
				players.MetricPredatorDefense: s.def * 0.95,
				players.MetricPredatorTotal:   s.off*1.05 + s.def*0.95,
				players.MetricPaceImpact:      (s.off - s.def) / 10,
			},
		})
	}
	return out, nil
}
