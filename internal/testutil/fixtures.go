package testutil

import (
	"time"

	"statboard-service/internal/domain/currency"
	"statboard-service/internal/domain/players"
	"statboard-service/internal/stats"
)

// SampleFetchedAt is the fetch time stamped on SampleOverview.
var SampleFetchedAt = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

// Series builds an oldest-first history from values.
func Series(values ...float64) []stats.TimeSeriesPoint {
	out := make([]stats.TimeSeriesPoint, len(values))
	for i, v := range values {
		out[i] = stats.TimeSeriesPoint{DaysAgo: len(values) - 1 - i, Value: v}
	}
	return out
}

// SampleOverview returns a small overview whose movers are, biggest first,
// Vaal Orb, Divine Orb and Orb of Fusing.
func SampleOverview() currency.Overview {
	return currency.Overview{
		FetchedAt: SampleFetchedAt,
		Lines: []currency.Line{
			{CurrencyTypeName: "Chaos Orb", TotalChange: 0},
			{CurrencyTypeName: "Divine Orb", TotalChange: 12},
			{CurrencyTypeName: "Exalted Orb", TotalChange: -3},
			{CurrencyTypeName: "Vaal Orb", TotalChange: 30},
			{CurrencyTypeName: "Orb of Fusing", TotalChange: 5},
		},
		Details: []currency.Detail{
			{Name: "Chaos Orb", ID: 1, Icon: "chaos.png"},
			{Name: "Divine Orb", ID: 2, Icon: "divine.png"},
			{Name: "Exalted Orb", ID: 3, Icon: "exalted.png"},
			{Name: "Vaal Orb", ID: 4, Icon: "vaal.png"},
			{Name: "Orb of Fusing", ID: 5, Icon: "fusing.png"},
		},
	}
}

// SampleHistories returns a 20-day history for every SampleOverview currency.
func SampleHistories() map[int]currency.History {
	out := make(map[int]currency.History, 5)
	for id := 1; id <= 5; id++ {
		values := make([]float64, 20)
		for i := range values {
			values[i] = float64(id*10 + i)
		}
		out[id] = currency.History{CurrencyID: id, Points: Series(values...)}
	}
	return out
}

// SampleSeason builds a season carrying raptor_total and minutes.
func SampleSeason(name string, year int, total, minutes float64) players.Season {
	metrics := make(map[string]float64, len(players.Metrics))
	for _, m := range players.Metrics {
		metrics[m] = 0
	}
	metrics[players.MetricRaptorTotal] = total
	metrics[players.MetricMinutes] = minutes
	return players.Season{
		PlayerName: name,
		PlayerID:   name + "-id",
		Season:     time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		Metrics:    metrics,
	}
}

// SampleSeasons returns a contiguous dataset of three players.
func SampleSeasons() []players.Season {
	return []players.Season{
		SampleSeason("Avery", 2017, 1.5, 2400),
		SampleSeason("Avery", 2018, 3.5, 2600),
		SampleSeason("Avery", 2019, -0.5, 2000),
		SampleSeason("Blake", 2019, 6.0, 1000),
		SampleSeason("Casey", 2020, 4.0, 3000),
		SampleSeason("Casey", 2021, 4.0, 2900),
	}
}
