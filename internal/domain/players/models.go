package players

import "time"

// Record field names exposed by Season besides its metrics.
const (
	FieldPlayerName = "player_name"
	FieldPlayerID   = "player_id"
	FieldSeason     = "season"
)

// Metric column names of the RAPTOR feed.
const (
	MetricPossessions     = "poss"
	MetricMinutes         = "mp"
	MetricRaptorOffense   = "raptor_offense"
	MetricRaptorDefense   = "raptor_defense"
	MetricRaptorTotal     = "raptor_total"
	MetricWarTotal        = "war_total"
	MetricWarRegSeason    = "war_reg_season"
	MetricWarPlayoffs     = "war_playoffs"
	MetricPredatorOffense = "predator_offense"
	MetricPredatorDefense = "predator_defense"
	MetricPredatorTotal   = "predator_total"
	MetricPaceImpact      = "pace_impact"
)

// Metrics lists the numeric columns every season row must carry.
var Metrics = []string{
	MetricPossessions,
	MetricMinutes,
	MetricRaptorOffense,
	MetricRaptorDefense,
	MetricRaptorTotal,
	MetricWarTotal,
	MetricWarRegSeason,
	MetricWarPlayoffs,
	MetricPredatorOffense,
	MetricPredatorDefense,
	MetricPredatorTotal,
	MetricPaceImpact,
}

// Season is one player's typed stat line for a season.
type Season struct {
	PlayerName string             `json:"playerName"`
	PlayerID   string             `json:"playerId"`
	Season     time.Time          `json:"season"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Year returns the season year.
func (s Season) Year() int {
	return s.Season.Year()
}

// Metric returns a metric value, or zero when absent.
func (s Season) Metric(name string) float64 {
	return s.Metrics[name]
}

// Lookup implements stats.Record.
func (s Season) Lookup(field string) (any, bool) {
	switch field {
	case FieldPlayerName:
		return s.PlayerName, true
	case FieldPlayerID:
		return s.PlayerID, true
	case FieldSeason:
		return s.Season, true
	}
	v, ok := s.Metrics[field]
	return v, ok
}

// IsMetric reports whether name is a known numeric column.
func IsMetric(name string) bool {
	for _, m := range Metrics {
		if m == name {
			return true
		}
	}
	return false
}
