package players

import (
	"testing"
	"time"
)

func TestSeasonLookup(t *testing.T) {
	s := Season{
		PlayerName: "Stephen Curry",
		PlayerID:   "curryst01",
		Season:     time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
		Metrics:    map[string]float64{MetricRaptorTotal: 14.1},
	}

	if v, ok := s.Lookup(FieldPlayerName); !ok || v != "Stephen Curry" {
		t.Fatalf("expected player name, got %v", v)
	}
	if v, ok := s.Lookup(MetricRaptorTotal); !ok || v != 14.1 {
		t.Fatalf("expected metric lookup, got %v", v)
	}
	if _, ok := s.Lookup(MetricPaceImpact); ok {
		t.Fatalf("expected absent metric")
	}
	if s.Year() != 2016 {
		t.Fatalf("expected year 2016, got %d", s.Year())
	}
	if s.Metric(MetricPaceImpact) != 0 {
		t.Fatalf("expected zero for absent metric")
	}
}

func TestIsMetric(t *testing.T) {
	if !IsMetric(MetricWarTotal) {
		t.Fatalf("expected war_total to be a metric")
	}
	if IsMetric(FieldPlayerName) {
		t.Fatalf("expected player_name not to be a metric")
	}
}
