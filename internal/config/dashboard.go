package config

import (
	"fmt"

	"statboard-service/internal/domain/players"
)

// DashboardConfig holds the knobs of both aggregation pipelines.
type DashboardConfig struct {
	League            string   `yaml:"league"`
	RollingWindowDays int      `yaml:"rollingWindowDays"`
	TopNCount         int      `yaml:"topNCount"`
	MinGamesPlayed    int      `yaml:"minGamesPlayed"`
	MoverCount        int      `yaml:"moverCount"`
	HonorFields       []string `yaml:"honorFields"`
	CacheTTL          Duration `yaml:"cacheTTL"`
}

func loadDashboard(base DashboardConfig) DashboardConfig {
	return DashboardConfig{
		League:            envOrDefault(envLeague, base.League),
		RollingWindowDays: intEnvOrDefault(envRollingWindow, base.RollingWindowDays),
		TopNCount:         intEnvOrDefault(envTopNCount, base.TopNCount),
		MinGamesPlayed:    countEnvOrDefault(envMinGamesPlayed, base.MinGamesPlayed),
		MoverCount:        intEnvOrDefault(envMoverCount, base.MoverCount),
		HonorFields:       listEnvOrDefault(envHonorFields, base.HonorFields),
		CacheTTL:          durationEnvOrDefault(envCacheTTL, base.CacheTTL),
	}
}

// validate rejects honour fields that are not season metric columns; an
// unknown one would fail every dashboard request.
func (d DashboardConfig) validate() error {
	for _, field := range d.HonorFields {
		if !players.IsMetric(field) {
			return fmt.Errorf("config: honor field %q is not a season metric", field)
		}
	}
	return nil
}
