package config

import "os"

// Config holds runtime configuration for the server.
type Config struct {
	Port         string          `yaml:"port"`
	WarmSchedule string          `yaml:"warmSchedule"`
	Provider     string          `yaml:"provider"`
	AdminToken   string          `yaml:"adminToken"`
	PoeNinja     PoeNinjaConfig  `yaml:"poeNinja"`
	Raptor       RaptorConfig    `yaml:"raptor"`
	Upstream     UpstreamConfig  `yaml:"upstream"`
	Dashboard    DashboardConfig `yaml:"dashboard"`
	Metrics      MetricsConfig   `yaml:"metrics"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Port:         defaultPort,
		WarmSchedule: defaultWarmSchedule,
		Provider:     defaultProvider,
		PoeNinja:     PoeNinjaConfig{BaseURL: defaultPoeNinjaURL},
		Raptor:       RaptorConfig{CSVURL: defaultRaptorCSVURL},
		Upstream: UpstreamConfig{
			Timeout:       defaultUpstreamTimeout,
			RatePerSecond: defaultRatePerSecond,
			RateBurst:     defaultRateBurst,
			RetryAttempts: defaultRetryAttempts,
			RetryBackoff:  defaultRetryBackoff,
		},
		Dashboard: DashboardConfig{
			League:            defaultLeague,
			RollingWindowDays: defaultRollingWindow,
			TopNCount:         defaultTopNCount,
			MinGamesPlayed:    defaultMinGamesPlayed,
			MoverCount:        defaultMoverCount,
			HonorFields:       append([]string(nil), defaultHonorFields...),
			CacheTTL:          defaultCacheTTL,
		},
		Metrics: MetricsConfig{
			Enabled:      true,
			Port:         defaultMetricsPort,
			ServiceName:  defaultServiceName,
			OtlpInsecure: true,
		},
	}
}

// Load reads configuration from an optional YAML file (CONFIG_FILE) and then
// environment variables, which take precedence.
func Load() (Config, error) {
	base := Defaults()
	if path := os.Getenv(envConfigFile); path != "" {
		if err := applyFile(&base, path); err != nil {
			return Config{}, err
		}
	}
	cfg := fromEnv(base)
	if err := cfg.Dashboard.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromEnv(base Config) Config {
	return Config{
		Port:         envOrDefault(envPort, base.Port),
		WarmSchedule: envOrDefault(envWarmSchedule, base.WarmSchedule),
		Provider:     envOrDefault(envProvider, base.Provider),
		AdminToken:   envOrDefault(envAdminToken, base.AdminToken),
		PoeNinja:     loadPoeNinja(base.PoeNinja),
		Raptor:       loadRaptor(base.Raptor),
		Upstream:     loadUpstream(base.Upstream),
		Dashboard:    loadDashboard(base.Dashboard),
		Metrics:      loadMetrics(base.Metrics),
	}
}
