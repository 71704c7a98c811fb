package config

import "time"

const (
	envConfigFile      = "CONFIG_FILE"
	envPort            = "PORT"
	envWarmSchedule    = "WARM_SCHEDULE"
	envProvider        = "PROVIDER"
	envAdminToken      = "ADMIN_TOKEN"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envPoeNinjaURL     = "POENINJA_BASE_URL"
	envPoeNinjaProxy   = "POENINJA_PROXY"
	envRaptorCSVURL    = "RAPTOR_CSV_URL"
	envUpstreamTimeout = "UPSTREAM_TIMEOUT"
	envRateLimit       = "UPSTREAM_RATE_PER_SECOND"
	envRateBurst       = "UPSTREAM_RATE_BURST"
	envRetryAttempts   = "RETRY_ATTEMPTS"
	envRetryBackoff    = "RETRY_BACKOFF"
	envLeague          = "LEAGUE"
	envRollingWindow   = "ROLLING_WINDOW_DAYS"
	envTopNCount       = "TOP_N_COUNT"
	envMinGamesPlayed  = "MIN_GAMES_PLAYED"
	envMoverCount      = "MOVER_COUNT"
	envHonorFields     = "HONOR_FIELDS"
	envCacheTTL        = "CACHE_TTL"

	defaultPort         = "4000"
	defaultWarmSchedule = "@every 10m"
	defaultProvider     = "live"
	defaultMetricsPort  = "9090"
	defaultServiceName  = "statboard-service"

	defaultPoeNinjaURL  = "https://poe.ninja/api/data"
	defaultRaptorCSVURL = "https://raw.githubusercontent.com/fivethirtyeight/data/refs/heads/master/nba-raptor/modern_RAPTOR_by_player.csv"

	defaultUpstreamTimeout = 10 * time.Second
	// Both upstreams are free public endpoints; stay well below a request per second.
	defaultRatePerSecond = 2.0
	defaultRateBurst     = 4
	// Single attempt: a failed fetch surfaces as one rejection unless retries are opted into.
	defaultRetryAttempts = 1
	defaultRetryBackoff  = 200 * time.Millisecond

	defaultLeague         = "Mercenaries"
	defaultRollingWindow  = 14
	defaultTopNCount      = 20
	defaultMinGamesPlayed = 50
	defaultMoverCount     = 4
	defaultCacheTTL       = 10 * time.Minute
)

var defaultHonorFields = []string{
	"raptor_offense",
	"raptor_defense",
	"raptor_total",
	"war_total",
	"predator_total",
	"pace_impact",
}
