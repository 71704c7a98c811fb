package config

// PoeNinjaConfig controls how the currency overview/history API is reached.
type PoeNinjaConfig struct {
	BaseURL string `yaml:"baseURL"`
	// Proxy is prepended to the escaped upstream URL when set (e.g. a CORS relay).
	Proxy string `yaml:"proxy"`
}

// RaptorConfig points at the player-season CSV feed.
type RaptorConfig struct {
	CSVURL string `yaml:"csvURL"`
}

// UpstreamConfig holds transport policy shared by every upstream client.
type UpstreamConfig struct {
	Timeout       Duration `yaml:"timeout"`
	RatePerSecond float64  `yaml:"ratePerSecond"`
	RateBurst     int      `yaml:"rateBurst"`
	RetryAttempts int      `yaml:"retryAttempts"`
	RetryBackoff  Duration `yaml:"retryBackoff"`
}

func loadPoeNinja(base PoeNinjaConfig) PoeNinjaConfig {
	return PoeNinjaConfig{
		BaseURL: envOrDefault(envPoeNinjaURL, base.BaseURL),
		Proxy:   envOrDefault(envPoeNinjaProxy, base.Proxy),
	}
}

func loadRaptor(base RaptorConfig) RaptorConfig {
	return RaptorConfig{
		CSVURL: envOrDefault(envRaptorCSVURL, base.CSVURL),
	}
}

func loadUpstream(base UpstreamConfig) UpstreamConfig {
	return UpstreamConfig{
		Timeout:       durationEnvOrDefault(envUpstreamTimeout, base.Timeout),
		RatePerSecond: floatEnvOrDefault(envRateLimit, base.RatePerSecond),
		RateBurst:     intEnvOrDefault(envRateBurst, base.RateBurst),
		RetryAttempts: intEnvOrDefault(envRetryAttempts, base.RetryAttempts),
		RetryBackoff:  durationEnvOrDefault(envRetryBackoff, base.RetryBackoff),
	}
}
