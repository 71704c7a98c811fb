package raptor

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"statboard-service/internal/domain/players"
	"statboard-service/internal/providers"
)

const (
	providerName  = "raptor"
	defaultCSVURL = "https://raw.githubusercontent.com/fivethirtyeight/data/master/nba-raptor/modern_RAPTOR_by_player.csv"
)

// Config controls where the RAPTOR dataset is downloaded from.
type Config struct {
	CSVURL     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client downloads and validates the per-season RAPTOR CSV.
type Client struct {
	csvURL     string
	httpClient providers.HTTPDoer
}

// NewClient constructs a RAPTOR client.
func NewClient(cfg Config) *Client {
	csvURL := strings.TrimSpace(cfg.CSVURL)
	if csvURL == "" {
		csvURL = defaultCSVURL
	}
	return &Client{
		csvURL:     csvURL,
		httpClient: providers.ResolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// FetchSeasons downloads the dataset and returns every row in file order.
func (c *Client) FetchSeasons(ctx context.Context) ([]players.Season, error) {
	body, err := providers.Get(ctx, c.httpClient, providerName, c.csvURL, "text/csv")
	if err != nil {
		return nil, err
	}
	seasons, err := Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &providers.DecodeError{Provider: providerName, Err: err}
	}
	return seasons, nil
}
