package poeninja

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"statboard-service/internal/domain/currency"
	"statboard-service/internal/providers"
)

// Config controls how the poe.ninja client reaches the upstream API.
type Config struct {
	BaseURL    string
	Proxy      string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches currency overview and history documents from poe.ninja.
type Client struct {
	baseURL    string
	proxy      string
	httpClient providers.HTTPDoer
	now        func() time.Time
}

// NewClient constructs a poe.ninja client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		proxy:      cfg.Proxy,
		httpClient: providers.ResolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// FetchOverview retrieves the current currency overview for a league.
func (c *Client) FetchOverview(ctx context.Context, league string) (currency.Overview, error) {
	body, err := providers.Get(ctx, c.httpClient, providerName, c.overviewURL(league), "application/json")
	if err != nil {
		return currency.Overview{}, err
	}
	overview, err := parseOverview(body)
	if err != nil {
		return currency.Overview{}, &providers.DecodeError{Provider: providerName, Err: err}
	}
	overview.League = league
	overview.FetchedAt = c.now().UTC()
	return overview, nil
}

// FetchHistory retrieves the receive-side price history of one currency.
func (c *Client) FetchHistory(ctx context.Context, league string, currencyID int) (currency.History, error) {
	body, err := providers.Get(ctx, c.httpClient, providerName, c.historyURL(league, currencyID), "application/json")
	if err != nil {
		return currency.History{}, err
	}
	points, err := parseHistory(body)
	if err != nil {
		return currency.History{}, &providers.DecodeError{Provider: providerName, Err: err}
	}
	return currency.History{CurrencyID: currencyID, Points: points}, nil
}

func (c *Client) overviewURL(league string) string {
	q := url.Values{}
	q.Set("league", league)
	q.Set("type", currencyType)
	return proxied(c.proxy, c.baseURL+"/currencyoverview?"+q.Encode())
}

func (c *Client) historyURL(league string, currencyID int) string {
	q := url.Values{}
	q.Set("league", league)
	q.Set("type", currencyType)
	q.Set("currencyId", strconv.Itoa(currencyID))
	return proxied(c.proxy, c.baseURL+"/currencyhistory?"+q.Encode())
}
