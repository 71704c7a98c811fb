package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"statboard-service/internal/domain/currency"
	"statboard-service/internal/domain/players"
)

// StubCurrencyProvider is a test double for providers.CurrencyProvider.
type StubCurrencyProvider struct {
	Overview    currency.Overview
	OverviewErr error
	// Histories and HistoryErrs are keyed by currency id.
	Histories   map[int]currency.History
	HistoryErrs map[int]error
	// Errs is consumed in order before falling back to the configured results.
	Errs []error

	OverviewCalls atomic.Int32
	HistoryCalls  atomic.Int32

	mu      sync.Mutex
	Leagues []string
}

// FetchOverview returns the configured overview while tracking calls.
func (s *StubCurrencyProvider) FetchOverview(ctx context.Context, league string) (currency.Overview, error) {
	_ = ctx
	s.OverviewCalls.Add(1)
	s.mu.Lock()
	s.Leagues = append(s.Leagues, league)
	err := s.popErr()
	s.mu.Unlock()
	if err != nil {
		return currency.Overview{}, err
	}
	if s.OverviewErr != nil {
		return currency.Overview{}, s.OverviewErr
	}
	o := s.Overview
	o.League = league
	return o, nil
}

// FetchHistory returns the configured history for currencyID while tracking calls.
func (s *StubCurrencyProvider) FetchHistory(ctx context.Context, league string, currencyID int) (currency.History, error) {
	_ = ctx
	_ = league
	s.HistoryCalls.Add(1)
	s.mu.Lock()
	err := s.popErr()
	s.mu.Unlock()
	if err != nil {
		return currency.History{}, err
	}
	if err := s.HistoryErrs[currencyID]; err != nil {
		return currency.History{}, err
	}
	h, ok := s.Histories[currencyID]
	if !ok {
		return currency.History{CurrencyID: currencyID}, nil
	}
	return h, nil
}

func (s *StubCurrencyProvider) popErr() error {
	if len(s.Errs) == 0 {
		return nil
	}
	err := s.Errs[0]
	s.Errs = s.Errs[1:]
	return err
}

// StubSeasonProvider is a test double for providers.SeasonProvider.
type StubSeasonProvider struct {
	Seasons []players.Season
	Err     error
	// Errs is consumed in order before falling back to Seasons/Err.
	Errs  []error
	Calls atomic.Int32

	mu sync.Mutex
}

// FetchSeasons returns the configured rows while tracking calls.
func (s *StubSeasonProvider) FetchSeasons(ctx context.Context) ([]players.Season, error) {
	_ = ctx
	s.Calls.Add(1)
	s.mu.Lock()
	var err error
	if len(s.Errs) > 0 {
		err = s.Errs[0]
		s.Errs = s.Errs[1:]
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.Seasons, s.Err
}
