package currency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	domaincurrency "statboard-service/internal/domain/currency"
	"statboard-service/internal/logging"
	"statboard-service/internal/providers"
	"statboard-service/internal/stats"
	"statboard-service/internal/store"
)

const (
	defaultRollingWindowDays = 14
	defaultMoverCount        = 4
	defaultConcurrency       = 4
)

// Options tune the movers pipeline.
type Options struct {
	RollingWindowDays int
	MoverCount        int
	// Concurrency bounds simultaneous history fetches.
	Concurrency int
}

// Mover is one of the biggest movers of a league with its recent history.
type Mover struct {
	Name           string                  `json:"name"`
	CurrencyID     int                     `json:"currencyId"`
	Icon           string                  `json:"icon"`
	TotalChange    float64                 `json:"totalChange"`
	RollingAverage float64                 `json:"rollingAverage"`
	Points         []stats.TimeSeriesPoint `json:"points"`
	// Err is set when this mover's history could not be produced.
	Err error `json:"-"`
}

// Movers is the result of one movers computation.
type Movers struct {
	League     string    `json:"league"`
	FetchedAt  time.Time `json:"fetchedAt"`
	WindowDays int       `json:"windowDays"`
	Movers     []Mover   `json:"movers"`
}

// MissingDetailError reports a ranked currency without a details entry.
type MissingDetailError struct {
	Name string
}

func (e *MissingDetailError) Error() string {
	return fmt.Sprintf("currency %q has no detail entry", e.Name)
}

// Service computes currency movers from a cached overview and fresh histories.
type Service struct {
	provider  providers.CurrencyProvider
	overviews *store.TTLCache[domaincurrency.Overview]
	opts      Options
	logger    *slog.Logger
}

// NewService constructs a Service. The cache holds overviews keyed by league.
func NewService(provider providers.CurrencyProvider, overviews *store.TTLCache[domaincurrency.Overview], opts Options, logger *slog.Logger) *Service {
	if opts.RollingWindowDays <= 0 {
		opts.RollingWindowDays = defaultRollingWindowDays
	}
	if opts.MoverCount < 0 {
		opts.MoverCount = defaultMoverCount
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &Service{provider: provider, overviews: overviews, opts: opts, logger: logger}
}

// Options returns the effective options.
func (s *Service) Options() Options {
	return s.opts
}

// Overview returns the cached overview for a league, fetching it when absent or stale.
func (s *Service) Overview(ctx context.Context, league string) (domaincurrency.Overview, error) {
	return s.overviews.GetOrLoad(ctx, league, s.loader(league))
}

// RefreshOverview fetches the league overview and replaces the cached snapshot.
func (s *Service) RefreshOverview(ctx context.Context, league string) error {
	_, err := s.overviews.Refresh(ctx, league, s.loader(league))
	return err
}

// Invalidate drops every cached overview and returns how many were dropped.
func (s *Service) Invalidate() int {
	return s.overviews.InvalidateAll()
}

func (s *Service) loader(league string) func(context.Context) (domaincurrency.Overview, error) {
	return func(ctx context.Context) (domaincurrency.Overview, error) {
		return s.provider.FetchOverview(ctx, league)
	}
}

// Movers ranks the league's currencies by total change, biggest first, and
// attaches each mover's rolling average and chart window. A failure on one
// mover's history is recorded on that mover and does not affect the others.
func (s *Service) Movers(ctx context.Context, league string) (Movers, error) {
	overview, err := s.Overview(ctx, league)
	if err != nil {
		return Movers{}, err
	}

	top, err := stats.TopNBySortKey(overview.Lines, domaincurrency.FieldTotalChange, s.opts.MoverCount, stats.Descending)
	if err != nil {
		return Movers{}, err
	}

	result := Movers{
		League:     league,
		FetchedAt:  overview.FetchedAt,
		WindowDays: s.opts.RollingWindowDays,
		Movers:     make([]Mover, len(top)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, line := range top {
		result.Movers[i] = Mover{Name: line.CurrencyTypeName, TotalChange: line.TotalChange}
		detail, ok := overview.DetailByName(line.CurrencyTypeName)
		if !ok {
			result.Movers[i].Err = &MissingDetailError{Name: line.CurrencyTypeName}
			continue
		}
		result.Movers[i].CurrencyID = detail.ID
		result.Movers[i].Icon = detail.Icon

		g.Go(func() error {
			// Never returned: a sibling's failure must not cancel this fetch.
			s.fillHistory(gctx, league, &result.Movers[i])
			return nil
		})
	}
	_ = g.Wait()

	for _, m := range result.Movers {
		if m.Err != nil {
			logging.Warn(logging.FromContext(ctx, s.logger), "mover history unavailable",
				logging.FieldLeague, league,
				logging.FieldCurrency, m.Name,
				logging.FieldError, m.Err,
			)
		}
	}
	return result, nil
}

func (s *Service) fillHistory(ctx context.Context, league string, m *Mover) {
	history, err := s.provider.FetchHistory(ctx, league, m.CurrencyID)
	if err != nil {
		m.Err = err
		return
	}
	avg, err := stats.RollingAverage(s.opts.RollingWindowDays, history.Points)
	if err != nil {
		m.Err = err
		return
	}
	m.RollingAverage = avg
	m.Points = stats.Tail(history.Points, s.opts.RollingWindowDays+1)
}
