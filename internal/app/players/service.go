package players

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	domainplayers "statboard-service/internal/domain/players"
	"statboard-service/internal/logging"
	"statboard-service/internal/providers"
	"statboard-service/internal/stats"
	"statboard-service/internal/store"
)

const (
	defaultTopNCount = 20
	// Games are not part of the feed; a season's games are estimated from minutes.
	minutesPerGame = 48.0
)

// DefaultHonorFields are the metrics honoured when none are configured.
var DefaultHonorFields = []string{
	domainplayers.MetricRaptorOffense,
	domainplayers.MetricRaptorDefense,
	domainplayers.MetricRaptorTotal,
	domainplayers.MetricWarTotal,
	domainplayers.MetricPredatorTotal,
	domainplayers.MetricPaceImpact,
}

// ErrPlayerNotFound is returned when no season matches a player name.
var ErrPlayerNotFound = errors.New("player not found")

// Options tune the dashboard computation.
type Options struct {
	TopNCount int
	// MinGamesPlayed excludes seasons with fewer estimated games from the leaderboard.
	MinGamesPlayed int
	HonorFields    []string
}

// Career summarises every season of one player.
type Career struct {
	PlayerName  string                 `json:"playerName"`
	PlayerID    string                 `json:"playerId"`
	Seasons     []domainplayers.Season `json:"seasons"`
	BestRaptor  float64                `json:"bestRaptor"`
	WorstRaptor float64                `json:"worstRaptor"`
	// AverageMinutes is the mean of whole minutes played per season.
	AverageMinutes float64 `json:"averageMinutes"`
}

// Leader is one row of the leaderboard, ranked from 1.
type Leader struct {
	Rank   int                  `json:"rank"`
	Season domainplayers.Season `json:"season"`
}

// Honor names the season holding the highest value of a metric.
type Honor struct {
	Field  string               `json:"field"`
	Value  float64              `json:"value"`
	Season domainplayers.Season `json:"season"`
}

// Dashboard is the player-stats view for one random pick.
type Dashboard struct {
	Seed    int64    `json:"seed"`
	Career  Career   `json:"career"`
	Leaders []Leader `json:"leaders"`
	Honors  []Honor  `json:"honors"`
}

// Service computes player dashboards over a cached season dataset.
type Service struct {
	provider providers.SeasonProvider
	datasets *store.TTLCache[[]domainplayers.Season]
	key      string
	opts     Options
	logger   *slog.Logger
}

// NewService constructs a Service. key identifies the dataset in the cache.
func NewService(provider providers.SeasonProvider, datasets *store.TTLCache[[]domainplayers.Season], key string, opts Options, logger *slog.Logger) *Service {
	if opts.TopNCount < 0 {
		opts.TopNCount = defaultTopNCount
	}
	if opts.HonorFields == nil {
		opts.HonorFields = DefaultHonorFields
	}
	return &Service{provider: provider, datasets: datasets, key: key, opts: opts, logger: logger}
}

// Options returns the effective options.
func (s *Service) Options() Options {
	return s.opts
}

// Seasons returns the cached dataset, fetching it when absent or stale.
func (s *Service) Seasons(ctx context.Context) ([]domainplayers.Season, error) {
	return s.datasets.GetOrLoad(ctx, s.key, s.provider.FetchSeasons)
}

// Refresh fetches the dataset and replaces the cached snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	_, err := s.datasets.Refresh(ctx, s.key, s.provider.FetchSeasons)
	return err
}

// Invalidate drops the cached dataset.
func (s *Service) Invalidate() int {
	return s.datasets.InvalidateAll()
}

// Dashboard picks a season at random (deterministic for a given seed) and
// builds the player's career, the leaderboard and the honours list.
func (s *Service) Dashboard(ctx context.Context, seed int64) (Dashboard, error) {
	rows, err := s.Seasons(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	if len(rows) == 0 {
		return Dashboard{}, &stats.EmptyInputError{Op: "dashboard"}
	}

	pick := rand.New(rand.NewSource(seed)).Intn(len(rows))
	career, err := s.career(ctx, rows, pick)
	if err != nil {
		return Dashboard{}, err
	}
	leaders, err := s.leaderboard(rows)
	if err != nil {
		return Dashboard{}, err
	}
	honors, err := s.honors(rows)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{Seed: seed, Career: career, Leaders: leaders, Honors: honors}, nil
}

// Career returns every season of the named player.
func (s *Service) Career(ctx context.Context, name string) (Career, error) {
	rows, err := s.Seasons(ctx)
	if err != nil {
		return Career{}, err
	}
	index, err := stats.GroupByKey(rows, domainplayers.FieldPlayerName)
	if err != nil {
		return Career{}, err
	}
	group, ok := index[name]
	if !ok {
		return Career{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	return summarise(group)
}

func (s *Service) career(ctx context.Context, rows []domainplayers.Season, anchor int) (Career, error) {
	group, err := s.groupPlayer(ctx, rows, anchor)
	if err != nil {
		return Career{}, err
	}
	return summarise(group)
}

// groupPlayer collects the anchor player's seasons from the contiguous run,
// falling back to a full index when the feed breaks contiguity.
func (s *Service) groupPlayer(ctx context.Context, rows []domainplayers.Season, anchor int) ([]domainplayers.Season, error) {
	err := stats.ValidateContiguous(rows, anchor, domainplayers.FieldPlayerName)
	var violation *stats.PreconditionViolationError
	if errors.As(err, &violation) {
		logging.Warn(logging.FromContext(ctx, s.logger), "player rows not contiguous, using index",
			logging.FieldPlayer, rows[anchor].PlayerName,
			"stray_index", violation.Stray,
		)
		index, err := stats.GroupByKey(rows, domainplayers.FieldPlayerName)
		if err != nil {
			return nil, err
		}
		return index[rows[anchor].PlayerName], nil
	}
	if err != nil {
		return nil, err
	}
	return stats.GroupContiguousByKey(rows, anchor, domainplayers.FieldPlayerName)
}

func summarise(group []domainplayers.Season) (Career, error) {
	best, err := stats.Extremum(group, domainplayers.MetricRaptorTotal, stats.Max)
	if err != nil {
		return Career{}, err
	}
	worst, err := stats.Extremum(group, domainplayers.MetricRaptorTotal, stats.Min)
	if err != nil {
		return Career{}, err
	}
	minutes, err := stats.Mean(group, domainplayers.MetricMinutes)
	if err != nil {
		return Career{}, err
	}
	return Career{
		PlayerName:     group[0].PlayerName,
		PlayerID:       group[0].PlayerID,
		Seasons:        group,
		BestRaptor:     best,
		WorstRaptor:    worst,
		AverageMinutes: minutes,
	}, nil
}

func (s *Service) leaderboard(rows []domainplayers.Season) ([]Leader, error) {
	qualifying := rows
	if s.opts.MinGamesPlayed > 0 {
		qualifying = make([]domainplayers.Season, 0, len(rows))
		for _, r := range rows {
			if r.Metric(domainplayers.MetricMinutes)/minutesPerGame >= float64(s.opts.MinGamesPlayed) {
				qualifying = append(qualifying, r)
			}
		}
	}
	top, err := stats.TopNBySortKey(qualifying, domainplayers.MetricRaptorTotal, s.opts.TopNCount, stats.Descending)
	if err != nil {
		return nil, err
	}
	leaders := make([]Leader, len(top))
	for i, season := range top {
		leaders[i] = Leader{Rank: i + 1, Season: season}
	}
	return leaders, nil
}

func (s *Service) honors(rows []domainplayers.Season) ([]Honor, error) {
	honors := make([]Honor, 0, len(s.opts.HonorFields))
	for _, field := range s.opts.HonorFields {
		season, err := stats.SuperlativeByField(rows, field, stats.Max)
		if err != nil {
			return nil, err
		}
		honors = append(honors, Honor{Field: field, Value: season.Metric(field), Season: season})
	}
	return honors, nil
}
