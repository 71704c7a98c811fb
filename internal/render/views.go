package render

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	appcurrency "statboard-service/internal/app/currency"
	appplayers "statboard-service/internal/app/players"
	domainplayers "statboard-service/internal/domain/players"
	"statboard-service/internal/stats"
)

// PointView is one chart sample.
type PointView struct {
	DaysAgo int     `json:"daysAgo"`
	Value   float64 `json:"value"`
}

// MoverView is the display form of one currency mover.
type MoverView struct {
	Name           string      `json:"name"`
	Icon           string      `json:"icon,omitempty"`
	Change         float64     `json:"change"`
	ChangeLabel    string      `json:"changeLabel"`
	Trend          string      `json:"trend"`
	RollingAverage string      `json:"rollingAverage,omitempty"`
	Caption        string      `json:"caption,omitempty"`
	YAxisMax       float64     `json:"yAxisMax,omitempty"`
	Points         []PointView `json:"points,omitempty"`
	Error          string      `json:"error,omitempty"`
}

// MoversView is the response body of the movers endpoint.
type MoversView struct {
	League     string      `json:"league"`
	FetchedAt  time.Time   `json:"fetchedAt"`
	WindowDays int         `json:"windowDays"`
	Movers     []MoverView `json:"movers"`
}

// NewMoversView converts computed movers into their display form.
func NewMoversView(m appcurrency.Movers) MoversView {
	view := MoversView{
		League:     m.League,
		FetchedAt:  m.FetchedAt,
		WindowDays: m.WindowDays,
		Movers:     make([]MoverView, 0, len(m.Movers)),
	}
	for _, mover := range m.Movers {
		mv := MoverView{
			Name:        mover.Name,
			Icon:        mover.Icon,
			Change:      mover.TotalChange,
			ChangeLabel: Percent(mover.TotalChange),
			Trend:       Trend(mover.TotalChange),
		}
		if mover.Err != nil {
			mv.Error = moverError(mover.Err)
		} else {
			mv.RollingAverage = Currency(mover.RollingAverage)
			mv.Caption = fmt.Sprintf("%d-day average: %s", m.WindowDays, mv.RollingAverage)
			mv.YAxisMax = YAxisCeiling(mover.Points)
			mv.Points = make([]PointView, len(mover.Points))
			for i, p := range mover.Points {
				mv.Points[i] = PointView{DaysAgo: p.DaysAgo, Value: p.Value}
			}
		}
		view.Movers = append(view.Movers, mv)
	}
	return view
}

func moverError(err error) string {
	var window *stats.WindowError
	if errors.As(err, &window) {
		return fmt.Sprintf("not enough history: %d of %d days", window.Length, window.Window)
	}
	return err.Error()
}

// SeasonView is the display form of one player season.
type SeasonView struct {
	Player string `json:"player"`
	Season int    `json:"season"`
	Rating string `json:"rating"`
	// RatingValue is the unformatted raptor_total.
	RatingValue float64 `json:"ratingValue"`
}

// CareerView summarises a player's seasons.
type CareerView struct {
	Player         string       `json:"player"`
	PlayerID       string       `json:"playerId"`
	Seasons        []SeasonView `json:"seasons"`
	Best           string       `json:"best"`
	Worst          string       `json:"worst"`
	AverageMinutes string       `json:"averageMinutes"`
	FromYear       int          `json:"fromYear"`
	ToYear         int          `json:"toYear"`
	Chart          string       `json:"chart"`
}

// LeaderView is one leaderboard row.
type LeaderView struct {
	Rank int `json:"rank"`
	SeasonView
}

// HonorView names the holder of a metric's best value.
type HonorView struct {
	Field  string `json:"field"`
	Player string `json:"player"`
	Season int    `json:"season"`
	Value  string `json:"value"`
}

// DashboardView is the response body of the dashboard endpoint.
type DashboardView struct {
	Seed    string       `json:"seed"`
	Career  CareerView   `json:"career"`
	Leaders []LeaderView `json:"leaders"`
	Honors  []HonorView  `json:"honors"`
}

// Chart kinds for a career.
const (
	ChartBar  = "bar"
	ChartLine = "line"
)

// minLineSeasons is the season count from which a career is drawn as a line.
const minLineSeasons = 3

// CareerChartKind picks a bar chart for short careers and a line otherwise.
func CareerChartKind(seasons int) string {
	if seasons < minLineSeasons {
		return ChartBar
	}
	return ChartLine
}

func seasonView(s domainplayers.Season) SeasonView {
	total := s.Metric(domainplayers.MetricRaptorTotal)
	return SeasonView{Player: s.PlayerName, Season: s.Year(), Rating: Rating(total), RatingValue: total}
}

// NewCareerView converts a career into its display form.
func NewCareerView(c appplayers.Career) CareerView {
	view := CareerView{
		Player:         c.PlayerName,
		PlayerID:       c.PlayerID,
		Seasons:        make([]SeasonView, len(c.Seasons)),
		Best:           Rating(c.BestRaptor),
		Worst:          Rating(c.WorstRaptor),
		AverageMinutes: Currency(c.AverageMinutes),
		Chart:          CareerChartKind(len(c.Seasons)),
	}
	years := make([]int, len(c.Seasons))
	for i, s := range c.Seasons {
		view.Seasons[i] = seasonView(s)
		years[i] = s.Year()
	}
	view.FromYear, view.ToYear = SeasonBounds(years)
	return view
}

// NewDashboardView converts a dashboard into its display form.
func NewDashboardView(d appplayers.Dashboard) DashboardView {
	view := DashboardView{
		Seed:    strconv.FormatInt(d.Seed, 10),
		Career:  NewCareerView(d.Career),
		Leaders: make([]LeaderView, len(d.Leaders)),
		Honors:  make([]HonorView, len(d.Honors)),
	}
	for i, l := range d.Leaders {
		view.Leaders[i] = LeaderView{Rank: l.Rank, SeasonView: seasonView(l.Season)}
	}
	for i, h := range d.Honors {
		view.Honors[i] = HonorView{
			Field:  h.Field,
			Player: h.Season.PlayerName,
			Season: h.Season.Year(),
			Value:  Rating(h.Value),
		}
	}
	return view
}
