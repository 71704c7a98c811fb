package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	colorPositive = "#34d399"
	colorNegative = "#f87171"
	colorFlat     = "#9ca3af"
	colorAverage  = "#fbbf24"
	colorRating   = "#3b82f6"

	moverWidth   = "520px"
	moverHeight  = "320px"
	playerWidth  = "960px"
	playerHeight = "420px"
)

func trendColor(trend string) string {
	switch trend {
	case TrendPositive:
		return colorPositive
	case TrendNegative:
		return colorNegative
	}
	return colorFlat
}

// MoversPage builds one line chart per mover with its rolling average marked.
// Movers that failed are skipped.
func MoversPage(view MoversView) *components.Page {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Currency movers: %s", view.League)
	page.SetLayout(components.PageFlexLayout)

	for _, m := range view.Movers {
		if m.Error != "" || len(m.Points) == 0 {
			continue
		}
		page.AddCharts(moverChart(m))
	}
	return page
}

func moverChart(m MoverView) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  moverWidth,
			Height: moverHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: m.Name, Subtitle: m.ChangeLabel + "  " + m.Caption}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "days ago"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: m.YAxisMax}),
	)

	xAxis := make([]string, len(m.Points))
	data := make([]opts.LineData, len(m.Points))
	for i, p := range m.Points {
		xAxis[i] = strconv.Itoa(p.DaysAgo)
		data[i] = opts.LineData{Value: p.Value}
	}
	avg, _ := strconv.ParseFloat(m.RollingAverage, 64)

	line.SetXAxis(xAxis).AddSeries(m.Name, data,
		charts.WithLineStyleOpts(opts.LineStyle{Color: trendColor(m.Trend), Width: 2}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "average", YAxis: avg}),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{Label: &opts.Label{Show: opts.Bool(true), Color: colorAverage}}),
	)
	return line
}

// PlayersPage builds the career chart and the leaderboard chart.
func PlayersPage(view DashboardView) *components.Page {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("RAPTOR: %s", view.Career.Player)
	page.AddCharts(careerChart(view.Career), leaderChart(view.Leaders))
	return page
}

func playerInit() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Theme:  types.ThemeWesteros,
		Width:  playerWidth,
		Height: playerHeight,
	})
}

// careerYears lists every year of the padded range so gaps stay visible.
func careerYears(c CareerView) ([]string, map[int]int) {
	years := make([]string, 0, c.ToYear-c.FromYear+1)
	pos := make(map[int]int, cap(years))
	for y := c.FromYear; y <= c.ToYear; y++ {
		pos[y] = len(years)
		years = append(years, strconv.Itoa(y))
	}
	return years, pos
}

func careerChart(c CareerView) components.Charter {
	years, pos := careerYears(c)
	title := opts.Title{Title: c.Player, Subtitle: fmt.Sprintf("best %s, worst %s", c.Best, c.Worst)}

	if c.Chart == ChartBar {
		data := make([]opts.BarData, len(years))
		for i := range data {
			data[i] = opts.BarData{Value: nil}
		}
		for _, s := range c.Seasons {
			data[pos[s.Season]] = opts.BarData{Value: s.RatingValue}
		}
		bar := charts.NewBar()
		bar.SetGlobalOptions(playerInit(), charts.WithTitleOpts(title),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}))
		bar.SetXAxis(years).AddSeries("raptor_total", data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorRating}))
		return bar
	}

	data := make([]opts.LineData, len(years))
	for i := range data {
		data[i] = opts.LineData{Value: nil}
	}
	for _, s := range c.Seasons {
		data[pos[s.Season]] = opts.LineData{Value: s.RatingValue}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(playerInit(), charts.WithTitleOpts(title),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}))
	line.SetXAxis(years).AddSeries("raptor_total", data,
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorRating, Width: 2}),
		charts.WithLineChartOpts(opts.LineChart{ConnectNulls: opts.Bool(false)}))
	return line
}

func leaderChart(leaders []LeaderView) *charts.Bar {
	labels := make([]string, len(leaders))
	data := make([]opts.BarData, len(leaders))
	for i, l := range leaders {
		labels[i] = fmt.Sprintf("%d. %s %d", l.Rank, l.Player, l.Season)
		data[i] = opts.BarData{Value: l.RatingValue, Name: l.Rating}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(playerInit(),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Top %d seasons by RAPTOR", len(leaders))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 40, Interval: "0"}}),
	)
	bar.SetXAxis(labels).AddSeries("raptor_total", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorRating}))
	return bar
}

// WriteHTML renders a page as a standalone HTML document.
func WriteHTML(w io.Writer, page *components.Page) error {
	return page.Render(w)
}
