// Package render turns computed aggregates into response views and chart pages.
package render

import (
	"github.com/shopspring/decimal"

	"statboard-service/internal/stats"
)

// Trend classes for a percentage change.
const (
	TrendPositive = "positive"
	TrendNegative = "negative"
	TrendFlat     = "flat"
)

const (
	trendThreshold  = 0.0001
	currencyPlaces  = 3
	ratingPlaces    = 4
	headroomPercent = 5
)

// Trend classifies a change; values within the threshold of zero are flat.
func Trend(change float64) string {
	switch {
	case change > trendThreshold:
		return TrendPositive
	case change < -trendThreshold:
		return TrendNegative
	}
	return TrendFlat
}

// Currency formats a price or change with at most three fraction digits.
func Currency(v float64) string {
	return decimal.NewFromFloat(v).Round(currencyPlaces).String()
}

// Rating formats a player rating with at most four fraction digits.
func Rating(v float64) string {
	return decimal.NewFromFloat(v).Round(ratingPlaces).String()
}

// Percent formats a change as shown next to a mover.
func Percent(v float64) string {
	return Currency(v) + "%"
}

// YAxisCeiling returns the series maximum plus headroom. Non-positive series get zero.
func YAxisCeiling(points []stats.TimeSeriesPoint) float64 {
	var peak decimal.Decimal
	for _, p := range points {
		if v := decimal.NewFromFloat(p.Value); v.GreaterThan(peak) {
			peak = v
		}
	}
	headroom := decimal.NewFromInt(100 + headroomPercent).Div(decimal.NewFromInt(100))
	return peak.Mul(headroom).Round(currencyPlaces).InexactFloat64()
}

// SeasonBounds pads the season year range by one year on each side.
func SeasonBounds(years []int) (int, int) {
	if len(years) == 0 {
		return 0, 0
	}
	lo, hi := years[0], years[0]
	for _, y := range years[1:] {
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo - 1, hi + 1
}
