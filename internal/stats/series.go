package stats

import "sort"

// TimeSeriesPoint is one daily sample of a history series.
type TimeSeriesPoint struct {
	DaysAgo int     `json:"daysAgo"`
	Value   float64 `json:"value"`
}

// RollingAverage returns the mean of the last window points of series by
// index. The series is used as given; callers keep it oldest-first.
func RollingAverage(window int, series []TimeSeriesPoint) (float64, error) {
	if window <= 0 {
		return 0, ErrInvalidWindow
	}
	if window > len(series) {
		return 0, &WindowError{Window: window, Length: len(series)}
	}
	var acc float64
	for i := len(series) - 1; i > len(series)-1-window; i-- {
		acc += series[i].Value
	}
	return acc / float64(window), nil
}

// Tail returns the last n points of series (all of them when n exceeds the length).
func Tail(series []TimeSeriesPoint, n int) []TimeSeriesPoint {
	if n <= 0 {
		return nil
	}
	if n >= len(series) {
		return series
	}
	return series[len(series)-n:]
}

// SortOldestFirst orders a series by DaysAgo descending, keeping the
// relative order of equal DaysAgo values. The input is not modified.
func SortOldestFirst(series []TimeSeriesPoint) []TimeSeriesPoint {
	out := make([]TimeSeriesPoint, len(series))
	copy(out, series)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysAgo > out[j].DaysAgo
	})
	return out
}
