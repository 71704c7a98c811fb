package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(values ...float64) []TimeSeriesPoint {
	out := make([]TimeSeriesPoint, len(values))
	for i, v := range values {
		out[i] = TimeSeriesPoint{DaysAgo: len(values) - 1 - i, Value: v}
	}
	return out
}

func TestRollingAverageUsesTrailingSlice(t *testing.T) {
	s := series(100, 1, 2, 3, 4)

	tests := []struct {
		window int
		want   float64
	}{
		{window: 1, want: 4},
		{window: 2, want: 3.5},
		{window: 4, want: 2.5},
		{window: 5, want: 22},
	}
	for _, tt := range tests {
		got, err := RollingAverage(tt.window, s)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "window %d", tt.window)
	}
}

func TestRollingAverageConstantSeries(t *testing.T) {
	s := series(7.25, 7.25, 7.25, 7.25, 7.25, 7.25)
	for n := 1; n <= len(s); n++ {
		got, err := RollingAverage(n, s)
		require.NoError(t, err)
		assert.Equal(t, 7.25, got)
	}
}

func TestRollingAverageDoesNotReorder(t *testing.T) {
	// Newest-first input: the trailing slice holds the oldest samples.
	s := []TimeSeriesPoint{{DaysAgo: 0, Value: 10}, {DaysAgo: 1, Value: 20}, {DaysAgo: 2, Value: 30}}
	got, err := RollingAverage(2, s)
	require.NoError(t, err)
	assert.Equal(t, 25.0, got)
}

func TestRollingAverageRejectsBadWindow(t *testing.T) {
	_, err := RollingAverage(0, series(1, 2))
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = RollingAverage(3, series(1, 2))
	var wErr *WindowError
	require.True(t, errors.As(err, &wErr))
	assert.Equal(t, 3, wErr.Window)
	assert.Equal(t, 2, wErr.Length)
	assert.True(t, IsInputError(err))
}

func TestTail(t *testing.T) {
	s := series(1, 2, 3)
	assert.Len(t, Tail(s, 2), 2)
	assert.Equal(t, 3.0, Tail(s, 2)[1].Value)
	assert.Len(t, Tail(s, 10), 3)
	assert.Nil(t, Tail(s, 0))
}

func TestSortOldestFirst(t *testing.T) {
	in := []TimeSeriesPoint{{DaysAgo: 0, Value: 1}, {DaysAgo: 2, Value: 3}, {DaysAgo: 1, Value: 2}}
	out := SortOldestFirst(in)
	assert.Equal(t, []TimeSeriesPoint{{DaysAgo: 2, Value: 3}, {DaysAgo: 1, Value: 2}, {DaysAgo: 0, Value: 1}}, out)
	assert.Equal(t, 0, in[0].DaysAgo, "input must not be modified")
}
