package stats

import "sort"

// Order selects the direction of a ranking.
type Order int

const (
	Descending Order = iota
	Ascending
)

// TopNBySortKey sorts a copy of rows by sortField and returns the first n.
// The sort is not stable: rows with equal keys come back in no particular
// order. n larger than the row count returns every row.
func TopNBySortKey[R Record](rows []R, sortField string, n int, order Order) ([]R, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	values, err := numbers(rows, sortField)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		if order == Ascending {
			return values[idx[a]] < values[idx[b]]
		}
		return values[idx[a]] > values[idx[b]]
	})
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]R, n)
	for i := 0; i < n; i++ {
		out[i] = rows[idx[i]]
	}
	return out, nil
}

// SuperlativeByField returns the row holding the max or min value of field.
// Ties resolve to the earliest row.
func SuperlativeByField[R Record](rows []R, field string, kind Kind) (R, error) {
	var zero R
	if len(rows) == 0 {
		return zero, &EmptyInputError{Op: "superlative"}
	}
	values, err := numbers(rows, field)
	if err != nil {
		return zero, err
	}
	best := 0
	for i := 1; i < len(values); i++ {
		if kind.better(values[i], values[best]) {
			best = i
		}
	}
	return rows[best], nil
}
