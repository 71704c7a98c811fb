package stats

import "math"

// Extremum returns the max or min value of field across rows.
func Extremum[R Record](rows []R, field string, kind Kind) (float64, error) {
	if len(rows) == 0 {
		return 0, &EmptyInputError{Op: kind.String()}
	}
	values, err := numbers(rows, field)
	if err != nil {
		return 0, err
	}
	best := values[0]
	for _, v := range values[1:] {
		if kind.better(v, best) {
			best = v
		}
	}
	return best, nil
}

// Mean returns the average of field across rows. Each value is truncated
// toward zero to an integer before summing, so fractional parts are lost.
func Mean[R Record](rows []R, field string) (float64, error) {
	if len(rows) == 0 {
		return 0, &EmptyInputError{Op: "mean"}
	}
	values, err := numbers(rows, field)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, v := range values {
		total += math.Trunc(v)
	}
	return total / float64(len(values)), nil
}
