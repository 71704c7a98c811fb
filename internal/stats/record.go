// Package stats holds the aggregation and grouping functions shared by the
// currency and player pipelines. Every function is pure and safe for
// concurrent use on read-only input.
package stats

// Record is a row whose fields can be looked up by name.
type Record interface {
	Lookup(field string) (any, bool)
}

// Row is a map-backed Record for ad hoc data.
type Row map[string]any

// Lookup implements Record.
func (r Row) Lookup(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// Kind selects which end of the value range an extremum looks for.
type Kind int

const (
	Max Kind = iota
	Min
)

func (k Kind) String() string {
	if k == Min {
		return "min"
	}
	return "max"
}

// better reports whether candidate beats current for the kind.
func (k Kind) better(candidate, current float64) bool {
	if k == Min {
		return candidate < current
	}
	return candidate > current
}

// Number returns the typed numeric value of field on the row at index.
// Strings are rejected even when they would parse; typing happens at ingestion.
func Number(r Record, field string, index int) (float64, error) {
	raw, ok := r.Lookup(field)
	if !ok {
		return 0, &MissingFieldError{Field: field, Index: index}
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, &NonNumericFieldError{Field: field, Index: index, Value: raw}
	}
}

func numbers[R Record](rows []R, field string) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		v, err := Number(row, field, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
