package stats

import "reflect"

// GroupContiguousByKey returns the run of adjacent rows around anchor that
// share the anchor's keyField value, in original order. Rows with the same
// key that are separated from the run by another key are not included; use
// ValidateContiguous or GroupByKey when the source order is not trusted.
func GroupContiguousByKey[R Record](rows []R, anchor int, keyField string) ([]R, error) {
	start, end, _, err := contiguousRun(rows, anchor, keyField)
	if err != nil {
		return nil, err
	}
	out := make([]R, end-start)
	copy(out, rows[start:end])
	return out, nil
}

// ValidateContiguous checks that no row outside the anchor's run carries the
// same key. It scans every row and returns *PreconditionViolationError on the
// first stray match.
func ValidateContiguous[R Record](rows []R, anchor int, keyField string) error {
	start, end, key, err := contiguousRun(rows, anchor, keyField)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i >= start && i < end {
			continue
		}
		if v, ok := row.Lookup(keyField); ok && v == key {
			return &PreconditionViolationError{Field: keyField, Key: key, Start: start, End: end, Stray: i}
		}
	}
	return nil
}

// GroupByKey indexes every row by its keyField value. Rows keep their
// original relative order within each group. Key values must be comparable;
// a slice or map key returns *KeyTypeError.
func GroupByKey[R Record](rows []R, keyField string) (map[any][]R, error) {
	index := make(map[any][]R)
	for i, row := range rows {
		key, err := groupKey(row, keyField, i)
		if err != nil {
			return nil, err
		}
		index[key] = append(index[key], row)
	}
	return index, nil
}

func contiguousRun[R Record](rows []R, anchor int, keyField string) (int, int, any, error) {
	if anchor < 0 || anchor >= len(rows) {
		return 0, 0, nil, &IndexError{Index: anchor, Length: len(rows)}
	}
	key, err := groupKey(rows[anchor], keyField, anchor)
	if err != nil {
		return 0, 0, nil, err
	}
	start := anchor
	for start > 0 && matches(rows[start-1], keyField, key) {
		start--
	}
	end := anchor + 1
	for end < len(rows) && matches(rows[end], keyField, key) {
		end++
	}
	return start, end, key, nil
}

func matches(r Record, field string, key any) bool {
	v, ok := r.Lookup(field)
	return ok && v == key
}

// groupKey looks up a grouping key and rejects values that cannot be
// compared with ==. Rows whose key has a different dynamic type simply
// never match the anchor.
func groupKey(r Record, field string, index int) (any, error) {
	key, ok := r.Lookup(field)
	if !ok {
		return nil, &MissingFieldError{Field: field, Index: index}
	}
	if t := reflect.TypeOf(key); t != nil && !t.Comparable() {
		return nil, &KeyTypeError{Field: field, Index: index, Value: key}
	}
	return key, nil
}
