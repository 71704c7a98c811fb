package stats

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindow is returned when a rolling window is not positive.
	ErrInvalidWindow = errors.New("stats: window size must be positive")
	// ErrNegativeCount is returned when a top-N count is negative.
	ErrNegativeCount = errors.New("stats: count must not be negative")
)

// EmptyInputError reports an aggregate called without any rows.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("stats: %s: empty input", e.Op)
}

// MissingFieldError reports a row that does not carry the requested field.
type MissingFieldError struct {
	Field string
	Index int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("stats: row %d: missing field %q", e.Index, e.Field)
}

// NonNumericFieldError reports a field whose value is not a typed number.
type NonNumericFieldError struct {
	Field string
	Index int
	Value any
}

func (e *NonNumericFieldError) Error() string {
	return fmt.Sprintf("stats: row %d: field %q is not numeric (%T)", e.Index, e.Field, e.Value)
}

// PreconditionViolationError reports rows sharing a key outside the contiguous run.
type PreconditionViolationError struct {
	Field string
	Key   any
	// Start and End bound the contiguous run (End exclusive).
	Start, End int
	// Stray is the index of the first matching row found outside the run.
	Stray int
}

func (e *PreconditionViolationError) Error() string {
	return fmt.Sprintf("stats: rows with %s=%v are not contiguous: run [%d,%d), stray row %d",
		e.Field, e.Key, e.Start, e.End, e.Stray)
}

// WindowError reports a rolling window larger than the series.
type WindowError struct {
	Window int
	Length int
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("stats: window %d exceeds series length %d", e.Window, e.Length)
}

// IndexError reports an anchor index outside the row range.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("stats: index %d out of range [0,%d)", e.Index, e.Length)
}

// KeyTypeError reports a grouping key whose value cannot be compared.
type KeyTypeError struct {
	Field string
	Index int
	Value any
}

func (e *KeyTypeError) Error() string {
	return fmt.Sprintf("stats: row %d: key field %q has non-comparable type %T", e.Index, e.Field, e.Value)
}

// IsInputError reports whether err was caused by rows unsuitable for an aggregate.
func IsInputError(err error) bool {
	var (
		empty   *EmptyInputError
		missing *MissingFieldError
		numeric *NonNumericFieldError
		window  *WindowError
		index   *IndexError
		keyType *KeyTypeError
	)
	switch {
	case errors.As(err, &empty), errors.As(err, &missing), errors.As(err, &numeric),
		errors.As(err, &window), errors.As(err, &index), errors.As(err, &keyType):
		return true
	}
	return errors.Is(err, ErrInvalidWindow) || errors.Is(err, ErrNegativeCount)
}
