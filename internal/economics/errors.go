package economics

import (
	"errors"
	"fmt"
)

// Calculation rejections. None of these escape as panics; every calculator
// entry point returns a nil result together with one of them.
var (
	ErrMissingArgument   = errors.New("missing argument")
	ErrUnparseableNumber = errors.New("unparseable number")
	ErrInvalidBounds     = errors.New("invalid market bounds")
	ErrInvalidSide       = errors.New("invalid order side")
	ErrInvalidTopology   = errors.New("invalid market topology")
)

// FieldError ties a rejection to the input field that caused it.
type FieldError struct {
	Field string
	Input string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Input, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Reason maps a calculation error to a stable label used in metrics and API responses.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingArgument):
		return "missing_argument"
	case errors.Is(err, ErrUnparseableNumber):
		return "unparseable_number"
	case errors.Is(err, ErrInvalidBounds):
		return "invalid_bounds"
	case errors.Is(err, ErrInvalidSide):
		return "invalid_side"
	case errors.Is(err, ErrInvalidTopology):
		return "invalid_topology"
	default:
		return "unknown"
	}
}

// IsRejection reports whether err is one of the calculator's soft failures.
func IsRejection(err error) bool {
	r := Reason(err)
	return r != "" && r != "unknown"
}
