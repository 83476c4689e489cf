package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrDataUnavailable means no analysis dataset could be located or loaded.
	// Callers degrade to empty/zeroed results rather than failing the request.
	ErrDataUnavailable = errors.New("analysis dataset unavailable")

	// ErrSchema means the loaded table is missing a column an aggregation
	// requires, or a caller asked for an unknown grouping dimension.
	ErrSchema = errors.New("dataset schema mismatch")

	// ErrComputation means a value could not be coerced to its declared type.
	// Aggregations never return partial results on this error.
	ErrComputation = errors.New("metric computation failed")
)

// Error constructors with context
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: required column %q not present", ErrSchema, column)
}

func NewUnknownDimensionError(dimension string) error {
	return fmt.Errorf("%w: unknown grouping dimension %q", ErrSchema, dimension)
}

func NewCoercionError(column string, row int, raw string) error {
	return fmt.Errorf("%w: column %q row %d: cannot coerce %q to numeric", ErrComputation, column, row, raw)
}

// Error checking helpers
func IsDataUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}

func IsComputationError(err error) bool {
	return errors.Is(err, ErrComputation)
}
