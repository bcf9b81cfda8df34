package physics

import (
	"errors"
	"fmt"

	"github.com/san-kum/hookeslaw/internal/reactive"
)

// Domain errors for spring operations.
var (
	// ErrConfiguration indicates invalid construction-time parameters.
	ErrConfiguration = errors.New("physics: invalid configuration")

	// ErrOutOfRange indicates a setter argument, or a quantity it implies,
	// outside its declared range.
	ErrOutOfRange = reactive.ErrOutOfRange

	// ErrReadOnly indicates a write to a quantity that is derived by the
	// owning system, such as the equivalent spring constant.
	ErrReadOnly = errors.New("physics: quantity is derived and cannot be set")

	// ErrSettling indicates a setter called from a listener while the
	// spring's system was still applying another change.
	ErrSettling = errors.New("physics: system is settling another change")
)

// ConfigurationError describes which parameter made construction fail.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("physics: invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configError(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// RangeError reports a value outside the range of the named quantity.
// A call that fails with RangeError leaves the model unchanged.
type RangeError struct {
	Quantity Quantity
	Value    float64
	Range    reactive.Range[float64]
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("physics: %s %g out of range %v", e.Quantity, e.Value, e.Range)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
