package reactive

import (
	"cmp"
	"fmt"
)

// Range is a closed interval [Min, Max].
type Range[T cmp.Ordered] struct {
	Min T
	Max T
}

func NewRange[T cmp.Ordered](min, max T) Range[T] {
	return Range[T]{Min: min, Max: max}
}

func (r Range[T]) Valid() bool { return r.Min <= r.Max }

func (r Range[T]) Contains(v T) bool {
	return v >= r.Min && v <= r.Max
}

// ContainsRange reports whether other lies entirely inside r.
func (r Range[T]) ContainsRange(other Range[T]) bool {
	return other.Min >= r.Min && other.Max <= r.Max
}

// Constrain clamps v into the range.
func (r Range[T]) Constrain(v T) T {
	return min(max(v, r.Min), r.Max)
}

func (r Range[T]) String() string {
	return fmt.Sprintf("[%v, %v]", r.Min, r.Max)
}

// Length returns Max - Min for float ranges.
func Length(r Range[float64]) float64 {
	return r.Max - r.Min
}
