package reactive

import (
	"cmp"
	"fmt"
	"slices"
)

// Listener receives the new and previous value of a cell.
type Listener[T any] func(value, old T)

// Readable is the read side of a cell, handed to collaborators that observe
// the model but must not write it.
type Readable[T any] interface {
	Get() T
	Subscribe(fn Listener[T]) (unsubscribe func())
}

// Source is a Readable that derived cells can depend on. Only cells from
// this package satisfy it.
type Source[T any] interface {
	Readable[T]
	node
}

type listenerEntry[T any] struct {
	fn      Listener[T]
	removed bool
}

type listeners[T any] struct {
	entries   []*listenerEntry[T]
	notifying bool
}

func (l *listeners[T]) add(fn Listener[T]) func() {
	e := &listenerEntry[T]{fn: fn}
	l.entries = append(l.entries, e)
	return func() {
		if e.removed {
			return
		}
		e.removed = true
		l.entries = slices.DeleteFunc(l.entries, func(x *listenerEntry[T]) bool { return x == e })
	}
}

func (l *listeners[T]) notify(value, old T) {
	l.notifying = true
	defer func() { l.notifying = false }()

	// Snapshot so listeners may unsubscribe while being notified.
	for _, e := range slices.Clone(l.entries) {
		if !e.removed {
			e.fn(value, old)
		}
	}
}

func (l *listeners[T]) count() int { return len(l.entries) }

// Option configures a Value at construction.
type Option[T comparable] func(*Value[T])

// WithRange rejects writes outside r.
func WithRange[T cmp.Ordered](r Range[T]) Option[T] {
	return func(v *Value[T]) {
		v.validators = append(v.validators, func(x T) error {
			if !r.Contains(x) {
				return fmt.Errorf("%w: %v outside %v", ErrOutOfRange, x, r)
			}
			return nil
		})
	}
}

// WithValidValues rejects writes of anything but the listed values.
func WithValidValues[T comparable](values ...T) Option[T] {
	allowed := slices.Clone(values)
	return func(v *Value[T]) {
		v.validators = append(v.validators, func(x T) error {
			if !slices.Contains(allowed, x) {
				return fmt.Errorf("%w: %v not in %v", ErrInvalidValue, x, allowed)
			}
			return nil
		})
	}
}

// Value is a mutable cell with change notification.
type Value[T comparable] struct {
	value      T
	initial    T
	old        T
	validators []func(T) error
	deps       []node
	listeners  listeners[T]
}

// NewValue creates a cell holding initial. It fails if initial does not
// pass the cell's own validation.
func NewValue[T comparable](initial T, opts ...Option[T]) (*Value[T], error) {
	v := &Value[T]{value: initial, initial: initial}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.Validate(initial); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Value[T]) Get() T { return v.value }

func (v *Value[T]) Initial() T { return v.initial }

// Validate reports whether x would be accepted by Set.
func (v *Value[T]) Validate(x T) error {
	for _, check := range v.validators {
		if err := check(x); err != nil {
			return err
		}
	}
	return nil
}

// Set writes x and notifies before returning.
func (v *Value[T]) Set(x T) error {
	b := NewBatch()
	if err := v.Stage(b, x); err != nil {
		return err
	}
	b.Flush()
	return nil
}

// Stage writes x and recomputes dependents, leaving notification to b.
// A rejected write leaves the cell unchanged.
func (v *Value[T]) Stage(b *Batch, x T) error {
	if v.listeners.notifying {
		return ErrCycle
	}
	if err := v.Validate(x); err != nil {
		return err
	}
	if x == v.value {
		return nil
	}
	b.touch(v)
	v.value = x
	b.propagate(v)
	return nil
}

// Reset restores the construction-time value.
func (v *Value[T]) Reset() {
	// initial was validated by NewValue, so this cannot fail.
	_ = v.Set(v.initial)
}

// ResetIn restores the construction-time value as part of b.
func (v *Value[T]) ResetIn(b *Batch) {
	_ = v.Stage(b, v.initial)
}

func (v *Value[T]) Subscribe(fn Listener[T]) func() {
	return v.listeners.add(fn)
}

// Listeners returns the number of active subscriptions.
func (v *Value[T]) Listeners() int { return v.listeners.count() }

// ReadOnly returns a view of v that can be read, observed and derived
// from, but not written.
func (v *Value[T]) ReadOnly() Source[T] { return view[T]{v} }

func (v *Value[T]) level() int          { return 0 }
func (v *Value[T]) dependents() []node  { return v.deps }
func (v *Value[T]) addDependent(n node) { v.deps = append(v.deps, n) }
func (v *Value[T]) recompute() bool     { return false }
func (v *Value[T]) mark()               { v.old = v.value }

func (v *Value[T]) flush() {
	if v.value != v.old {
		v.listeners.notify(v.value, v.old)
	}
}

// view is the read side of a Value.
type view[T comparable] struct {
	v *Value[T]
}

func (r view[T]) Get() T                          { return r.v.Get() }
func (r view[T]) Subscribe(fn Listener[T]) func() { return r.v.Subscribe(fn) }
func (r view[T]) level() int                      { return r.v.level() }
func (r view[T]) dependents() []node              { return r.v.dependents() }
func (r view[T]) addDependent(n node)             { r.v.addDependent(n) }
func (r view[T]) recompute() bool                 { return r.v.recompute() }
func (r view[T]) mark()                           { r.v.mark() }
func (r view[T]) flush()                          { r.v.flush() }
