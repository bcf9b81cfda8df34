package reactive

// Derived is a read-only cell whose value is a pure function of its
// sources. It is recomputed eagerly whenever a source is written.
type Derived[T comparable] struct {
	value     T
	old       T
	compute   func() T
	depth     int
	deps      []node
	listeners listeners[T]
}

func newDerived[T comparable](compute func() T, sources ...node) *Derived[T] {
	d := &Derived[T]{compute: compute, value: compute()}
	for _, s := range sources {
		d.depth = max(d.depth, s.level()+1)
		s.addDependent(d)
	}
	return d
}

// Derive1 creates a cell computed from one source.
func Derive1[A any, T comparable](a Source[A], fn func(A) T) *Derived[T] {
	return newDerived(func() T { return fn(a.Get()) }, a)
}

// Derive2 creates a cell computed from two sources.
func Derive2[A, B any, T comparable](a Source[A], b Source[B], fn func(A, B) T) *Derived[T] {
	return newDerived(func() T { return fn(a.Get(), b.Get()) }, a, b)
}

// Derive3 creates a cell computed from three sources.
func Derive3[A, B, C any, T comparable](a Source[A], b Source[B], c Source[C], fn func(A, B, C) T) *Derived[T] {
	return newDerived(func() T { return fn(a.Get(), b.Get(), c.Get()) }, a, b, c)
}

func (d *Derived[T]) Get() T { return d.value }

func (d *Derived[T]) Subscribe(fn Listener[T]) func() {
	return d.listeners.add(fn)
}

// Listeners returns the number of active subscriptions.
func (d *Derived[T]) Listeners() int { return d.listeners.count() }

func (d *Derived[T]) level() int          { return d.depth }
func (d *Derived[T]) dependents() []node  { return d.deps }
func (d *Derived[T]) addDependent(n node) { d.deps = append(d.deps, n) }
func (d *Derived[T]) mark()               { d.old = d.value }

func (d *Derived[T]) recompute() bool {
	next := d.compute()
	if next == d.value {
		return false
	}
	d.value = next
	return true
}

func (d *Derived[T]) flush() {
	if d.value != d.old {
		d.listeners.notify(d.value, d.old)
	}
}
