package reactive

import "sort"

// node is implemented by every cell so a Batch can order and flush it.
type node interface {
	level() int
	dependents() []node
	addDependent(n node)
	recompute() bool
	mark()
	flush()
}

// Batch collects the cells touched by a group of writes. Nothing is
// notified until Flush, so listeners only ever observe settled state.
type Batch struct {
	touched []node
	seen    map[node]struct{}
}

func NewBatch() *Batch {
	return &Batch{seen: make(map[node]struct{})}
}

func (b *Batch) touch(n node) {
	if _, ok := b.seen[n]; ok {
		return
	}
	b.seen[n] = struct{}{}
	n.mark()
	b.touched = append(b.touched, n)
}

// propagate recomputes everything downstream of n.
func (b *Batch) propagate(n node) {
	for _, d := range n.dependents() {
		b.touch(d)
		if d.recompute() {
			b.propagate(d)
		}
	}
}

// Len returns the number of cells touched so far.
func (b *Batch) Len() int { return len(b.touched) }

// Flush notifies the listeners of every touched cell whose value differs
// from the one it held when the batch first touched it. Sources fire before
// the cells derived from them; ties keep the order of first touch.
func (b *Batch) Flush() {
	touched := b.touched
	b.touched = nil
	b.seen = make(map[node]struct{})

	sort.SliceStable(touched, func(i, j int) bool {
		return touched[i].level() < touched[j].level()
	})
	for _, n := range touched {
		n.flush()
	}
}
