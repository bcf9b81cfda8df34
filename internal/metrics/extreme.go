package metrics

import "github.com/san-kum/hookeslaw/internal/physics"

type Extreme struct {
	name    string
	field   func(physics.Snapshot) float64
	better  func(a, b float64) bool
	value   float64
	samples int
}

func NewMax(name string, field func(physics.Snapshot) float64) *Extreme {
	return &Extreme{name: name, field: field, better: func(a, b float64) bool { return a > b }}
}

func NewMin(name string, field func(physics.Snapshot) float64) *Extreme {
	return &Extreme{name: name, field: field, better: func(a, b float64) bool { return a < b }}
}

func (e *Extreme) Name() string { return e.name }

func (e *Extreme) Observe(s physics.Snapshot) {
	v := e.field(s)
	if e.samples == 0 || e.better(v, e.value) {
		e.value = v
	}
	e.samples++
}

func (e *Extreme) Value() float64 { return e.value }

func (e *Extreme) Reset() {
	e.value = 0
	e.samples = 0
}
