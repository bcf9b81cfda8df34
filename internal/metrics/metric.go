// Package metrics summarizes the settled spring states recorded by a sweep.
package metrics

import "github.com/san-kum/hookeslaw/internal/physics"

// Metric folds a sequence of snapshots into one number.
type Metric interface {
	Name() string
	Observe(s physics.Snapshot)
	Value() float64
	Reset()
}

// Default returns the metrics stored with every run.
func Default() []Metric {
	force := func(s physics.Snapshot) float64 { return s.AppliedForce }
	disp := func(s physics.Snapshot) float64 { return s.Displacement }
	return []Metric{
		NewMax("max_force", force),
		NewMin("min_force", force),
		NewMax("max_displacement", disp),
		NewMin("min_displacement", disp),
		NewMax("max_energy", func(s physics.Snapshot) float64 { return s.PotentialEnergy }),
		NewHookeResidual(),
		NewEnergyResidual(),
	}
}

// Summarize resets ms, observes every snapshot and returns the values by
// name. No snapshots yields an empty map.
func Summarize(snaps []physics.Snapshot, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	if len(snaps) == 0 {
		return out
	}
	for _, m := range ms {
		m.Reset()
		for _, s := range snaps {
			m.Observe(s)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
