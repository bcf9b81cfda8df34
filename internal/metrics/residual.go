package metrics

import (
	"math"

	"github.com/san-kum/hookeslaw/internal/physics"
)

// HookeResidual is the largest |F - k*x| seen. Settled states keep it at
// rounding level.
type HookeResidual struct {
	maxResidual float64
}

func NewHookeResidual() *HookeResidual { return &HookeResidual{} }

func (h *HookeResidual) Name() string { return "hooke_residual" }

func (h *HookeResidual) Observe(s physics.Snapshot) {
	r := math.Abs(s.AppliedForce - s.SpringConstant*s.Displacement)
	h.maxResidual = math.Max(h.maxResidual, r)
}

func (h *HookeResidual) Value() float64 { return h.maxResidual }

func (h *HookeResidual) Reset() { h.maxResidual = 0 }

// EnergyResidual is the largest |PE - F*x/2| seen, the work done by the
// applied force against the stored energy.
type EnergyResidual struct {
	maxResidual float64
}

func NewEnergyResidual() *EnergyResidual { return &EnergyResidual{} }

func (e *EnergyResidual) Name() string { return "energy_residual" }

func (e *EnergyResidual) Observe(s physics.Snapshot) {
	r := math.Abs(s.PotentialEnergy - 0.5*s.AppliedForce*s.Displacement)
	e.maxResidual = math.Max(e.maxResidual, r)
}

func (e *EnergyResidual) Value() float64 { return e.maxResidual }

func (e *EnergyResidual) Reset() { e.maxResidual = 0 }
