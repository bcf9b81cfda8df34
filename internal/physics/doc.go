// Package physics models ideal linear springs obeying Hooke's law, F = kx.
//
// Each [Spring] owns three coupled quantities (applied force, spring
// constant, displacement) and the cells derived from them (length, spring
// force, potential energy). Springs are arranged into systems that share
// the [System] contract:
//
//   - [SingleSpringSystem]: one spring
//   - [SeriesSystem]: two springs end to end, sharing the applied force
//   - [ParallelSystem]: two springs side by side, sharing the displacement
//
// A [RoboticArm] drags the free end of a system's equivalent spring.
//
// # Propagation
//
// Every setter names the quantity that drives the change. The setter
// computes all dependent quantities of every affected spring from F = kx,
// validates them, and writes each one exactly once before any listener
// runs. A setter that returns an error has changed nothing.
//
//	sys, _ := physics.NewSeriesSystem(physics.DefaultSeriesConfig())
//	_ = sys.EquivalentSpring().SetAppliedForce(50)
//	sys.Top().Displacement().Get() // 0.25
//
// # Errors
//
// Invalid parameters fail construction with a [*ConfigurationError].
// Arguments outside a declared range, or writes that would push a
// dependent quantity out of its range, fail with a [*RangeError].
package physics
