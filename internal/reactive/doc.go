// Package reactive provides the observable value cells the spring model is
// built from.
//
//   - [Value]: a mutable cell with change notification and validation
//   - [Derived]: a read-only cell recomputed from one or more sources
//   - [Range]: a closed interval used to validate numeric cells
//   - [Batch]: defers notifications until a group of writes has settled
//
// Dependencies form an explicit graph. Writing a [Value] recomputes every
// derived cell that depends on it, transitively, before any listener runs.
// Listeners then fire in dependency order: sources first, derived cells
// after, each cell at most once per batch.
//
// # Example
//
//	force, _ := reactive.NewValue(0.0, reactive.WithRange(reactive.NewRange(-100.0, 100.0)))
//	reaction := reactive.Derive1(force, func(f float64) float64 { return -f })
//	reaction.Subscribe(func(v, old float64) { fmt.Println(v) })
//	_ = force.Set(50) // prints -50
//
// # Thread Safety
//
// Cells are NOT thread-safe. The model is single-threaded by construction:
// every write settles synchronously before Set returns.
package reactive
