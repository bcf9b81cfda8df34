// Package viz provides the terminal front end for the spring scenes.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: interactive application over one scene at a time
//   - [Renderer]: draws a scene's systems as coils on a [Canvas]
//   - [Coil]: parametric spring geometry, shared with the SVG export
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	1 2 3    - Intro / Systems / Energy
//	Tab      - Cycle applied force, spring constant, displacement
//	Up/Down  - Adjust the controlled quantity by one step
//	S        - Cycle the target spring
//	R        - Reset the scene
//	?        - Show help overlay
//
// The spring ends are eased toward the model with a damped spring from
// harmonica, so large jumps are animated rather than drawn instantly.
package viz
