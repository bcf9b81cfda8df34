package physics

import "github.com/san-kum/hookeslaw/internal/reactive"

// RoboticArm grabs the free end of a spring and pulls it to a position.
// It is the drag collaborator for a system's equivalent spring: the grip
// follows the spring's length, and dragging is limited to what is
// reachable at the current stiffness.
type RoboticArm struct {
	spring *Spring
	right  float64
}

// NewRoboticArm attaches an arm whose base sits at right.
func NewRoboticArm(s *Spring, right float64) *RoboticArm {
	return &RoboticArm{spring: s, right: right}
}

// Left is the position of the grip, which is the spring's free end.
func (a *RoboticArm) Left() *reactive.Derived[float64] { return a.spring.Length() }

// Right is the fixed base of the arm.
func (a *RoboticArm) Right() float64 { return a.right }

// Range is the interval the grip can be dragged in without the spring
// needing more force than its applied force range allows.
func (a *RoboticArm) Range() reactive.Range[float64] {
	eq := a.spring.EquilibriumPosition()
	return reactive.NewRange(eq+a.spring.MinDisplacement(), eq+a.spring.MaxDisplacement())
}

// DragTo moves the grip as close to pos as the current range allows.
func (a *RoboticArm) DragTo(pos float64) error {
	x := a.Range().Constrain(pos) - a.spring.EquilibriumPosition()
	return a.spring.SetDisplacement(snap(x, a.spring.displacementRange))
}
