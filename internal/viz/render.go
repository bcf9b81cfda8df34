package viz

import (
	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/scene"
)

// forceScale is the drawn arrow length per newton, in metres.
const forceScale = 0.004

// Renderer draws every system of a scene as coils on a braille canvas,
// one horizontal band per system.
type Renderer struct {
	Coil   Coil
	canvas *Canvas
}

func NewRenderer(w, h int) *Renderer {
	return &Renderer{Coil: DefaultCoil(), canvas: NewCanvas(w, h)}
}

func (r *Renderer) Resize(w, h int) {
	if w != r.canvas.Width || h != r.canvas.Height {
		r.canvas = NewCanvas(w, h)
	}
}

// Canvas is the canvas of the last Render.
func (r *Renderer) Canvas() *Canvas { return r.canvas }

// band is the drawing context of one system.
type band struct {
	v      Viewport
	center int // sub-pixel row of the spring axis
	half   int // half height in sub-pixels
	amp    float64
}

func (b band) x(r *Renderer, m float64) int {
	x, _ := b.v.Map(Point{X: m * r.Coil.UnitLength})
	return x
}

// Render draws sc with the arm grips at grips, which may lag the model
// while animating. grips lines up with sc.Arms().
func (r *Renderer) Render(sc scene.Scene, grips []float64) string {
	r.canvas.Clear()
	systems, arms := sc.Systems(), sc.Arms()
	if len(systems) == 0 {
		return r.canvas.String()
	}

	right := 0.0
	for _, a := range arms {
		right = max(right, a.Right())
	}
	pxPerMetre := float64(r.canvas.PixelWidth()-4) / right
	bandHeight := r.canvas.PixelHeight() / len(systems)
	amp := r.Coil.AspectRatio * r.Coil.Radius

	vis := sc.Visibility()
	for i, sys := range systems {
		b := band{center: bandHeight*i + bandHeight/2, half: bandHeight / 2}
		b.v = Viewport{
			ScaleX:  pxPerMetre / r.Coil.UnitLength,
			ScaleY:  float64(bandHeight) / (8 * amp),
			OriginX: 2,
			OriginY: b.center,
		}
		b.amp = amp

		grip := arms[i].Left().Get()
		if i < len(grips) {
			grip = grips[i]
		}

		r.drawSystem(sys, b, grip)
		r.drawArm(arms[i], b, grip)

		eq := sys.EquivalentSpring()
		if vis.EquilibriumPosition.Get() {
			r.canvas.DrawDashed(b.x(r, eq.EquilibriumPosition()), b.center-b.half+1, b.center+b.half-1)
		}
		f := eq.AppliedForce().Get()
		top := b.center - b.half/2 - 2
		if vis.AppliedForceVector.Get() {
			r.canvas.DrawArrow(b.x(r, grip), b.x(r, grip+f*forceScale), top)
		}
		if vis.SpringForceVector.Get() {
			r.drawSpringForce(sys, b, grip, components(sc))
		}
		if vis.DisplacementVector.Get() {
			r.canvas.DrawArrow(b.x(r, eq.EquilibriumPosition()), b.x(r, grip), b.center+b.half/2+2)
		}
	}
	return r.canvas.String()
}

func components(sc scene.Scene) bool {
	s, ok := sc.(*scene.Systems)
	return ok && s.SpringForceRepresentation.Get() == scene.RepresentationComponents
}

func (r *Renderer) drawCoil(b band, left, length, yOff float64) {
	front, back := r.Coil.Paths(length)
	for _, path := range append(back, front...) {
		shifted := make([]Point, len(path))
		for i, p := range path {
			shifted[i] = Point{X: p.X + left*r.Coil.UnitLength, Y: p.Y + yOff}
		}
		r.canvas.DrawPath(shifted, b.v)
	}
}

func (r *Renderer) drawSystem(sys physics.System, b band, grip float64) {
	eq := sys.EquivalentSpring()
	left := eq.Left()
	wall := b.x(r, left)
	r.canvas.DrawLine(wall, b.center-b.half+1, wall, b.center+b.half-1)

	switch s := sys.(type) {
	case *physics.SeriesSystem:
		// Keep the split between the springs while the grip catches up.
		ratio := 1.0
		if total := eq.Length().Get() - left; total > 0 {
			ratio = (grip - left) / total
		}
		topLen := (s.Top().Length().Get() - left) * ratio
		r.drawCoil(b, left, topLen, 0)
		r.drawCoil(b, left+topLen, grip-left-topLen, 0)
	case *physics.ParallelSystem:
		off := 1.5 * b.amp
		r.drawCoil(b, left, grip-left, off)
		r.drawCoil(b, left, grip-left, -off)
		_, y0 := b.v.Map(Point{Y: off})
		_, y1 := b.v.Map(Point{Y: -off})
		r.canvas.DrawLine(b.x(r, grip), y0, b.x(r, grip), y1)
	default:
		r.drawCoil(b, left, grip-left, 0)
	}
}

func (r *Renderer) drawSpringForce(sys physics.System, b band, grip float64, split bool) {
	y := b.center - b.half/2 + 2
	if !split || sys.Kind() == physics.KindSingle {
		f := sys.EquivalentSpring().SpringForce().Get()
		r.canvas.DrawArrow(b.x(r, grip), b.x(r, grip+f*forceScale), y)
		return
	}
	for i, s := range sys.Springs() {
		end := grip
		if sys.Kind() == physics.KindSeries && i == 0 {
			end = s.Length().Get()
		}
		f := s.SpringForce().Get()
		r.canvas.DrawArrow(b.x(r, end), b.x(r, end+f*forceScale), y+3*i)
	}
}

func (r *Renderer) drawArm(a *physics.RoboticArm, b band, grip float64) {
	gx, base := b.x(r, grip), b.x(r, a.Right())
	r.canvas.DrawLine(gx, b.center, base, b.center)
	r.canvas.DrawLine(gx, b.center-3, gx, b.center+3)
	r.canvas.DrawLine(base, b.center-6, base, b.center+6)
}
