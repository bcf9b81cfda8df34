package viz

import "math"

type Point struct {
	X, Y float64
}

// Coil is a parametric drawing of a spring: a stretched circle seen from
// the side, with a straight lead at each end. Lengths are in view units;
// UnitLength converts metres of spring length to view units.
type Coil struct {
	Loops          int
	PointsPerLoop  int
	Radius         float64
	AspectRatio    float64 // y:x of the loop radius
	Phase          float64
	DeltaPhase     float64
	LeftEndLength  float64
	RightEndLength float64
	UnitLength     float64
	MinLineWidth   float64
	DeltaLineWidth float64 // per N/m above the minimum spring constant
}

func DefaultCoil() Coil {
	return Coil{
		Loops:          10,
		PointsPerLoop:  40,
		Radius:         10,
		AspectRatio:    4,
		Phase:          math.Pi,
		DeltaPhase:     math.Pi / 2,
		LeftEndLength:  15,
		RightEndLength: 25,
		UnitLength:     200,
		MinLineWidth:   3,
		DeltaLineWidth: 0.005,
	}
}

func (c Coil) NumberOfCoilPoints() int { return c.Loops*c.PointsPerLoop + 1 }

// XScale stretches the loops so the drawn spring spans length metres.
func (c Coil) XScale(length float64) float64 {
	coil := length*c.UnitLength - (c.LeftEndLength + c.RightEndLength)
	return coil / (float64(c.Loops) * c.Radius)
}

func (c Coil) coilPoint(i int, xScale float64) Point {
	t := 2 * math.Pi * float64(i) / float64(c.PointsPerLoop)
	return Point{
		X: (c.LeftEndLength + c.Radius) + c.Radius*math.Cos(t+c.Phase) + xScale*(float64(i)/float64(c.PointsPerLoop))*c.Radius,
		Y: c.AspectRatio * c.Radius * math.Cos(t+c.DeltaPhase+c.Phase),
	}
}

// IsFront reports whether coil point i is on the near side of the loop.
func (c Coil) IsFront(i int) bool {
	t := 2*math.Pi*float64(i)/float64(c.PointsPerLoop) + c.Phase + c.DeltaPhase
	return math.Mod(t, 2*math.Pi) > math.Pi
}

// Points returns the whole spring for the given length in metres: the left
// lead's start, every coil point, and the right lead's end. The spring
// starts at x = 0 and ends at length*UnitLength.
func (c Coil) Points(length float64) []Point {
	n := c.NumberOfCoilPoints()
	xScale := c.XScale(length)

	pts := make([]Point, 0, n+2)
	first := c.coilPoint(0, xScale)
	pts = append(pts, Point{X: 0, Y: first.Y})
	for i := 0; i < n; i++ {
		pts = append(pts, c.coilPoint(i, xScale))
	}
	last := pts[len(pts)-1]
	return append(pts, Point{X: last.X + c.RightEndLength, Y: last.Y})
}

// Paths splits the spring into polylines on the front and back of the
// coil, so the back can be drawn first and partly hidden.
func (c Coil) Paths(length float64) (front, back [][]Point) {
	pts := c.Points(length)
	n := c.NumberOfCoilPoints()

	var cur []Point
	wasFront := c.IsFront(0)
	cur = append(cur, pts[0])
	for i := 0; i < n; i++ {
		p := pts[i+1]
		isFront := c.IsFront(i)
		if i > 0 && isFront != wasFront {
			if wasFront {
				front = append(front, cur)
			} else {
				back = append(back, cur)
			}
			cur = []Point{pts[i]}
		}
		cur = append(cur, p)
		wasFront = isFront
	}
	cur = append(cur, pts[len(pts)-1])
	if wasFront {
		front = append(front, cur)
	} else {
		back = append(back, cur)
	}
	return front, back
}

// LineWidth thickens the stroke with stiffness.
func (c Coil) LineWidth(k, kMin float64) float64 {
	return c.MinLineWidth + c.DeltaLineWidth*(k-kMin)
}
