package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/scene"
	"github.com/san-kum/hookeslaw/internal/viz"
)

const (
	margin     = 20.0
	bandHeight = 260.0
	forceScale = 0.8 // view units per newton

	backStroke  = "#555566"
	frontStroke = "#c8c8d0"
	armStroke   = "#888899"
	forceStroke = "#ffaa00"
	springForce = "#00ccff"
	dispStroke  = "#00ff88"
)

// SceneToSVG draws the systems of sc as parametric coils, one band per
// system, with the overlays its visibility enables.
func SceneToSVG(sc scene.Scene, coil viz.Coil) string {
	systems, arms := sc.Systems(), sc.Arms()

	right := 0.0
	for _, a := range arms {
		right = max(right, a.Right())
	}
	width := right*coil.UnitLength + 2*margin
	height := bandHeight * float64(len(systems))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	vis := sc.Visibility()
	for i, sys := range systems {
		cy := bandHeight*float64(i) + bandHeight/2
		x := func(m float64) float64 { return margin + m*coil.UnitLength }
		eq := sys.EquivalentSpring()
		end := eq.Length().Get()

		sb.WriteString(line(x(eq.Left()), cy-bandHeight/2+10, x(eq.Left()), cy+bandHeight/2-10, armStroke, 4, ""))
		for _, c := range coils(sys) {
			sb.WriteString(spring(coil, c, x(c.left), cy))
		}

		arm := arms[i]
		sb.WriteString(line(x(end), cy, x(arm.Right()), cy, armStroke, 6, ""))
		sb.WriteString(line(x(arm.Right()), cy-30, x(arm.Right()), cy+30, armStroke, 8, ""))

		if vis.EquilibriumPosition.Get() {
			eqX := x(eq.EquilibriumPosition())
			sb.WriteString(line(eqX, cy-bandHeight/2+10, eqX, cy+bandHeight/2-10, dispStroke, 1, "6,4"))
		}
		if vis.AppliedForceVector.Get() {
			sb.WriteString(arrow(x(end), x(end)+eq.AppliedForce().Get()*forceScale, cy-bandHeight/2+30, forceStroke))
		}
		if vis.SpringForceVector.Get() {
			sb.WriteString(arrow(x(end), x(end)+eq.SpringForce().Get()*forceScale, cy-bandHeight/2+50, springForce))
		}
		if vis.DisplacementVector.Get() {
			sb.WriteString(arrow(x(eq.EquilibriumPosition()), x(end), cy+bandHeight/2-30, dispStroke))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

type drawnSpring struct {
	left, length, yOff float64
	k, kMin            float64
}

func coils(sys physics.System) []drawnSpring {
	drawn := func(s *physics.Spring, left, yOff float64) drawnSpring {
		return drawnSpring{
			left:   left,
			length: s.Length().Get() - left,
			yOff:   yOff,
			k:      s.SpringConstant().Get(),
			kMin:   s.SpringConstantRange().Min,
		}
	}
	switch s := sys.(type) {
	case *physics.SeriesSystem:
		return []drawnSpring{
			drawn(s.Top(), s.Top().Left(), 0),
			drawn(s.Bottom(), s.Top().Length().Get(), 0),
		}
	case *physics.ParallelSystem:
		return []drawnSpring{
			drawn(s.Top(), s.Top().Left(), -60),
			drawn(s.Bottom(), s.Bottom().Left(), 60),
		}
	}
	eq := sys.EquivalentSpring()
	return []drawnSpring{drawn(eq, eq.Left(), 0)}
}

// spring draws the back of the coil first so the front covers it.
func spring(coil viz.Coil, d drawnSpring, x0, cy float64) string {
	front, back := coil.Paths(d.length)
	w := coil.LineWidth(d.k, d.kMin)

	var sb strings.Builder
	for _, p := range back {
		sb.WriteString(polyline(p, x0, cy+d.yOff, backStroke, w))
	}
	for _, p := range front {
		sb.WriteString(polyline(p, x0, cy+d.yOff, frontStroke, w))
	}
	return sb.String()
}

func polyline(pts []viz.Point, x0, cy float64, stroke string, width float64) string {
	var sb strings.Builder
	sb.WriteString(`<polyline fill="none" stroke-linecap="round" points="`)
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		// SVG y grows downward.
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", x0+p.X, cy-p.Y))
	}
	sb.WriteString(fmt.Sprintf(`" stroke="%s" stroke-width="%.2f"/>
`, stroke, width))
	return sb.String()
}

func line(x0, y0, x1, y1 float64, stroke string, width float64, dash string) string {
	attr := ""
	if dash != "" {
		attr = fmt.Sprintf(` stroke-dasharray="%s"`, dash)
	}
	return fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.0f"%s/>
`, x0, y0, x1, y1, stroke, width, attr)
}

// arrow draws a horizontal arrow; zero-length arrows are omitted.
func arrow(x0, x1, y float64, stroke string) string {
	if x0 == x1 {
		return ""
	}
	dir := 1.0
	if x1 < x0 {
		dir = -1
	}
	return line(x0, y, x1, y, stroke, 3, "") +
		fmt.Sprintf(`<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s"/>
`, x1, y, x1-8*dir, y-5, x1-8*dir, y+5, stroke)
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, frontStroke))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
