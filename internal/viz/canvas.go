package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelWidth and PixelHeight are the canvas size in sub-pixels.
func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDashed draws a vertical dashed line between y0 and y1.
func (c *Canvas) DrawDashed(x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		if y%4 < 2 {
			c.Set(x, y)
		}
	}
}

// DrawArrow draws a horizontal arrow from x0 to x1 at y. Zero-length
// arrows are not drawn.
func (c *Canvas) DrawArrow(x0, x1, y int) {
	if x0 == x1 {
		return
	}
	c.DrawLine(x0, y, x1, y)
	dir := 1
	if x1 < x0 {
		dir = -1
	}
	c.DrawLine(x1, y, x1-3*dir, y-2)
	c.DrawLine(x1, y, x1-3*dir, y+2)
}

// Viewport maps view units onto canvas sub-pixels. Y grows upward in view
// units and downward on the canvas.
type Viewport struct {
	ScaleX, ScaleY   float64
	OriginX, OriginY int
}

func (v Viewport) Map(p Point) (int, int) {
	return v.OriginX + int(math.Round(p.X*v.ScaleX)), v.OriginY - int(math.Round(p.Y*v.ScaleY))
}

// DrawPath joins consecutive points with lines.
func (c *Canvas) DrawPath(pts []Point, v Viewport) {
	for i := 1; i < len(pts); i++ {
		x0, y0 := v.Map(pts[i-1])
		x1, y1 := v.Map(pts[i])
		c.DrawLine(x0, y0, x1, y1)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
