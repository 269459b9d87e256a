package raster

import (
	"math"

	"github.com/matzehuels/sprout/pkg/geom"
)

// DrawLine plots the straight line from p0 to p1 in col. Both endpoints are
// rounded to the nearest pixel and both are drawn.
func DrawLine(c *Canvas, p0, p1 geom.Point, col Color) {
	x0, y0 := round(p0.X), round(p0.Y)
	x1, y1 := round(p1.X), round(p1.Y)

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
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

// round converts a coordinate to the nearest pixel, saturating far-off
// values so the stepping loop stays bounded.
func round(v float64) int {
	const limit = 1 << 24
	switch {
	case math.IsNaN(v):
		return 0
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	}
	return int(math.Round(v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
