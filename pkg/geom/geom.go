// Package geom holds the small set of planar types shared by the turtle,
// viewport and raster packages.
package geom

import "math"

// Point is a position in drawing or pixel space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

// Polar returns the point at distance r along heading theta (radians).
func Polar(theta, r float64) Point {
	return Point{X: math.Cos(theta) * r, Y: math.Sin(theta) * r}
}

// Rect is an axis-aligned box. The zero Rect is empty; use Extend to grow it.
type Rect struct {
	Min, Max Point
	nonEmpty bool
}

// Extend grows r to include p.
func (r Rect) Extend(p Point) Rect {
	if !r.nonEmpty {
		return Rect{Min: p, Max: p, nonEmpty: true}
	}
	r.Min.X = math.Min(r.Min.X, p.X)
	r.Min.Y = math.Min(r.Min.Y, p.Y)
	r.Max.X = math.Max(r.Max.X, p.X)
	r.Max.Y = math.Max(r.Max.Y, p.Y)
	return r
}

// Empty reports whether no point was ever added.
func (r Rect) Empty() bool { return !r.nonEmpty }

// Dx returns the width of r.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }
