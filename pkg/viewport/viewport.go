// Package viewport fits a turtle path into a canvas.
//
// [Compute] walks the complete command sequence once with a unit step,
// collects the bounding box of every pen position, and derives a uniform
// scale plus an origin that place the box inside the canvas with a margin on
// every side. The resulting [Fit] is computed once and reused for every
// animation frame, so the drawing does not jump as it grows.
//
// By default the walk follows only Move and Turn, treating the path as a
// single line. Grammars with many branches can spread well beyond that line;
// [WithBranches] makes the walk honour Push and Pop for a tighter frame.
package viewport

import (
	"math"

	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/grammar"
	"github.com/matzehuels/sprout/pkg/turtle"
)

// minExtent replaces a zero path width or height so a straight or empty path
// still gets a finite scale.
const minExtent = 1.0

// maxMargin replaces a margin of 0.5 or more, which would leave no room.
const maxMargin = 0.45

// Fit maps drawing units to pixels: a point p of the unit-step path lands
// at Origin + p*Scale.
type Fit struct {
	Scale  float64
	Origin geom.Point
	Bounds geom.Rect // bounding box of the unit-step path
}

// Option configures Compute.
type Option func(*fitter)

type fitter struct {
	branches bool
}

// WithBranches makes the bounding walk save and restore poses on Push and
// Pop, following every branch instead of one linear walk.
func WithBranches() Option {
	return func(f *fitter) { f.branches = true }
}

// Compute fits commands into a width x height canvas leaving margin (a
// fraction of each dimension, 0 <= margin < 0.5) free on every side.
// Out of range arguments are clamped so the scale is always positive and
// finite: dimensions below 1 count as 1, a negative or NaN margin as 0, and
// a margin of 0.5 or more as 0.45.
func Compute(commands grammar.Sequence, table turtle.ActionTable, width, height int,
	margin float64, opts ...Option) Fit {
	width, height = max(width, 1), max(height, 1)
	margin = clampMargin(margin)

	var f fitter
	for _, opt := range opts {
		opt(&f)
	}

	box := f.bounds(commands, table)

	pathW := box.Dx()
	pathH := box.Dy()
	if pathW <= 0 {
		pathW = minExtent
	}
	if pathH <= 0 {
		pathH = minExtent
	}

	w, h := float64(width), float64(height)
	availW := w * (1 - 2*margin)
	availH := h * (1 - 2*margin)
	scale := math.Min(availW/pathW, availH/pathH)

	return Fit{
		Scale:  scale,
		Origin: geom.Pt(margin*w-box.Min.X*scale, margin*h-box.Min.Y*scale),
		Bounds: box,
	}
}

func clampMargin(m float64) float64 {
	switch {
	case math.IsNaN(m) || m < 0:
		return 0
	case m >= 0.5:
		return maxMargin
	default:
		return m
	}
}

// Fixed returns a Fit that draws with a fixed step length from origin,
// for callers that do not want auto-fitting.
func Fixed(step float64, origin geom.Point) Fit {
	return Fit{Scale: step, Origin: origin}
}

// bounds walks the whole sequence with unit steps starting at (0,0), which
// is always part of the box.
func (f fitter) bounds(commands grammar.Sequence, table turtle.ActionTable) geom.Rect {
	var (
		pos     geom.Point
		heading float64
		stack   []turtle.Pose
	)
	box := geom.Rect{}.Extend(pos)

	for _, sym := range commands {
		act := table.Lookup(sym)
		switch act.Kind {
		case turtle.KindMove:
			pos = pos.Add(geom.Polar(heading, 1))
			box = box.Extend(pos)
		case turtle.KindTurn:
			heading += act.Angle
		case turtle.KindPush:
			if f.branches {
				stack = append(stack, turtle.Pose{Pos: pos, Heading: heading})
				heading += act.Angle
			}
		case turtle.KindPop:
			if f.branches {
				if n := len(stack); n > 0 {
					pos, heading = stack[n-1].Pos, stack[n-1].Heading
					stack = stack[:n-1]
				}
				heading += act.Angle
			}
		}
	}
	return box
}
