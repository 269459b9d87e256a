package anim

import (
	"github.com/matzehuels/sprout/pkg/grammar"
	"github.com/matzehuels/sprout/pkg/raster"
	"github.com/matzehuels/sprout/pkg/turtle"
	"github.com/matzehuels/sprout/pkg/viewport"
)

// Scene is everything needed to draw a prefix of a command sequence.
type Scene struct {
	Commands   grammar.Sequence
	Table      turtle.ActionTable
	Fit        viewport.Fit
	Ink        raster.Color
	Background raster.Color
	Turtle     turtle.Options
}

// RenderFrame clears canvas to the background and draws every segment of
// Commands[:cursor]. It returns the number of segments drawn.
func (s Scene) RenderFrame(canvas *raster.Canvas, cursor int) (int, error) {
	canvas.Clear(s.Background)
	n := 0
	_, err := turtle.Walk(s.Commands, cursor, s.Fit.Scale, s.Fit.Origin, s.Table, s.Turtle,
		func(seg turtle.Segment) {
			raster.DrawLine(canvas, seg.From, seg.To, s.Ink)
			n++
		})
	return n, err
}
