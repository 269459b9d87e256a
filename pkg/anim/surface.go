package anim

import "github.com/matzehuels/sprout/pkg/raster"

// Surface is where finished frames go.
type Surface interface {
	// Present shows canvas. An error ends the animation.
	Present(canvas *raster.Canvas) error
	// Active reports whether the surface can still show frames.
	Active() bool
	// CancelRequested reports whether the viewer asked to stop.
	CancelRequested() bool
}

// SurfaceFactory opens a surface for a width x height canvas.
type SurfaceFactory func(width, height int, title string) (Surface, error)
