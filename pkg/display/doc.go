// Package display collects the surfaces an animation can present to.
//
// The core animation only depends on the anim.Surface interface. Two
// implementations live in subpackages:
//
//   - [headless]: counts frames and keeps the last one; stops after a frame
//     budget or when a predicate says so. Used for tests and when stdout is
//     not a terminal.
//   - [terminal]: draws frames into the terminal with half-block characters
//     through a bubbletea program; q, esc and ctrl+c request cancellation.
//
// [Open] picks one of them by [Kind]; [Factory] hands that choice to
// anim.Controller.Play, which opens the surface at the canvas size.
package display

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sprout/pkg/anim"
	"github.com/matzehuels/sprout/pkg/display/headless"
	"github.com/matzehuels/sprout/pkg/display/terminal"
	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/raster"
)

// Kind names a surface implementation.
type Kind string

const (
	KindTerminal Kind = "terminal"
	KindHeadless Kind = "headless"
)

// Options carries settings for whichever surface is opened.
type Options struct {
	Ink        raster.Color
	Background raster.Color
	Output     io.Writer   // terminal output; default stdout
	MaxFrames  int         // headless frame budget; 0 = unlimited
	StopWhen   func() bool // headless stop predicate, polled before each frame
	Logger     *log.Logger // headless frame log; default discards
}

// Surface is an anim.Surface that must be closed.
type Surface interface {
	anim.Surface
	io.Closer
}

// Open creates a surface of the given kind for a width x height canvas.
func Open(kind Kind, width, height int, title string, opts Options) (Surface, error) {
	if err := errors.ValidateCanvas(width, height); err != nil {
		return nil, err
	}
	switch kind {
	case KindHeadless:
		hopts := []headless.Option{headless.WithMaxFrames(opts.MaxFrames)}
		if opts.StopWhen != nil {
			hopts = append(hopts, headless.WithStopWhen(opts.StopWhen))
		}
		if opts.Logger != nil {
			hopts = append(hopts, headless.WithLogger(opts.Logger))
		}
		s, err := headless.New(width, height, title, hopts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindTerminal, "":
		topts := []terminal.Option{terminal.WithPalette(opts.Ink, opts.Background)}
		if opts.Output != nil {
			topts = append(topts, terminal.WithOutput(opts.Output))
		}
		s, err := terminal.Open(width, height, title, topts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown display %q (want terminal or headless)", kind)
	}
}

// Factory adapts Open to anim.SurfaceFactory. The surfaces it opens are
// io.Closers, which Play closes when the animation ends.
func Factory(kind Kind, opts Options) anim.SurfaceFactory {
	return func(width, height int, title string) (anim.Surface, error) {
		return Open(kind, width, height, title, opts)
	}
}
