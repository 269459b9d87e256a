// Package terminal presents animation frames in a terminal.
//
// Frames are scaled down to the terminal grid and drawn with half-block
// characters, two pixels per cell, by a bubbletea program running on its
// own goroutine. Pressing q, esc or ctrl+c requests cancellation; once the
// program exits the surface is inactive.
package terminal

import (
	"io"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/raster"
)

// Default grid used until the terminal reports its size.
const (
	defaultCols = 80
	defaultRows = 24 - chromeRows
)

// Surface draws frames into the terminal.
type Surface struct {
	program *tea.Program
	palette Palette
	cols    atomic.Int32
	rows    atomic.Int32
	cancel  atomic.Bool
	frames  int
	done    chan struct{}
	err     error
}

type config struct {
	input     io.Reader
	output    io.Writer
	altScreen bool
	palette   Palette
}

// Option configures Open.
type Option func(*config)

// WithInput reads keys from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(c *config) { c.input = r }
}

// WithOutput draws to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithAltScreen toggles the alternate screen buffer. It is on by default.
func WithAltScreen(on bool) Option {
	return func(c *config) { c.altScreen = on }
}

// WithPalette sets the ink and background colors. Zero values keep the
// black on white default.
func WithPalette(ink, background raster.Color) Option {
	return func(c *config) {
		if ink != 0 || background != 0 {
			c.palette = Palette{Ink: ink, Background: background}
		}
	}
}

// Open starts the terminal program. width and height describe the canvas
// that will be presented; the title is shown above the frame.
func Open(width, height int, title string, opts ...Option) (*Surface, error) {
	if err := errors.ValidateCanvas(width, height); err != nil {
		return nil, err
	}
	cfg := config{
		input:     os.Stdin,
		output:    os.Stdout,
		altScreen: true,
		palette:   Palette{Ink: raster.Black, Background: raster.White},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Surface{palette: cfg.palette, done: make(chan struct{})}
	s.cols.Store(defaultCols)
	s.rows.Store(defaultRows)

	m := model{title: title, cols: &s.cols, rows: &s.rows, cancel: &s.cancel}
	popts := []tea.ProgramOption{tea.WithInput(cfg.input), tea.WithOutput(cfg.output)}
	if cfg.altScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	s.program = tea.NewProgram(m, popts...)

	go func() {
		defer close(s.done)
		if _, err := s.program.Run(); err != nil {
			s.err = errors.Wrap(errors.ErrCodeDisplay, err, "terminal program")
		}
	}()
	return s, nil
}

// Present renders c at the current terminal size and hands it to the program.
func (s *Surface) Present(c *raster.Canvas) error {
	if !s.Active() {
		if s.err != nil {
			return s.err
		}
		return errors.New(errors.ErrCodeDisplay, "terminal closed")
	}
	s.frames++
	view := Render(c.Image(), int(s.cols.Load()), int(s.rows.Load()), s.palette)
	s.program.Send(frameMsg{view: view, index: s.frames})
	return nil
}

// Active reports whether the program is still running.
func (s *Surface) Active() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// CancelRequested reports whether the user pressed a quit key.
func (s *Surface) CancelRequested() bool {
	return s.cancel.Load()
}

// Close stops the program, restores the terminal and returns the program's
// error, if any.
func (s *Surface) Close() error {
	s.program.Quit()
	<-s.done
	return s.err
}
