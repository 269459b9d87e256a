// Package headless provides a display surface that draws nowhere.
package headless

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sprout/pkg/raster"
)

// Surface accepts frames without showing them.
type Surface struct {
	title     string
	width     int
	height    int
	maxFrames int
	stopWhen  func() bool
	logger    *log.Logger

	mu     sync.Mutex
	frames int
	last   *raster.Canvas
	closed bool
}

// Option configures a Surface.
type Option func(*Surface)

// WithMaxFrames requests cancellation once n frames were presented.
// Zero means no limit.
func WithMaxFrames(n int) Option {
	return func(s *Surface) { s.maxFrames = n }
}

// WithStopWhen requests cancellation as soon as fn returns true.
func WithStopWhen(fn func() bool) Option {
	return func(s *Surface) { s.stopWhen = fn }
}

// WithLogger logs every presented frame at debug level.
func WithLogger(l *log.Logger) Option {
	return func(s *Surface) { s.logger = l }
}

// New creates a headless surface. It never fails; the error keeps the
// signature in line with other surfaces.
func New(width, height int, title string, opts ...Option) (*Surface, error) {
	s := &Surface{
		title:  title,
		width:  width,
		height: height,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Present keeps a copy of the frame.
func (s *Surface) Present(c *raster.Canvas) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || s.last.Width() != c.Width() || s.last.Height() != c.Height() {
		s.last = raster.NewCanvas(c.Width(), c.Height())
	}
	copy(s.last.Pix(), c.Pix())
	s.frames++
	s.logger.Debug("frame presented", "title", s.title, "frame", s.frames)
	return nil
}

// Active reports whether Close has not been called.
func (s *Surface) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// CancelRequested reports whether the frame budget is spent or the stop
// predicate fired.
func (s *Surface) CancelRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxFrames > 0 && s.frames >= s.maxFrames {
		return true
	}
	return s.stopWhen != nil && s.stopWhen()
}

// Frames returns how many frames were presented.
func (s *Surface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Last returns a copy of the most recent frame, or nil before the first.
func (s *Surface) Last() *raster.Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	c := raster.NewCanvas(s.last.Width(), s.last.Height())
	copy(c.Pix(), s.last.Pix())
	return c
}

// Close marks the surface inactive.
func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
