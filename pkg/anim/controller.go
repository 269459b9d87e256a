package anim

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/observability"
	"github.com/matzehuels/sprout/pkg/raster"
)

// State is the controller lifecycle.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}

// DefaultInterval is the time between cursor advances when none is given.
const DefaultInterval = 5 * time.Millisecond

// Config configures a Controller.
type Config struct {
	Scene
	Canvas *raster.Canvas

	// Interval is the minimum time between cursor advances. Zero means
	// DefaultInterval; a negative value advances on every tick.
	Interval time.Duration

	// Advance is how many symbols the cursor moves per advance. Default 1.
	Advance int

	// Clock returns the current time. Default time.Now.
	Clock func() time.Time

	// Logger receives lifecycle messages. Default discards.
	Logger *log.Logger
}

// Controller is the reveal animation state, threaded through the control loop.
type Controller struct {
	scene    Scene
	canvas   *raster.Canvas
	interval time.Duration
	advance  int
	clock    func() time.Time
	logger   *log.Logger

	cursor int
	last   time.Time
	state  State
	frames int
	grown  bool
}

// New validates cfg and returns a Running controller with the cursor at 0.
func New(cfg Config) (*Controller, error) {
	if cfg.Canvas == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "animation needs a canvas")
	}
	if err := errors.ValidateCanvas(cfg.Canvas.Width(), cfg.Canvas.Height()); err != nil {
		return nil, err
	}
	if cfg.Advance < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "advance cannot be negative (got %d)", cfg.Advance)
	}

	c := &Controller{
		scene:    cfg.Scene,
		canvas:   cfg.Canvas,
		interval: cfg.Interval,
		advance:  cfg.Advance,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
	}
	if c.interval == 0 {
		c.interval = DefaultInterval
	}
	if c.advance == 0 {
		c.advance = 1
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.scene.Ink == 0 && c.scene.Background == 0 {
		c.scene.Ink, c.scene.Background = raster.Black, raster.White
	}
	c.last = c.clock()
	return c, nil
}

// Cursor returns how many symbols are revealed.
func (c *Controller) Cursor() int { return c.cursor }

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Canvas returns the canvas frames are drawn on.
func (c *Controller) Canvas() *raster.Canvas { return c.canvas }

// Frames returns how many frames have been rendered.
func (c *Controller) Frames() int { return c.frames }

// Done reports whether the whole sequence is revealed.
func (c *Controller) Done() bool { return c.cursor >= len(c.scene.Commands) }

// Stop moves the controller to Stopped. It cannot be restarted.
func (c *Controller) Stop() {
	if c.state == Stopped {
		return
	}
	c.state = Stopped
	c.logger.Debug("animation stopped", "cursor", c.cursor, "frames", c.frames)
}

// Tick advances the cursor if the interval has elapsed since the last
// advance, then redraws the frame. It reports whether the cursor moved.
// A stopped controller neither advances nor draws.
func (c *Controller) Tick() (bool, error) {
	if c.state == Stopped {
		return false, nil
	}

	advanced := false
	if now := c.clock(); now.Sub(c.last) >= c.interval && !c.Done() {
		c.cursor = min(c.cursor+c.advance, len(c.scene.Commands))
		c.last = now
		advanced = true
	}

	if _, err := c.scene.RenderFrame(c.canvas, c.cursor); err != nil {
		return advanced, err
	}
	c.frames++

	if c.Done() && !c.grown {
		c.grown = true
		c.logger.Info("fully grown", "symbols", len(c.scene.Commands), "frames", c.frames)
	}
	return advanced, nil
}

// Run ticks and presents frames until the context ends or the surface goes
// inactive or asks to cancel. frame paces the loop; zero or negative runs
// unpaced. Returning always leaves the controller Stopped.
func (c *Controller) Run(ctx context.Context, s Surface, frame time.Duration) (err error) {
	if c.state == Stopped {
		return errors.New(errors.ErrCodeInvalidInput, "animation already stopped")
	}
	hooks := observability.Animation()
	defer func() {
		c.Stop()
		hooks.OnStop(ctx, c.cursor, len(c.scene.Commands), c.frames, err)
	}()

	var pace <-chan time.Time
	if frame > 0 {
		t := time.NewTicker(frame)
		defer t.Stop()
		pace = t.C
	}

	c.logger.Debug("animation running", "symbols", len(c.scene.Commands), "interval", c.interval, "frame", frame)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.Active() || s.CancelRequested() {
			return nil
		}

		start := time.Now()
		if _, err := c.Tick(); err != nil {
			return err
		}
		if err := s.Present(c.canvas); err != nil {
			return errors.Wrap(errors.ErrCodeDisplay, err, "present frame %d", c.frames)
		}
		hooks.OnFrame(ctx, c.cursor, len(c.scene.Commands), time.Since(start))

		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		}
	}
}

// Play opens a surface at the canvas size with open, runs the animation on
// it and closes the surface afterwards if it is an io.Closer. A close error
// is returned only when the run itself succeeded.
func (c *Controller) Play(ctx context.Context, open SurfaceFactory, title string, frame time.Duration) error {
	s, err := open(c.canvas.Width(), c.canvas.Height(), title)
	if err != nil {
		return err
	}
	err = c.Run(ctx, s, frame)
	if closer, ok := s.(io.Closer); ok {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
