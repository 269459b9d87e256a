package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sprout/pkg/observability"
)

// slowFrame is the frame time above which a frame is logged.
const slowFrame = 50 * time.Millisecond

// logHooks reports expansion and animation events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.ExpandHooks    = logHooks{}
	_ observability.AnimationHooks = logHooks{}
)

func (h logHooks) OnExpandStart(_ context.Context, preset string, generations, projected int) {
	h.logger.Debug("expanding", "preset", preset, "generations", generations, "projected", projected)
}

func (h logHooks) OnExpandComplete(_ context.Context, preset string, symbols int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("expand failed", "preset", preset, "err", err)
		return
	}
	h.logger.Debug("expanded", "preset", preset, "symbols", symbols, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnFrame(_ context.Context, cursor, total int, elapsed time.Duration) {
	if elapsed > slowFrame {
		h.logger.Debug("slow frame", "cursor", cursor, "total", total, "took", elapsed.Round(time.Millisecond))
	}
}

func (h logHooks) OnStop(_ context.Context, cursor, total, frames int, err error) {
	h.logger.Debug("animation ended", "cursor", cursor, "total", total, "frames", frames, "err", err)
}

// registerHooks routes observability events to the CLI logger. With a
// terminal display, animation events are dropped so they cannot tear the view.
func (c *CLI) registerHooks(quietAnimation bool) {
	h := logHooks{logger: c.Logger}
	observability.SetExpandHooks(h)
	if quietAnimation {
		observability.SetAnimationHooks(observability.NoopAnimationHooks{})
		return
	}
	observability.SetAnimationHooks(h)
}
