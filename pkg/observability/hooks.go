// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about grammar
// expansion and the reveal animation. Libraries never import a metrics
// backend; they call the registered hooks, which default to no-ops.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExpandHooks(&myExpandHooks{})
//	    observability.SetAnimationHooks(&myAnimationHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Animation().OnFrame(ctx, cursor, total, elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Expand Hooks
// =============================================================================

// ExpandHooks receives events from grammar expansion.
type ExpandHooks interface {
	// OnExpandStart fires before a preset is expanded. projected is the
	// length the last generation will have.
	OnExpandStart(ctx context.Context, preset string, generations, projected int)

	// OnExpandComplete fires after expansion, successful or not.
	OnExpandComplete(ctx context.Context, preset string, symbols int, duration time.Duration, err error)
}

// =============================================================================
// Animation Hooks
// =============================================================================

// AnimationHooks receives events from the reveal loop.
type AnimationHooks interface {
	// OnFrame fires after a frame was drawn and presented. elapsed covers
	// both steps.
	OnFrame(ctx context.Context, cursor, total int, elapsed time.Duration)

	// OnStop fires once when the loop ends. err is nil for a normal stop.
	OnStop(ctx context.Context, cursor, total, frames int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExpandHooks is a no-op implementation of ExpandHooks.
type NoopExpandHooks struct{}

func (NoopExpandHooks) OnExpandStart(context.Context, string, int, int)                     {}
func (NoopExpandHooks) OnExpandComplete(context.Context, string, int, time.Duration, error) {}

// NoopAnimationHooks is a no-op implementation of AnimationHooks.
type NoopAnimationHooks struct{}

func (NoopAnimationHooks) OnFrame(context.Context, int, int, time.Duration) {}
func (NoopAnimationHooks) OnStop(context.Context, int, int, int, error)     {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	expandHooks    ExpandHooks    = NoopExpandHooks{}
	animationHooks AnimationHooks = NoopAnimationHooks{}
	hooksMu        sync.RWMutex
)

// SetExpandHooks registers custom expand hooks. nil is ignored.
func SetExpandHooks(h ExpandHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		expandHooks = h
	}
}

// SetAnimationHooks registers custom animation hooks. nil is ignored.
func SetAnimationHooks(h AnimationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		animationHooks = h
	}
}

// Expand returns the registered expand hooks.
func Expand() ExpandHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return expandHooks
}

// Animation returns the registered animation hooks.
func Animation() AnimationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return animationHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	expandHooks = NoopExpandHooks{}
	animationHooks = NoopAnimationHooks{}
}
