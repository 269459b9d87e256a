// Package anim reveals a turtle drawing one step at a time.
//
// A [Controller] owns everything a frame needs: the command sequence, the
// fixed viewport fit, the canvas, the reveal cursor and its timer. Each
// [Controller.Tick] advances the cursor once the configured interval has
// elapsed, then clears the canvas and replays the whole prefix up to the
// cursor. Replaying from scratch costs O(cursor) per frame but keeps no
// interpreter state between frames.
//
// [Controller.Run] drives ticks against a [Surface] from a single loop:
//
//	ctrl, err := anim.New(anim.Config{
//	    Scene:    anim.Scene{Commands: seq, Table: table, Fit: fit},
//	    Canvas:   raster.NewCanvas(800, 600),
//	    Interval: 5 * time.Millisecond,
//	})
//	err = ctrl.Run(ctx, surface, time.Second/60)
//
// The loop stops, and the controller enters the terminal Stopped state, when
// the context ends, the surface becomes inactive, or the surface reports a
// cancel request. A failed Present is fatal and is returned with code
// DISPLAY.
package anim
