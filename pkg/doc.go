// Package pkg provides the core libraries for sprout, an L-system plant grower.
//
// # Overview
//
// Sprout rewrites a short axiom with context-free productions for a number of
// generations, interprets the resulting symbols as turtle-graphics commands
// and reveals the drawing one symbol at a time. The pkg directory is
// organized leaves first:
//
//  1. [grammar] - Symbols, productions and length-bounded expansion
//  2. [turtle] - Symbol to action bindings and the pose-stack interpreter
//  3. [raster] - Pixel canvas and integer line drawing
//  4. [viewport] - Fitting a drawing onto a canvas
//  5. [anim] - The frame-paced reveal loop
//
// # Architecture
//
// The typical data flow:
//
//	preset (axiom, rules, angle)
//	         ↓
//	    [grammar] expand once
//	         ↓
//	    [viewport] fit once over the full sequence
//	         ↓
//	    [anim] every frame: replay prefix with [turtle], draw with [raster]
//	         ↓
//	    [display] terminal or headless surface
//
// # Quick Start
//
// Expand the classic plant and draw it fully grown:
//
//	rules := grammar.NewProductionSet(
//	    grammar.MustRule("X", "F+[[X]-X]-F[-FX]+X"),
//	    grammar.MustRule("F", "FF"),
//	)
//	seq, _ := grammar.Expand(grammar.Parse("+++X"), rules, 6)
//
//	table := turtle.DefaultTable(turtle.Radians(25))
//	fit := viewport.Compute(seq, table, 800, 600, 0.05)
//
//	canvas := raster.NewCanvas(800, 600)
//	scene := anim.Scene{Commands: seq, Table: table, Fit: fit,
//	    Ink: raster.Black, Background: raster.White}
//	scene.RenderFrame(canvas, len(seq))
//
// # Supporting Packages
//
// [geom] - Points and bounding rectangles in drawing space.
//
// [preset] - Named configurations loaded from TOML, with built-ins embedded in
// the binary.
//
// [display] - Surfaces frames are presented to: a bubbletea terminal view and
// a headless recorder.
//
// [errors] - Coded errors and input validation shared by all packages.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/grammar/...  # Specific package
//	go test -run Example ./... # Examples only
//
// [grammar]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/grammar
// [turtle]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/turtle
// [raster]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/raster
// [viewport]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/viewport
// [anim]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/anim
// [geom]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/geom
// [preset]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/preset
// [display]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/display
// [errors]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/buildinfo
package pkg
