// Package raster provides the pixel canvas and aliased line drawing.
//
// A [Canvas] is a flat, row-major buffer of packed [Color] values. [DrawLine]
// rounds its endpoints to whole pixels and walks between them with integer
// error accumulation (Bresenham), producing a gap-free 8-connected path.
// Pixels outside the canvas are skipped, so lines may start or end off-canvas.
package raster
