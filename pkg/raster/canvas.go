package raster

import (
	"image"
)

// Canvas is a fixed-size pixel buffer.
type Canvas struct {
	width  int
	height int
	pix    []Color
}

// NewCanvas allocates a width x height canvas filled with zero (transparent).
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int { return c.width }

// Height returns the height of the canvas.
func (c *Canvas) Height() int { return c.height }

// Pix returns the row-major pixel buffer. It aliases the canvas.
func (c *Canvas) Pix() []Color { return c.pix }

// In reports whether (x, y) lies on the canvas.
func (c *Canvas) In(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Set colors one pixel. Out-of-bounds writes are ignored.
func (c *Canvas) Set(x, y int, col Color) {
	if !c.In(x, y) {
		return
	}
	c.pix[y*c.width+x] = col
}

// At returns the color at (x, y), or zero outside the canvas.
func (c *Canvas) At(x, y int) Color {
	if !c.In(x, y) {
		return 0
	}
	return c.pix[y*c.width+x]
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col Color) {
	for i := range c.pix {
		c.pix[i] = col
	}
}

// Count returns how many pixels hold exactly col.
func (c *Canvas) Count(col Color) int {
	n := 0
	for _, p := range c.pix {
		if p == col {
			n++
		}
	}
	return n
}

// Image copies the canvas into an *image.RGBA.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for i, p := range c.pix {
		j := i * 4
		img.Pix[j+0] = p.R()
		img.Pix[j+1] = p.G()
		img.Pix[j+2] = p.B()
		img.Pix[j+3] = p.A()
	}
	return img
}
