package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/sprout/pkg/errors"
)

// Color is a packed 0xAARRGGBB value.
type Color uint32

// Common colors.
const (
	White Color = 0xFFFFFFFF
	Black Color = 0xFF000000
)

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color {
	return Color(0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}.RGBA()
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R(), c.G(), c.B())
}

// ParseHex parses "#rrggbb" or "rrggbb" into an opaque color.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return 0, errors.New(errors.ErrCodeInvalidColor, "color %q must be #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidColor, err, "color %q", s)
	}
	return Color(0xFF000000 | uint32(v)), nil
}
