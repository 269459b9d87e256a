package terminal

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/matzehuels/sprout/pkg/raster"
)

// halfBlock paints the top half of a cell in the foreground color and the
// bottom half in the background color, giving two pixels per cell.
const halfBlock = "▀"

// levels is the number of ink shades a cell can show.
const levels = 8

// boost strengthens faint downsampled strokes.
const boost = 4.0

// Palette maps stroke coverage to terminal colors.
type Palette struct {
	Ink        raster.Color
	Background raster.Color
}

// shade returns the color for coverage level l in [0, levels-1].
func (p Palette) shade(l uint8) lipgloss.Color {
	t := float64(l) / float64(levels-1)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	c := raster.RGB(
		mix(p.Background.R(), p.Ink.R()),
		mix(p.Background.G(), p.Ink.G()),
		mix(p.Background.B(), p.Ink.B()),
	)
	return lipgloss.Color(c.Hex())
}

// level measures how far a pixel is from the background color.
func (p Palette) level(r, g, b uint8) uint8 {
	d := max(absDiff(r, p.Background.R()), absDiff(g, p.Background.G()), absDiff(b, p.Background.B()))
	cov := min(1, float64(d)/255*boost)
	return uint8(math.Round(cov * (levels - 1)))
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// gridSize returns the pixel size src is scaled to so it fits cols x rows
// cells with its aspect ratio kept. The height is always even.
func gridSize(src image.Rectangle, cols, rows int) (w, h int) {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	s := min(float64(cols)/float64(sw), float64(2*rows)/float64(sh))
	w = max(1, int(float64(sw)*s))
	h = max(2, int(float64(sh)*s))
	if h%2 == 1 {
		h++
	}
	return w, h
}

// Render scales src into at most cols x rows cells and draws it with
// half-block characters, one line per cell row.
func Render(src image.Image, cols, rows int, pal Palette) string {
	w, h := gridSize(src.Bounds(), cols, rows)
	if w == 0 {
		return ""
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	lv := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := dst.PixOffset(x, y)
			lv[y*w+x] = pal.level(dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2])
		}
	}

	styles := make(map[[2]uint8]lipgloss.Style)
	style := func(top, bottom uint8) lipgloss.Style {
		k := [2]uint8{top, bottom}
		s, ok := styles[k]
		if !ok {
			s = lipgloss.NewStyle().Foreground(pal.shade(top)).Background(pal.shade(bottom))
			styles[k] = s
		}
		return s
	}

	var b strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; {
			top, bottom := lv[y*w+x], lv[(y+1)*w+x]
			n := 1
			for x+n < w && lv[y*w+x+n] == top && lv[(y+1)*w+x+n] == bottom {
				n++
			}
			b.WriteString(style(top, bottom).Render(strings.Repeat(halfBlock, n)))
			x += n
		}
	}
	return b.String()
}
