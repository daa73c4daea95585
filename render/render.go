// Package render paints flat 28x28 intensity buffers onto a drawing surface.
package render

import (
	"image/color"
	"math"

	"github.com/gorgonia/digits/dataset"
)

// Canvas is a drawing surface with a current fill style, like a 2D canvas
// context.
type Canvas interface {
	SetFillStyle(c color.Gray)
	FillRect(x, y, w, h int)
}

// Color maps an intensity in [0, 1] to the gray shown for it.
//
// In positive mode ink is dark: 1 maps to black. In negative mode 1 maps to
// white. The two modes always sum to 255.
func Color(c float64, negative bool) color.Gray {
	switch {
	case math.IsNaN(c), c < 0:
		c = 0
	case c > 1:
		c = 1
	}
	v := uint8(math.Round(255 * c))
	if negative {
		return color.Gray{Y: v}
	}
	return color.Gray{Y: 255 - v}
}

// Draw paints pixels, row-major, one 1x1 rectangle per cell. The fill style
// is only reissued when a cell's intensity differs from the previous cell.
// A short buffer paints a partial image; values past the last cell are
// ignored.
func Draw(dst Canvas, pixels []float64, negative bool) {
	n := len(pixels)
	if n > dataset.Pixels {
		n = dataset.Pixels
	}
	var prev float64
	for i := 0; i < n; i++ {
		c := pixels[i]
		if i == 0 || c != prev {
			dst.SetFillStyle(Color(c, negative))
			prev = c
		}
		dst.FillRect(i%dataset.Width, i/dataset.Width, 1, 1)
	}
}
