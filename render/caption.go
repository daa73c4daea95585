package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/digits/dataset"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi        = 72.0
	fontsize   = 12.0
	lineheight = 1.2
	pad        = 6
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

// Frame is one shown image together with the text displayed under it.
type Frame struct {
	Pixels   []float64
	Negative bool
	Caption  string
}

// GrayPalette holds all 256 grays, in order.
var GrayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

// Compose renders the frame's image enlarged by scale with its caption
// underneath, on a white background.
func Compose(f Frame, scale int) *image.Gray {
	if scale < 1 {
		scale = 1
	}
	face := truetype.NewFace(regular, &truetype.Options{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	lines := strings.Split(f.Caption, "\n")
	dy := int(math.Ceil(fontsize * lineheight * dpi / 72))
	side := dataset.Width * scale

	w := side
	for _, l := range lines {
		if lw := font.MeasureString(face, l).Ceil(); lw > w {
			w = lw
		}
	}
	w += 2 * pad
	h := side + len(lines)*dy + 2*pad

	im := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)

	src := Image(f.Pixels, f.Negative, 1)
	dst := image.Rect(pad, pad, pad+side, pad+side)
	xdraw.NearestNeighbor.Scale(im, dst, src.Gray, src.Bounds(), xdraw.Src, nil)

	d := font.Drawer{Dst: im, Src: image.Black, Face: face}
	y := pad + side
	for _, l := range lines {
		y += dy
		d.Dot = fixed.P(pad, y-dy/4)
		d.DrawString(l)
	}
	return im
}
