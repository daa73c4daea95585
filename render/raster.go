package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/gorgonia/digits/dataset"
	"github.com/pkg/errors"
)

// Raster is a Canvas backed by an *image.Gray. Each canvas unit covers
// Scale x Scale pixels of the image.
type Raster struct {
	*image.Gray
	Scale int

	fill color.Gray
}

// NewRaster creates a white raster big enough for a 28x28 image at the given scale.
func NewRaster(scale int) *Raster {
	if scale < 1 {
		scale = 1
	}
	im := image.NewGray(image.Rect(0, 0, dataset.Width*scale, dataset.Height*scale))
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)
	return &Raster{Gray: im, Scale: scale}
}

func (r *Raster) SetFillStyle(c color.Gray) { r.fill = c }

func (r *Raster) FillRect(x, y, w, h int) {
	rect := image.Rect(x*r.Scale, y*r.Scale, (x+w)*r.Scale, (y+h)*r.Scale)
	draw.Draw(r.Gray, rect, &image.Uniform{r.fill}, image.Point{}, draw.Src)
}

// Image renders pixels onto a fresh raster.
func Image(pixels []float64, negative bool, scale int) *Raster {
	r := NewRaster(scale)
	Draw(r, pixels, negative)
	return r
}

// PNG renders pixels and writes them to w as a PNG.
func PNG(w io.Writer, pixels []float64, negative bool, scale int) error {
	if err := png.Encode(w, Image(pixels, negative, scale).Gray); err != nil {
		return errors.Wrapf(err, "encoding png")
	}
	return nil
}
