// Package gif records shown frames into an animated GIF.
package gif

import (
	"image"
	"image/draw"
	"image/gif"
	"io"
	"sync"

	"github.com/gorgonia/digits/render"
	"github.com/pkg/errors"
)

// Encoder accumulates frames and writes them to Writer on Flush.
type Encoder struct {
	io.Writer
	Scale int
	Delay int // per frame, in 100ths of a second

	mu  sync.Mutex
	out *gif.GIF
}

// NewGifEncoder creates an encoder writing to w.
func NewGifEncoder(w io.Writer, scale int) *Encoder {
	return &Encoder{
		Writer: w,
		Scale:  scale,
		Delay:  50,
		out:    &gif.GIF{LoopCount: 0},
	}
}

// Encode appends a frame. Frames of differing sizes are each placed at the
// origin of the first frame's bounds.
func (enc *Encoder) Encode(f render.Frame) error {
	src := render.Compose(f, enc.Scale)

	enc.mu.Lock()
	defer enc.mu.Unlock()
	bounds := src.Bounds()
	if len(enc.out.Image) > 0 {
		bounds = enc.out.Image[0].Bounds()
	}
	im := image.NewPaletted(bounds, render.GrayPalette)
	draw.Draw(im, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(im, src.Bounds(), src, image.Point{}, draw.Src)

	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, enc.Delay)
	return nil
}

// Len returns the number of frames recorded so far.
func (enc *Encoder) Len() int {
	enc.mu.Lock()
	defer enc.mu.Unlock()
	return len(enc.out.Image)
}

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error {
	enc.mu.Lock()
	defer enc.mu.Unlock()
	if len(enc.out.Image) == 0 {
		return nil
	}
	return errors.WithStack(gif.EncodeAll(enc.Writer, enc.out))
}
