// Package mjpeg streams shown frames as Motion JPEG.
package mjpeg

import (
	"bytes"
	"image/jpeg"
	"log"
	"net/http"

	"github.com/gorgonia/digits/render"
	"github.com/mattn/go-mjpeg"
	"github.com/pkg/errors"
)

// Encoder pushes every encoded frame to the clients of its stream.
type Encoder struct {
	Scale int

	stream *mjpeg.Stream
}

// NewEncoder creates an encoder that enlarges images by scale.
func NewEncoder(scale int) *Encoder {
	return &Encoder{
		Scale:  scale,
		stream: mjpeg.NewStream(),
	}
}

func (enc *Encoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	enc.stream.ServeHTTP(w, r)
}

// Encode a frame
func (enc *Encoder) Encode(f render.Frame) error {
	im := render.Compose(f, enc.Scale)
	var b bytes.Buffer
	if err := jpeg.Encode(&b, im, nil); err != nil {
		log.Println(err)
		return errors.WithStack(err)
	}
	if err := enc.stream.Update(b.Bytes()); err != nil {
		log.Println(err)
		return errors.WithStack(err)
	}
	return nil
}

func (enc *Encoder) Flush() error { return nil }
