package gif

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/gorgonia/digits/dataset"
	"github.com/gorgonia/digits/render"
	"github.com/stretchr/testify/assert"
)

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewGifEncoder(&buf, 2)
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 0, buf.Len(), "nothing is written without frames")

	for i, caption := range []string{"Image #0: (5)", "Image #1: (0)", "Image #7999: (8)"} {
		f := render.Frame{Pixels: make([]float64, dataset.Pixels), Negative: i%2 == 0, Caption: caption}
		if err := enc.Encode(f); err != nil {
			t.Fatal(err)
		}
	}
	assert.Equal(t, 3, enc.Len())
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}

	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, g.Image, 3)
	assert.Equal(t, g.Image[0].Bounds(), g.Image[2].Bounds())
}
