package web

import (
	"bytes"
	"encoding/base64"
	"log"

	"github.com/gorgonia/digits/render"
	"github.com/gorgonia/digits/ui"
)

// FrameEncoder receives every image a session shows.
type FrameEncoder interface {
	Encode(f render.Frame) error
}

// viewMessage is sent to the page whenever the view changes. Image is only
// set when a new image was drawn.
type viewMessage struct {
	Controls map[string]bool `json:"controls"`
	Caption  string          `json:"caption"`
	Image    string          `json:"image,omitempty"`
}

// pageView is a ui.View that accumulates changes until flushed to the page.
type pageView struct {
	msg   viewMessage
	dirty bool

	scale  int
	frames []FrameEncoder
}

func newPageView(scale int, frames ...FrameEncoder) *pageView {
	return &pageView{
		msg:    viewMessage{Controls: make(map[string]bool)},
		scale:  scale,
		frames: frames,
	}
}

func (v *pageView) SetEnabled(c ui.Control, enabled bool) {
	v.msg.Controls[c.String()] = enabled
	v.dirty = true
}

func (v *pageView) SetCaption(text string) {
	v.msg.Caption = text
	v.dirty = true
}

func (v *pageView) Draw(pixels []float64, negative bool) {
	var buf bytes.Buffer
	if err := render.PNG(&buf, pixels, negative, v.scale); err != nil {
		log.Printf("Draw: %v", err)
		return
	}
	v.msg.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	v.dirty = true

	f := render.Frame{Pixels: pixels, Negative: negative, Caption: v.msg.Caption}
	for _, enc := range v.frames {
		if err := enc.Encode(f); err != nil {
			log.Printf("Encoding frame: %v", err)
		}
	}
}

// take returns the pending message, if any, and clears the image.
func (v *pageView) take() (viewMessage, bool) {
	if !v.dirty {
		return viewMessage{}, false
	}
	msg := v.msg
	msg.Controls = make(map[string]bool, len(v.msg.Controls))
	for k, e := range v.msg.Controls {
		msg.Controls[k] = e
	}
	v.msg.Image = ""
	v.dirty = false
	return msg, true
}
