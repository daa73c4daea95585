// Package ui holds the state of one page session and decides which
// messages go to the worker and what the page shows.
package ui

import (
	"fmt"
	"log"

	"github.com/gorgonia/digits/worker"
	"github.com/pkg/errors"
)

// State is the per-session view state.
type State struct {
	Index    int  // current image, always within [0, MaxIndex]
	Negative bool // display mode
}

// View is the page as the controller sees it.
type View interface {
	SetEnabled(c Control, enabled bool)
	SetCaption(text string)
	Draw(pixels []float64, negative bool)
}

// Poster delivers requests to the worker.
type Poster interface {
	Post(worker.Request) error
}

// Controller binds each control to one outbound request and each response
// to one view update. It is not safe for concurrent use: a session drives it
// from a single goroutine.
type Controller struct {
	State

	// OnEpoch, if set, is called with every completed epoch.
	OnEpoch func(worker.TrainedEpoch)

	view    View
	worker  Poster
	phase   Phase
	enabled [numControls]bool

	pixels []float64 // last image drawn
}

// New creates a controller with every control but the view mode disabled.
func New(view View, w Poster) *Controller {
	c := &Controller{view: view, worker: w}
	for _, ctl := range Controls() {
		c.setEnabled(ctl, ctl == ViewMode)
	}
	view.SetCaption("Loading worker…")
	return c
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// Enabled reports whether the control currently accepts clicks.
func (c *Controller) Enabled(ctl Control) bool { return c.enabled[ctl] }

// Busy reports whether a prepare or train request is outstanding.
func (c *Controller) Busy() bool { return c.phase == Preparing || c.phase == Training }

func (c *Controller) setEnabled(ctl Control, enabled bool) {
	c.enabled[ctl] = enabled
	c.view.SetEnabled(ctl, enabled)
}

func (c *Controller) setDatasetControls(enabled bool) {
	c.setEnabled(Next, enabled)
	c.setEnabled(Previous, enabled)
	c.setEnabled(Train, enabled)
}

// post sends r to the worker. A full request queue only drops r: a dropped
// navigation is retried by the next click, a dropped prepare or train
// restores the controls. Any other failure means the worker is gone.
func (c *Controller) post(r worker.Request) error {
	err := c.worker.Post(r)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, worker.ErrQueueFull):
		log.Printf("Dropped %s: %v", r.Kind(), err)
		if _, ok := r.(worker.RequestImage); ok {
			return nil
		}
		c.failed(worker.Failed{Request: r.Kind(), Reason: err.Error()})
		return err
	}
	c.Unavailable(err.Error())
	return err
}

// Click handles a click on ctl. Clicks on disabled controls are ignored.
func (c *Controller) Click(ctl Control) error {
	if ctl < 0 || ctl >= numControls || !c.enabled[ctl] {
		return nil
	}
	switch ctl {
	case Prepare:
		c.setEnabled(Prepare, false)
		c.phase = Preparing
		return c.post(worker.PrepareDataset{})
	case Next:
		return c.navigate(c.Index + 1)
	case Previous:
		return c.navigate(c.Index - 1)
	case Train:
		c.setDatasetControls(false)
		c.phase = Training
		return c.post(worker.TrainEpoch{})
	case ViewMode:
		c.SetViewMode(!c.Negative)
	}
	return nil
}

func (c *Controller) navigate(index int) error {
	c.Index = Clamp(index)
	return c.post(worker.RequestImage{Index: c.Index})
}

// SetViewMode switches the display mode and redraws the current image.
func (c *Controller) SetViewMode(negative bool) {
	c.Negative = negative
	if c.pixels != nil {
		c.view.Draw(c.pixels, c.Negative)
	}
}

// Handle applies a worker response.
func (c *Controller) Handle(resp worker.Response) {
	if c.phase == Unavailable {
		return
	}
	switch r := resp.(type) {
	case worker.Loaded:
		if c.phase != Unready {
			return
		}
		c.phase = Ready
		c.setEnabled(Prepare, true)
		c.view.SetCaption("Worker ready")
	case worker.DatasetPrepared:
		c.phase = DatasetReady
		c.setEnabled(Prepare, false)
		c.setDatasetControls(true)
		c.post(worker.RequestImage{Index: c.Index})
	case worker.CurrentImage:
		if r.Index != c.Index {
			// stale answer to an earlier navigation
			return
		}
		c.pixels = r.Pixels
		c.view.SetCaption(fmt.Sprintf("Image #%d: (%d)", r.Index, r.Label))
		c.view.Draw(r.Pixels, c.Negative)
	case worker.TrainedEpoch:
		log.Printf("Trained epoch %d: loss %v, accuracy %v", r.Epoch, r.Loss, r.Accuracy)
		c.phase = DatasetReady
		c.setDatasetControls(true)
		if c.OnEpoch != nil {
			c.OnEpoch(r)
		}
	case worker.Failed:
		c.failed(r)
	default:
		panic(fmt.Sprintf("unreachable: response %T", resp))
	}
}

func (c *Controller) failed(r worker.Failed) {
	c.view.SetCaption(fmt.Sprintf("Error: %s", r.Reason))
	switch r.Request {
	case worker.PrepareDataset{}.Kind():
		c.phase = Ready
		c.setEnabled(Prepare, true)
	case worker.TrainEpoch{}.Kind():
		c.phase = DatasetReady
		c.setDatasetControls(true)
	}
}

// Unavailable gives up on the worker: every control but the view mode is
// disabled and the reason is shown.
func (c *Controller) Unavailable(reason string) {
	if c.phase == Unavailable {
		return
	}
	c.phase = Unavailable
	for _, ctl := range Controls() {
		if ctl != ViewMode {
			c.setEnabled(ctl, false)
		}
	}
	c.view.SetCaption(fmt.Sprintf("Worker unavailable: %s", reason))
}
