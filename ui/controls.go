package ui

import (
	"github.com/gorgonia/digits/dataset"
	"github.com/pkg/errors"
)

// Control is one interactive element of the page.
type Control int

const (
	Prepare Control = iota
	Next
	Previous
	Train
	ViewMode

	numControls
)

var controlIDs = [numControls]string{
	Prepare:  "prepare",
	Next:     "next",
	Previous: "previous",
	Train:    "train",
	ViewMode: "viewMode",
}

// String returns the element id of the control.
func (c Control) String() string {
	if c < 0 || c >= numControls {
		return "unknown"
	}
	return controlIDs[c]
}

// ParseControl is the inverse of String.
func ParseControl(id string) (Control, error) {
	for c, s := range controlIDs {
		if s == id {
			return Control(c), nil
		}
	}
	return 0, errors.Errorf("unknown control %q", id)
}

// Controls lists every control, in page order.
func Controls() []Control {
	retVal := make([]Control, numControls)
	for i := range retVal {
		retVal[i] = Control(i)
	}
	return retVal
}

// Phase is the worker's lifecycle as observed by the UI.
type Phase int

const (
	Unready Phase = iota
	Ready
	Preparing
	DatasetReady
	Training
	Unavailable
)

func (p Phase) String() string {
	switch p {
	case Unready:
		return "Unready"
	case Ready:
		return "Ready"
	case Preparing:
		return "Preparing"
	case DatasetReady:
		return "DatasetReady"
	case Training:
		return "Training"
	case Unavailable:
		return "Unavailable"
	}
	return "Unknown"
}

// MaxIndex is the last navigable image. It is fixed to the training split
// size, not to what the worker reports.
const MaxIndex = dataset.TrainingSize - 1

// Clamp bounds an image index to [0, MaxIndex].
func Clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > MaxIndex {
		return MaxIndex
	}
	return i
}
