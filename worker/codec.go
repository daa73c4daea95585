package worker

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// requestRecord is the JSON form of a Request: one boolean tag, plus the
// index for image requests.
type requestRecord struct {
	PrepareDataset      bool `json:"prepareDataset,omitempty"`
	RequestCurrentImage bool `json:"requestCurrentImage,omitempty"`
	CurrentImage        *int `json:"currentImage,omitempty"`
	TrainEpoch          bool `json:"trainEpoch,omitempty"`
}

// responseRecord is the JSON form of a Response.
type responseRecord struct {
	LoadedWorker    bool `json:"loadedWorker,omitempty"`
	DatasetPrepared bool `json:"datasetPrepared,omitempty"`
	Training        *int `json:"training,omitempty"`
	Testing         *int `json:"testing,omitempty"`

	CurrentImage bool      `json:"currentImage,omitempty"`
	ImageData    []float64 `json:"imageData,omitempty"`
	Label        *int      `json:"label,omitempty"`
	Index        *int      `json:"index,omitempty"`

	TrainedEpoch bool     `json:"trainedEpoch,omitempty"`
	Epoch        *int     `json:"epoch,omitempty"`
	Loss         *float64 `json:"loss,omitempty"`
	Accuracy     *float64 `json:"accuracy,omitempty"`

	Failed  bool   `json:"failed,omitempty"`
	Request string `json:"request,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// MarshalRequest encodes a request as a tagged JSON record.
func MarshalRequest(r Request) ([]byte, error) {
	var rec requestRecord
	switch r := r.(type) {
	case PrepareDataset:
		rec.PrepareDataset = true
	case RequestImage:
		idx := r.Index
		rec.RequestCurrentImage = true
		rec.CurrentImage = &idx
	case TrainEpoch:
		rec.TrainEpoch = true
	default:
		panic(fmt.Sprintf("unreachable: request %T", r))
	}
	b, err := json.Marshal(rec)
	return b, errors.WithStack(err)
}

// UnmarshalRequest decodes a tagged JSON record. Exactly one tag must be set.
func UnmarshalRequest(p []byte) (Request, error) {
	var rec requestRecord
	if err := json.Unmarshal(p, &rec); err != nil {
		return nil, errors.Wrapf(err, "decoding request %q", p)
	}
	var retVal Request
	var tags int
	if rec.PrepareDataset {
		tags++
		retVal = PrepareDataset{}
	}
	if rec.RequestCurrentImage {
		tags++
		if rec.CurrentImage == nil {
			return nil, errors.Errorf("request %q has no currentImage index", p)
		}
		retVal = RequestImage{Index: *rec.CurrentImage}
	}
	if rec.TrainEpoch {
		tags++
		retVal = TrainEpoch{}
	}
	if tags != 1 {
		return nil, errors.Errorf("request %q has %d tags, expected 1", p, tags)
	}
	return retVal, nil
}

// MarshalResponse encodes a response as a tagged JSON record.
func MarshalResponse(r Response) ([]byte, error) {
	var rec responseRecord
	switch r := r.(type) {
	case Loaded:
		rec.LoadedWorker = true
	case DatasetPrepared:
		rec.DatasetPrepared = true
		rec.Training = &r.Training
		rec.Testing = &r.Testing
	case CurrentImage:
		rec.CurrentImage = true
		rec.ImageData = r.Pixels
		rec.Label = &r.Label
		rec.Index = &r.Index
	case TrainedEpoch:
		rec.TrainedEpoch = true
		rec.Epoch = &r.Epoch
		rec.Loss = &r.Loss
		rec.Accuracy = &r.Accuracy
	case Failed:
		rec.Failed = true
		rec.Request = r.Request
		rec.Reason = r.Reason
	default:
		panic(fmt.Sprintf("unreachable: response %T", r))
	}
	b, err := json.Marshal(rec)
	return b, errors.WithStack(err)
}

// UnmarshalResponse decodes a tagged JSON record. Exactly one tag must be set.
func UnmarshalResponse(p []byte) (Response, error) {
	var rec responseRecord
	if err := json.Unmarshal(p, &rec); err != nil {
		return nil, errors.Wrapf(err, "decoding response %q", p)
	}
	var retVal Response
	var tags int
	if rec.LoadedWorker {
		tags++
		retVal = Loaded{}
	}
	if rec.DatasetPrepared {
		tags++
		retVal = DatasetPrepared{Training: deref(rec.Training), Testing: deref(rec.Testing)}
	}
	if rec.CurrentImage {
		tags++
		if rec.Label == nil || rec.Index == nil {
			return nil, errors.Errorf("response %q lacks label or index", p)
		}
		retVal = CurrentImage{Pixels: rec.ImageData, Label: *rec.Label, Index: *rec.Index}
	}
	if rec.TrainedEpoch {
		tags++
		if rec.Loss == nil {
			return nil, errors.Errorf("response %q has no loss", p)
		}
		var acc float64
		if rec.Accuracy != nil {
			acc = *rec.Accuracy
		}
		retVal = TrainedEpoch{Epoch: deref(rec.Epoch), Loss: *rec.Loss, Accuracy: acc}
	}
	if rec.Failed {
		tags++
		retVal = Failed{Request: rec.Request, Reason: rec.Reason}
	}
	if tags != 1 {
		return nil, errors.Errorf("response %q has %d tags, expected 1", p, tags)
	}
	return retVal, nil
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
