package worker

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRequestWireFormat(t *testing.T) {
	tests := []struct {
		req  Request
		wire string
	}{
		{PrepareDataset{}, `{"prepareDataset":true}`},
		{RequestImage{Index: 0}, `{"requestCurrentImage":true,"currentImage":0}`},
		{RequestImage{Index: 7999}, `{"requestCurrentImage":true,"currentImage":7999}`},
		{TrainEpoch{}, `{"trainEpoch":true}`},
	}
	for _, tt := range tests {
		b, err := MarshalRequest(tt.req)
		if err != nil {
			t.Fatal(err)
		}
		assert.JSONEq(t, tt.wire, string(b))

		got, err := UnmarshalRequest([]byte(tt.wire))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tt.req, got); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", tt.wire, diff)
		}
	}
}

func TestResponseWireFormat(t *testing.T) {
	pixels := make([]float64, 4)
	pixels[2] = 0.5
	tests := []struct {
		resp Response
		wire map[string]interface{}
	}{
		{Loaded{}, map[string]interface{}{"loadedWorker": true}},
		{DatasetPrepared{Training: 8000, Testing: 2000}, map[string]interface{}{"datasetPrepared": true, "training": 8000.0, "testing": 2000.0}},
		{CurrentImage{Pixels: pixels, Label: 0, Index: 0}, map[string]interface{}{
			"currentImage": true,
			"imageData":    []interface{}{0.0, 0.0, 0.5, 0.0},
			"label":        0.0,
			"index":        0.0,
		}},
		{TrainedEpoch{Epoch: 1, Loss: 0.25, Accuracy: 0.5}, map[string]interface{}{"trainedEpoch": true, "epoch": 1.0, "loss": 0.25, "accuracy": 0.5}},
		{Failed{Request: "trainEpoch", Reason: "boom"}, map[string]interface{}{"failed": true, "request": "trainEpoch", "reason": "boom"}},
	}
	for _, tt := range tests {
		b, err := MarshalResponse(tt.resp)
		if err != nil {
			t.Fatal(err)
		}
		var got map[string]interface{}
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tt.wire, got); diff != "" {
			t.Errorf("%T wire: (-want +got)\n%s", tt.resp, diff)
		}

		back, err := UnmarshalResponse(b)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tt.resp, back); diff != "" {
			t.Errorf("%T: (-want +got)\n%s", tt.resp, diff)
		}
	}
}

func TestTrainedEpochLossOnly(t *testing.T) {
	got, err := UnmarshalResponse([]byte(`{"trainedEpoch":true,"loss":1.5}`))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, TrainedEpoch{Loss: 1.5}, got)
}

func TestUnmarshalRejects(t *testing.T) {
	for _, p := range []string{
		`{}`,
		`{"prepareDataset":true,"trainEpoch":true}`,
		`{"requestCurrentImage":true}`,
		`not json`,
	} {
		if _, err := UnmarshalRequest([]byte(p)); err == nil {
			t.Errorf("request %s: expected an error", p)
		}
	}
	for _, p := range []string{
		`{}`,
		`{"loadedWorker":true,"datasetPrepared":true}`,
		`{"currentImage":true,"imageData":[]}`,
		`{"trainedEpoch":true}`,
	} {
		if _, err := UnmarshalResponse([]byte(p)); err == nil {
			t.Errorf("response %s: expected an error", p)
		}
	}
}

func TestRemote(t *testing.T) {
	assert := assert.New(t)
	srv := httptest.NewServer(Handler(func() *Worker {
		return newTestWorker(fakeProvider{}, &fakeTrainer{loss: 3})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	b, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer b.Close()

	assert.Equal(Loaded{}, recv(t, b.Responses()))
	assert.NoError(b.Post(PrepareDataset{}))
	assert.Equal(DatasetPrepared{Training: 30, Testing: 10}, recv(t, b.Responses()))
	assert.NoError(b.Post(RequestImage{Index: 29}))
	img := recv(t, b.Responses()).(CurrentImage)
	assert.Equal(29, img.Index)
	assert.Equal(9, img.Label)
	assert.NoError(b.Post(TrainEpoch{}))
	assert.Equal(TrainedEpoch{Epoch: 1, Loss: 3, Accuracy: 0.5}, recv(t, b.Responses()))
}
