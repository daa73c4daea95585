package digits

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/gorgonia/digits/dataset"
	"github.com/gorgonia/digits/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// striped makes images whose lit row encodes the label.
type striped struct{}

func (striped) Set(training, testing int) (dataset.Set, error) {
	mk := func(n int) []dataset.Entry {
		retVal := make([]dataset.Entry, n)
		for i := range retVal {
			label := i % dataset.Classes
			input := make([]float64, dataset.Pixels)
			for x := 0; x < dataset.Width; x++ {
				input[(2*label+3)*dataset.Width+x] = 1
			}
			retVal[i] = dataset.Entry{Input: input, Output: dataset.OneHot(label, dataset.Classes)}
		}
		return retVal
	}
	return dataset.Set{Training: mk(training), Test: mk(testing)}, nil
}

func receive(t *testing.T, out <-chan worker.Response) worker.Response {
	t.Helper()
	select {
	case resp, ok := <-out:
		require.True(t, ok, "worker stopped")
		return resp
	case <-time.After(time.Minute):
		t.Fatal("timed out waiting for the worker")
	}
	return nil
}

func TestNewWorkerWith(t *testing.T) {
	assert := assert.New(t)
	conf := DefaultConfig()
	conf.NNConf.Hidden1 = 16
	conf.NNConf.Hidden2 = 8
	conf.NNConf.BatchSize = 10
	conf.NNConf.LearnRate = 0.01
	conf.NNConf.Seed = 1337
	conf.TrainingSize = 40
	conf.TestingSize = 10
	require.True(t, conf.IsValid())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in, out := NewWorkerWith(conf, striped{}).Start(ctx)

	assert.Equal(worker.Loaded{}, receive(t, out))

	in <- worker.PrepareDataset{}
	assert.Equal(worker.DatasetPrepared{Training: 40, Testing: 10}, receive(t, out))

	in <- worker.RequestImage{Index: 13}
	img, ok := receive(t, out).(worker.CurrentImage)
	require.True(t, ok)
	assert.Equal(13, img.Index)
	assert.Equal(3, img.Label)
	assert.Len(img.Pixels, dataset.Pixels)

	for epoch := 1; epoch <= 2; epoch++ {
		in <- worker.TrainEpoch{}
		resp := receive(t, out)
		trained, ok := resp.(worker.TrainedEpoch)
		require.True(t, ok, "got %#v", resp)
		assert.Equal(epoch, trained.Epoch)
		assert.False(math.IsNaN(trained.Loss))
		assert.True(trained.Loss > 0)
		assert.True(trained.Accuracy >= 0 && trained.Accuracy <= 1)
	}
}

func TestConfigIsValid(t *testing.T) {
	conf := DefaultConfig()
	conf.TrainingSize = conf.NNConf.BatchSize - 1
	assert.False(t, conf.IsValid(), "training split smaller than a batch")

	conf = DefaultConfig()
	conf.Timeout = 0
	assert.False(t, conf.IsValid())
}
