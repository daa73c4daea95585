package dataset

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/mnist"
)

// MNIST is a Provider backed by the MNIST digits compiled into
// github.com/unixpickle/mnist. The first samples of the training and testing
// sets are used, in their published order.
type MNIST struct {
	// Load functions, replaceable in tests. They default to the mnist package.
	LoadTraining func() mnist.DataSet
	LoadTesting  func() mnist.DataSet
}

// Set implements Provider.
func (m MNIST) Set(training, testing int) (retVal Set, err error) {
	loadTraining, loadTesting := m.LoadTraining, m.LoadTesting
	if loadTraining == nil {
		loadTraining = mnist.LoadTrainingDataSet
	}
	if loadTesting == nil {
		loadTesting = mnist.LoadTestingDataSet
	}

	if retVal.Training, err = entries(loadTraining(), training); err != nil {
		return Set{}, errors.WithMessage(err, "training partition")
	}
	if retVal.Test, err = entries(loadTesting(), testing); err != nil {
		return Set{}, errors.WithMessage(err, "testing partition")
	}
	return retVal, nil
}

func entries(ds mnist.DataSet, n int) ([]Entry, error) {
	if ds.Width*ds.Height != Pixels {
		return nil, errors.Errorf("expected %dx%d images, got %dx%d", Width, Height, ds.Width, ds.Height)
	}
	if len(ds.Samples) < n {
		return nil, errors.Errorf("requested %d samples, only %d available", n, len(ds.Samples))
	}
	retVal := make([]Entry, n)
	for i, s := range ds.Samples[:n] {
		input := make([]float64, len(s.Intensities))
		copy(input, s.Intensities)
		retVal[i] = Entry{
			Input:  input,
			Output: OneHot(s.Label, Classes),
		}
	}
	return retVal, nil
}
