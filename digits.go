// Package digits wires the dataset, the classifier and the worker into a
// demo of training a handwritten digit classifier.
package digits

import (
	"github.com/gorgonia/digits/classifier"
	"github.com/gorgonia/digits/dataset"
	"github.com/gorgonia/digits/worker"
)

// NewWorker creates a worker over the in-memory MNIST digits that trains a
// fresh classifier.Network each time its dataset is prepared.
func NewWorker(conf Config) *worker.Worker {
	return NewWorkerWith(conf, dataset.MNIST{})
}

// NewWorkerWith is NewWorker over any provider.
func NewWorkerWith(conf Config, p dataset.Provider) *worker.Worker {
	nnConf := conf.NNConf
	w := worker.New(p, func() (worker.Trainer, error) {
		n := classifier.New(nnConf)
		if err := n.Init(); err != nil {
			return nil, err
		}
		return n, nil
	})
	w.TrainingSize = conf.TrainingSize
	w.TestingSize = conf.TestingSize
	return w
}
