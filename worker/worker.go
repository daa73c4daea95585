// Package worker runs the dataset and the trainer in a background context
// that the UI only reaches through messages.
package worker

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/gorgonia/digits/dataset"
	"github.com/pkg/errors"
)

// Trainer fits a classifier. It is opaque to the worker.
type Trainer interface {
	// Train runs one epoch and returns its loss.
	Train(images [][]float64, labels []int) (loss float64, err error)
	Accuracy(images [][]float64, labels []int) (float64, error)
}

// TrainerFactory creates a fresh trainer each time a dataset is prepared.
type TrainerFactory func() (Trainer, error)

const queueSize = 16

// Worker owns the dataset and the trainer. Nothing else touches them.
type Worker struct {
	TrainingSize, TestingSize int

	provider   dataset.Provider
	newTrainer TrainerFactory

	training, testing dataset.Dataset
	trainer           Trainer
	epoch             int

	in  chan Request
	out chan Response
}

// New creates a worker with the standard 8000/2000 split.
func New(p dataset.Provider, f TrainerFactory) *Worker {
	return &Worker{
		TrainingSize: dataset.TrainingSize,
		TestingSize:  dataset.TestingSize,
		provider:     p,
		newTrainer:   f,
	}
}

// Start launches the worker loop. The first response is always Loaded, and
// every request is answered by exactly one response, in order. Closing input
// or cancelling ctx stops the loop, which then closes output.
func (w *Worker) Start(ctx context.Context) (input chan<- Request, output <-chan Response) {
	w.in = make(chan Request, queueSize)
	w.out = make(chan Response, queueSize)
	go w.start(ctx)
	return w.in, w.out
}

func (w *Worker) start(ctx context.Context) {
	defer close(w.out)
	if !w.send(ctx, Loaded{}) {
		return
	}
	log.Printf("Worker loaded")
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-w.in:
			if !ok {
				return
			}
			if !w.send(ctx, w.handle(req)) {
				return
			}
		}
	}
}

func (w *Worker) send(ctx context.Context, resp Response) bool {
	select {
	case w.out <- resp:
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *Worker) handle(req Request) Response {
	var resp Response
	var err error
	switch r := req.(type) {
	case PrepareDataset:
		resp, err = w.prepare()
	case RequestImage:
		resp, err = w.image(r.Index)
	case TrainEpoch:
		resp, err = w.train()
	default:
		panic(fmt.Sprintf("unreachable: request %T", req))
	}
	if err != nil {
		log.Printf("Worker: %s failed: %v", req.Kind(), err)
		return Failed{Request: req.Kind(), Reason: err.Error()}
	}
	return resp
}

func (w *Worker) prepare() (Response, error) {
	set, err := w.provider.Set(w.TrainingSize, w.TestingSize)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to load dataset")
	}
	trainer, err := w.newTrainer()
	if err != nil {
		return nil, errors.WithMessage(err, "unable to create trainer")
	}
	w.training = dataset.Split(set.Training)
	w.testing = dataset.Split(set.Test)
	w.trainer = trainer
	w.epoch = 0
	log.Printf("Dataset prepared: %d training, %d testing", w.training.Len(), w.testing.Len())
	return DatasetPrepared{Training: w.training.Len(), Testing: w.testing.Len()}, nil
}

func (w *Worker) image(index int) (Response, error) {
	if w.trainer == nil {
		return nil, errors.New("dataset is not prepared")
	}
	if index < 0 || index >= w.training.Len() {
		return nil, errors.Errorf("image %d out of range [0, %d)", index, w.training.Len())
	}
	pixels := make([]float64, len(w.training.Images[index]))
	copy(pixels, w.training.Images[index])
	return CurrentImage{Pixels: pixels, Label: w.training.Labels[index], Index: index}, nil
}

func (w *Worker) train() (Response, error) {
	if w.trainer == nil {
		return nil, errors.New("dataset is not prepared")
	}
	loss, err := w.trainer.Train(w.training.Images, w.training.Labels)
	if err != nil {
		return nil, errors.WithMessage(err, "training failed")
	}
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return nil, errors.Errorf("training diverged: loss %v", loss)
	}
	acc, err := w.trainer.Accuracy(w.testing.Images, w.testing.Labels)
	if err != nil {
		return nil, errors.WithMessage(err, "evaluation failed")
	}
	w.epoch++
	return TrainedEpoch{Epoch: w.epoch, Loss: loss, Accuracy: acc}, nil
}
