package classifier

import "github.com/gorgonia/digits/dataset"

// Config configures the neural network
type Config struct {
	Inputs  int // pixels per image
	Hidden1 int // first hidden layer width
	Hidden2 int // second hidden layer width
	Classes int

	BatchSize int
	LearnRate float64
	Seed      int64 // shuffling seed. 0 seeds from the clock

	FwdOnly bool // is this a fwd only graph?
}

// DefaultConf is a 784-128-64-10 network.
func DefaultConf() Config {
	return Config{
		Inputs:  dataset.Pixels,
		Hidden1: 128,
		Hidden2: 64,
		Classes: dataset.Classes,

		BatchSize: 100,
		LearnRate: 0.001,
	}
}

func (conf Config) IsValid() bool {
	return conf.Inputs >= 1 &&
		conf.Hidden1 >= 1 &&
		conf.Hidden2 >= 1 &&
		conf.Classes >= 2 &&
		conf.BatchSize >= 1 &&
		conf.LearnRate > 0
}
