package digits

import (
	"time"

	"github.com/gorgonia/digits/classifier"
	"github.com/gorgonia/digits/dataset"
)

// Config configures a demo server.
type Config struct {
	Name   string
	NNConf classifier.Config

	TrainingSize, TestingSize int

	// Timeout bounds how long a prepare or train request may stay
	// outstanding before the worker is declared unavailable.
	Timeout time.Duration

	// Record, if set, is the path of a GIF recording of every shown image.
	Record string
}

// DefaultConfig is the standard 8000/2000 demo.
func DefaultConfig() Config {
	return Config{
		Name:         "MNIST",
		NNConf:       classifier.DefaultConf(),
		TrainingSize: dataset.TrainingSize,
		TestingSize:  dataset.TestingSize,
		Timeout:      5 * time.Minute,
	}
}

func (conf Config) IsValid() bool {
	return conf.NNConf.IsValid() &&
		conf.TrainingSize >= conf.NNConf.BatchSize &&
		conf.TestingSize >= 0 &&
		conf.Timeout > 0
}
