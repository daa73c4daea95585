package digits

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/gorgonia/digits/worker"
	"github.com/pkg/errors"
)

// Statistics keeps the epoch history of every session. It is safe for
// concurrent use.
type Statistics struct {
	sync.Mutex
	Creation []string
	Losses   map[string][]float64
	Accuracy map[string][]float64
}

func MakeStatistics() *Statistics {
	return &Statistics{
		Creation: make([]string, 0, 64),
		Losses:   make(map[string][]float64),
		Accuracy: make(map[string][]float64),
	}
}

// Update records a completed epoch of a session.
func (s *Statistics) Update(session string, e worker.TrainedEpoch) {
	s.Lock()
	defer s.Unlock()
	if _, ok := s.Losses[session]; !ok {
		s.Creation = append(s.Creation, session)
	}
	s.Losses[session] = append(s.Losses[session], e.Loss)
	s.Accuracy[session] = append(s.Accuracy[session], e.Accuracy)
}

// Write writes one "session,epoch,loss,accuracy" row per recorded epoch,
// sessions in order of their first epoch.
func (s *Statistics) Write(w io.Writer) error {
	s.Lock()
	defer s.Unlock()
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"session", "epoch", "loss", "accuracy"}); err != nil {
		return errors.WithStack(err)
	}
	for _, session := range s.Creation {
		for i, loss := range s.Losses[session] {
			record := []string{
				session,
				strconv.Itoa(i + 1),
				strconv.FormatFloat(loss, 'f', 6, 64),
				strconv.FormatFloat(s.Accuracy[session][i], 'f', 4, 64),
			}
			if err := cw.Write(record); err != nil {
				return errors.WithStack(err)
			}
		}
	}
	cw.Flush()
	return errors.WithStack(cw.Error())
}

// Dump writes the statistics to filename.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	return s.Write(f)
}
