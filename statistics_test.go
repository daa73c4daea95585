package digits

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorgonia/digits/worker"
	"github.com/stretchr/testify/assert"
)

func TestStatistics(t *testing.T) {
	s := MakeStatistics()
	s.Update("b", worker.TrainedEpoch{Epoch: 1, Loss: 2.302585, Accuracy: 0.1})
	s.Update("a", worker.TrainedEpoch{Epoch: 1, Loss: 1.5, Accuracy: 0.5})
	s.Update("b", worker.TrainedEpoch{Epoch: 2, Loss: 0.75, Accuracy: 0.8125})

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatal(err)
	}
	want := "session,epoch,loss,accuracy\n" +
		"b,1,2.302585,0.1000\n" +
		"b,2,0.750000,0.8125\n" +
		"a,1,1.500000,0.5000\n"
	assert.Equal(t, want, buf.String())
}

func TestStatisticsDump(t *testing.T) {
	dir, err := ioutil.TempDir("", "digits")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	s := MakeStatistics()
	s.Update("a", worker.TrainedEpoch{Loss: 1, Accuracy: 1})
	filename := filepath.Join(dir, "stats.csv")
	if err := s.Dump(filename); err != nil {
		t.Fatal(err)
	}
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "session,epoch,loss,accuracy\na,1,1.000000,1.0000\n", string(b))
}

func TestDefaultConfig(t *testing.T) {
	if !DefaultConfig().IsValid() {
		t.Errorf("Expected Default Config to be correct")
	}
	conf := DefaultConfig()
	conf.TrainingSize = conf.NNConf.BatchSize - 1
	assert.False(t, conf.IsValid())
}
