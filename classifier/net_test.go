package classifier

import (
	"bytes"
	"encoding/gob"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tinyConf() Config {
	return Config{
		Inputs:    4,
		Hidden1:   8,
		Hidden2:   6,
		Classes:   2,
		BatchSize: 10,
		LearnRate: 0.01,
		Seed:      1337,
	}
}

// tinySet is a linearly separable problem: class 1 lights up the last two inputs.
func tinySet(n int) ([][]float64, []int) {
	r := rand.New(rand.NewSource(1))
	images := make([][]float64, n)
	labels := make([]int, n)
	for i := range images {
		label := i % 2
		img := make([]float64, 4)
		for j := range img {
			img[j] = 0.1 * r.Float64()
		}
		img[2*label] = 0.9
		img[2*label+1] = 0.9
		images[i] = img
		labels[i] = label
	}
	return images, labels
}

func TestDefaultConf(t *testing.T) {
	if !DefaultConf().IsValid() {
		t.Errorf("Expected Default Config to be correct")
	}
	conf := DefaultConf()
	conf.BatchSize = 0
	if conf.IsValid() {
		t.Errorf("Expected a zero batch size to be invalid")
	}
	if err := New(conf).Init(); err == nil {
		t.Errorf("Expected Init to reject an invalid config")
	}
}

func TestSanity(t *testing.T) {
	n := New(DefaultConf())
	if err := n.Init(); err != nil {
		t.Fatalf("%+v", err)
	}
	// 3 layers, a weight and a bias each
	assert.Len(t, n.Model(), 6)
}

func TestTrain(t *testing.T) {
	assert := assert.New(t)
	n := New(tinyConf())
	if err := n.Init(); err != nil {
		t.Fatalf("%+v", err)
	}
	images, labels := tinySet(45)

	first, err := n.Train(images, labels)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.False(math.IsNaN(first))
	assert.True(first > 0)

	var last float64
	for i := 0; i < 50; i++ {
		if last, err = n.Train(images, labels); err != nil {
			t.Fatalf("%+v", err)
		}
	}
	assert.Equal(51, n.Epochs())
	assert.True(last < first, "loss should fall on a separable problem: %v -> %v", first, last)

	acc, err := n.Accuracy(images, labels)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.True(acc >= 0 && acc <= 1)
}

func TestTrainErrors(t *testing.T) {
	n := New(tinyConf())
	if _, err := n.Train(nil, nil); err == nil {
		t.Error("Expected an uninitialized network to refuse training")
	}
	if err := n.Init(); err != nil {
		t.Fatalf("%+v", err)
	}
	images, labels := tinySet(5)
	if _, err := n.Train(images, labels); err == nil {
		t.Error("Expected an error when examples do not fill a batch")
	}
	if _, err := n.Train(images, labels[:3]); err == nil {
		t.Error("Expected an error on mismatched lengths")
	}
}

func TestClassifyPadsLastBatch(t *testing.T) {
	n := New(tinyConf())
	if err := n.Init(); err != nil {
		t.Fatalf("%+v", err)
	}
	inf, err := Infer(n)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer inf.Close()

	images, _ := tinySet(13)
	predicted, err := inf.Classify(images)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	assert.Len(t, predicted, 13)
	for _, p := range predicted {
		assert.True(t, p == 0 || p == 1)
	}
}

func TestEncodeDecode(t *testing.T) {
	assert := assert.New(t)
	conf := tinyConf()
	n := New(conf)
	if err := n.Init(); err != nil {
		t.Fatalf("%+v", err)
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(n); err != nil {
		t.Fatalf("Encoding Failure %v", err)
	}

	dec := gob.NewDecoder(&buf)
	n2 := &Network{Config: conf}
	if err := dec.Decode(n2); err != nil {
		t.Fatalf("Decoding Failure %v", err)
	}

	model := n.Model()
	model2 := n2.Model()
	for i, node := range model {
		assert.Equal(node.Value().Data(), model2[i].Value().Data(), "%d - %v vs %v should have the same data", i, model[i], model2[i])
	}
}

func TestToDot(t *testing.T) {
	dot := DefaultConf().ToDot()
	for _, want := range []string{"Input", "Hidden1", "Hidden2", "Output", "784x128", "64x10"} {
		if !strings.Contains(dot, want) {
			t.Errorf("Expected %q in\n%s", want, dot)
		}
	}
}
