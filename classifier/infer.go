package classifier

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
	"gorgonia.org/vecf32"
)

// Inferencer holds a forward only copy of a *Network and a VM. By using an
// Inferencer there is no need to create a VM for every batch.
type Inferencer struct {
	n *Network
	m G.VM

	input *tensor.Dense
}

// Infer creates a forward only copy of the trained network's weights.
func Infer(n *Network) (*Inferencer, error) {
	if n.g == nil {
		return nil, errors.New("network is not initialized")
	}
	conf := n.Config
	conf.FwdOnly = true
	retVal := &Inferencer{
		n:     New(conf),
		input: tensor.New(tensor.WithShape(conf.BatchSize, conf.Inputs), tensor.Of(Float)),
	}
	if err := retVal.n.Init(); err != nil {
		return nil, err
	}

	infModel := retVal.n.Model()
	for i, node := range n.Model() {
		original := node.Value().Data().([]float32)
		cloned := infModel[i].Value().Data().([]float32)
		copy(cloned, original)
	}
	retVal.m = G.NewTapeMachine(retVal.n.g)
	return retVal, nil
}

// Classify returns the most probable class of each image.
func (inf *Inferencer) Classify(images [][]float64) ([]int, error) {
	bs := inf.n.BatchSize
	classes := inf.n.Classes
	retVal := make([]int, 0, len(images))
	order := make([]int, 0, bs)
	for start := 0; start < len(images); start += bs {
		end := start + bs
		if end > len(images) {
			end = len(images)
		}
		order = order[:0]
		for i := start; i < end; i++ {
			order = append(order, i)
		}

		// a short final batch is padded with blank images
		inf.input.Zero()
		fill(inf.input.Data().([]float32), nil, images, nil, order, inf.n.Inputs, classes)

		inf.m.Reset()
		if err := G.Let(inf.n.x, inf.input); err != nil {
			return nil, errors.WithStack(err)
		}
		if err := inf.m.RunAll(); err != nil {
			return nil, errors.WithStack(err)
		}
		probs, ok := inf.n.probsValue.(*tensor.Dense)
		if !ok {
			return nil, errors.Errorf("expected probabilities to be a *tensor.Dense. Got %T instead", inf.n.probsValue)
		}
		rows, err := native.MatrixF32(probs)
		if err != nil {
			return nil, errors.Wrap(err, "unable to read probabilities")
		}
		for row := range order {
			retVal = append(retVal, vecf32.Argmax(rows[row]))
		}
	}
	return retVal, nil
}

// Close implements a closer, because well, a gorgonia VM is a resource.
func (inf *Inferencer) Close() error { return inf.m.Close() }

// Accuracy is the fraction of images the network labels correctly.
func (n *Network) Accuracy(images [][]float64, labels []int) (float64, error) {
	if len(images) != len(labels) {
		return 0, errors.Errorf("%d images but %d labels", len(images), len(labels))
	}
	if len(images) == 0 {
		return 0, nil
	}
	inf, err := Infer(n)
	if err != nil {
		return 0, err
	}
	defer inf.Close()

	predicted, err := inf.Classify(images)
	if err != nil {
		return 0, err
	}
	var correct int
	for i, p := range predicted {
		if p == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(labels)), nil
}
