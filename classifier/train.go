package classifier

import (
	"log"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Train runs one epoch of minibatch training over the examples, in a fresh
// random order, and returns the mean batch cost. Examples that do not fill
// a whole batch are left out of the epoch.
func (n *Network) Train(images [][]float64, labels []int) (loss float64, err error) {
	if n.g == nil || n.FwdOnly {
		return 0, errors.New("network is not initialized for training")
	}
	if len(images) != len(labels) {
		return 0, errors.Errorf("%d images but %d labels", len(images), len(labels))
	}
	batches := len(images) / n.BatchSize
	if batches == 0 {
		return 0, errors.Errorf("%d examples do not fill a batch of %d", len(images), n.BatchSize)
	}
	total := batches * n.BatchSize

	order := n.r.Perm(len(images))[:total]
	xsBacking := make([]float32, total*n.Inputs)
	ysBacking := make([]float32, total*n.Classes)
	fill(xsBacking, ysBacking, images, labels, order, n.Inputs, n.Classes)
	Xs := tensor.New(tensor.WithBacking(xsBacking), tensor.WithShape(total, n.Inputs))
	Ys := tensor.New(tensor.WithBacking(ysBacking), tensor.WithShape(total, n.Classes))

	m := G.NewTapeMachine(n.g, G.BindDualValues(n.Model()...))
	defer m.Close()
	model := G.NodesToValueGrads(n.Model())

	var s slicer
	var sum float32
	for bat := 0; bat < batches; bat++ {
		batchStart := bat * n.BatchSize
		batchEnd := batchStart + n.BatchSize

		xs := s.Slice(Xs, sli(batchStart, batchEnd))
		ys := s.Slice(Ys, sli(batchStart, batchEnd))
		if s.err != nil {
			return 0, s.err
		}
		if err = G.Let(n.x, xs); err != nil {
			return 0, errors.WithStack(err)
		}
		if err = G.Let(n.y, ys); err != nil {
			return 0, errors.WithStack(err)
		}
		if err = m.RunAll(); err != nil {
			return 0, errors.WithStack(err)
		}
		cost := n.cost.Data().(float32)
		if math32.IsNaN(cost) || math32.IsInf(cost, 0) {
			return 0, errors.Errorf("cost diverged to %v in batch %d", cost, bat)
		}
		sum += cost
		if err = n.solver.Step(model); err != nil {
			return 0, errors.WithStack(err)
		}
		m.Reset()
	}
	n.epoch++
	loss = float64(sum / float32(batches))
	log.Printf("Epoch %d: %d batches, loss %v", n.epoch, batches, loss)
	return loss, nil
}
