package classifier

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	nnops "gorgonia.org/gorgonia/ops/nn"
)

type maebe struct {
	err error
}

// generic monad... may be useful
func (m *maebe) do(f func() (*G.Node, error)) (retVal *G.Node) {
	if m.err != nil {
		return nil
	}
	if retVal, m.err = f(); m.err != nil {
		m.err = errors.WithStack(m.err)
	}
	return
}

// linear is xW + b, with b broadcast over the batch.
func (m *maebe) linear(input *G.Node, units int, name string) *G.Node {
	if m.err != nil {
		return nil
	}
	w := G.NewMatrix(input.Graph(), Float, G.WithShape(input.Shape()[1], units), G.WithInit(G.GlorotN(1.0)), G.WithName(name+"_w"))
	b := G.NewMatrix(input.Graph(), Float, G.WithShape(1, units), G.WithInit(G.Zeroes()), G.WithName(name+"_b"))
	xw := m.do(func() (*G.Node, error) { return G.Mul(input, w) })
	return m.do(func() (*G.Node, error) { return G.BroadcastAdd(xw, b, nil, []byte{0}) })
}

func (m *maebe) rectify(input *G.Node) (retVal *G.Node) {
	if m.err != nil {
		return nil
	}
	if retVal, m.err = nnops.Rectify(input); m.err != nil {
		m.err = errors.WithStack(m.err)
	}
	return
}

func constant(v float64) *G.Node {
	switch Float {
	case G.Float32:
		return G.NewConstant(float32(v))
	default:
		return G.NewConstant(v)
	}
}

// xent is the categorical cross entropy of probabilities against one-hot
// targets, averaged over the batch.
func (m *maebe) xent(probs, target *G.Node) *G.Node {
	eps := constant(1e-7)
	logProbs := m.do(func() (*G.Node, error) { return G.Add(probs, eps) })
	logProbs = m.do(func() (*G.Node, error) { return G.Log(logProbs) })
	prod := m.do(func() (*G.Node, error) { return G.HadamardProd(logProbs, target) })
	perExample := m.do(func() (*G.Node, error) { return G.Sum(prod, 1) })
	mean := m.do(func() (*G.Node, error) { return G.Mean(perExample) })
	return m.do(func() (*G.Node, error) { return G.Neg(mean) })
}
