package classifier

import (
	"bytes"
	"encoding/gob"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

var Float = G.Float32

func init() { gob.Register(&tensor.Dense{}) }

// Network is a feed forward classifier: two ReLU hidden layers and a softmax
// output over Classes.
type Network struct {
	Config

	g     *G.ExprGraph
	x, y  *G.Node // input batch and one-hot labels
	probs *G.Node

	probsValue G.Value // predicted class probabilities
	cost       G.Value // cost, for training recording

	solver G.Solver
	r      *rand.Rand
	epoch  int
}

// New returns a new, uninitialized *Network.
func New(conf Config) *Network {
	return &Network{Config: conf}
}

// Init builds the expression graph with freshly initialized weights.
func (n *Network) Init() error {
	if !n.IsValid() {
		return errors.Errorf("invalid network configuration %+v", n.Config)
	}
	n.reset()
	n.g = G.NewGraph()
	if err := n.fwd(); err != nil {
		return err
	}
	return n.bwd()
}

func (n *Network) fwd() error {
	n.x = G.NewMatrix(n.g, Float, G.WithShape(n.BatchSize, n.Inputs), G.WithName("Images"))

	var m maebe
	hidden := m.rectify(m.linear(n.x, n.Hidden1, "Hidden1"))
	hidden = m.rectify(m.linear(hidden, n.Hidden2, "Hidden2"))
	logits := m.linear(hidden, n.Classes, "Output")
	n.probs = m.do(func() (*G.Node, error) { return G.SoftMax(logits) })
	if m.err != nil {
		return m.err
	}
	G.Read(n.probs, &n.probsValue)
	return nil
}

func (n *Network) bwd() error {
	if n.FwdOnly {
		return nil
	}
	n.y = G.NewMatrix(n.g, Float, G.WithShape(n.BatchSize, n.Classes), G.WithName("Labels"))

	var m maebe
	cost := m.xent(n.probs, n.y)
	if m.err != nil {
		return m.err
	}
	G.Read(cost, &n.cost)

	if _, err := G.Grad(cost, n.Model()...); err != nil {
		return errors.WithStack(err)
	}

	seed := n.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	n.r = rand.New(rand.NewSource(seed))
	n.solver = G.NewAdamSolver(G.WithLearnRate(n.LearnRate))
	return nil
}

// Model returns the learnable nodes, in construction order.
func (n *Network) Model() G.Nodes {
	retVal := make(G.Nodes, 0, n.g.Nodes().Len())
	for _, node := range n.g.AllNodes() {
		if node.IsVar() && node != n.x && node != n.y {
			retVal = append(retVal, node)
		}
	}
	return retVal
}

// Epochs returns how many epochs the network has been trained for.
func (n *Network) Epochs() int { return n.epoch }

func (n *Network) reset() {
	n.g = nil
	n.x = nil
	n.y = nil
	n.probs = nil
	n.probsValue = nil
	n.cost = nil
}

func (n *Network) GobEncode() (retVal []byte, err error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	for _, node := range n.Model() {
		v := node.Value()
		if err = enc.Encode(&v); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return buf.Bytes(), nil
}

// GobDecode rebuilds the graph from n.Config and loads the encoded weights.
func (n *Network) GobDecode(p []byte) error {
	if err := n.Init(); err != nil {
		return err
	}

	buf := bytes.NewBuffer(p)
	dec := gob.NewDecoder(buf)
	for _, node := range n.Model() {
		var v G.Value
		if err := dec.Decode(&v); err != nil {
			return errors.WithStack(err)
		}
		if err := G.Let(node, v); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
