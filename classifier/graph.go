package classifier

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

type layer struct {
	name, activation string
	units            int
}

func (conf Config) layers() []layer {
	return []layer{
		{"Input", "", conf.Inputs},
		{"Hidden1", "ReLU", conf.Hidden1},
		{"Hidden2", "ReLU", conf.Hidden2},
		{"Output", "SoftMax", conf.Classes},
	}
}

// ToDot describes the layer architecture in the Graphviz dot language.
func (conf Config) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)

	ls := conf.layers()
	for i, l := range ls {
		label := fmt.Sprintf("\"%s\\n%d units\"", l.name, l.units)
		if l.activation != "" {
			label = fmt.Sprintf("\"%s\\n%d units, %s\"", l.name, l.units, l.activation)
		}
		attrs := map[string]string{
			"shape": "box",
			"label": label,
		}
		g.AddNode("G", l.name, attrs)
		if i > 0 {
			prev := ls[i-1]
			edge := map[string]string{
				"label": fmt.Sprintf("\"%dx%d\"", prev.units, l.units),
			}
			g.AddEdge(prev.name, l.name, true, edge)
		}
	}
	return g.String()
}
