// Package visualize renders a car.UnderSequence as a GML graph, for
// the optional visualization setting spec §3/§5/§6 describe: one node
// per discovered state, one edge per predecessor link, emitted on
// normal completion or on a timeout's partial dump.
package visualize

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/gml"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/carverify/forwardcar/car"
)

func init() {
	car.VisualizeHook = Dump
}

// stateNode adapts one under-sequence state to gonum's graph.Node and
// encoding.Attributer so its depth and latch cube show up in the GML
// output.
type stateNode struct {
	id      int64
	depth   int
	latches string
}

func (n stateNode) ID() int64 { return n.id }

func (n stateNode) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "depth", Value: fmt.Sprintf("%d", n.depth)},
		{Key: "latches", Value: n.latches},
	}
}

// Dump writes a directed graph of under's states to w in GML form.
// partial is recorded as a top-level GML comment so a timeout's
// truncated dump is distinguishable from a completed run's.
func Dump(under *car.UnderSequence, partial bool, w io.Writer) error {
	g := simple.NewDirectedGraph()

	nodes := make([]stateNode, under.Len())
	for i := 0; i < under.Len(); i++ {
		s := under.StateAt(i)
		n := stateNode{id: int64(i), depth: s.Depth(), latches: fmt.Sprint(s.Latches())}
		nodes[i] = n
		g.AddNode(n)
	}
	for i := 0; i < under.Len(); i++ {
		s := under.StateAt(i)
		pred := under.Predecessor(s)
		if pred == nil {
			continue
		}
		g.SetEdge(g.NewEdge(nodes[under.HandleOf(pred)], nodes[i]))
	}

	data, err := gml.Marshal(g, "under-sequence", nil)
	if err != nil {
		return err
	}
	if partial {
		if _, err := io.WriteString(w, "# partial dump: timeout reached before completion\n"); err != nil {
			return err
		}
	}
	_, err = w.Write(data)
	return err
}
