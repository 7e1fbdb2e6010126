package constraints

import (
	"github.com/edgezdd/digraphzdd/ddspec"
	"github.com/edgezdd/digraphzdd/graph"
)

// TreeSpec enumerates edge-subsets of a digraph that form a single
// directed tree rooted at root. It is a ForestSpec with
// a singleton root set: since only one vertex may ever carry the "this
// component contains a root" flag, forestChild's own completed-component
// check already rejects any second, disconnected component once it
// finishes departing the frontier, so no separate single-component
// discipline is needed beyond what forestChild already enforces.
type TreeSpec struct {
	graph    *graph.Digraph
	root     graph.VertexNumber
	spanning bool
	roots    map[graph.VertexNumber]bool
}

// NewTreeSpec builds a TreeSpec over g rooted at root.
func NewTreeSpec(g *graph.Digraph, root graph.VertexNumber, spanning bool) *TreeSpec {
	return &TreeSpec{graph: g, root: root, spanning: spanning, roots: map[graph.VertexNumber]bool{root: true}}
}

// StateSize returns the frontier slot count the build needs.
func (s *TreeSpec) StateSize() int { return s.graph.Frontier().MaxFrontierSize() }

// Root returns the initial empty state at the top level.
func (s *TreeSpec) Root() (ddspec.State, int) {
	return newForestState(s.graph.Frontier().MaxFrontierSize()), s.graph.NumEdges()
}

// Child delegates to the shared forest transition with a singleton root
// set.
func (s *TreeSpec) Child(state ddspec.State, level int, branch int) (ddspec.State, int) {
	return forestChild(s.graph, s.roots, s.spanning, state, level, branch)
}
