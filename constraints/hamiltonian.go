package constraints

import (
	"github.com/edgezdd/digraphzdd/ddspec"
	"github.com/edgezdd/digraphzdd/graph"
)

// HamiltonianCycleSpec enumerates edge-subsets forming a single directed
// cycle that touches every vertex of the graph: the same state machine
// as CycleSpec, with the extra leave-time precondition that no vertex
// may depart the frontier untouched, and a closing edge accepted only
// when every frontier vertex is on the cycle and no vertex enters later.
type HamiltonianCycleSpec struct {
	graph *graph.Digraph
}

// NewHamiltonianCycleSpec builds a HamiltonianCycleSpec over g.
func NewHamiltonianCycleSpec(g *graph.Digraph) *HamiltonianCycleSpec {
	return &HamiltonianCycleSpec{graph: g}
}

// StateSize returns the frontier slot count the build needs.
func (s *HamiltonianCycleSpec) StateSize() int { return s.graph.Frontier().MaxFrontierSize() }

// Root returns the initial empty state at the top level.
func (s *HamiltonianCycleSpec) Root() (ddspec.State, int) {
	return newCycleState(s.graph.Frontier().MaxFrontierSize()), s.graph.NumEdges()
}

// Child delegates to the shared cycle transition with the Hamiltonian
// checks enabled.
func (s *HamiltonianCycleSpec) Child(state ddspec.State, level int, branch int) (ddspec.State, int) {
	return cycleChild(s.graph, state, level, branch, true)
}
