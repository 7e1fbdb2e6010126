package constraints

import (
	"github.com/edgezdd/digraphzdd/ddspec"
	"github.com/edgezdd/digraphzdd/graph"
)

// cycleState is the per-build state shape shared by the cycle and
// Hamiltonian-cycle specs: one (indeg, outdeg, comp) triple per frontier
// slot.
type cycleState struct {
	indeg, outdeg []int16
	comp          []int
}

func newCycleState(slots int) *cycleState {
	return &cycleState{indeg: make([]int16, slots), outdeg: make([]int16, slots), comp: make([]int, slots)}
}

func (s *cycleState) Clone() ddspec.State {
	return &cycleState{
		indeg:  append([]int16(nil), s.indeg...),
		outdeg: append([]int16(nil), s.outdeg...),
		comp:   append([]int(nil), s.comp...),
	}
}

func (s *cycleState) Hash() uint64 {
	h := offsetBasis
	for _, v := range s.indeg {
		h = fnvMix(h, uint64(v))
	}
	for _, v := range s.outdeg {
		h = fnvMix(h, uint64(v))
	}
	for _, v := range s.comp {
		h = fnvMix(h, uint64(v))
	}
	return h
}

func (s *cycleState) Equal(other ddspec.State) bool {
	o, ok := other.(*cycleState)
	if !ok || len(s.indeg) != len(o.indeg) {
		return false
	}
	for i := range s.indeg {
		if s.indeg[i] != o.indeg[i] || s.outdeg[i] != o.outdeg[i] || s.comp[i] != o.comp[i] {
			return false
		}
	}
	return true
}

// CycleSpec enumerates the edge-subsets of a digraph that form exactly
// one directed simple cycle. Hamiltonian is an additional requirement
// that every vertex of the graph is eventually touched; Hamiltonian
// cycles are the same state machine
// with those extra checks, so HamiltonianCycleSpec calls the shared
// cycleChild helper with hamiltonian set rather than duplicating the
// transition logic.
type CycleSpec struct {
	graph *graph.Digraph
}

// NewCycleSpec builds a CycleSpec over g.
func NewCycleSpec(g *graph.Digraph) *CycleSpec { return &CycleSpec{graph: g} }

// StateSize returns the frontier slot count the build needs.
func (s *CycleSpec) StateSize() int { return s.graph.Frontier().MaxFrontierSize() }

// Root returns the initial empty state at the top level.
func (s *CycleSpec) Root() (ddspec.State, int) {
	return newCycleState(s.graph.Frontier().MaxFrontierSize()), s.graph.NumEdges()
}

// Child implements the single-directed-cycle transition: each vertex
// accrues at most one in-edge and one out-edge;
// selecting an edge that closes a cycle accepts immediately, provided
// every live frontier vertex outside the cycle is currently untouched; a
// vertex leaving the frontier with an odd total degree, or leaving a
// completed component while some other component is still non-isolated,
// prunes to ⊥; hamiltonian additionally rejects any departing vertex that
// was never touched at all, and accepts a closing edge only when every
// frontier vertex is on the cycle and no vertex enters at a later edge.
func (s *CycleSpec) Child(state ddspec.State, level int, branch int) (ddspec.State, int) {
	return cycleChild(s.graph, state, level, branch, false)
}

func cycleChild(g *graph.Digraph, state ddspec.State, level int, branch int, hamiltonian bool) (ddspec.State, int) {
	st := state.(*cycleState).Clone().(*cycleState)
	fm := g.Frontier()
	edges := g.Edges()
	edgeIndex := g.NumEdges() - level

	for _, v := range fm.Entering(edgeIndex) {
		pos := fm.Pos(v)
		st.indeg[pos], st.outdeg[pos] = 0, 0
		st.comp[pos] = int(v)
	}

	e := edges[edgeIndex]
	accept := false
	if branch == 1 {
		up, vp := fm.Pos(e.From), fm.Pos(e.To)
		st.outdeg[up]++
		st.indeg[vp]++
		if st.outdeg[up] > 1 || st.indeg[vp] > 1 {
			return nil, ddspec.Reject
		}
		if st.comp[up] == st.comp[vp] {
			// Closing a cycle: accept iff every live frontier vertex
			// outside the cycle is currently isolated. The Hamiltonian
			// variant instead requires every frontier vertex to be on the
			// cycle and no vertex to enter at a later edge.
			ok := true
			for _, w := range fm.Frontier(edgeIndex) {
				wp := fm.Pos(w)
				if st.comp[wp] == st.comp[up] {
					continue
				}
				if hamiltonian || st.indeg[wp] != 0 || st.outdeg[wp] != 0 {
					ok = false
					break
				}
			}
			for later := edgeIndex + 1; hamiltonian && ok && later < g.NumEdges(); later++ {
				if len(fm.Entering(later)) > 0 {
					ok = false
				}
			}
			if ok {
				accept = true
			} else {
				return nil, ddspec.Reject
			}
		} else {
			mergeComponents(st.comp, st.comp[up], st.comp[vp])
		}
	}

	if accept {
		return nil, ddspec.Accept
	}

	for _, v := range fm.Leaving(edgeIndex) {
		pos := fm.Pos(v)
		total := st.indeg[pos] + st.outdeg[pos]
		if total != 0 && total != 2 {
			return nil, ddspec.Reject
		}
		if hamiltonian && total == 0 {
			return nil, ddspec.Reject
		}
		if total != 0 {
			completed := true
			for _, w := range fm.Frontier(edgeIndex) {
				wp := fm.Pos(w)
				if wp != pos && st.comp[wp] == st.comp[pos] {
					completed = false
					break
				}
			}
			if completed {
				for _, w := range fm.Frontier(edgeIndex) {
					wp := fm.Pos(w)
					if wp != pos && st.comp[wp] != st.comp[pos] && (st.indeg[wp] != 0 || st.outdeg[wp] != 0) {
						return nil, ddspec.Reject
					}
				}
			}
		}
	}

	if level == 1 {
		return nil, ddspec.Reject
	}
	return st, level - 1
}
