package constraints

import (
	"github.com/edgezdd/digraphzdd/ddspec"
	"github.com/edgezdd/digraphzdd/graph"
)

// pathState extends the shared (indeg, outdeg, comp) frontier block with
// two component labels recorded once s and t leave the frontier — kept
// outside the comp slice (which is reused by later vertices once a slot
// frees) so the final s/t connectivity check survives past either
// endpoint's departure. -1 means "not recorded yet".
type pathState struct {
	indeg, outdeg []int16
	comp          []int
	sRep, tRep    int
}

func newPathState(slots int) *pathState {
	return &pathState{indeg: make([]int16, slots), outdeg: make([]int16, slots), comp: make([]int, slots), sRep: -1, tRep: -1}
}

func (s *pathState) Clone() ddspec.State {
	return &pathState{
		indeg:  append([]int16(nil), s.indeg...),
		outdeg: append([]int16(nil), s.outdeg...),
		comp:   append([]int(nil), s.comp...),
		sRep:   s.sRep,
		tRep:   s.tRep,
	}
}

func (s *pathState) Hash() uint64 {
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
	h = fnvMix(h, uint64(int64(s.sRep)))
	h = fnvMix(h, uint64(int64(s.tRep)))
	return h
}

func (s *pathState) Equal(other ddspec.State) bool {
	o, ok := other.(*pathState)
	if !ok || len(s.indeg) != len(o.indeg) || s.sRep != o.sRep || s.tRep != o.tRep {
		return false
	}
	for i := range s.indeg {
		if s.indeg[i] != o.indeg[i] || s.outdeg[i] != o.outdeg[i] || s.comp[i] != o.comp[i] {
			return false
		}
	}
	return true
}

// mergePath merges a and b's components within st.comp, and keeps sRep /
// tRep in sync if either currently holds the label being renamed away.
func mergePath(st *pathState, a, b int) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return
	}
	mergeComponents(st.comp, lo, hi)
	if st.sRep == lo {
		st.sRep = hi
	}
	if st.tRep == lo {
		st.tRep = hi
	}
}

// STPathSpec enumerates edge-subsets forming a single directed simple
// path from s to t, optionally required to be Hamiltonian (touching
// every vertex of the graph).
type STPathSpec struct {
	graph         *graph.Digraph
	s, t          graph.VertexNumber
	isHamiltonian bool
}

// NewSTPathSpec builds an STPathSpec over g from s to t.
func NewSTPathSpec(g *graph.Digraph, s, t graph.VertexNumber, isHamiltonian bool) *STPathSpec {
	return &STPathSpec{graph: g, s: s, t: t, isHamiltonian: isHamiltonian}
}

// StateSize returns the frontier slot count the build needs.
func (sp *STPathSpec) StateSize() int { return sp.graph.Frontier().MaxFrontierSize() }

// Root returns the initial empty state at the top level.
func (sp *STPathSpec) Root() (ddspec.State, int) {
	return newPathState(sp.graph.Frontier().MaxFrontierSize()), sp.graph.NumEdges()
}

// Child implements the directed s-t path transition.
func (sp *STPathSpec) Child(state ddspec.State, level int, branch int) (ddspec.State, int) {
	st := state.(*pathState).Clone().(*pathState)
	fm := sp.graph.Frontier()
	edges := sp.graph.Edges()
	edgeIndex := sp.graph.NumEdges() - level

	for _, v := range fm.Entering(edgeIndex) {
		pos := fm.Pos(v)
		st.indeg[pos], st.outdeg[pos] = 0, 0
		st.comp[pos] = int(v)
	}

	e := edges[edgeIndex]
	if branch == 1 {
		up, vp := fm.Pos(e.From), fm.Pos(e.To)
		if e.To == sp.s || e.From == sp.t {
			// An edge into s, or out of t, can never belong to a simple
			// s-t path.
			return nil, ddspec.Reject
		}
		st.outdeg[up]++
		st.indeg[vp]++
		if st.outdeg[up] > 1 || st.indeg[vp] > 1 {
			return nil, ddspec.Reject
		}
		if st.comp[up] == st.comp[vp] {
			// Any repeated-component edge closes a cycle, which a simple
			// path never contains.
			return nil, ddspec.Reject
		}
		mergePath(st, st.comp[up], st.comp[vp])
	}

	for _, v := range fm.Leaving(edgeIndex) {
		pos := fm.Pos(v)
		in, out := st.indeg[pos], st.outdeg[pos]
		switch v {
		case sp.s:
			if out != 1 {
				return nil, ddspec.Reject
			}
			st.sRep = st.comp[pos]
		case sp.t:
			if in != 1 {
				return nil, ddspec.Reject
			}
			st.tRep = st.comp[pos]
		default:
			if in != out {
				return nil, ddspec.Reject
			}
			if sp.isHamiltonian && in+out == 0 {
				return nil, ddspec.Reject
			}
		}
	}

	if level == 1 {
		if st.sRep >= 0 && st.tRep >= 0 && st.sRep == st.tRep {
			return nil, ddspec.Accept
		}
		return nil, ddspec.Reject
	}
	return st, level - 1
}
