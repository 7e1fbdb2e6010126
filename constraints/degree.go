package constraints

import (
	"github.com/edgezdd/digraphzdd/ddspec"
	"github.com/edgezdd/digraphzdd/graph"
)

// degreeState is the per-build state for DegreeSpec: one (indeg, outdeg)
// pair per frontier slot, plus a single bit recording whether any edge
// has been selected yet anywhere in the walk so far.
type degreeState struct {
	indeg, outdeg []int16
	comp          []int // nil unless the spec was built WithConnected
	anySelected   bool
}

func newDegreeState(slots int, connected bool) *degreeState {
	s := &degreeState{indeg: make([]int16, slots), outdeg: make([]int16, slots)}
	if connected {
		s.comp = make([]int, slots)
	}
	return s
}

func (s *degreeState) Clone() ddspec.State {
	c := &degreeState{
		indeg:       append([]int16(nil), s.indeg...),
		outdeg:      append([]int16(nil), s.outdeg...),
		anySelected: s.anySelected,
	}
	if s.comp != nil {
		c.comp = append([]int(nil), s.comp...)
	}
	return c
}

func (s *degreeState) Hash() uint64 {
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
	if s.anySelected {
		h = fnvMix(h, 1)
	}
	return h
}

func (s *degreeState) Equal(other ddspec.State) bool {
	o, ok := other.(*degreeState)
	if !ok || len(s.indeg) != len(o.indeg) || s.anySelected != o.anySelected || len(s.comp) != len(o.comp) {
		return false
	}
	for i := range s.indeg {
		if s.indeg[i] != o.indeg[i] || s.outdeg[i] != o.outdeg[i] {
			return false
		}
	}
	for i := range s.comp {
		if s.comp[i] != o.comp[i] {
			return false
		}
	}
	return true
}

// DegreeSpec enumerates edge-subsets of a digraph whose per-vertex
// in-degree and out-degree fall within caller-supplied ranges,
// optionally additionally requiring the selected edges to form a single
// connected component (the WithConnected option).
type DegreeSpec struct {
	graph       *graph.Digraph
	in, out     map[graph.VertexNumber]Range
	defaultIn   Range
	defaultOut  Range
	connected   bool
}

// NewDegreeSpec builds a DegreeSpec over g with per-vertex degree ranges.
// Vertices absent from in/out fall back to the default range [0, m].
func NewDegreeSpec(g *graph.Digraph, in, out map[graph.VertexNumber]Range, connected bool) (*DegreeSpec, error) {
	def, err := NewRange(g.NumEdges() + 1)
	if err != nil {
		return nil, err
	}
	return &DegreeSpec{graph: g, in: in, out: out, defaultIn: def, defaultOut: def, connected: connected}, nil
}

func (s *DegreeSpec) inRange(v graph.VertexNumber) Range {
	if r, ok := s.in[v]; ok {
		return r
	}
	return s.defaultIn
}

func (s *DegreeSpec) outRange(v graph.VertexNumber) Range {
	if r, ok := s.out[v]; ok {
		return r
	}
	return s.defaultOut
}

// StateSize returns the frontier slot count the build needs.
func (s *DegreeSpec) StateSize() int { return s.graph.Frontier().MaxFrontierSize() }

// Root returns the initial empty state at the top level (edge count m).
func (s *DegreeSpec) Root() (ddspec.State, int) {
	return newDegreeState(s.graph.Frontier().MaxFrontierSize(), s.connected), s.graph.NumEdges()
}

// Child implements the degree-constrained-subgraph transition: entering
// vertices are initialized, a selected edge increments the endpoints'
// degree counters and prunes immediately on a range violation, leaving
// vertices are checked against their final range, and reaching the end
// of the edge list accepts only if at least one edge was ever selected
// (the empty edge-set is deliberately not a member of this family).
func (s *DegreeSpec) Child(state ddspec.State, level int, branch int) (ddspec.State, int) {
	st := state.(*degreeState).Clone().(*degreeState)
	fm := s.graph.Frontier()
	edges := s.graph.Edges()
	edgeIndex := s.graph.NumEdges() - level

	for _, v := range fm.Entering(edgeIndex) {
		pos := fm.Pos(v)
		st.indeg[pos] = 0
		st.outdeg[pos] = 0
		if st.comp != nil {
			st.comp[pos] = int(v)
		}
	}

	e := edges[edgeIndex]
	if branch == 1 {
		st.anySelected = true
		up := fm.Pos(e.From)
		vp := fm.Pos(e.To)
		st.outdeg[up]++
		if !s.outRange(e.From).Contains(int(st.outdeg[up])) {
			return nil, ddspec.Reject
		}
		st.indeg[vp]++
		if !s.inRange(e.To).Contains(int(st.indeg[vp])) {
			return nil, ddspec.Reject
		}
		if st.comp != nil {
			mergeComponents(st.comp, st.comp[up], st.comp[vp])
		}
	}

	for _, v := range fm.Leaving(edgeIndex) {
		pos := fm.Pos(v)
		if !s.inRange(v).Contains(int(st.indeg[pos])) || !s.outRange(v).Contains(int(st.outdeg[pos])) {
			return nil, ddspec.Reject
		}
		if st.comp != nil && (st.indeg[pos] > 0 || st.outdeg[pos] > 0) {
			// A non-isolated component has finished if no other live
			// frontier slot still carries its label; require there be no
			// second, independently non-isolated component at that point.
			stillLive := false
			for _, w := range fm.Frontier(edgeIndex) {
				wp := fm.Pos(w)
				if wp != pos && st.comp[wp] == st.comp[pos] {
					stillLive = true
					break
				}
			}
			if !stillLive {
				for _, w := range fm.Frontier(edgeIndex) {
					wp := fm.Pos(w)
					if wp != pos && st.comp[wp] != st.comp[pos] && (st.indeg[wp] > 0 || st.outdeg[wp] > 0) {
						return nil, ddspec.Reject
					}
				}
			}
		}
	}

	if level == 1 {
		if st.anySelected {
			return nil, ddspec.Accept
		}
		return nil, ddspec.Reject
	}
	return st, level - 1
}
