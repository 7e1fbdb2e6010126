package constraints

import (
	"github.com/edgezdd/digraphzdd/ddspec"
	"github.com/edgezdd/digraphzdd/graph"
)

// forestState tracks, per frontier slot, the parent-edge count (0 or 1)
// and a component label carrying a "contains a declared root" flag
// alongside it. The flag travels with the component as
// a whole rather than per-vertex: mergeForestComponents keeps every live
// slot sharing a label in agreement, so the block stays a flat,
// independently hashable value.
type forestState struct {
	indeg   []int16
	comp    []int
	hasRoot []bool
}

func newForestState(slots int) *forestState {
	return &forestState{indeg: make([]int16, slots), comp: make([]int, slots), hasRoot: make([]bool, slots)}
}

func (s *forestState) Clone() ddspec.State {
	return &forestState{
		indeg:   append([]int16(nil), s.indeg...),
		comp:    append([]int(nil), s.comp...),
		hasRoot: append([]bool(nil), s.hasRoot...),
	}
}

func (s *forestState) Hash() uint64 {
	h := offsetBasis
	for _, v := range s.indeg {
		h = fnvMix(h, uint64(v))
	}
	for _, v := range s.comp {
		h = fnvMix(h, uint64(v))
	}
	for _, v := range s.hasRoot {
		b := uint64(0)
		if v {
			b = 1
		}
		h = fnvMix(h, b)
	}
	return h
}

func (s *forestState) Equal(other ddspec.State) bool {
	o, ok := other.(*forestState)
	if !ok || len(s.indeg) != len(o.indeg) {
		return false
	}
	for i := range s.indeg {
		if s.indeg[i] != o.indeg[i] || s.comp[i] != o.comp[i] || s.hasRoot[i] != o.hasRoot[i] {
			return false
		}
	}
	return true
}

// mergeForestComponents relabels a's component to b's (or vice versa, the
// lower label always renamed to the higher one, matching mergeComponents)
// and ORs the "contains a root" flag across every slot left carrying the
// surviving label.
func mergeForestComponents(comps []int, hasRoot []bool, a, b int) int {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return lo
	}
	anyRoot := false
	for i, c := range comps {
		if c == lo || c == hi {
			if hasRoot[i] {
				anyRoot = true
			}
		}
	}
	for i, c := range comps {
		if c == lo {
			comps[i] = hi
		}
		if comps[i] == hi {
			hasRoot[i] = anyRoot
		}
	}
	return hi
}

// ForestSpec enumerates edge-subsets of a digraph that form a forest of
// directed trees, each rooted at a vertex in roots, with edges pointing
// away from each root toward its descendants. If
// spanning is true every vertex of the graph must belong to some tree.
type ForestSpec struct {
	graph    *graph.Digraph
	roots    map[graph.VertexNumber]bool
	spanning bool
}

// NewForestSpec builds a ForestSpec over g with the given root set.
func NewForestSpec(g *graph.Digraph, roots map[graph.VertexNumber]bool, spanning bool) *ForestSpec {
	return &ForestSpec{graph: g, roots: roots, spanning: spanning}
}

// StateSize returns the frontier slot count the build needs.
func (s *ForestSpec) StateSize() int { return s.graph.Frontier().MaxFrontierSize() }

// Root returns the initial empty state at the top level.
func (s *ForestSpec) Root() (ddspec.State, int) {
	return newForestState(s.graph.Frontier().MaxFrontierSize()), s.graph.NumEdges()
}

// Child implements the rooted-forest transition: every
// vertex accrues at most one parent edge, selecting an edge that would
// close a cycle prunes to ⊥, a completed component lacking any declared
// root prunes to ⊥, and (when spanning) a departing non-root vertex that
// never received a parent edge also prunes to ⊥.
func (s *ForestSpec) Child(state ddspec.State, level int, branch int) (ddspec.State, int) {
	return forestChild(s.graph, s.roots, s.spanning, state, level, branch)
}

func forestChild(g *graph.Digraph, roots map[graph.VertexNumber]bool, spanning bool, state ddspec.State, level int, branch int) (ddspec.State, int) {
	st := state.(*forestState).Clone().(*forestState)
	fm := g.Frontier()
	edges := g.Edges()
	edgeIndex := g.NumEdges() - level

	for _, v := range fm.Entering(edgeIndex) {
		pos := fm.Pos(v)
		st.indeg[pos] = 0
		st.comp[pos] = int(v)
		st.hasRoot[pos] = roots[v]
	}

	e := edges[edgeIndex]
	if branch == 1 {
		up, vp := fm.Pos(e.From), fm.Pos(e.To)
		if roots[e.To] {
			return nil, ddspec.Reject
		}
		st.indeg[vp]++
		if st.indeg[vp] > 1 {
			return nil, ddspec.Reject
		}
		if st.comp[up] == st.comp[vp] {
			return nil, ddspec.Reject
		}
		mergeForestComponents(st.comp, st.hasRoot, st.comp[up], st.comp[vp])
	}

	for _, v := range fm.Leaving(edgeIndex) {
		pos := fm.Pos(v)
		touched := st.indeg[pos] > 0 || roots[v]
		stillLive := false
		for _, w := range fm.Frontier(edgeIndex) {
			wp := fm.Pos(w)
			if wp != pos && st.comp[wp] == st.comp[pos] {
				stillLive = true
				break
			}
		}
		if touched && !stillLive && !st.hasRoot[pos] {
			return nil, ddspec.Reject
		}
		if spanning && !roots[v] && st.indeg[pos] == 0 {
			return nil, ddspec.Reject
		}
	}

	if level == 1 {
		return nil, ddspec.Accept
	}
	return st, level - 1
}
