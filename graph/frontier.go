package graph

// Manager holds the per-edge frontier metadata derived from a frozen
// Digraph's edge list: for each 0-based edge index, which vertices enter
// the frontier, which leave it, and which currently span it, plus a
// stable slot assignment per vertex used to size and index the
// fixed-size state block constraint specs carry through a build.
type Manager struct {
	entering [][]VertexNumber
	leaving  [][]VertexNumber
	frontier [][]VertexNumber

	pos             map[VertexNumber]int
	maxFrontierSize int
}

// buildManager runs a single forward pass: mark
// each vertex's first and last referencing edge index, derive
// entering/leaving/frontier per edge from those, then simulate a
// free-list slot assignment to find the stable per-vertex position and
// the overall max_frontier_size.
func buildManager(edges []Edge, numVertices int) (*Manager, error) {
	m := len(edges)
	first := make(map[VertexNumber]int, numVertices)
	last := make(map[VertexNumber]int, numVertices)
	for e, edge := range edges {
		for _, v := range [2]VertexNumber{edge.From, edge.To} {
			if _, ok := first[v]; !ok {
				first[v] = e
			}
			last[v] = e
		}
	}

	entering := make([][]VertexNumber, m)
	leaving := make([][]VertexNumber, m)
	frontier := make([][]VertexNumber, m)
	for e := 0; e < m; e++ {
		seen := map[VertexNumber]bool{}
		for _, v := range [2]VertexNumber{edges[e].From, edges[e].To} {
			if seen[v] {
				continue
			}
			seen[v] = true
			if first[v] == e {
				entering[e] = append(entering[e], v)
			}
			if last[v] == e {
				leaving[e] = append(leaving[e], v)
			}
		}
		for v := VertexNumber(1); int(v) <= numVertices; v++ {
			if first[v] <= e && e < last[v] {
				frontier[e] = append(frontier[e], v)
			}
		}
	}

	fm := &Manager{
		entering: entering,
		leaving:  leaving,
		frontier: frontier,
		pos:      make(map[VertexNumber]int, numVertices),
	}

	var freeList []int
	nextSlot := 0
	for e := 0; e < m; e++ {
		for _, v := range entering[e] {
			var slot int
			if n := len(freeList); n > 0 {
				slot = freeList[n-1]
				freeList = freeList[:n-1]
			} else {
				slot = nextSlot
				nextSlot++
			}
			fm.pos[v] = slot
		}
		union := unionSize(frontier[e], entering[e])
		if union > fm.maxFrontierSize {
			fm.maxFrontierSize = union
		}
		for _, v := range leaving[e] {
			freeList = append(freeList, fm.pos[v])
		}
	}
	if nextSlot > fm.maxFrontierSize {
		fm.maxFrontierSize = nextSlot
	}
	return fm, nil
}

func unionSize(a, b []VertexNumber) int {
	seen := make(map[VertexNumber]bool, len(a)+len(b))
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		seen[v] = true
	}
	return len(seen)
}

// Entering returns the vertices appearing for the first time at edge
// index e.
func (m *Manager) Entering(e int) []VertexNumber { return m.entering[e] }

// Leaving returns the vertices appearing for the last time at edge index e.
func (m *Manager) Leaving(e int) []VertexNumber { return m.leaving[e] }

// Frontier returns the vertices spanning edge index e: already entered,
// not yet left.
func (m *Manager) Frontier(e int) []VertexNumber { return m.frontier[e] }

// Pos returns v's stable slot in the fixed-size state block, valid for
// the entire build regardless of which edges end up selected (the
// frontier structure is purely a function of edge order, not branch
// choices).
func (m *Manager) Pos(v VertexNumber) int { return m.pos[v] }

// MaxFrontierSize returns the number of slots the stable slot assignment
// uses, the size every constraint spec's per-build state block needs. It
// is at least max_e |frontier(e) ∪ entering(e)|, and larger when a vertex
// leaving at edge e still holds its slot while another vertex enters at e.
func (m *Manager) MaxFrontierSize() int { return m.maxFrontierSize }
