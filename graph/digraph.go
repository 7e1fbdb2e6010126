// Package graph implements the digraph and frontier bookkeeping that feed
// the constraint state machines: an
// ordered edge list over symbolically labeled vertices, and for each edge
// index the set of vertices entering, leaving, and currently spanning the
// frontier of the partial edge-subset decision.
package graph

import (
	"fmt"
	"strings"
)

// VertexNumber is a graph-local, 1-based vertex identifier assigned in the
// order labels are first seen.
type VertexNumber int

// Edge is one entry of the digraph's ordered edge list, directed From->To.
type Edge struct {
	From, To VertexNumber
}

// Digraph accepts edges as label pairs, assigns each previously-unseen
// label the next VertexNumber, and keeps edges in insertion order — that
// order is the edge's level for every downstream frontier computation.
// Digraph is built incrementally via AddEdge, then frozen via Update,
// mirroring a New/Update split between configuration and construction.
type Digraph struct {
	labels   []string
	index    map[string]VertexNumber
	edges    []Edge
	edgeLbls [][2]string
	frozen   bool

	frontier *Manager
}

// New returns an empty Digraph ready to accept edges.
func New() *Digraph {
	return &Digraph{index: make(map[string]VertexNumber)}
}

// AddEdge appends a directed edge between two labels, assigning either
// label a VertexNumber on first sight. It returns an error if called after
// Update or if either label contains ','.
func (g *Digraph) AddEdge(from, to string) error {
	if g.frozen {
		return fmt.Errorf("graph: AddEdge after Update")
	}
	if strings.ContainsRune(from, ',') || strings.ContainsRune(to, ',') {
		return fmt.Errorf("graph: vertex label must not contain ','")
	}
	u := g.vertexFor(from)
	v := g.vertexFor(to)
	g.edges = append(g.edges, Edge{From: u, To: v})
	g.edgeLbls = append(g.edgeLbls, [2]string{from, to})
	return nil
}

func (g *Digraph) vertexFor(label string) VertexNumber {
	if n, ok := g.index[label]; ok {
		return n
	}
	g.labels = append(g.labels, label)
	n := VertexNumber(len(g.labels))
	g.index[label] = n
	return n
}

// Update freezes the edge list and precomputes frontier metadata. No
// further edges may be added afterward; every frontier query depends on
// this immutability.
func (g *Digraph) Update() error {
	if g.frozen {
		return nil
	}
	g.frozen = true
	fm, err := buildManager(g.edges, len(g.labels))
	if err != nil {
		return err
	}
	g.frontier = fm
	return nil
}

// NumVertices returns the number of distinct vertex labels seen so far.
func (g *Digraph) NumVertices() int { return len(g.labels) }

// NumEdges returns the number of edges in the ordered edge list.
func (g *Digraph) NumEdges() int { return len(g.edges) }

// Edges returns the frozen ordered edge list. Must be called after Update.
func (g *Digraph) Edges() []Edge { return g.edges }

// Label returns the external label for a VertexNumber.
func (g *Digraph) Label(v VertexNumber) string {
	if v < 1 || int(v) > len(g.labels) {
		return ""
	}
	return g.labels[v-1]
}

// VertexNumber returns the internal number assigned to label, and whether
// that label was ever seen.
func (g *Digraph) VertexNumber(label string) (VertexNumber, bool) {
	n, ok := g.index[label]
	return n, ok
}

// Frontier returns the precomputed frontier manager. Must be called after
// a successful Update.
func (g *Digraph) Frontier() *Manager { return g.frontier }
