package digraphzdd

import (
	"context"
	"fmt"

	"github.com/edgezdd/digraphzdd/builder"
	"github.com/edgezdd/digraphzdd/constraints"
	"github.com/edgezdd/digraphzdd/ddspec"
	"github.com/edgezdd/digraphzdd/graph"
	"github.com/edgezdd/digraphzdd/kernel"
	"github.com/edgezdd/digraphzdd/setset"
)

// procKernel is the process-wide kernel: the element universe and node
// table every query builds against, so families returned by different
// query calls over the same graph share structure and may be intersected
// via search_space.
var procKernel = kernel.NewKernel()

// Kernel exposes the process-wide kernel for callers that need direct
// access to its algebra, iteration, or serialization surface.
func Kernel() *kernel.Kernel { return procKernel }

// ShowMessages toggles the builder's progress logging and returns the
// previous value.
func ShowMessages(show bool) bool { return procKernel.ShowMessages(show) }

func runBuild(ctx context.Context, spec ddspec.Spec, searchSpace *setset.SetSet) (*setset.SetSet, error) {
	id, err := builder.Build(ctx, procKernel, spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKernelExhausted, err)
	}
	if searchSpace != nil {
		id, err = procKernel.Intersect(id, searchSpace.Node())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUniverseMismatch, err)
		}
	}
	return setset.Wrap(procKernel, id), nil
}

// DirectedCycles enumerates edge-subsets of g forming exactly one
// directed simple cycle.
func DirectedCycles(ctx context.Context, g *graph.Digraph, searchSpace *setset.SetSet) (*setset.SetSet, error) {
	return runBuild(ctx, constraints.NewCycleSpec(g), searchSpace)
}

// DirectedHamiltonianCycles enumerates edge-subsets of g forming a
// directed cycle that touches every vertex.
func DirectedHamiltonianCycles(ctx context.Context, g *graph.Digraph, searchSpace *setset.SetSet) (*setset.SetSet, error) {
	return runBuild(ctx, constraints.NewHamiltonianCycleSpec(g), searchSpace)
}

// DirectedSTPath enumerates edge-subsets of g forming a directed simple
// path from s to t, optionally required to visit every vertex.
func DirectedSTPath(ctx context.Context, g *graph.Digraph, s, t string, isHamiltonian bool, searchSpace *setset.SetSet) (*setset.SetSet, error) {
	sv, ok := g.VertexNumber(s)
	if !ok {
		return nil, fmt.Errorf("%w: s label %q not in graph", ErrConstraintViolation, s)
	}
	tv, ok := g.VertexNumber(t)
	if !ok {
		return nil, fmt.Errorf("%w: t label %q not in graph", ErrConstraintViolation, t)
	}
	return runBuild(ctx, constraints.NewSTPathSpec(g, sv, tv, isHamiltonian), searchSpace)
}

// RootedForests enumerates edge-subsets of g forming a forest of
// directed trees rooted at roots, optionally required to span every
// vertex of g. A nil or empty roots treats every vertex as a potential
// root.
func RootedForests(ctx context.Context, g *graph.Digraph, roots []string, isSpanning bool, searchSpace *setset.SetSet) (*setset.SetSet, error) {
	rootSet := make(map[graph.VertexNumber]bool, len(roots))
	if len(roots) == 0 {
		for v := graph.VertexNumber(1); int(v) <= g.NumVertices(); v++ {
			rootSet[v] = true
		}
	} else {
		for _, label := range roots {
			v, ok := g.VertexNumber(label)
			if !ok {
				return nil, fmt.Errorf("%w: root label %q not in graph", ErrConstraintViolation, label)
			}
			rootSet[v] = true
		}
	}
	return runBuild(ctx, constraints.NewForestSpec(g, rootSet, isSpanning), searchSpace)
}

// RootedTrees enumerates edge-subsets of g forming a single directed
// tree rooted at root, optionally required to span every vertex of g.
func RootedTrees(ctx context.Context, g *graph.Digraph, root string, isSpanning bool, searchSpace *setset.SetSet) (*setset.SetSet, error) {
	rv, ok := g.VertexNumber(root)
	if !ok {
		return nil, fmt.Errorf("%w: root label %q not in graph", ErrConstraintViolation, root)
	}
	return runBuild(ctx, constraints.NewTreeSpec(g, rv, isSpanning), searchSpace)
}

// DirectedGraphs enumerates edge-subsets of g whose per-vertex in-degree
// and out-degree satisfy the supplied ranges. Vertices absent from
// inDegree/outDegree fall back to the default [0, m] range. WithConnected
// additionally requires the selected edges to form a single connected
// component.
func DirectedGraphs(ctx context.Context, g *graph.Digraph, inDegree, outDegree map[string]Range, searchSpace *setset.SetSet, opts ...Option) (*setset.SetSet, error) {
	cfg := newQueryConfig(opts...)
	in, err := resolveDegreeMap(g, inDegree)
	if err != nil {
		return nil, err
	}
	out, err := resolveDegreeMap(g, outDegree)
	if err != nil {
		return nil, err
	}
	spec, err := constraints.NewDegreeSpec(g, in, out, cfg.connected)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return runBuild(ctx, spec, searchSpace)
}

func resolveDegreeMap(g *graph.Digraph, byLabel map[string]Range) (map[graph.VertexNumber]Range, error) {
	if len(byLabel) == 0 {
		return nil, nil
	}
	out := make(map[graph.VertexNumber]Range, len(byLabel))
	for label, r := range byLabel {
		v, ok := g.VertexNumber(label)
		if !ok {
			return nil, fmt.Errorf("%w: vertex label %q not in graph", ErrInvalidArgument, label)
		}
		out[v] = r
	}
	return out, nil
}
