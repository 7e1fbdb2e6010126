// Package digraphzdd provides the external query surface for enumerating
// and manipulating families of edge-subsets of a directed graph as
// Zero-suppressed Decision Diagrams: directed cycles, Hamiltonian cycles,
// s-t paths, rooted forests and trees, and degree-constrained subgraphs.
//
// # Overview
//
// The package wires three layers together: a ZDD kernel (kernel) and a
// set-of-sets algebra over it (setset), a digraph and frontier manager
// (graph) that turns an edge list into the per-level bookkeeping a
// constraint needs, and a family of frontier-based constraint state
// machines (constraints) driven by a bottom-up builder (builder). The
// query functions in this package are the only pieces most callers need.
//
// # Basic usage
//
//	g := graph.New()
//	g.AddEdge("a", "b")
//	g.AddEdge("b", "c")
//	g.AddEdge("c", "a")
//
//	if err := g.Update(); err != nil {
//	    log.Fatal(err)
//	}
//	cycles, err := digraphzdd.DirectedCycles(context.Background(), g, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cycles.Size())
package digraphzdd

import (
	"errors"

	"github.com/edgezdd/digraphzdd/setset"
)

// Error kinds per the query surface's failure model. Every query function
// returns one of these (possibly wrapped with fmt.Errorf's %w) rather than
// an internal kernel or builder error: spec-transition failures prune
// silently to the empty family and are never surfaced as errors.
var (
	// ErrInvalidArgument reports a malformed request. DirectedGraphs
	// returns it for a degree-constraint label that is not a vertex of the
	// graph and for a degree spec that cannot be built. The other malformed
	// inputs are not reported with it: graph.Digraph.AddEdge rejects a
	// label containing ',' with its own error, NewRange and NewRangeStep
	// return constraints.ErrInvalidArgument, and
	// setset.FromIncludeExclude does not check include and exclude for
	// overlap (an element in both is treated as included).
	ErrInvalidArgument = errors.New("digraphzdd: invalid argument")

	// ErrConstraintViolation reports a request whose parameters are
	// individually well-formed but inconsistent with the graph: s or t
	// not a vertex for an s-t path query, or a specified root not a
	// vertex of the graph.
	ErrConstraintViolation = errors.New("digraphzdd: constraint violation")

	// ErrUniverseMismatch reports that the kernel's element universe size
	// disagrees with the graph's edge count at the start of a build.
	ErrUniverseMismatch = errors.New("digraphzdd: universe size mismatch")

	// ErrKernelExhausted is fatal: the kernel ran out of variables or
	// memory mid-build. The caller must treat the build as aborted.
	ErrKernelExhausted = errors.New("digraphzdd: kernel exhausted")

	// ErrEmptyChoice is returned by SetSet.RandIter invoked on an empty
	// family. It is an alias of setset.ErrEmptyChoice, the package that
	// actually raises it, so errors.Is(err, ErrEmptyChoice) succeeds
	// whether a caller holds a digraphzdd or a setset handle.
	ErrEmptyChoice = setset.ErrEmptyChoice

	// ErrNotFound is returned by SetSet.Remove when the set given isn't
	// a member of the family being removed from. Alias of
	// setset.ErrNotFound.
	ErrNotFound = setset.ErrNotFound

	// ErrOverflow is returned by SetSet.Len when a family's exact
	// cardinality doesn't fit in an int64; callers needing the true
	// count must use Size or SizeString instead. Alias of
	// setset.ErrOverflow.
	ErrOverflow = setset.ErrOverflow
)
