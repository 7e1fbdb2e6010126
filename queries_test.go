package digraphzdd_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	digraphzdd "github.com/edgezdd/digraphzdd"
	"github.com/edgezdd/digraphzdd/graph"
)

func triangle(t *testing.T) *graph.Digraph {
	t.Helper()
	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("c", "a"))
	require.NoError(t, g.Update())
	return g
}

func TestDirectedCyclesTriangle(t *testing.T) {
	ctx := context.Background()
	g := triangle(t)

	cycles, err := digraphzdd.DirectedCycles(ctx, g, nil)
	require.NoError(t, err)
	size, err := cycles.Size()
	require.NoError(t, err)
	require.Equal(t, "1", size.String())

	ham, err := digraphzdd.DirectedHamiltonianCycles(ctx, g, nil)
	require.NoError(t, err)
	hamSize, err := ham.Size()
	require.NoError(t, err)
	require.Equal(t, size.String(), hamSize.String())
}

func TestDirectedSTPathDiamond(t *testing.T) {
	ctx := context.Background()
	g := graph.New()
	require.NoError(t, g.AddEdge("s", "u"))
	require.NoError(t, g.AddEdge("s", "v"))
	require.NoError(t, g.AddEdge("u", "t"))
	require.NoError(t, g.AddEdge("v", "t"))
	require.NoError(t, g.Update())

	paths, err := digraphzdd.DirectedSTPath(ctx, g, "s", "t", false, nil)
	require.NoError(t, err)
	size, err := paths.Size()
	require.NoError(t, err)
	require.Equal(t, "2", size.String())

	// Neither s-u-t nor s-v-t visits every vertex of the diamond, so no
	// path qualifies as Hamiltonian.
	ham, err := digraphzdd.DirectedSTPath(ctx, g, "s", "t", true, nil)
	require.NoError(t, err)
	hamSize, err := ham.Size()
	require.NoError(t, err)
	require.Equal(t, "0", hamSize.String())

	_, err = digraphzdd.DirectedSTPath(ctx, g, "s", "nope", false, nil)
	require.ErrorIs(t, err, digraphzdd.ErrConstraintViolation)
}

func TestRootedTreesStar(t *testing.T) {
	ctx := context.Background()
	g := graph.New()
	require.NoError(t, g.AddEdge("r", "a"))
	require.NoError(t, g.AddEdge("r", "b"))
	require.NoError(t, g.Update())

	trees, err := digraphzdd.RootedTrees(ctx, g, "r", true, nil)
	require.NoError(t, err)
	size, err := trees.Size()
	require.NoError(t, err)
	require.Equal(t, "1", size.String())
}

func TestRootedForestsNonSpanning(t *testing.T) {
	ctx := context.Background()
	g := graph.New()
	require.NoError(t, g.AddEdge("r", "a"))
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.Update())

	forests, err := digraphzdd.RootedForests(ctx, g, []string{"r"}, false, nil)
	require.NoError(t, err)
	size, err := forests.Size()
	require.NoError(t, err)
	require.Equal(t, "3", size.String()) // {}, {r-a}, {r-a,a-b}

	_, err = digraphzdd.RootedForests(ctx, g, []string{"nope"}, false, nil)
	require.ErrorIs(t, err, digraphzdd.ErrConstraintViolation)
}

func TestDirectedGraphsDegreeConstraint(t *testing.T) {
	ctx := context.Background()
	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "a"))
	require.NoError(t, g.Update())

	exact1, err := digraphzdd.NewRange(2)
	require.NoError(t, err)

	graphs, err := digraphzdd.DirectedGraphs(ctx, g,
		map[string]digraphzdd.Range{"a": exact1},
		map[string]digraphzdd.Range{"a": exact1},
		nil)
	require.NoError(t, err)
	_, err = graphs.Size()
	require.NoError(t, err)

	_, err = digraphzdd.DirectedGraphs(ctx, g,
		map[string]digraphzdd.Range{"nope": exact1}, nil, nil)
	require.ErrorIs(t, err, digraphzdd.ErrInvalidArgument)
}
