package builder_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edgezdd/digraphzdd/builder"
	"github.com/edgezdd/digraphzdd/constraints"
	"github.com/edgezdd/digraphzdd/ddspec"
	"github.com/edgezdd/digraphzdd/graph"
	"github.com/edgezdd/digraphzdd/kernel"
)

func triangle(t *testing.T) *graph.Digraph {
	t.Helper()
	g := graph.New()
	require.NoError(t, g.AddEdge("1", "2"))
	require.NoError(t, g.AddEdge("2", "3"))
	require.NoError(t, g.AddEdge("3", "1"))
	require.NoError(t, g.Update())
	return g
}

func completeDigraph(t *testing.T, n int) *graph.Digraph {
	t.Helper()
	g := graph.New()
	labels := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			require.NoError(t, g.AddEdge(labels[i], labels[j]))
		}
	}
	require.NoError(t, g.Update())
	return g
}

func TestBuildTriangleHasExactlyOneCycle(t *testing.T) {
	g := triangle(t)
	k := kernel.NewKernel()
	id, err := builder.Build(context.Background(), k, constraints.NewCycleSpec(g))
	require.NoError(t, err)
	count, err := k.Count(id)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), count)
}

func TestBuildK3HasFiveDirectedCycles(t *testing.T) {
	g := completeDigraph(t, 3)
	k := kernel.NewKernel()
	id, err := builder.Build(context.Background(), k, constraints.NewCycleSpec(g))
	require.NoError(t, err)
	count, err := k.Count(id)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(5), count)
}

func TestBuildTriangleHamiltonianMatchesPlainCycle(t *testing.T) {
	g := triangle(t)
	k := kernel.NewKernel()
	id, err := builder.Build(context.Background(), k, constraints.NewHamiltonianCycleSpec(g))
	require.NoError(t, err)
	count, err := k.Count(id)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), count)
}

func TestBuildDegreeSpecRejectsEmptySelection(t *testing.T) {
	g := triangle(t)
	spec, err := constraints.NewDegreeSpec(g, nil, nil, false)
	require.NoError(t, err)
	k := kernel.NewKernel()
	id, err := builder.Build(context.Background(), k, spec)
	require.NoError(t, err)
	count, err := k.Count(id)
	require.NoError(t, err)
	// Every nonempty subset of a 3-edge triangle satisfies the default
	// [0, m] degree bounds; only the empty subset is excluded.
	require.Equal(t, big.NewInt(7), count)
}

// TestCustomSpecBoundsSelectionCount drives a CustomSpec wrapping an
// IntState directly against a kernel, with no graph or frontier
// involved: the state tracks how many of 3 elements have been picked so
// far, rejecting once more than 2 are chosen.
func TestCustomSpecBoundsSelectionCount(t *testing.T) {
	const budget = 2
	spec := ddspec.CustomSpec{
		Size: 1,
		RootFunc: func() (ddspec.State, int) {
			return ddspec.NewIntState(0), 3
		},
		ChildFunc: func(s ddspec.State, level int, branch int) (ddspec.State, int) {
			count := s.(*ddspec.IntState).Values[0]
			if branch == 1 {
				count++
			}
			if count > budget {
				return nil, ddspec.Reject
			}
			if level == 1 {
				return nil, ddspec.Accept
			}
			return ddspec.NewIntState(count), level - 1
		},
	}

	k := kernel.NewKernel()
	id, err := builder.Build(context.Background(), k, spec)
	require.NoError(t, err)
	count, err := k.Count(id)
	require.NoError(t, err)
	// Subsets of {1,2,3} with at most 2 elements: C(3,0)+C(3,1)+C(3,2)=7.
	require.Equal(t, big.NewInt(7), count)
}
