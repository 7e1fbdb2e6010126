package setset_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edgezdd/digraphzdd/kernel"
	"github.com/edgezdd/digraphzdd/setset"
)

func newKernelWithElems(t *testing.T, n int) *kernel.Kernel {
	t.Helper()
	k := kernel.NewKernel()
	_, err := k.NewElems(n)
	require.NoError(t, err)
	return k
}

func TestFromSetsAndSize(t *testing.T) {
	k := newKernelWithElems(t, 3)
	s, err := setset.FromSets(k, [][]kernel.ElemID{{1}, {2, 3}})
	require.NoError(t, err)
	size, err := s.Size()
	require.NoError(t, err)
	require.Equal(t, "2", size.String())

	ok, err := s.Contains([]kernel.ElemID{2, 3})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Contains([]kernel.ElemID{1, 2})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFromIncludeExcludeUnionAndComplement(t *testing.T) {
	k := newKernelWithElems(t, 2)
	s, err := setset.FromIncludeExclude(k, []kernel.ElemID{1}, []kernel.ElemID{2})
	require.NoError(t, err)
	size, err := s.Size()
	require.NoError(t, err)
	require.Equal(t, "1", size.String())

	comp, err := s.Complement()
	require.NoError(t, err)
	compSize, err := comp.Size()
	require.NoError(t, err)
	require.Equal(t, "3", compSize.String())
}

func TestUnionIntersectDiff(t *testing.T) {
	k := newKernelWithElems(t, 2)
	a, err := setset.FromSets(k, [][]kernel.ElemID{{1}})
	require.NoError(t, err)
	b, err := setset.FromSets(k, [][]kernel.ElemID{{1}, {2}})
	require.NoError(t, err)

	union, err := a.Union(b)
	require.NoError(t, err)
	us, _ := union.Size()
	require.Equal(t, "2", us.String())

	inter, err := a.Intersect(b)
	require.NoError(t, err)
	is, _ := inter.Size()
	require.Equal(t, "1", is.String())

	diff, err := b.Diff(a)
	require.NoError(t, err)
	ds, _ := diff.Size()
	require.Equal(t, "1", ds.String())
}

func TestEnumFormatting(t *testing.T) {
	k := newKernelWithElems(t, 2)
	s, err := setset.FromSets(k, [][]kernel.ElemID{{1}, {2}})
	require.NoError(t, err)
	out, err := s.Enum([2]string{"[", "]"}, [2]string{"(", ")"})
	require.NoError(t, err)
	require.Equal(t, "[(1), (2)]", out)
}

func TestProbability(t *testing.T) {
	k := newKernelWithElems(t, 1)
	s, err := setset.FromIncludeExclude(k, []kernel.ElemID{1}, nil)
	require.NoError(t, err)
	p, err := s.Probability(map[kernel.ElemID]float64{1: 0.3})
	require.NoError(t, err)
	require.InDelta(t, 0.3, p, 1e-9)
}

func TestSizeFilters(t *testing.T) {
	k := newKernelWithElems(t, 2)
	all, err := setset.Universe(k)
	require.NoError(t, err)

	small, err := all.SmallerThan(1)
	require.NoError(t, err)
	ss, _ := small.Size()
	require.Equal(t, "1", ss.String()) // only the empty set has size < 1

	exact, err := all.SetSize(1)
	require.NoError(t, err)
	es, _ := exact.Size()
	require.Equal(t, "2", es.String()) // {1} and {2}
}

func TestRemoveMissingMemberReturnsNotFound(t *testing.T) {
	k := newKernelWithElems(t, 3)
	s, err := setset.FromSets(k, [][]kernel.ElemID{{1}})
	require.NoError(t, err)

	_, err = s.Remove([]kernel.ElemID{2, 3})
	require.ErrorIs(t, err, setset.ErrNotFound)
}

func TestRemovePresentMemberDropsIt(t *testing.T) {
	k := newKernelWithElems(t, 3)
	s, err := setset.FromSets(k, [][]kernel.ElemID{{1}, {2, 3}})
	require.NoError(t, err)

	after, err := s.Remove([]kernel.ElemID{2, 3})
	require.NoError(t, err)
	ok, err := after.Contains([]kernel.ElemID{2, 3})
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = after.Contains([]kernel.ElemID{1})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDiscardMissingMemberIsNoop(t *testing.T) {
	k := newKernelWithElems(t, 3)
	s, err := setset.FromSets(k, [][]kernel.ElemID{{1}})
	require.NoError(t, err)

	after, err := s.Discard([]kernel.ElemID{2, 3})
	require.NoError(t, err)
	size, err := after.Size()
	require.NoError(t, err)
	require.Equal(t, "1", size.String())
}

func TestRandIterOnEmptyFamilyReturnsEmptyChoice(t *testing.T) {
	k := newKernelWithElems(t, 2)
	empty, err := setset.FromSets(k, nil)
	require.NoError(t, err)

	_, err = empty.RandIter(rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, setset.ErrEmptyChoice)
}

func TestLenMatchesSizeAndOverflows(t *testing.T) {
	k := newKernelWithElems(t, 2)
	s, err := setset.FromSets(k, [][]kernel.ElemID{{1}, {2}})
	require.NoError(t, err)
	n, err := s.Len()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	k2 := newKernelWithElems(t, 64)
	all, err := setset.Universe(k2)
	require.NoError(t, err)
	_, err = all.Len()
	require.ErrorIs(t, err, setset.ErrOverflow)
}
