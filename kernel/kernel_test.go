package kernel_test

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgezdd/digraphzdd/kernel"
)

// buildSet returns the ZDD for the single family {elems}, elems given in
// ascending ElemID order. Make requires a node's variable to exceed both of
// its children's top variables, so the tree is grown from the smallest
// element inward-out: the smallest element wraps Top first, and each
// larger element wraps the previous (smaller-top) result.
func buildSet(t *testing.T, k *kernel.Kernel, elems ...kernel.ElemID) kernel.NodeID {
	t.Helper()
	id := k.Top()
	for i := 0; i < len(elems); i++ {
		var err error
		id, err = k.Make(elems[i], k.Bot(), id)
		require.NoError(t, err)
	}
	return id
}

func newTestKernel(t *testing.T, n int) (*kernel.Kernel, []kernel.ElemID) {
	t.Helper()
	k := kernel.NewKernel()
	elems, err := k.NewElems(n)
	require.NoError(t, err)
	return k, elems
}

func TestTableZeroSuppression(t *testing.T) {
	k, e := newTestKernel(t, 1)
	// Make(v, lo, Bot) must elide to lo per the zero-suppression rule.
	id, err := k.Make(e[0], k.Top(), k.Bot())
	require.NoError(t, err)
	assert.Equal(t, k.Top(), id)
}

func TestTableHashConsing(t *testing.T) {
	k, e := newTestKernel(t, 2)
	a, err := k.Make(e[0], k.Bot(), k.Top())
	require.NoError(t, err)
	b, err := k.Make(e[1], a, k.Top())
	require.NoError(t, err)
	c, err := k.Make(e[1], a, k.Top())
	require.NoError(t, err)
	assert.Equal(t, b, c, "identical (var,lo,hi) triples must share one NodeID")
}

func TestMakeRejectsBadOrder(t *testing.T) {
	k, e := newTestKernel(t, 2)
	lo, err := k.Make(e[1], k.Bot(), k.Top())
	require.NoError(t, err)
	_, err = k.Make(e[0], lo, k.Bot())
	assert.ErrorIs(t, err, kernel.ErrBadOrder)
}

func TestSealBlocksNewElems(t *testing.T) {
	k, _ := newTestKernel(t, 1)
	k.Seal()
	_, err := k.NewElems(1)
	assert.ErrorIs(t, err, kernel.ErrSealed)
}

func TestUnionIntersectDiffSymDiff(t *testing.T) {
	k, e := newTestKernel(t, 3)
	f1 := buildSet(t, k, e[0])          // {{1}}
	f23 := buildSet(t, k, e[1], e[2])    // {{2,3}}
	f := must2(k.Union(f1, f23))         // {{1},{2,3}}

	c, err := k.Count(f)
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.Int64())

	inter, err := k.Intersect(f, f1)
	require.NoError(t, err)
	assert.Equal(t, f1, inter)

	diff, err := k.Diff(f, f1)
	require.NoError(t, err)
	assert.Equal(t, f23, diff)

	sym, err := k.SymDiff(f, f1)
	require.NoError(t, err)
	assert.Equal(t, f23, sym)
}

func TestOnset0OffsetChange(t *testing.T) {
	k, e := newTestKernel(t, 2)
	f1 := buildSet(t, k, e[0])
	f12 := buildSet(t, k, e[0], e[1])
	f := must2(k.Union(f1, f12)) // {{1},{1,2}}

	// Onset0(f, 1) strips element 1 from every member that has it:
	// {1}->{}, {1,2}->{2}, giving {{},{2}}.
	on, err := k.Onset0(f, e[0])
	require.NoError(t, err)
	f2 := buildSet(t, k, e[1])
	expectedOn, err := k.Union(k.Top(), f2)
	require.NoError(t, err)
	assert.Equal(t, expectedOn, on)

	off, err := k.Offset(f, e[0])
	require.NoError(t, err)
	assert.Equal(t, k.Bot(), off)

	changed, err := k.Change(f1, e[1])
	require.NoError(t, err)
	assert.Equal(t, f12, changed)
}

func TestJoinAndMeet(t *testing.T) {
	k, e := newTestKernel(t, 3)
	a := must2(k.Union(buildSet(t, k, e[0]), k.Top()))       // {{}, {1}}
	b := must2(k.Union(buildSet(t, k, e[1]), buildSet(t, k, e[2]))) // {{2},{3}}

	joined, err := k.Join(a, b)
	require.NoError(t, err)
	cnt, err := k.Count(joined)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cnt.Int64()) // {2},{3},{1,2},{1,3}

	met, err := k.Meet(a, b)
	require.NoError(t, err)
	// Every pairwise intersection ({}∩{2}, {}∩{3}, {1}∩{2}, {1}∩{3}) is the
	// empty set, so the distinct-results family collapses to {∅} == Top.
	assert.Equal(t, k.Top(), met)
}

func TestSubsetsSupersets(t *testing.T) {
	k, e := newTestKernel(t, 3)
	f1 := buildSet(t, k, e[0])
	f12 := buildSet(t, k, e[0], e[1])
	f123 := buildSet(t, k, e[0], e[1], e[2])
	f := must2(k.Union(must2(k.Union(f1, f12)), f123)) // {{1},{1,2},{1,2,3}}

	g := f12 // {{1,2}}
	subs, err := k.Subsets(f, g)
	require.NoError(t, err)
	expectedSubs, err := k.Union(f1, f12)
	require.NoError(t, err)
	assert.Equal(t, expectedSubs, subs)

	supers, err := k.Supersets(f, g)
	require.NoError(t, err)
	expectedSupers, err := k.Union(f12, f123)
	require.NoError(t, err)
	assert.Equal(t, expectedSupers, supers)
}

func TestMinimalMaximal(t *testing.T) {
	k, e := newTestKernel(t, 3)
	f1 := buildSet(t, k, e[0])
	f12 := buildSet(t, k, e[0], e[1])
	f123 := buildSet(t, k, e[0], e[1], e[2])
	f := must2(k.Union(must2(k.Union(f1, f12)), f123))

	min, err := k.Minimal(f)
	require.NoError(t, err)
	assert.Equal(t, f1, min)

	max, err := k.Maximal(f)
	require.NoError(t, err)
	assert.Equal(t, f123, max)
}

func TestHittingOfPairs(t *testing.T) {
	k, e := newTestKernel(t, 2)
	// f = {{1},{2}}: every hitting set must contain both 1 and 2.
	f := must2(k.Union(buildSet(t, k, e[0]), buildSet(t, k, e[1])))
	hit, err := k.Hitting(f)
	require.NoError(t, err)

	c, err := k.Count(hit)
	require.NoError(t, err)
	// {1} misses {2} and {2} misses {1}, so the only minimal hitting set
	// of {{1},{2}} is {1,2}.
	assert.Equal(t, int64(1), c.Int64())
	expected := buildSet(t, k, e[0], e[1])
	assert.Equal(t, expected, hit)
}

func TestQuotientRemainder(t *testing.T) {
	k, e := newTestKernel(t, 2)
	// F = {{1,2}}, G = {{2}}: F/G = {{1}}, since {1}∪{2}={1,2}∈F, {1}∩{2}=∅.
	f := buildSet(t, k, e[0], e[1])
	g := buildSet(t, k, e[1])
	q, err := k.Quotient(f, g)
	require.NoError(t, err)
	assert.Equal(t, buildSet(t, k, e[0]), q)

	rem, err := k.Remainder(f, g)
	require.NoError(t, err)
	assert.Equal(t, k.Bot(), rem)
}

func TestOptimizeMaxAndMin(t *testing.T) {
	k, e := newTestKernel(t, 3)
	f1 := buildSet(t, k, e[0])
	f23 := buildSet(t, k, e[1], e[2])
	f := must2(k.Union(f1, f23))

	weights := map[kernel.ElemID]float64{e[0]: 1, e[1]: 5, e[2]: 5}
	w := func(id kernel.ElemID) float64 { return weights[id] }

	set, cost, err := k.Optimize(f, w, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []kernel.ElemID{e[1], e[2]}, set)
	assert.Equal(t, 10.0, cost)

	set, cost, err = k.Optimize(f, w, false)
	require.NoError(t, err)
	assert.Equal(t, []kernel.ElemID{e[0]}, set)
	assert.Equal(t, 1.0, cost)
}

func TestIterateEnumeratesAllMembers(t *testing.T) {
	k, e := newTestKernel(t, 3)
	f1 := buildSet(t, k, e[0])
	f23 := buildSet(t, k, e[1], e[2])
	f := must2(k.Union(f1, f23))

	ctx := context.Background()
	var got [][]kernel.ElemID
	for s := range k.Iterate(ctx, f) {
		got = append(got, s)
	}
	// Members are emitted with their highest-numbered element first, since
	// the ZDD's top variable (encountered first during the top-down walk)
	// is always the largest in the path.
	assert.ElementsMatch(t, [][]kernel.ElemID{{e[0]}, {e[2], e[1]}}, got)
}

func TestMaxIterateOrdersByWeight(t *testing.T) {
	k, e := newTestKernel(t, 3)
	f1 := buildSet(t, k, e[0])
	f2 := buildSet(t, k, e[1])
	f3 := buildSet(t, k, e[2])
	f := must2(k.Union(must2(k.Union(f1, f2)), f3))

	weights := map[kernel.ElemID]float64{e[0]: 1, e[1]: 3, e[2]: 2}
	w := func(id kernel.ElemID) float64 { return weights[id] }

	results, err := k.MaxIterate(context.Background(), f, w, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []kernel.ElemID{e[1]}, results[0])
	assert.Equal(t, []kernel.ElemID{e[2]}, results[1])
	assert.Equal(t, []kernel.ElemID{e[0]}, results[2])
}

func TestRandomChoiceStaysWithinFamily(t *testing.T) {
	k, e := newTestKernel(t, 3)
	f1 := buildSet(t, k, e[0])
	f23 := buildSet(t, k, e[1], e[2])
	f := must2(k.Union(f1, f23))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		set, err := k.RandomChoice(f, rng)
		require.NoError(t, err)
		assert.Contains(t, [][]kernel.ElemID{{e[0]}, {e[2], e[1]}}, set)
	}
}

func TestDumpLoadRoundTrip(t *testing.T) {
	k, e := newTestKernel(t, 3)
	f1 := buildSet(t, k, e[0])
	f23 := buildSet(t, k, e[1], e[2])
	f := must2(k.Union(f1, f23))

	var buf bytes.Buffer
	require.NoError(t, k.Dump(&buf, f))

	k2 := kernel.NewKernel()
	_, err := k2.NewElems(3)
	require.NoError(t, err)
	loaded, err := k2.Load(&buf)
	require.NoError(t, err)

	c1, err := k.Count(f)
	require.NoError(t, err)
	c2, err := k2.Count(loaded)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
}

func TestEnumFormatsSorted(t *testing.T) {
	k, e := newTestKernel(t, 3)
	f1 := buildSet(t, k, e[0])
	f23 := buildSet(t, k, e[1], e[2])
	f := must2(k.Union(f1, f23))

	var buf bytes.Buffer
	require.NoError(t, k.Enum(&buf, f))
	assert.Equal(t, "{1}, {2, 3}", buf.String())
}

func must2(id kernel.NodeID, err error) kernel.NodeID {
	if err != nil {
		panic(err)
	}
	return id
}
