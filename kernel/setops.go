package kernel

// Structural filters (Subsets/Supersets and their complements), the
// ⊆-antichain operators (Minimal/Maximal), minimal hitting sets, and set
// division (Quotient/Remainder). These form the higher layer of the
// SetSet algebra, all built as branch-recursive ZDD algorithms in the
// style first presented by Minato for zero-suppressed BDDs.

// Supersets returns the members of f that are a superset of some member of g.
func (k *Kernel) Supersets(f, g NodeID) (NodeID, error) {
	return k.supersetsMemo(f, g, make(map[[2]NodeID]NodeID))
}

func (k *Kernel) supersetsMemo(f, g NodeID, memo map[[2]NodeID]NodeID) (NodeID, error) {
	if g == Bot || f == Bot {
		return Bot, nil
	}
	if g == Top {
		return f, nil
	}
	if f == g {
		return f, nil
	}
	key := [2]NodeID{f, g}
	if v, ok := memo[key]; ok {
		return v, nil
	}

	vf, vg := k.TopVar(f), k.TopVar(g)
	top := vf
	if vg > top {
		top = vg
	}
	f0, f1 := f, Bot
	if vf == top {
		n, err := k.Node(f)
		if err != nil {
			return NullNode, err
		}
		f0, f1 = n.Lo, n.Hi
	}
	g0, g1 := g, Bot
	if vg == top {
		n, err := k.Node(g)
		if err != nil {
			return NullNode, err
		}
		g0, g1 = n.Lo, n.Hi
	}

	loRes, err := k.supersetsMemo(f0, g0, memo)
	if err != nil {
		return NullNode, err
	}
	h1, err := k.supersetsMemo(f1, g0, memo)
	if err != nil {
		return NullNode, err
	}
	h2, err := k.supersetsMemo(f1, g1, memo)
	if err != nil {
		return NullNode, err
	}
	hiRes, err := k.Union(h1, h2)
	if err != nil {
		return NullNode, err
	}
	res, err := k.Make(top, loRes, hiRes)
	if err != nil {
		return NullNode, err
	}
	memo[key] = res
	return res, nil
}

// Subsets returns the members of f that are a subset of some member of g.
func (k *Kernel) Subsets(f, g NodeID) (NodeID, error) {
	return k.subsetsMemo(f, g, make(map[[2]NodeID]NodeID))
}

func (k *Kernel) subsetsMemo(f, g NodeID, memo map[[2]NodeID]NodeID) (NodeID, error) {
	if f == Bot || g == Bot {
		return Bot, nil
	}
	if f == Top {
		// ∅ ∈ f always qualifies: ∅ is a subset of any member of g as long
		// as g is non-empty, which is already guaranteed above.
		return Top, nil
	}
	if f == g {
		return f, nil
	}
	key := [2]NodeID{f, g}
	if v, ok := memo[key]; ok {
		return v, nil
	}

	vf, vg := k.TopVar(f), k.TopVar(g)
	top := vf
	if vg > top {
		top = vg
	}
	f0, f1 := f, Bot
	if vf == top {
		n, err := k.Node(f)
		if err != nil {
			return NullNode, err
		}
		f0, f1 = n.Lo, n.Hi
	}
	g0, g1 := g, Bot
	if vg == top {
		n, err := k.Node(g)
		if err != nil {
			return NullNode, err
		}
		g0, g1 = n.Lo, n.Hi
	}

	l1, err := k.subsetsMemo(f0, g0, memo)
	if err != nil {
		return NullNode, err
	}
	l2, err := k.subsetsMemo(f0, g1, memo)
	if err != nil {
		return NullNode, err
	}
	loRes, err := k.Union(l1, l2)
	if err != nil {
		return NullNode, err
	}
	hiRes, err := k.subsetsMemo(f1, g1, memo)
	if err != nil {
		return NullNode, err
	}
	res, err := k.Make(top, loRes, hiRes)
	if err != nil {
		return NullNode, err
	}
	memo[key] = res
	return res, nil
}

// NonSubsets returns the members of f that are not a subset of any member of g.
func (k *Kernel) NonSubsets(f, g NodeID) (NodeID, error) {
	s, err := k.Subsets(f, g)
	if err != nil {
		return NullNode, err
	}
	return k.Diff(f, s)
}

// NonSupersets returns the members of f that are not a superset of any member of g.
func (k *Kernel) NonSupersets(f, g NodeID) (NodeID, error) {
	s, err := k.Supersets(f, g)
	if err != nil {
		return NullNode, err
	}
	return k.Diff(f, s)
}

// Minimal returns the ⊆-minimal members of f: no member of the result is a
// strict superset of another.
func (k *Kernel) Minimal(f NodeID) (NodeID, error) {
	return k.minimalMemo(f, make(map[NodeID]NodeID))
}

func (k *Kernel) minimalMemo(f NodeID, memo map[NodeID]NodeID) (NodeID, error) {
	if f == Bot || f == Top {
		return f, nil
	}
	if r, ok := memo[f]; ok {
		return r, nil
	}
	n, err := k.Node(f)
	if err != nil {
		return NullNode, err
	}
	lo, err := k.minimalMemo(n.Lo, memo)
	if err != nil {
		return NullNode, err
	}
	hi, err := k.minimalMemo(n.Hi, memo)
	if err != nil {
		return NullNode, err
	}
	// Any hi-branch member (which includes the top variable) that is a
	// superset of a surviving lo-branch member is dominated and dropped.
	hi, err = k.NonSupersets(hi, lo)
	if err != nil {
		return NullNode, err
	}
	res, err := k.Make(n.Var, lo, hi)
	if err != nil {
		return NullNode, err
	}
	memo[f] = res
	return res, nil
}

// Maximal returns the ⊆-maximal members of f: no member of the result is a
// strict subset of another.
func (k *Kernel) Maximal(f NodeID) (NodeID, error) {
	return k.maximalMemo(f, make(map[NodeID]NodeID))
}

func (k *Kernel) maximalMemo(f NodeID, memo map[NodeID]NodeID) (NodeID, error) {
	if f == Bot || f == Top {
		return f, nil
	}
	if r, ok := memo[f]; ok {
		return r, nil
	}
	n, err := k.Node(f)
	if err != nil {
		return NullNode, err
	}
	lo, err := k.maximalMemo(n.Lo, memo)
	if err != nil {
		return NullNode, err
	}
	hi, err := k.maximalMemo(n.Hi, memo)
	if err != nil {
		return NullNode, err
	}
	// A surviving lo-branch member S (without the top variable) is
	// dominated whenever S is a subset of n.Hi's pre-recursion content
	// (adding the top variable to that content yields a strict superset of S).
	lo, err = k.NonSubsets(lo, n.Hi)
	if err != nil {
		return NullNode, err
	}
	res, err := k.Make(n.Var, lo, hi)
	if err != nil {
		return NullNode, err
	}
	memo[f] = res
	return res, nil
}

// Hitting returns the family of minimal hitting sets of f: sets that
// intersect every member of f. This is the riskiest algorithm in the
// kernel — it follows the standard branch-recursive ZDD dualization shape
// (Minato's "zero-suppressed BDD" hitting-set construction): a minimal
// hitting set either uses the top variable, in which case the rest must
// hit everything NOT already covered by that variable, or it doesn't, in
// which case it must hit both branches directly; the two candidate
// families are then cross-filtered so the combined result stays an
// antichain.
func (k *Kernel) Hitting(f NodeID) (NodeID, error) {
	return k.hittingMemo(f, make(map[NodeID]NodeID))
}

func (k *Kernel) hittingMemo(f NodeID, memo map[NodeID]NodeID) (NodeID, error) {
	if f == Bot {
		// No sets to hit: the empty set vacuously hits everything (there is
		// nothing to check), and it is trivially minimal.
		return Top, nil
	}
	if f == Top {
		// The only member is ∅; nothing can intersect it.
		return Bot, nil
	}
	if r, ok := memo[f]; ok {
		return r, nil
	}
	n, err := k.Node(f)
	if err != nil {
		return NullNode, err
	}

	withV, err := k.hittingMemo(n.Lo, memo)
	if err != nil {
		return NullNode, err
	}
	withV, err = k.Join(withV, mustSingleton(k, n.Var))
	if err != nil {
		return NullNode, err
	}

	combined, err := k.Union(n.Lo, n.Hi)
	if err != nil {
		return NullNode, err
	}
	withoutV, err := k.hittingMemo(combined, memo)
	if err != nil {
		return NullNode, err
	}
	withV, err = k.NonSupersets(withV, withoutV)
	if err != nil {
		return NullNode, err
	}

	res, err := k.Union(withV, withoutV)
	if err != nil {
		return NullNode, err
	}
	memo[f] = res
	return res, nil
}

func mustSingleton(k *Kernel, v ElemID) NodeID {
	id, err := k.singleton(v)
	if err != nil {
		// singleton construction only fails on a corrupted table; the
		// caller already holds a live ElemID, so this cannot happen in
		// practice and is not worth threading an extra error return for.
		panic(err)
	}
	return id
}

// Quotient returns F/G: the family of X such that, for every Y in G,
// X∪Y ∈ F and X∩Y = ∅. G must be non-empty: dividing by the empty family
// would vacuously admit every possible set, which the kernel has no finite
// representation for.
func (k *Kernel) Quotient(f, g NodeID) (NodeID, error) {
	if g == Bot {
		return NullNode, ErrDivideByZero
	}
	return k.quotientMemo(f, g, make(map[[2]NodeID]NodeID))
}

// quotientMemo implements the recursive step F/G = (F₁/G₁) ∩ (F/G₀), where
// v is G's top variable, G₀ is G's members without v, G₁ is G's members
// with v (stripped of it), and F₁ = Onset0(F, v). G₀ being Bot means this
// branch of G contributed zero constraint sets; intersecting with it would
// wrongly restrict the result to F itself (or worse, require representing
// a finite stand-in for "every possible set"), so that term is simply
// omitted from the intersection rather than recursed into. G₁ is never Bot
// (zero-suppression guarantees a node's Hi arc isn't), so its recursive
// call always lands on a real sub-divisor or the g == Top base case below.
func (k *Kernel) quotientMemo(f, g NodeID, memo map[[2]NodeID]NodeID) (NodeID, error) {
	if f == Bot {
		return Bot, nil
	}
	if g == Top {
		return f, nil
	}
	key := [2]NodeID{f, g}
	if v, ok := memo[key]; ok {
		return v, nil
	}
	gn, err := k.Node(g)
	if err != nil {
		return NullNode, err
	}
	fv, err := k.Onset0(f, gn.Var)
	if err != nil {
		return NullNode, err
	}
	q1, err := k.quotientMemo(fv, gn.Hi, memo)
	if err != nil {
		return NullNode, err
	}

	var res NodeID
	if gn.Lo == Bot {
		res = q1
	} else {
		q0, err := k.quotientMemo(f, gn.Lo, memo)
		if err != nil {
			return NullNode, err
		}
		res, err = k.Intersect(q0, q1)
		if err != nil {
			return NullNode, err
		}
	}
	memo[key] = res
	return res, nil
}

// Remainder returns F%G = F − (F/G)·G, where · is Join.
func (k *Kernel) Remainder(f, g NodeID) (NodeID, error) {
	q, err := k.Quotient(f, g)
	if err != nil {
		return NullNode, err
	}
	prod, err := k.Join(q, g)
	if err != nil {
		return NullNode, err
	}
	return k.Diff(f, prod)
}
