package kernel

// This file implements the ZDD "apply"-family operations: the boolean
// algebra over families of sets (Union, Intersect, Diff, SymDiff), the
// per-element cofactors (Onset0, Offset, Change), and the two set-product
// operators (Join, Meet). Every recursion here follows the same shape:
// align both operands on whichever has the higher top variable (treating
// the side that lacks that variable as if it had a node whose Hi branch is
// Bot), recurse on the aligned children, and re-assemble via Make. This is
// the standard ZDD "apply" algorithm; the kernel has no persistent operation
// cache (each call gets its own memo table) since no caller in this repo
// issues enough repeated operations on the same pair of roots to need one.

// binOp identifies one of the four boolean-algebra operations for apply.
type binOp int

const (
	opUnion binOp = iota
	opIntersect
	opDiff
	opSymDiff
)

// Union returns the family of sets that are members of a or b (or both).
func (k *Kernel) Union(a, b NodeID) (NodeID, error) { return k.apply(opUnion, a, b) }

// Intersect returns the family of sets that are members of both a and b.
func (k *Kernel) Intersect(a, b NodeID) (NodeID, error) { return k.apply(opIntersect, a, b) }

// Diff returns the family of sets that are members of a but not b.
func (k *Kernel) Diff(a, b NodeID) (NodeID, error) { return k.apply(opDiff, a, b) }

// SymDiff returns the family of sets that are members of exactly one of a, b.
func (k *Kernel) SymDiff(a, b NodeID) (NodeID, error) { return k.apply(opSymDiff, a, b) }

func (k *Kernel) apply(op binOp, a, b NodeID) (NodeID, error) {
	memo := make(map[[2]NodeID]NodeID)
	return k.applyMemo(op, a, b, memo)
}

// applyShortcut resolves a, b when at least one is a terminal (or they are
// equal), returning the result and true, or false if genuine recursion is
// needed. It runs at every level of applyMemo's recursion, not just the
// top call, because descending into children can produce new terminal
// pairs that were never equal to the original (a, b).
func applyShortcut(op binOp, a, b NodeID) (NodeID, bool) {
	switch op {
	case opUnion:
		if a == Bot {
			return b, true
		}
		if b == Bot {
			return a, true
		}
		if a == b {
			return a, true
		}
	case opIntersect:
		if a == Bot || b == Bot {
			return Bot, true
		}
		if a == b {
			return a, true
		}
	case opDiff:
		if a == Bot {
			return Bot, true
		}
		if b == Bot {
			return a, true
		}
		if a == b {
			return Bot, true
		}
	case opSymDiff:
		if a == Bot {
			return b, true
		}
		if b == Bot {
			return a, true
		}
		if a == b {
			return Bot, true
		}
	}
	return NullNode, false
}

func (k *Kernel) applyMemo(op binOp, a, b NodeID, memo map[[2]NodeID]NodeID) (NodeID, error) {
	if res, ok := applyShortcut(op, a, b); ok {
		return res, nil
	}

	key := [2]NodeID{a, b}
	if v, ok := memo[key]; ok {
		return v, nil
	}

	va, vb := k.TopVar(a), k.TopVar(b)
	top := va
	if vb > top {
		top = vb
	}
	// At this point at least one of a, b is non-terminal (every terminal-pair
	// combination was resolved by applyShortcut above), so top > 0.

	a0, a1 := a, Bot
	if va == top {
		n, err := k.Node(a)
		if err != nil {
			return NullNode, err
		}
		a0, a1 = n.Lo, n.Hi
	}
	b0, b1 := b, Bot
	if vb == top {
		n, err := k.Node(b)
		if err != nil {
			return NullNode, err
		}
		b0, b1 = n.Lo, n.Hi
	}

	lo, err := k.applyMemo(op, a0, b0, memo)
	if err != nil {
		return NullNode, err
	}
	hi, err := k.applyMemo(op, a1, b1, memo)
	if err != nil {
		return NullNode, err
	}
	res, err := k.Make(top, lo, hi)
	if err != nil {
		return NullNode, err
	}
	memo[key] = res
	return res, nil
}

// Onset0 returns the family of (S \ {v}) for every S in f with v in S.
func (k *Kernel) Onset0(f NodeID, v ElemID) (NodeID, error) {
	return k.onset0Memo(f, v, make(map[NodeID]NodeID))
}

func (k *Kernel) onset0Memo(f NodeID, v ElemID, memo map[NodeID]NodeID) (NodeID, error) {
	if f == Bot || f == Top {
		return Bot, nil
	}
	if r, ok := memo[f]; ok {
		return r, nil
	}
	n, err := k.Node(f)
	if err != nil {
		return NullNode, err
	}
	var res NodeID
	switch {
	case n.Var < v:
		res = Bot
	case n.Var == v:
		res = n.Hi
	default:
		lo, err := k.onset0Memo(n.Lo, v, memo)
		if err != nil {
			return NullNode, err
		}
		hi, err := k.onset0Memo(n.Hi, v, memo)
		if err != nil {
			return NullNode, err
		}
		res, err = k.Make(n.Var, lo, hi)
		if err != nil {
			return NullNode, err
		}
	}
	memo[f] = res
	return res, nil
}

// Offset returns the subfamily of f whose members do not contain v.
func (k *Kernel) Offset(f NodeID, v ElemID) (NodeID, error) {
	return k.offsetMemo(f, v, make(map[NodeID]NodeID))
}

func (k *Kernel) offsetMemo(f NodeID, v ElemID, memo map[NodeID]NodeID) (NodeID, error) {
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
	var res NodeID
	switch {
	case n.Var < v:
		res = f
	case n.Var == v:
		res = n.Lo
	default:
		lo, err := k.offsetMemo(n.Lo, v, memo)
		if err != nil {
			return NullNode, err
		}
		hi, err := k.offsetMemo(n.Hi, v, memo)
		if err != nil {
			return NullNode, err
		}
		res, err = k.Make(n.Var, lo, hi)
		if err != nil {
			return NullNode, err
		}
	}
	memo[f] = res
	return res, nil
}

// singleton returns the ZDD for the family containing exactly the one-
// element set {v}.
func (k *Kernel) singleton(v ElemID) (NodeID, error) {
	return k.Make(v, Bot, Top)
}

// Change returns f with membership of v toggled in every set: members
// without v gain it and members with v lose it.
func (k *Kernel) Change(f NodeID, v ElemID) (NodeID, error) {
	single, err := k.singleton(v)
	if err != nil {
		return NullNode, err
	}
	off, err := k.Offset(f, v)
	if err != nil {
		return NullNode, err
	}
	added, err := k.Join(off, single)
	if err != nil {
		return NullNode, err
	}
	on, err := k.Onset0(f, v)
	if err != nil {
		return NullNode, err
	}
	return k.Union(added, on)
}

// Join returns {A ∪ B : A ∈ a, B ∈ b}.
func (k *Kernel) Join(a, b NodeID) (NodeID, error) {
	if a == Bot || b == Bot {
		return Bot, nil
	}
	if a == Top {
		return b, nil
	}
	if b == Top {
		return a, nil
	}
	return k.joinMemo(a, b, make(map[[2]NodeID]NodeID))
}

func (k *Kernel) joinMemo(a, b NodeID, memo map[[2]NodeID]NodeID) (NodeID, error) {
	if a == Bot || b == Bot {
		return Bot, nil
	}
	if a == Top {
		return b, nil
	}
	if b == Top {
		return a, nil
	}
	key := [2]NodeID{a, b}
	if v, ok := memo[key]; ok {
		return v, nil
	}

	va, vb := k.TopVar(a), k.TopVar(b)
	top := va
	if vb > top {
		top = vb
	}
	a0, a1 := a, Bot
	if va == top {
		n, err := k.Node(a)
		if err != nil {
			return NullNode, err
		}
		a0, a1 = n.Lo, n.Hi
	}
	b0, b1 := b, Bot
	if vb == top {
		n, err := k.Node(b)
		if err != nil {
			return NullNode, err
		}
		b0, b1 = n.Lo, n.Hi
	}

	lo, err := k.joinMemo(a0, b0, memo)
	if err != nil {
		return NullNode, err
	}
	h1, err := k.joinMemo(a0, b1, memo)
	if err != nil {
		return NullNode, err
	}
	h2, err := k.joinMemo(a1, b0, memo)
	if err != nil {
		return NullNode, err
	}
	h3, err := k.joinMemo(a1, b1, memo)
	if err != nil {
		return NullNode, err
	}
	hi, err := k.Union(h1, h2)
	if err != nil {
		return NullNode, err
	}
	hi, err = k.Union(hi, h3)
	if err != nil {
		return NullNode, err
	}
	res, err := k.Make(top, lo, hi)
	if err != nil {
		return NullNode, err
	}
	memo[key] = res
	return res, nil
}

// Meet returns {A ∩ B : A ∈ a, B ∈ b}.
func (k *Kernel) Meet(a, b NodeID) (NodeID, error) {
	if a == Bot || b == Bot {
		return Bot, nil
	}
	return k.meetMemo(a, b, make(map[[2]NodeID]NodeID))
}

func (k *Kernel) meetMemo(a, b NodeID, memo map[[2]NodeID]NodeID) (NodeID, error) {
	if a == Bot || b == Bot {
		return Bot, nil
	}
	if a == Top || b == Top {
		// {∅} meets any nonempty family to {∅} (∅ ∩ anything == ∅).
		return Top, nil
	}
	key := [2]NodeID{a, b}
	if v, ok := memo[key]; ok {
		return v, nil
	}

	va, vb := k.TopVar(a), k.TopVar(b)
	top := va
	if vb > top {
		top = vb
	}
	a0, a1 := a, Bot
	if va == top {
		n, err := k.Node(a)
		if err != nil {
			return NullNode, err
		}
		a0, a1 = n.Lo, n.Hi
	}
	b0, b1 := b, Bot
	if vb == top {
		n, err := k.Node(b)
		if err != nil {
			return NullNode, err
		}
		b0, b1 = n.Lo, n.Hi
	}

	hi, err := k.meetMemo(a1, b1, memo)
	if err != nil {
		return NullNode, err
	}
	l1, err := k.meetMemo(a0, b0, memo)
	if err != nil {
		return NullNode, err
	}
	l2, err := k.meetMemo(a0, b1, memo)
	if err != nil {
		return NullNode, err
	}
	l3, err := k.meetMemo(a1, b0, memo)
	if err != nil {
		return NullNode, err
	}
	lo, err := k.Union(l1, l2)
	if err != nil {
		return NullNode, err
	}
	lo, err = k.Union(lo, l3)
	if err != nil {
		return NullNode, err
	}
	res, err := k.Make(top, lo, hi)
	if err != nil {
		return NullNode, err
	}
	memo[key] = res
	return res, nil
}
