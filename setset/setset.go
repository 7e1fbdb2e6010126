// Package setset implements the set-of-sets algebra: a reference-counted
// handle over one ZDD root node in a kernel.Kernel,
// wrapping the kernel's primitive operations with the richer surface
// (construction helpers, cardinality filters, probability, iteration,
// mutation, serialization) the core exposes to callers.
package setset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/edgezdd/digraphzdd/kernel"
)

// SetSet is an owned handle to one ZDD root node. Copying a SetSet (via
// Clone) shares the underlying node and bumps its reference count;
// Release drops that reference.
type SetSet struct {
	k  *kernel.Kernel
	id kernel.NodeID
}

// Wrap adopts an existing NodeID as a new owned handle, incrementing its
// reference count. Used by the root query surface to hand a freshly
// built ZDD to the caller as a SetSet.
func Wrap(k *kernel.Kernel, id kernel.NodeID) *SetSet {
	k.IncRef(id)
	return &SetSet{k: k, id: id}
}

// Node exposes the underlying NodeID, for callers (the root package, or
// another SetSet operation) that need to pass it back into the kernel.
func (s *SetSet) Node() kernel.NodeID { return s.id }

// Kernel exposes the owning kernel.
func (s *SetSet) Kernel() *kernel.Kernel { return s.k }

// Clone returns a new handle sharing s's node, with its own reference.
func (s *SetSet) Clone() *SetSet { return Wrap(s.k, s.id) }

// Release drops this handle's reference to its node. A SetSet must not
// be used after Release.
func (s *SetSet) Release() { s.k.DecRef(s.id) }

func wrapResult(k *kernel.Kernel, id kernel.NodeID, err error) (*SetSet, error) {
	if err != nil {
		return nil, err
	}
	return Wrap(k, id), nil
}

// FromSets builds the family that is the union of the given sets, each
// supplied as an ascending slice of elements.
func FromSets(k *kernel.Kernel, sets [][]kernel.ElemID) (*SetSet, error) {
	id := kernel.Bot
	for _, set := range sets {
		cube, err := exactCube(k, set)
		if err != nil {
			return nil, err
		}
		id, err = k.Union(id, cube)
		if err != nil {
			return nil, err
		}
	}
	return Wrap(k, id), nil
}

// exactCube builds the single-member family {set}, with every element
// outside set forced absent (as opposed to cubeOf's "free" treatment of
// elements mentioned in neither include nor exclude).
func exactCube(k *kernel.Kernel, set []kernel.ElemID) (kernel.NodeID, error) {
	sorted := append([]kernel.ElemID(nil), set...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	id := kernel.Top
	for _, v := range sorted {
		var err error
		id, err = k.Make(v, kernel.Bot, id)
		if err != nil {
			return kernel.NullNode, err
		}
	}
	return id, nil
}

// FromIncludeExclude builds the family of every superset of include that
// is disjoint from exclude: elements in neither set are free (may be
// present or absent).
func FromIncludeExclude(k *kernel.Kernel, include, exclude []kernel.ElemID) (*SetSet, error) {
	id, err := cubeOf(k, include, exclude)
	return wrapResult(k, id, err)
}

// cubeOf builds the ZDD of all sets that contain every element of
// include, none of exclude, and are otherwise free over [1, k.NumElems()].
// Construction proceeds from the smallest variable to the largest, since
// kernel.Make requires a node's variable to exceed both its children's.
func cubeOf(k *kernel.Kernel, include, exclude []kernel.ElemID) (kernel.NodeID, error) {
	inc := make(map[kernel.ElemID]bool, len(include))
	for _, e := range include {
		inc[e] = true
	}
	exc := make(map[kernel.ElemID]bool, len(exclude))
	for _, e := range exclude {
		exc[e] = true
	}
	id := kernel.Top
	n := k.NumElems()
	for v := kernel.ElemID(1); int(v) <= n; v++ {
		var err error
		switch {
		case inc[v]:
			id, err = k.Make(v, kernel.Bot, id)
		case exc[v]:
			// absent by default: no node needed for this variable.
		default:
			id, err = k.Make(v, id, id)
		}
		if err != nil {
			return kernel.NullNode, err
		}
	}
	return id, nil
}

// Universe returns the family of every subset of [1, k.NumElems()].
func Universe(k *kernel.Kernel) (*SetSet, error) {
	id, err := cubeOf(k, nil, nil)
	return wrapResult(k, id, err)
}

// Boolean algebra.

func (s *SetSet) Union(o *SetSet) (*SetSet, error) {
	id, err := s.k.Union(s.id, o.id)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) Intersect(o *SetSet) (*SetSet, error) {
	id, err := s.k.Intersect(s.id, o.id)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) Diff(o *SetSet) (*SetSet, error) {
	id, err := s.k.Diff(s.id, o.id)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) SymDiff(o *SetSet) (*SetSet, error) {
	id, err := s.k.SymDiff(s.id, o.id)
	return wrapResult(s.k, id, err)
}

// Complement returns the family of every subset of [1, k.NumElems()] not
// in s.
func (s *SetSet) Complement() (*SetSet, error) {
	universe, err := cubeOf(s.k, nil, nil)
	if err != nil {
		return nil, err
	}
	id, err := s.k.Diff(universe, s.id)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) Join(o *SetSet) (*SetSet, error) {
	id, err := s.k.Join(s.id, o.id)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) Meet(o *SetSet) (*SetSet, error) {
	id, err := s.k.Meet(s.id, o.id)
	return wrapResult(s.k, id, err)
}

// Quotient returns s/g. g must not be empty.
func (s *SetSet) Quotient(g *SetSet) (*SetSet, error) {
	id, err := s.k.Quotient(s.id, g.id)
	return wrapResult(s.k, id, err)
}

// Remainder returns s%g = s - (s/g)·g.
func (s *SetSet) Remainder(g *SetSet) (*SetSet, error) {
	id, err := s.k.Remainder(s.id, g.id)
	return wrapResult(s.k, id, err)
}

// Structural filters.

func (s *SetSet) Subsets(g *SetSet) (*SetSet, error) {
	id, err := s.k.Subsets(s.id, g.id)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) Supersets(g *SetSet) (*SetSet, error) {
	id, err := s.k.Supersets(s.id, g.id)
	return wrapResult(s.k, id, err)
}

// SupersetsOf returns the members of s that contain e.
func (s *SetSet) SupersetsOf(e kernel.ElemID) (*SetSet, error) {
	id, err := s.k.Onset0(s.id, e)
	if err != nil {
		return nil, err
	}
	id, err = s.k.Change(id, e)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) NonSubsets(g *SetSet) (*SetSet, error) {
	id, err := s.k.NonSubsets(s.id, g.id)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) NonSupersets(g *SetSet) (*SetSet, error) {
	id, err := s.k.NonSupersets(s.id, g.id)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) Minimal() (*SetSet, error) {
	id, err := s.k.Minimal(s.id)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) Maximal() (*SetSet, error) {
	id, err := s.k.Maximal(s.id)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) Hitting() (*SetSet, error) {
	id, err := s.k.Hitting(s.id)
	return wrapResult(s.k, id, err)
}

// Cardinality filters: smaller(k), larger(k), set_size(k). Not present
// in the kernel's own algebra file, so implemented
// here directly over kernel.Node/kernel.Make: a standard ZDD
// branch-recursive filter tracking how many more elements a surviving
// member may (smaller), must (larger), or must exactly (set_size) use.
type sizeCmp int

const (
	sizeLess sizeCmp = iota
	sizeGreater
	sizeEqual
)

func (s *SetSet) SmallerThan(n int) (*SetSet, error) { return s.sizeFilter(n, sizeLess) }
func (s *SetSet) LargerThan(n int) (*SetSet, error)  { return s.sizeFilter(n, sizeGreater) }
func (s *SetSet) SetSize(n int) (*SetSet, error)     { return s.sizeFilter(n, sizeEqual) }

func (s *SetSet) sizeFilter(n int, cmp sizeCmp) (*SetSet, error) {
	memo := make(map[[2]int]kernel.NodeID)
	id, err := s.sizeFilterMemo(s.id, n, cmp, memo)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) sizeFilterMemo(f kernel.NodeID, remaining int, cmp sizeCmp, memo map[[2]int]kernel.NodeID) (kernel.NodeID, error) {
	if f == kernel.Bot {
		return kernel.Bot, nil
	}
	if f == kernel.Top {
		if keepSize(0, remaining, cmp) {
			return kernel.Top, nil
		}
		return kernel.Bot, nil
	}
	// remaining saturates below zero (no amount of further elements makes
	// size match sizeLess/sizeEqual again), so clamp the memo key.
	if remaining < 0 {
		remaining = -1
	}
	key := [2]int{int(f), remaining}
	if v, ok := memo[key]; ok {
		return v, nil
	}
	n, err := s.k.Node(f)
	if err != nil {
		return kernel.NullNode, err
	}
	lo, err := s.sizeFilterMemo(n.Lo, remaining, cmp, memo)
	if err != nil {
		return kernel.NullNode, err
	}
	hi, err := s.sizeFilterMemo(n.Hi, remaining-1, cmp, memo)
	if err != nil {
		return kernel.NullNode, err
	}
	res, err := s.k.Make(n.Var, lo, hi)
	if err != nil {
		return kernel.NullNode, err
	}
	memo[key] = res
	return res, nil
}

func keepSize(size, bound int, cmp sizeCmp) bool {
	switch cmp {
	case sizeLess:
		return size < bound
	case sizeGreater:
		return size > bound
	default:
		return size == bound
	}
}

// Predicates.

func (s *SetSet) IsEmpty() bool { return s.id == kernel.Bot }

func (s *SetSet) IsDisjoint(o *SetSet) (bool, error) {
	id, err := s.k.Intersect(s.id, o.id)
	if err != nil {
		return false, err
	}
	return id == kernel.Bot, nil
}

func (s *SetSet) IsSubset(o *SetSet) (bool, error) {
	id, err := s.k.Union(s.id, o.id)
	if err != nil {
		return false, err
	}
	return id == o.id, nil
}

func (s *SetSet) IsSuperset(o *SetSet) (bool, error) { return o.IsSubset(s) }

// Size returns the exact member count as an arbitrary-precision integer.
func (s *SetSet) Size() (*big.Int, error) { return s.k.Count(s.id) }

// SizeString returns Size as a decimal string.
func (s *SetSet) SizeString() (string, error) {
	n, err := s.Size()
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

// Len returns the exact member count as a 64-bit integer. Families whose
// cardinality doesn't fit in an int64 (2^63 or more members, routine for
// edge-subset families of graphs with a few dozen vertices) return
// ErrOverflow; such callers must use Size or SizeString instead.
func (s *SetSet) Len() (int64, error) {
	n, err := s.Size()
	if err != nil {
		return 0, err
	}
	if !n.IsInt64() {
		return 0, fmt.Errorf("%w: %v has no exact int64 representation", ErrOverflow, n)
	}
	return n.Int64(), nil
}

// Contains reports whether set (ascending elements) is a member of s.
func (s *SetSet) Contains(set []kernel.ElemID) (bool, error) {
	want := make(map[kernel.ElemID]bool, len(set))
	for _, e := range set {
		want[e] = true
	}
	id := s.id
	seen := 0
	for id != kernel.Bot && id != kernel.Top {
		n, err := s.k.Node(id)
		if err != nil {
			return false, err
		}
		if want[n.Var] {
			seen++
			id = n.Hi
		} else {
			id = n.Lo
		}
	}
	// A wanted variable never encountered as a node on the path was never
	// offered a "present" branch, so its absence was forced; reaching Top
	// without having seen every wanted variable means set isn't a member.
	return id == kernel.Top && seen == len(want), nil
}

// ContainsElement reports whether some member of s contains e.
func (s *SetSet) ContainsElement(e kernel.ElemID) (bool, error) {
	id, err := s.k.Onset0(s.id, e)
	if err != nil {
		return false, err
	}
	return id != kernel.Bot, nil
}

// Mutation. Each returns a new SetSet; the receiver is unaffected, since
// a SetSet is a handle into shared, hash-consed storage rather than an
// exclusively-owned mutable tree.

func (s *SetSet) Add(set []kernel.ElemID) (*SetSet, error) {
	cube, err := exactCube(s.k, set)
	if err != nil {
		return nil, err
	}
	id, err := s.k.Union(s.id, cube)
	return wrapResult(s.k, id, err)
}

// Remove removes set from s, returning ErrNotFound if set isn't a member.
func (s *SetSet) Remove(set []kernel.ElemID) (*SetSet, error) {
	ok, err := s.Contains(set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, set)
	}
	return s.discard(set)
}

// Discard removes set from s if present, silently no-oping otherwise.
func (s *SetSet) Discard(set []kernel.ElemID) (*SetSet, error) { return s.discard(set) }

func (s *SetSet) discard(set []kernel.ElemID) (*SetSet, error) {
	cube, err := exactCube(s.k, set)
	if err != nil {
		return nil, err
	}
	id, err := s.k.Diff(s.id, cube)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) Flip(e kernel.ElemID) (*SetSet, error) {
	id, err := s.k.Change(s.id, e)
	return wrapResult(s.k, id, err)
}

// FlipAll toggles every element of every member: equivalent to taking
// the complement of each member within the full element universe.
func (s *SetSet) FlipAll() (*SetSet, error) {
	memo := make(map[[2]uint32]kernel.NodeID)
	id, err := s.flipAllMemo(s.id, kernel.ElemID(s.k.NumElems()), memo)
	return wrapResult(s.k, id, err)
}

func (s *SetSet) flipAllMemo(f kernel.NodeID, v kernel.ElemID, memo map[[2]uint32]kernel.NodeID) (kernel.NodeID, error) {
	if v == 0 {
		return f, nil
	}
	// The result depends on the level v as well as on f: the same node can
	// be reached at different levels when the ZDD skips variables.
	key := [2]uint32{uint32(f), uint32(v)}
	if r, ok := memo[key]; ok {
		return r, nil
	}
	var lo, hi kernel.NodeID
	if f != kernel.Bot && f != kernel.Top {
		n, err := s.k.Node(f)
		if err != nil {
			return kernel.NullNode, err
		}
		if n.Var == v {
			lo, hi = n.Lo, n.Hi
		} else {
			lo, hi = f, kernel.Bot
		}
	} else {
		lo, hi = f, kernel.Bot
	}
	loR, err := s.flipAllMemo(lo, v-1, memo)
	if err != nil {
		return kernel.NullNode, err
	}
	hiR, err := s.flipAllMemo(hi, v-1, memo)
	if err != nil {
		return kernel.NullNode, err
	}
	// Flipping toggles v itself too: what used to require v's absence now
	// requires its presence and vice versa.
	res, err := s.k.Make(v, hiR, loR)
	if err != nil {
		return kernel.NullNode, err
	}
	memo[key] = res
	return res, nil
}

// Probability returns Σ_{S∈F} Π_{e∈S} p[e] · Π_{e∉S}(1−p[e]) for the
// given per-element Bernoulli probabilities, via memoized node
// evaluation.
func (s *SetSet) Probability(p map[kernel.ElemID]float64) (float64, error) {
	memo := make(map[kernel.NodeID]float64)
	res, err := s.probMemo(s.id, p, memo)
	if err != nil {
		return 0, err
	}
	for u := s.k.TopVar(s.id) + 1; int(u) <= s.k.NumElems(); u++ {
		res *= 1 - p[u]
	}
	return res, nil
}

func (s *SetSet) probMemo(f kernel.NodeID, p map[kernel.ElemID]float64, memo map[kernel.NodeID]float64) (float64, error) {
	if f == kernel.Bot {
		return 0, nil
	}
	if f == kernel.Top {
		return 1, nil
	}
	if v, ok := memo[f]; ok {
		return v, nil
	}
	n, err := s.k.Node(f)
	if err != nil {
		return 0, err
	}
	lo, err := s.probMemo(n.Lo, p, memo)
	if err != nil {
		return 0, err
	}
	hi, err := s.probMemo(n.Hi, p, memo)
	if err != nil {
		return 0, err
	}
	// Elements strictly between n.Var and a child's top variable are
	// absent from every member reached through that child.
	for u := s.k.TopVar(n.Lo) + 1; u < n.Var; u++ {
		lo *= 1 - p[u]
	}
	for u := s.k.TopVar(n.Hi) + 1; u < n.Var; u++ {
		hi *= 1 - p[u]
	}
	pv := p[n.Var]
	res := (1-pv)*lo + pv*hi
	memo[f] = res
	return res, nil
}

// Iteration.

// Iter returns every member of s exactly once, in descending-ElemID
// order per member, following the kernel's own Iterate convention.
func (s *SetSet) Iter(ctx context.Context) <-chan []kernel.ElemID { return s.k.Iterate(ctx, s.id) }

// RandIter draws one member uniformly at random. Invoked on an empty
// family it returns ErrEmptyChoice rather than the kernel's internal
// ErrEmptyFamily sentinel.
func (s *SetSet) RandIter(rng *rand.Rand) ([]kernel.ElemID, error) {
	set, err := s.k.RandomChoice(s.id, rng)
	if errors.Is(err, kernel.ErrEmptyFamily) {
		return nil, fmt.Errorf("%w: %v", ErrEmptyChoice, err)
	}
	return set, err
}

func (s *SetSet) MaxIter(ctx context.Context, w kernel.Weight, limit int) ([][]kernel.ElemID, error) {
	return s.k.MaxIterate(ctx, s.id, w, limit)
}

func (s *SetSet) MinIter(ctx context.Context, w kernel.Weight, limit int) ([][]kernel.ElemID, error) {
	return s.k.MinIterate(ctx, s.id, w, limit)
}

// Serialization.

func (s *SetSet) Dump(w io.Writer) error { return s.k.Dump(w, s.id) }

// Load reads a family previously written by Dump into k, returning it as
// a new owned SetSet.
func Load(k *kernel.Kernel, r io.Reader) (*SetSet, error) {
	id, err := k.Load(r)
	return wrapResult(k, id, err)
}

// Enum renders s in a brace-nested human-readable form, with
// caller-chosen brace pairs for the outer family and each inner set.
func (s *SetSet) Enum(outer, inner [2]string) (string, error) {
	var sets [][]kernel.ElemID
	var walk func(kernel.NodeID, []kernel.ElemID) error
	walk = func(id kernel.NodeID, prefix []kernel.ElemID) error {
		if id == kernel.Bot {
			return nil
		}
		if id == kernel.Top {
			set := make([]kernel.ElemID, len(prefix))
			copy(set, prefix)
			sets = append(sets, set)
			return nil
		}
		n, err := s.k.Node(id)
		if err != nil {
			return err
		}
		if err := walk(n.Lo, prefix); err != nil {
			return err
		}
		return walk(n.Hi, append(prefix, n.Var))
	}
	if err := walk(s.id, nil); err != nil {
		return "", err
	}
	for _, set := range sets {
		sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	}
	sort.Slice(sets, func(i, j int) bool {
		a, b := sets[i], sets[j]
		for x := 0; x < len(a) && x < len(b); x++ {
			if a[x] != b[x] {
				return a[x] < b[x]
			}
		}
		return len(a) < len(b)
	})
	parts := make([]string, len(sets))
	for i, set := range sets {
		members := make([]string, len(set))
		for j, e := range set {
			members[j] = strconv.FormatUint(uint64(e), 10)
		}
		parts[i] = inner[0] + strings.Join(members, ", ") + inner[1]
	}
	return outer[0] + strings.Join(parts, ", ") + outer[1], nil
}
