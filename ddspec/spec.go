package ddspec

import "errors"

// Terminal level values a Spec's Child method can return in place of a real
// next level.
const (
	// Reject is returned by Child to prune the current branch to the ⊥
	// terminal: this partial assignment can never complete to a member of
	// the family.
	Reject = 0
	// Accept is returned by Child to terminate the current branch at the ⊤
	// terminal: every remaining level is left unselected, and the edges
	// selected so far already form a complete member.
	Accept = -1
)

// ErrVariableCountMismatch names a disagreement between a Spec's root
// level and the element universe it is built against. The builder does
// not return it: it allocates any elements the root level needs instead.
var ErrVariableCountMismatch = errors.New("ddspec: variable count mismatch")

// Spec is the frontier constraint contract the builder drives top-down,
// one level per edge, from level m (edge index 0) down to level 1 (edge
// index m-1). It deliberately has no notion of
// "variables" or "decision trees" in its method names — a Spec only ever
// answers two questions: where does the walk start, and given a state and
// a branch choice, where does it go next.
//
// Implementations are expected to be small value-oriented state machines:
// see the constraints package for the six frontier specs this repo ships,
// and CustomSpec in this package for hand-rolled ones.
type Spec interface {
	// StateSize reports the number of per-vertex state blocks the spec's
	// State values track, purely as a sizing hint; the builder does not
	// read it, and it has no effect on correctness.
	StateSize() int

	// Root returns the initial state and initial level (normally the
	// graph's edge count m, the level of edge index 0) for a fresh
	// top-down walk.
	Root() (State, int)

	// Child advances the walk by one level. branch is 1 if the edge at
	// this level is selected, 0 if it is rejected. The returned state is
	// only meaningful when the returned level is neither Accept nor
	// Reject. Child must not mutate s; it clones before mutating.
	Child(s State, level int, branch int) (State, int)
}

// CustomSpec adapts two plain functions into a Spec, for constraints that
// don't warrant a dedicated named type, offering the same kind of escape
// hatch for one-off validation logic that a hand-rolled constraint needs.
type CustomSpec struct {
	// Size is returned by StateSize; defaults to 0 (no hint) if unset.
	Size int
	// RootFunc returns the initial state and level.
	RootFunc func() (State, int)
	// ChildFunc computes the next state and level for a branch choice.
	ChildFunc func(s State, level int, branch int) (State, int)
}

// StateSize returns c.Size.
func (c CustomSpec) StateSize() int { return c.Size }

// Root delegates to c.RootFunc.
func (c CustomSpec) Root() (State, int) { return c.RootFunc() }

// Child delegates to c.ChildFunc.
func (c CustomSpec) Child(s State, level int, branch int) (State, int) {
	return c.ChildFunc(s, level, branch)
}
