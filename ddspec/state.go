// Package ddspec defines the abstract contract a frontier constraint
// implements: a pure-value state block plus a root/child transition pair
// the builder drives top-down. It also carries IntState, a ready-made
// State implementation for specs whose bookkeeping is a flat integer
// slice and doesn't warrant a tailored struct.
package ddspec

import (
	"hash/fnv"
)

// State is one node's worth of frontier bookkeeping: a value type that
// knows how to clone itself for independent mutation along a branch, hash
// itself for the builder's state table, and compare itself against another
// State for that table's canonicalization step: two paths that converge
// to the same bytes merge into one.
type State interface {
	Clone() State
	Hash() uint64
	Equal(other State) bool
}

// IntState is a ready-to-use State for problems whose per-node bookkeeping
// is a flat slice of integer counters.
type IntState struct {
	Values []int
}

// NewIntState returns an IntState initialized to the given values.
func NewIntState(values ...int) *IntState {
	vals := make([]int, len(values))
	copy(vals, values)
	return &IntState{Values: vals}
}

// Clone returns a deep copy of s.
func (s *IntState) Clone() State {
	values := make([]int, len(s.Values))
	copy(values, s.Values)
	return &IntState{Values: values}
}

// Hash returns an FNV-1a hash over s's values.
func (s *IntState) Hash() uint64 {
	h := fnv.New64a()
	for _, v := range s.Values {
		h.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
	}
	return h.Sum64()
}

// Equal reports whether other is an *IntState with identical values.
func (s *IntState) Equal(other State) bool {
	o, ok := other.(*IntState)
	if !ok || len(s.Values) != len(o.Values) {
		return false
	}
	for i, v := range s.Values {
		if v != o.Values[i] {
			return false
		}
	}
	return true
}

