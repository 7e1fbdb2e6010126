package digraphzdd

import "github.com/edgezdd/digraphzdd/constraints"

// Range re-exports constraints.Range for callers building degree
// constraints, so the query surface's own package is the only import
// most callers need.
type Range = constraints.Range

// NewRange returns the range [0, max) (max is an exclusive upper bound).
func NewRange(max int) (Range, error) { return constraints.NewRange(max) }

// NewRangeStep returns the range [min, max) stepping by step.
func NewRangeStep(min, max, step int) (Range, error) {
	return constraints.NewRangeStep(min, max, step)
}
