package setset

import "errors"

// Error kinds a SetSet operation can raise at its own boundary, as
// opposed to algebra errors that originate one layer down in kernel and
// are returned unwrapped (ErrBadOrder, ErrDivideByZero and the like
// propagate as-is; RandIter alone converts kernel.ErrEmptyFamily into
// ErrEmptyChoice).
// The root package aliases these directly so errors.Is checks against
// digraphzdd.ErrEmptyChoice etc. succeed regardless of which package
// actually raised the error.
var (
	// ErrEmptyChoice is returned by RandIter when invoked on an empty
	// family: there is no member to choose.
	ErrEmptyChoice = errors.New("setset: empty family has no member to choose")

	// ErrNotFound is returned by Remove when the given set is not a
	// member of the family being removed from.
	ErrNotFound = errors.New("setset: not found")

	// ErrOverflow is returned by Len when the family's exact cardinality
	// does not fit in an int64; callers needing the true count in that
	// case must use Size or SizeString instead.
	ErrOverflow = errors.New("setset: overflow")
)
