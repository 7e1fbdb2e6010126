// Package kernel implements the ZDD kernel collaborator: an opaque node
// arena with hash-consing, zero-suppression, reference counting, and the
// primitive set-algebra operations the higher setset and builder layers
// compose.
package kernel

import "errors"

// Sentinel errors returned by kernel operations. Construction errors are
// surfaced to the caller; errors encountered mid-algebra are never expected
// in correct usage and indicate a bug in a caller-supplied spec or a
// corrupted node table.
var (
	// ErrInvalidNode indicates a NodeID does not exist in this kernel's table.
	ErrInvalidNode = errors.New("kernel: invalid node")

	// ErrBadOrder indicates Make was called with a variable not strictly
	// above both children's top variables.
	ErrBadOrder = errors.New("kernel: variable order violation")

	// ErrSealed indicates NewElems was called after the kernel's element
	// universe was sealed by a build.
	ErrSealed = errors.New("kernel: element universe sealed")

	// ErrDivideByZero indicates Quotient/Remainder was called with an empty
	// divisor family. It is returned for every dividend, terminal or not.
	ErrDivideByZero = errors.New("kernel: division by the empty family")

	// ErrExhausted indicates the kernel ran out of representable node or
	// element capacity. Fatal to the in-flight build.
	ErrExhausted = errors.New("kernel: exhausted")

	// ErrEmptyFamily indicates an extraction operation (RandomChoice,
	// Optimize) was attempted on the empty family, which has no member to
	// extract.
	ErrEmptyFamily = errors.New("kernel: empty family has no member")
)
