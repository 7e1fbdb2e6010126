package constraints

import "errors"

// ErrInvalidArgument reports a malformed constraint parameter (an
// out-of-order Range or a non-positive step). The root package's
// DirectedGraphs wraps a failure to build its degree spec in
// digraphzdd.ErrInvalidArgument; the root NewRange and NewRangeStep
// return this error unwrapped. Internally the constraints package only
// needs to distinguish "malformed" from "nil".
var ErrInvalidArgument = errors.New("constraints: invalid argument")
