package car

import (
	"errors"
	"fmt"

	"github.com/carverify/forwardcar/satctx"
)

// ErrTimeout is returned when a Check call exceeds Settings.TimeLimit.
// Per spec §5, this is the only cancellation source and short-circuits
// all remaining work for the current bad output.
var ErrTimeout = errors.New("car: time limit exceeded")

// ErrSolverUnknown is car's re-export of satctx.ErrSolverUnknown,
// following the teacher's style of a named sentinel per distinguished
// outcome rather than an unwrapped string.
var ErrSolverUnknown = satctx.ErrSolverUnknown

// InvariantViolation reports an internal consistency failure — e.g. a
// partial-state generalization query that was expected UNSAT but
// solved SAT (spec §7's "internal invariant violation", fatal by
// design). Checker.Check does not recover from this; it propagates to
// the caller rather than retrying.
type InvariantViolation struct {
	Reason string
}

func (e InvariantViolation) Error() string {
	return fmt.Sprintf("car: internal invariant violated: %s", e.Reason)
}
