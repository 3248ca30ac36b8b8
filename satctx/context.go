// Package satctx wraps a gini incremental SAT solver behind the
// signed-integer Literal/Clause types in package aig, giving the car
// package's four solver façades (frame, partial-state, start-state,
// invariant) a common, narrow oracle surface instead of each touching
// gini directly.
package satctx

import (
	"errors"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/carverify/forwardcar/aig"
)

// Outcome mirrors gini's own Solve/Test result coding so callers never
// have to remember the -1/0/1 convention by hand.
type Outcome int

const (
	Unsatisfiable Outcome = -1
	Unknown       Outcome = 0
	Satisfiable   Outcome = 1
)

// ErrSolverUnknown is returned whenever the underlying solver reports
// Unknown. The driver's policy (spec §9) is to surface this explicitly
// rather than treat an undetermined result as UNSAT by default.
var ErrSolverUnknown = errors.New("satctx: solver returned an unknown result")

// Context is a single incremental SAT instance plus the bookkeeping
// needed to translate to and from aig's signed-literal convention. It
// is not safe for concurrent use; each of car's four façades owns one.
type Context struct {
	s     inter.S
	depth int
}

// New creates a Context over a fresh gini solver.
func New() *Context {
	return &Context{s: gini.New()}
}

func toGini(lit aig.Literal) z.Lit {
	return z.Dimacs2Lit(int(lit))
}

func fromGini(lit z.Lit) aig.Literal {
	return aig.Literal(lit.Dimacs())
}

// AddClause asserts a clause unconditionally (outside of any Test
// scope, as gini's Add requires for activation/deactivation to behave
// correctly at decision level 0).
func (c *Context) AddClause(clause aig.Clause) {
	for _, lit := range clause {
		c.s.Add(toGini(lit))
	}
	c.s.Add(z.LitNull)
}

// AddModel loads every clause of m's transition relation. Callers
// build one Context per façade and load the same model's clauses into
// each; NewVar below then continues allocating variable numbers above
// whatever m.GetMaxId reports, exactly as gini's own internal variable
// capacity tracking allows.
func (c *Context) AddModel(m aig.Model) {
	for _, clause := range m.GetClause() {
		c.AddClause(clause)
	}
	for v := c.MaxVar(); v < m.GetMaxId(); v++ {
		c.s.Lit()
	}
}

// NewVar allocates a fresh variable and returns its positive literal,
// used for activation/flag literals and generalization buffers.
func (c *Context) NewVar() aig.Literal {
	return fromGini(c.s.Lit())
}

// Assume records assumption literals for the next Solve or Test call.
func (c *Context) Assume(lits ...aig.Literal) {
	gl := make([]z.Lit, len(lits))
	for i, lit := range lits {
		gl[i] = toGini(lit)
	}
	c.s.Assume(gl...)
}

// Solve runs a full search under whatever assumptions are pending.
func (c *Context) Solve() Outcome {
	return Outcome(c.s.Solve())
}

// Test opens a scoped assumption region: the assumptions made since
// the last Test remain active until the matching Untest. Only the
// outcome is returned; the literals gini derives by unit propagation
// are discarded. Tests may nest; callers must pair every Test with an
// Untest.
func (c *Context) Test() Outcome {
	result, _ := c.s.Test(nil)
	c.depth++
	return Outcome(result)
}

// Untest closes the innermost open Test scope, discarding the
// assumptions made within it.
func (c *Context) Untest() Outcome {
	result := c.s.Untest()
	c.depth--
	return Outcome(result)
}

// Unwind closes every open Test scope, restoring the Context to
// decision level 0, so a partially-unwound scope from an earlier query
// can never leak into the next one.
func (c *Context) Unwind() {
	for c.depth > 0 {
		c.Untest()
	}
}

// Value reports the model value gini assigned to lit's variable after
// a Satisfiable Solve or Test; the sign of lit is folded in.
func (c *Context) Value(lit aig.Literal) bool {
	v := c.s.Value(toGini(aig.Literal(lit.Var())))
	if lit.IsNegative() {
		return !v
	}
	return v
}

// Why returns the subset of the last Solve/Test's assumptions that
// were actually used in deriving unsatisfiability — the conflict
// clause callers minimize into a MUC.
func (c *Context) Why() []aig.Literal {
	raw := c.s.Why(nil)
	out := make([]aig.Literal, len(raw))
	for i, l := range raw {
		out[i] = fromGini(l)
	}
	return out
}

// MaxVar returns the highest variable index gini has seen so far.
func (c *Context) MaxVar() int {
	return int(c.s.MaxVar())
}
