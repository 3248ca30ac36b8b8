// Package aig defines the transition-system contract the car package
// checks, and a small ASCII-AIGER reader that produces one.
package aig

import "fmt"

// Literal is a signed, nonzero Dimacs-style literal: a positive value
// asserts the corresponding variable, a negative value asserts its
// negation. Variable numbering follows the AIGER convention: inputs
// occupy 1..NumInputs, latches occupy NumInputs+1..NumInputs+NumLatches,
// and internal AND-gate variables follow.
type Literal int

// Var returns the variable (always positive) that m refers to.
func (m Literal) Var() int {
	if m < 0 {
		return int(-m)
	}
	return int(m)
}

// Negate returns the complementary literal.
func (m Literal) Negate() Literal {
	return -m
}

// IsNegative reports whether m asserts the negation of its variable.
func (m Literal) IsNegative() bool {
	return m < 0
}

func (m Literal) String() string {
	return fmt.Sprintf("%d", int(m))
}

// Clause is a disjunction of literals, zero-terminated the way
// CNF is usually built up incrementally; here it is simply the
// literal slice with no trailing sentinel.
type Clause []Literal

// Model is the external collaborator consumed by the checker: it
// hands over the sizes, the initial state, the transition relation
// already in CNF, the bad outputs, and the maps between a latch's
// current-cycle literal and its next-cycle ("primed") counterpart.
//
// Model implementations are expected to be immutable and safe for
// concurrent read access once constructed; the checker never mutates
// one.
type Model interface {
	// GetNumInputs returns the number of primary inputs, I.
	GetNumInputs() int
	// GetNumLatches returns the number of latches, L.
	GetNumLatches() int
	// GetInitialState returns one signed literal per latch (in latch
	// order) giving that latch's reset value.
	GetInitialState() []Literal
	// GetOutputs returns the variable IDs of every "bad" output to be
	// checked, in the order they should be iterated.
	GetOutputs() []int
	// GetTrueId and GetFalseId return the variable IDs of the
	// constant-true and constant-false gates, so that trivial bad
	// outputs can be decided without invoking the solver.
	GetTrueId() int
	GetFalseId() int
	// GetPrime maps a current-cycle latch literal to its next-cycle
	// ("primed") counterpart, preserving sign. Panics if lit is not a
	// latch literal.
	GetPrime(lit Literal) Literal
	// GetPrevious is the inverse of GetPrime: given a literal that
	// appears as some latch's next-state function, it returns the
	// current-cycle literal(s) of every latch whose next-state
	// function is exactly that literal. More than one latch may share
	// a next-state literal, hence the slice return.
	GetPrevious(lit Literal) []Literal
	// IsLatch reports whether v (a variable, not a literal) is a latch.
	IsLatch(v int) bool
	// IsInput reports whether v is a primary input.
	IsInput(v int) bool
	// GetClause returns the transition relation's CNF clauses.
	GetClause() []Clause
	// GetMaxId returns the highest variable ID used anywhere in the
	// model (inputs, latches, and internal gates).
	GetMaxId() int
}
