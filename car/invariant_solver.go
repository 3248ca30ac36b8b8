package car

import "github.com/carverify/forwardcar/aig"

// invariantSolver tests whether some frame has become inductive
// relative to its predecessor (spec §4.6). It is ephemeral: the
// driver builds a fresh one for each invariant sweep and discards it
// afterward.
type invariantSolver struct {
	oracle
	assumption []aig.Literal
}

func newInvariantSolver(model aig.Model) *invariantSolver {
	return &invariantSolver{oracle: *newOracle(model, false)}
}

// AddConstraintOr permanently records frame as a disjunction: one
// fresh flag per cube implies that cube's literals, and the clause of
// flags asserts at least one cube holds. Used for frames untouched
// since the last sweep, whose status is already settled.
func (inv *invariantSolver) AddConstraintOr(frame []Cube) {
	var clause aig.Clause
	for _, c := range frame {
		flag := inv.NewVar()
		clause = append(clause, flag)
		for _, lit := range c {
			inv.AddClause(aig.Clause{flag.Negate(), lit})
		}
	}
	if len(clause) > 0 {
		inv.AddClause(clause)
	}
}

// AddConstraintAnd asserts frame's cubes must all fail to hold
// (flag implies every cube is falsified) and pushes flag onto the
// persistent assumption list, asserting frame true for this check.
func (inv *invariantSolver) AddConstraintAnd(frame []Cube) {
	flag := inv.NewVar()
	for _, c := range frame {
		clause := make(aig.Clause, 0, len(c)+1)
		for _, lit := range c {
			clause = append(clause, lit.Negate())
		}
		clause = append(clause, flag.Negate())
		inv.AddClause(clause)
	}
	inv.assumption = append(inv.assumption, flag)
}

// FlipLastConstraint negates the most recently pushed assumption,
// reclaiming the AND-constraint's flag so it no longer forces the
// frame true in later checks this sweep.
func (inv *invariantSolver) FlipLastConstraint() {
	n := len(inv.assumption)
	if n == 0 {
		return
	}
	inv.assumption[n-1] = inv.assumption[n-1].Negate()
}

// Solve runs the accumulated assumption stack.
func (inv *invariantSolver) Solve() (bool, error) {
	return inv.solve(inv.assumption)
}
