package car

import "github.com/carverify/forwardcar/aig"

// partialSolver generalizes a concrete predecessor assignment down to
// a minimal sub-cube that still forces a given successor (or the bad
// output), per spec §4.4's partial-state generalization.
type partialSolver struct {
	oracle
}

func newPartialSolver(model aig.Model, muc bool) *partialSolver {
	return &partialSolver{oracle: *newOracle(model, muc)}
}

// filteredCore restricts the last UNSAT query's (optionally
// MUC-reduced) core to latch-variable literals, resolving spec §9's
// open question 2: the forward direction returns this filtered core,
// never the raw unfiltered conflict. fixed names the assumption
// literals that forced this particular query UNSAT for reasons
// unrelated to the predecessor's latches — a one-shot guard's negated
// flag, or the negated bad literal — so they are stripped before
// filtering and held fixed across any MUC re-solve rather than
// treated as droppable predecessor facts.
func (p *partialSolver) filteredCore(fixed []aig.Literal) []aig.Literal {
	raw := p.innerUnsatisfiableCore()
	core := make([]aig.Literal, 0, len(raw))
	for _, lit := range raw {
		if containsLiteral(fixed, lit) {
			continue
		}
		core = append(core, lit)
	}
	if p.muc {
		core = p.extractMUC(core, fixed)
	}
	var out []aig.Literal
	for _, lit := range core {
		if p.model.IsLatch(lit.Var()) {
			out = append(out, lit)
		}
	}
	sortLiterals(out)
	return out
}

// GeneralizeToSuccessor shrinks predLatches to a sub-cube that, with
// predInputs, still forces the transition to successorLatches. The
// one-shot guard clause is permanently deactivated before returning,
// so it never affects a later call on the same solver.
func (p *partialSolver) GeneralizeToSuccessor(predInputs []aig.Literal, predLatches Cube, successorLatches Cube) (Cube, error) {
	flag := p.NewVar()
	clause := make(aig.Clause, 0, len(successorLatches)+1)
	for _, lit := range successorLatches {
		clause = append(clause, p.model.GetPrime(lit).Negate())
	}
	clause = append(clause, flag)
	p.AddClause(clause)

	assumption := make([]aig.Literal, 0, len(predInputs)+len(predLatches)+1)
	assumption = append(assumption, predInputs...)
	assumption = append(assumption, predLatches...)
	assumption = append(assumption, flag.Negate())

	sat, err := p.solve(assumption)
	if err != nil {
		return nil, err
	}
	if sat {
		return nil, InvariantViolation{Reason: "partial-state generalization expected UNSAT but solver returned SAT"}
	}

	cube := NewCube(p.filteredCore([]aig.Literal{flag.Negate()}))
	p.AddClause(aig.Clause{flag})
	return cube, nil
}

// GeneralizeToBad shrinks predLatches to a sub-cube that, with
// predInputs, still forces bad. The bad literal itself is stripped
// from the returned cube.
func (p *partialSolver) GeneralizeToBad(predInputs []aig.Literal, predLatches Cube, bad aig.Literal) (Cube, error) {
	assumption := make([]aig.Literal, 0, len(predInputs)+len(predLatches)+1)
	assumption = append(assumption, predInputs...)
	assumption = append(assumption, predLatches...)
	assumption = append(assumption, bad.Negate())

	sat, err := p.solve(assumption)
	if err != nil {
		return nil, err
	}
	if sat {
		return nil, InvariantViolation{Reason: "bad-state generalization expected UNSAT but solver returned SAT"}
	}

	return NewCube(p.filteredCore([]aig.Literal{bad.Negate()})), nil
}
