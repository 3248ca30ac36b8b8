package car

import "github.com/carverify/forwardcar/aig"

// startSolver holds the transition relation, a permanent assertion of
// the bad literal, plus — under a rolling activation flag — the
// negation of every cube in the current last frame: its satisfying
// assignments enumerate candidate states that still satisfy bad and
// have not yet been proved unable to reach it (spec §4.5's "states...
// that can still reach the bad state").
//
// Asserting bad as a permanent unit clause here is not explicit in
// spec §4.5's text (which describes the start solver only as
// "transition relation plus... the negation of every cube in the
// current last frame"), but without it EnumerateStartState could
// return a candidate for which bad does not hold at all, which
// GeneralizeToBad's expected-UNSAT invariant assumes cannot happen.
// Asserting bad unconditionally closes that gap and matches the
// glossary's framing of a start state as one reaching bad in zero
// further steps.
type startSolver struct {
	oracle
	flag aig.Literal
}

func newStartSolver(model aig.Model, muc bool, bad aig.Literal) *startSolver {
	s := &startSolver{oracle: *newOracle(model, muc)}
	s.AddClause(aig.Clause{bad})
	return s
}

// RefreshFlag allocates a new rolling flag and reasserts the negation
// of every cube in lastFrame guarded by it. The previous flag's
// clauses are left in place but never assumed again — activation
// literals are monotone and not reclaimed within a query.
func (s *startSolver) RefreshFlag(lastFrame []Cube) {
	s.flag = s.NewVar()
	for _, c := range lastFrame {
		clause := append(aig.Clause{s.flag.Negate()}, c.Negated()...)
		s.AddClause(clause)
	}
}

// AddBlockingCube adds cube as a blocking clause under the current
// rolling flag, the same shape RefreshFlag installs for a whole
// frame's cubes: (¬flag ∨ ¬c1 ∨ … ∨ ¬cm). Used when a core learned in
// the inner loop targets a level past what RefreshFlag has loaded yet
// (level > effective_level), so it must still exclude the
// just-processed candidate from this iteration's start-state
// enumeration rather than waiting for the next RefreshFlag call.
func (s *startSolver) AddBlockingCube(cube Cube) {
	clause := append(aig.Clause{s.flag.Negate()}, cube.Negated()...)
	s.AddClause(clause)
}

// candidateStart is an assignment produced by EnumerateStartState,
// before it becomes a State in the under-sequence.
type candidateStart struct {
	inputs  []aig.Literal
	latches Cube
}

// EnumerateStartState solves under the current rolling flag; a SAT
// result names a state still reachable-candidate for bad, an UNSAT
// result means no more start states exist at this iteration.
func (s *startSolver) EnumerateStartState() (*candidateStart, error) {
	sat, err := s.solve([]aig.Literal{s.flag})
	if err != nil {
		return nil, err
	}
	if !sat {
		return nil, nil
	}
	inputs, latches := s.getAssignment()
	return &candidateStart{inputs: inputs, latches: NewCube(latches)}, nil
}
