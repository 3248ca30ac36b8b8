package car

import "github.com/carverify/forwardcar/aig"

// frameSolver is the SAT context holding the transition relation plus
// guarded copies of every blocked cube, indexed by frame level via a
// fresh activation literal per level (spec §4.4).
type frameSolver struct {
	oracle
	flags     []aig.Literal
	lastLevel int
}

func newFrameSolver(model aig.Model, muc bool) *frameSolver {
	return &frameSolver{oracle: *newOracle(model, muc)}
}

// flagFor lazily allocates the activation literal for level, growing
// the flag table as new levels are reached. Variable IDs are
// monotone and never reclaimed within a query (spec §9).
func (f *frameSolver) flagFor(level int) aig.Literal {
	for len(f.flags) <= level {
		f.flags = append(f.flags, f.NewVar())
	}
	return f.flags[level]
}

// AddUnsatisfiableCore installs cube as a blocking clause at level:
// (¬f_level ∨ ¬ℓ₁ ∨ … ∨ ¬ℓₘ).
func (f *frameSolver) AddUnsatisfiableCore(cube Cube, level int) {
	flag := f.flagFor(level)
	clause := append(aig.Clause{flag.Negate()}, cube.Negated()...)
	f.AddClause(clause)
}

// AddNewFrame loads every cube of a frame at level.
func (f *frameSolver) AddNewFrame(cubes []Cube, level int) {
	for _, c := range cubes {
		f.AddUnsatisfiableCore(c, level)
	}
}

// SolveWithAssumption solves under the given latch/rotation assumption
// plus level's activation flag. lastLevel records level so a
// following GetUnsatisfiableCore call knows which flag must stay
// asserted across its MUC re-solves.
func (f *frameSolver) SolveWithAssumption(assumption []aig.Literal, level int) (bool, error) {
	f.lastLevel = level
	full := append([]aig.Literal{f.flagFor(level)}, assumption...)
	return f.solve(full)
}

// SolveWithAssumptionAndBad asserts bad as a positive assumption
// alongside assumption, resolving spec §9's ImmediateSatisfiable open
// question: bad is never added as a clause, only assumed.
func (f *frameSolver) SolveWithAssumptionAndBad(assumption []aig.Literal, bad aig.Literal) (bool, error) {
	full := append([]aig.Literal{bad}, assumption...)
	return f.solve(full)
}

// GetAssignment reads the input/latch assignment off the last SAT
// solve.
func (f *frameSolver) GetAssignment() (inputs, latches []aig.Literal) {
	return f.getAssignment()
}

// GetUnsatisfiableCore extracts the forward-direction blocking cube
// from the last UNSAT solve: the raw conflict with lastLevel's
// activation flag stripped out (it is fixed plumbing that forced the
// query UNSAT, never a latch fact about the state), optionally
// MUC-reduced with that same flag held fixed across every re-solve,
// then mapped through GetPrevious back to pre-state latch literals
// (spec §4.4).
func (f *frameSolver) GetUnsatisfiableCore() []aig.Literal {
	flag := f.flagFor(f.lastLevel)
	raw := f.innerUnsatisfiableCore()
	core := make([]aig.Literal, 0, len(raw))
	for _, lit := range raw {
		if lit == flag {
			continue
		}
		core = append(core, lit)
	}
	if f.muc {
		core = f.extractMUC(core, []aig.Literal{flag})
	}
	var uc []aig.Literal
	for _, lit := range core {
		uc = append(uc, f.model.GetPrevious(lit)...)
	}
	sortLiterals(uc)
	return uc
}
