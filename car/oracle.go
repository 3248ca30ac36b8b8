package car

import (
	"sort"

	"github.com/carverify/forwardcar/aig"
	"github.com/carverify/forwardcar/satctx"
)

// oracle is the common machinery every solver façade (frame, partial,
// start, invariant) is built from: a satctx.Context loaded with the
// model's transition relation, plus the core-extraction and MUC
// routines spec §4.4 describes once and every façade that returns an
// unsat core reuses. forward is carried per the "tagged direction
// flag, not class inheritance" design note even though this package
// only ever sets it true — the backward variant is out of scope.
type oracle struct {
	ctx     *satctx.Context
	model   aig.Model
	forward bool
	muc     bool
}

func newOracle(model aig.Model, muc bool) *oracle {
	ctx := satctx.New()
	ctx.AddModel(model)
	return &oracle{ctx: ctx, model: model, forward: true, muc: muc}
}

func (o *oracle) AddClause(clause aig.Clause) { o.ctx.AddClause(clause) }

func (o *oracle) NewVar() aig.Literal { return o.ctx.NewVar() }

// solve runs a full Solve under assumption, translating satctx's
// tri-valued Outcome into the bool/error policy spec §9's open
// question asks for: Unknown is surfaced, never silently folded into
// false.
func (o *oracle) solve(assumption []aig.Literal) (bool, error) {
	o.ctx.Assume(assumption...)
	switch o.ctx.Solve() {
	case satctx.Satisfiable:
		return true, nil
	case satctx.Unsatisfiable:
		return false, nil
	default:
		return false, satctx.ErrSolverUnknown
	}
}

// getAssignment reads the current model's input and latch literals
// directly off the solver, variables 1..numInputs then
// numInputs+1..numInputs+numLatches, exactly as CarSolver::GetAssignment
// does in the forward direction (the backward direction's GetPrime
// indirection does not apply here).
func (o *oracle) getAssignment() (inputs []aig.Literal, latches []aig.Literal) {
	ni := o.model.GetNumInputs()
	nl := o.model.GetNumLatches()
	inputs = make([]aig.Literal, 0, ni)
	for i := 1; i <= ni; i++ {
		if o.ctx.Value(aig.Literal(i)) {
			inputs = append(inputs, aig.Literal(i))
		} else {
			inputs = append(inputs, aig.Literal(-i))
		}
	}
	latches = make([]aig.Literal, 0, nl)
	for v := ni + 1; v <= ni+nl; v++ {
		if o.ctx.Value(aig.Literal(v)) {
			latches = append(latches, aig.Literal(v))
		} else {
			latches = append(latches, aig.Literal(-v))
		}
	}
	return inputs, latches
}

// innerUnsatisfiableCore is the raw conflict from the last UNSAT
// solve/test: gini's Why already returns the failed assumptions in
// their asserted polarity (the same polarity CarSolver::GetInnerUnsatisfiableCore
// recovers via -GetLiteralId on minisat's conflict clause), so no
// further negation is applied here.
func (o *oracle) innerUnsatisfiableCore() []aig.Literal {
	why := o.ctx.Why()
	out := make([]aig.Literal, len(why))
	copy(out, why)
	return out
}

// extractMUC shrinks core by dropping one literal at a time and
// re-testing, with fixed asserted alongside every re-solve but never
// itself a removal candidate and never part of the returned core —
// it names the assumption literals (a frame's activation flag, a
// partial-state guard's negation) that made the original query UNSAT
// for reasons unrelated to which core literals are redundant. A
// literal whose removal keeps the remainder (plus fixed) UNSAT is
// genuinely redundant and stays dropped; one whose removal makes the
// remainder SAT was load-bearing and is restored. Bounded at
// min(|core|, 216) iterations (spec §4.4); literals not yet examined
// when the bound runs out are kept. If every literal proves redundant,
// the original core is returned unchanged rather than an empty one.
func (o *oracle) extractMUC(core []aig.Literal, fixed []aig.Literal) []aig.Literal {
	remaining := append([]aig.Literal(nil), core...)
	kept := make([]aig.Literal, 0, len(core))

	bound := len(core)
	if bound > 216 {
		bound = 216
	}

	for bound > 0 && len(remaining) > 0 {
		bound--
		candidate := remaining[0]
		rest := append([]aig.Literal(nil), remaining[1:]...)

		assumption := make([]aig.Literal, 0, len(fixed)+len(rest)+len(kept))
		assumption = append(assumption, fixed...)
		assumption = append(assumption, rest...)
		assumption = append(assumption, kept...)
		sat, err := o.solve(assumption)
		if err != nil {
			// An unknown result here cannot safely shrink the core;
			// keep the candidate and move on to the next one.
			kept = append(kept, candidate)
			remaining = rest
			continue
		}
		if sat {
			// Removing candidate makes it SAT: candidate was essential.
			kept = append(kept, candidate)
			remaining = rest
			continue
		}
		// Still UNSAT without candidate: recompute the tighter core and
		// continue shrinking from there, excluding fixed and whatever
		// is already kept.
		inner := o.innerUnsatisfiableCore()
		remaining = remaining[:0]
		for _, lit := range inner {
			if containsLiteral(fixed, lit) || containsLiteral(kept, lit) {
				continue
			}
			remaining = append(remaining, lit)
		}
	}

	kept = append(kept, remaining...)
	if len(kept) == 0 {
		return core
	}
	return kept
}

func containsLiteral(lits []aig.Literal, target aig.Literal) bool {
	for _, l := range lits {
		if l == target {
			return true
		}
	}
	return false
}

// sortLiterals orders a literal slice the way Cube does, for
// deterministic output.
func sortLiterals(lits []aig.Literal) {
	sort.Slice(lits, func(i, j int) bool { return cmpLiteral(lits[i], lits[j]) })
}
