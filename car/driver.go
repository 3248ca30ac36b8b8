package car

import (
	"io"
	"os"
	"time"

	"github.com/carverify/forwardcar/aig"
)

// Checker runs forward CAR against one transition-system model,
// grounded on ForwardChecker::Check's outer/inner loop structure. A
// Checker is reusable across multiple Check calls against different
// bad outputs; each call builds its own over/under sequences and
// solver façades from scratch.
type Checker struct {
	model    aig.Model
	settings Settings
	tracer   Tracer
}

// NewChecker builds a Checker for model under settings. A nil tracer
// is replaced with DefaultTracer.
func NewChecker(model aig.Model, settings Settings, tracer Tracer) *Checker {
	if tracer == nil {
		tracer = DefaultTracer{}
	}
	return &Checker{model: model, settings: settings, tracer: tracer}
}

// Result is one bad output's verdict: Safe with the frame level whose
// induction closed the proof, or unsafe with a replayable
// counterexample.
type Result struct {
	Safe           bool
	Counterexample Counterexample
	InvariantLevel int
}

// OutputResult pairs one bad-output variable ID with its Check
// outcome, for RunAll's per-output iteration.
type OutputResult struct {
	BadID  int
	Result Result
	Err    error
}

// Check decides reachability of the bad condition named by bad (a
// variable ID, per aig.Model.GetOutputs), returning UNSAFE with a
// counterexample, SAFE with the inductive frame level, or an error
// (ErrTimeout or a solver failure).
func (c *Checker) Check(bad int) (Result, error) {
	if bad == c.model.GetTrueId() {
		// Depth-0 counterexample: bad already holds at the initial
		// state, no transitions needed.
		return Result{Safe: false, Counterexample: Counterexample{}}, nil
	}
	if bad == c.model.GetFalseId() {
		return Result{Safe: true}, nil
	}

	q := newQuery(c.model, c.settings, c.tracer, aig.Literal(bad))
	res, err := q.run()
	if c.settings.Visualization && c.settings.VisualizationPath != "" {
		q.dumpVisualization(err == ErrTimeout)
	}
	return res, err
}

// RunAll checks every bad output the model declares, mirroring the
// original driver's per-output iteration (spec §6's CLI surface).
func (c *Checker) RunAll() []OutputResult {
	outputs := c.model.GetOutputs()
	results := make([]OutputResult, len(outputs))
	for i, bad := range outputs {
		res, err := c.Check(bad)
		results[i] = OutputResult{BadID: bad, Result: res, Err: err}
	}
	return results
}

// query holds one Check call's private state: its own over/under
// sequences and solver façades, none of which are shared across bad
// outputs or across Checker instances.
type query struct {
	model    aig.Model
	settings Settings
	tracer   Tracer
	bad      aig.Literal

	over    *OverSequence
	under   *UnderSequence
	frames  *frameSolver
	partial *partialSolver
	start   *startSolver

	minUpdateLevel int
	rotationHint   Cube
	deadline       time.Time
}

func newQuery(model aig.Model, settings Settings, tracer Tracer, bad aig.Literal) *query {
	init := NewCube(model.GetInitialState())
	q := &query{
		model:    model,
		settings: settings,
		tracer:   tracer,
		bad:      bad,
		over:     NewOverSequence(),
		under:    NewUnderSequence(init),
		frames:   newFrameSolver(model, settings.MUC),
		partial:  newPartialSolver(model, settings.MUC),
		start:    newStartSolver(model, settings.MUC, bad),
	}
	if settings.TimeLimit > 0 {
		q.deadline = time.Now().Add(settings.TimeLimit)
	}
	return q
}

func (q *query) timedOut() bool {
	return !q.deadline.IsZero() && time.Now().After(q.deadline)
}

func (q *query) dumpVisualization(partial bool) {
	// Deliberately best-effort: a failed visualization dump must never
	// mask the real Check outcome, so any error here is swallowed.
	_ = writeVisualization(q.under, partial, q.settings.VisualizationPath)
}

// writeVisualization is the dump routine dumpVisualization calls, held
// in a variable so it can be replaced; it defaults to the one below.
var writeVisualization = defaultWriteVisualization

func defaultWriteVisualization(under *UnderSequence, partial bool, path string) error {
	return dumpUnderSequence(under, partial, path)
}

// run executes Check's outer/inner loop for one bad output, grounded
// on ForwardChecker::Check (immediate-satisfiability check, frame-0
// seeding, then alternating start-state enumeration / frame
// advancement / invariant sweep until UNSAFE, SAFE, or timeout).
func (q *query) run() (Result, error) {
	sat, witness, err := q.immediateSatisfiable()
	if err != nil {
		return Result{}, err
	}
	if sat {
		return Result{Safe: false, Counterexample: Counterexample{Inputs: [][]aig.Literal{witness}}}, nil
	}

	root := q.under.Root()
	for _, lit := range root.Latches() {
		q.over.Insert(NewCube([]aig.Literal{lit.Negate()}), 0)
	}
	q.over.SetEffectiveLevel(0)
	q.frames.AddNewFrame(q.over.GetFrame(0), 0)
	q.start.RefreshFlag(q.over.GetFrame(q.over.GetLength() - 1))

	for frameStep := 0; ; frameStep++ {
		if q.timedOut() {
			return Result{}, ErrTimeout
		}
		q.minUpdateLevel = q.over.GetLength()
		q.tracer.Trace(Event{Kind: "outer", FrameStep: frameStep, FrameSizes: q.frameSizes()})

		res, done, err := q.expandFromStartStates(frameStep)
		if err != nil {
			return Result{}, err
		}
		if done {
			return res, nil
		}

		if q.settings.Propagation {
			if err := propagate(q.over, q.frames, q.settings); err != nil {
				return Result{}, err
			}
		}

		nextLevel := frameStep + 1
		lastFrame := q.over.GetFrame(nextLevel)
		q.frames.AddNewFrame(lastFrame, nextLevel)
		q.over.SetEffectiveLevel(nextLevel)
		q.start.RefreshFlag(q.over.GetFrame(q.over.GetLength() - 1))

		safe, invLevel, err := q.isInvariant()
		if err != nil {
			return Result{}, err
		}
		if safe {
			return Result{Safe: true, InvariantLevel: invLevel}, nil
		}
	}
}

// expandFromStartStates enumerates every start-state candidate at
// this outer iteration and drives the inner task-stack loop for each,
// returning (result, true, nil) the moment one reaches the initial
// state (spec §4.1/§4.5).
func (q *query) expandFromStartStates(frameStep int) (Result, bool, error) {
	root := q.under.Root()

	for {
		if q.timedOut() {
			return Result{}, false, ErrTimeout
		}
		cand, err := q.start.EnumerateStartState()
		if err != nil {
			return Result{}, false, err
		}
		if cand == nil {
			return Result{}, false, nil
		}

		latches := cand.latches
		if q.settings.Partial {
			gen, err := q.partial.GeneralizeToBad(cand.inputs, cand.latches, q.bad)
			if err != nil {
				return Result{}, false, err
			}
			latches = gen
		}
		startState := q.under.Push(root, cand.inputs, latches)

		var stack taskStack
		stack.push(Task{state: startState, frameLevel: frameStep, isLocated: true})

		res, found, err := q.drainTaskStack(&stack)
		if err != nil {
			return Result{}, false, err
		}
		if found {
			return res, true, nil
		}
	}
}

// drainTaskStack runs the inner loop over one task stack until it
// empties (the candidate start state was fully resolved) or a task
// reaches frameLevel -1 (the bad state is reachable from the initial
// state: build and return the counterexample), per spec §4.1.
func (q *query) drainTaskStack(stack *taskStack) (Result, bool, error) {
	for !stack.empty() {
		if q.timedOut() {
			return Result{}, false, ErrTimeout
		}
		task := stack.top()

		if !task.isLocated {
			task.frameLevel = q.over.GetNewLevel(task.state.Latches(), task.frameLevel+1, q.settings.Partial)
			if task.frameLevel > q.over.EffectiveLevel() {
				stack.pop()
				continue
			}
		}
		task.isLocated = false

		if task.frameLevel == -1 {
			return Result{Safe: false, Counterexample: buildCounterexample(q.under, task.state)}, true, nil
		}

		assumption := q.assumptionFor(task.state)
		sat, err := q.frames.SolveWithAssumption(assumption, task.frameLevel)
		if err != nil {
			return Result{}, false, err
		}

		if sat {
			inputs, rawLatches := q.frames.GetAssignment()
			latchCube := NewCube(rawLatches)
			if q.settings.Partial {
				gen, err := q.partial.GeneralizeToSuccessor(inputs, latchCube, task.state.Latches())
				if err != nil {
					return Result{}, false, err
				}
				latchCube = gen
			}
			child := q.under.Push(task.state, inputs, latchCube)
			newLevel := q.over.GetNewLevel(child.Latches(), 0, q.settings.Partial)
			stack.push(Task{state: child, frameLevel: newLevel, isLocated: true})
			continue
		}

		if q.settings.Rotate {
			q.rotationHint = task.state.Latches()
		}
		core := q.frames.GetUnsatisfiableCore()
		filtered := removeWrongElements(core, task.state)
		q.addUnsatisfiableCore(filtered, task.frameLevel+1)
		task.frameLevel++
	}
	return Result{}, false, nil
}

// assumptionFor builds the frame solver's assumption vector for
// state: state's own latch literals projected onto their primed
// (next-cycle) counterparts, so the solver's free current-cycle
// variables yield a genuine predecessor of state rather than echoing
// state's own values back. Literals whose variable appears in the
// rotation hint (if Rotate is set) are ordered first, a pure
// solver-heuristic reordering that does not affect which assumption is
// asserted.
func (q *query) assumptionFor(state *State) []aig.Literal {
	lits := state.Latches()
	ordered := make([]aig.Literal, 0, len(lits))

	if q.settings.Rotate && len(q.rotationHint) > 0 {
		hinted := make(map[int]bool, len(q.rotationHint))
		for _, l := range q.rotationHint {
			hinted[l.Var()] = true
		}
		for _, l := range lits {
			if hinted[l.Var()] {
				ordered = append(ordered, q.model.GetPrime(l))
			}
		}
		for _, l := range lits {
			if !hinted[l.Var()] {
				ordered = append(ordered, q.model.GetPrime(l))
			}
		}
		return ordered
	}

	for _, l := range lits {
		ordered = append(ordered, q.model.GetPrime(l))
	}
	return ordered
}

// addUnsatisfiableCore installs cube as a blocking fact at level, both
// in the frame solver (flagFor lazily grows past the over-sequence's
// effective_level bookkeeping, which tracks only whether a frame's
// *complete* cube set has been bulk-loaded via AddNewFrame — a single
// ad-hoc cube from the inner loop's UNSAT branch is unaffected by
// that) and in the over-sequence's own bookkeeping. When level lands
// past the over-sequence's effective_level, RefreshFlag has not yet
// loaded a frame that deep into the start solver, so cube is also
// asserted there directly, under the start solver's current rolling
// flag — otherwise a start-state candidate just processed this
// outer iteration would remain satisfiable under that same flag and
// EnumerateStartState would return it again forever.
func (q *query) addUnsatisfiableCore(cube Cube, level int) {
	q.frames.AddUnsatisfiableCore(cube, level)
	q.over.Insert(cube, level)
	if level > q.over.EffectiveLevel() {
		q.start.AddBlockingCube(cube)
	}
	if level < q.minUpdateLevel {
		q.minUpdateLevel = level
	}
}

// immediateSatisfiable checks whether bad already holds at the
// initial state for some input, without touching the over/under
// sequences at all (spec §4.1's pre-loop check).
func (q *query) immediateSatisfiable() (bool, []aig.Literal, error) {
	initLatches := []aig.Literal(q.under.Root().Latches())
	sat, err := q.frames.SolveWithAssumptionAndBad(initLatches, q.bad)
	if err != nil {
		return false, nil, err
	}
	if !sat {
		return false, nil, nil
	}
	inputs, _ := q.frames.GetAssignment()
	return true, inputs, nil
}

// isInvariant runs one invariant sweep over every loaded frame (spec
// §4.6): frames untouched since the last sweep (below minUpdateLevel)
// are recorded with AddConstraintOr only, frames touched this round
// are additionally checked with AddConstraintAnd. The first frame k
// whose AND-check is UNSAT is inductive: no state in frame k (and
// hence none in any earlier frame, by monotonicity) can escape it, so
// the system is safe.
func (q *query) isInvariant() (bool, int, error) {
	inv := newInvariantSolver(q.model)
	for k := 0; k < q.over.GetLength(); k++ {
		frame := q.over.GetFrame(k)
		if k < q.minUpdateLevel {
			inv.AddConstraintOr(frame)
			continue
		}
		inv.AddConstraintAnd(frame)
		sat, err := inv.Solve()
		inv.FlipLastConstraint()
		inv.AddConstraintOr(frame)
		if err != nil {
			return false, 0, err
		}
		if !sat {
			return true, k, nil
		}
	}
	return false, 0, nil
}

func (q *query) frameSizes() []int {
	sizes := make([]int, q.over.GetLength())
	for i := range sizes {
		sizes[i] = len(q.over.GetFrame(i))
	}
	return sizes
}

// removeWrongElements restricts core to the literals that actually
// appear in state's own latch cube, resolving spec §9's open question
// about a filtered unsat core: GetUnsatisfiableCore's GetPrevious
// mapping can surface literals belonging to some other latch sharing
// the same next-state function, which do not describe state and must
// not be asserted as part of its blocking cube.
func removeWrongElements(core []aig.Literal, state *State) Cube {
	stateLatches := state.Latches()
	var kept []aig.Literal
	for _, lit := range core {
		if stateLatches.Contains(lit) {
			kept = append(kept, lit)
		}
	}
	return NewCube(kept)
}

// VisualizeHook renders an under-sequence as a GML dump. It is nil
// until the visualize subpackage is imported, which sets it from its
// own init — that keeps the gonum dependency confined to the one
// diagnostic path that needs it, and avoids an import cycle (visualize
// imports car, not the reverse).
var VisualizeHook func(under *UnderSequence, partial bool, w io.Writer) error

func dumpUnderSequence(under *UnderSequence, partial bool, path string) error {
	if VisualizeHook == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return VisualizeHook(under, partial, f)
}
