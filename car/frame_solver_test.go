package car

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverify/forwardcar/aig"
)

func frameSolverFixture() *fixtureModel {
	return &fixtureModel{
		numInputs:  0,
		numLatches: 1,
		maxID:      1,
		latchSet:   map[int]bool{1: true},
	}
}

func TestFrameSolverBlocksOnlyItsOwnLevel(t *testing.T) {
	m := frameSolverFixture()
	f := newFrameSolver(m, false)

	cube := NewCube([]aig.Literal{1})
	f.AddUnsatisfiableCore(cube, 0)

	sat, err := f.SolveWithAssumption([]aig.Literal{1}, 0)
	require.NoError(t, err)
	assert.False(t, sat, "a cube blocked at level 0 must make that level's query UNSAT")

	sat, err = f.SolveWithAssumption([]aig.Literal{1}, 1)
	require.NoError(t, err)
	assert.True(t, sat, "a cube blocked only at level 0 must not affect level 1's fresh flag")
}

func TestFrameSolverAddNewFrameLoadsEveryCube(t *testing.T) {
	m := frameSolverFixture()
	f := newFrameSolver(m, false)

	f.AddNewFrame([]Cube{NewCube([]aig.Literal{1})}, 2)

	sat, err := f.SolveWithAssumption([]aig.Literal{1}, 2)
	require.NoError(t, err)
	assert.False(t, sat)
}

// primedFrameSolverFixture wires variable 2 as latch 1's primed copy
// (2 <-> 1), so a query asserting the primed literal can be driven
// UNSAT by a blocking clause on the unprimed one, the way the driver's
// real assumptionFor/GetUnsatisfiableCore round trip does.
func primedFrameSolverFixture() *fixtureModel {
	return &fixtureModel{
		numInputs:  0,
		numLatches: 1,
		maxID:      2,
		latchSet:   map[int]bool{1: true},
		clauses: []aig.Clause{
			{-2, 1},
			{2, -1},
		},
		prime:    map[int]aig.Literal{1: 2},
		previous: map[int][]aig.Literal{2: {1}, -2: {-1}},
	}
}

// TestGetUnsatisfiableCoreRecoversAssertedPolarity guards against
// re-negating gini's Why() result: Why already returns failed
// assumptions in their asserted polarity, so a query that asserted the
// primed positive literal must map back to the positive unprimed
// literal, not its negation.
func TestGetUnsatisfiableCoreRecoversAssertedPolarity(t *testing.T) {
	m := primedFrameSolverFixture()
	f := newFrameSolver(m, false)

	f.AddUnsatisfiableCore(NewCube([]aig.Literal{1}), 0)

	sat, err := f.SolveWithAssumption([]aig.Literal{2}, 0)
	require.NoError(t, err)
	require.False(t, sat, "frame 0 blocking latch=true must conflict with asserting its primed copy true")

	uc := f.GetUnsatisfiableCore()
	assert.Equal(t, []aig.Literal{1}, uc, "the recovered core must name the positive literal, not its negation")
}
