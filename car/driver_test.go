package car

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverify/forwardcar/aig"
)

// trivialModel has one input, one latch, and declares outputs 100
// (always true) and 101 (always false) alongside a real latch-backed
// output 2, so Check can be exercised against both the short-circuit
// paths and the solver-backed path from the same fixture.
func trivialModel() *fixtureModel {
	return &fixtureModel{
		numInputs:  1,
		numLatches: 1,
		maxID:      2,
		init:       []aig.Literal{-2},
		outputs:    []int{100, 101, 2},
		trueID:     100,
		falseID:    101,
		clauses:    nil,
		prime:      map[int]aig.Literal{2: 1},
		previous:   map[int][]aig.Literal{1: {2}, -1: {-2}},
		latchSet:   map[int]bool{2: true},
		inputSet:   map[int]bool{1: true},
	}
}

func TestCheckTrivialTrueOutput(t *testing.T) {
	m := trivialModel()
	checker := NewChecker(m, Settings{Forward: true}, nil)

	res, err := checker.Check(m.GetTrueId())
	require.NoError(t, err)
	assert.False(t, res.Safe)
	assert.Empty(t, res.Counterexample.Inputs, "bad holding at the initial state needs no transitions")
}

func TestCheckTrivialFalseOutput(t *testing.T) {
	m := trivialModel()
	checker := NewChecker(m, Settings{Forward: true}, nil)

	res, err := checker.Check(m.GetFalseId())
	require.NoError(t, err)
	assert.True(t, res.Safe)
}

func TestRunAllCoversEveryOutputInOrder(t *testing.T) {
	m := &fixtureModel{
		numInputs:  0,
		numLatches: 0,
		maxID:      0,
		init:       nil,
		outputs:    []int{100, 101, 100},
		trueID:     100,
		falseID:    101,
	}
	checker := NewChecker(m, Settings{Forward: true}, nil)

	results := checker.RunAll()
	require.Len(t, results, 3)
	for i, bad := range m.outputs {
		assert.Equal(t, bad, results[i].BadID)
		assert.NoError(t, results[i].Err)
	}
	assert.False(t, results[0].Result.Safe)
	assert.True(t, results[1].Result.Safe)
	assert.False(t, results[2].Result.Safe)
}

func TestCheckOneStepReachableBadIsUnsafe(t *testing.T) {
	// A single latch whose next value is the raw input: bad (the
	// latch itself) cannot hold at the initial state but is reachable
	// after exactly one transition. Partial generalization is left
	// off so the shape of the search is fully determined by the plain
	// transition relation, not by a second solver's arbitrary choice
	// among several valid generalized cubes.
	m := trivialModel()
	settings := Settings{Forward: true, Partial: false, Propagation: true}
	checker := NewChecker(m, settings, nil)

	res, err := checker.Check(2)
	require.NoError(t, err)
	assert.False(t, res.Safe, "a latch that can be driven true by an input is reachable, not safe")
	assert.NotEmpty(t, res.Counterexample.Inputs)
}
