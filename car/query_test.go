package car

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverify/forwardcar/aig"
)

// TestIsInvariantDetectsAlreadyExcludedFrame builds a frame whose two
// cubes ({1} and {-1}) together already rule out every assignment of
// the lone latch variable, so AddConstraintAnd's conjunction is UNSAT
// on the first sweep — the simplest possible inductive frame.
func TestIsInvariantDetectsAlreadyExcludedFrame(t *testing.T) {
	m := &fixtureModel{numInputs: 0, numLatches: 1, maxID: 1, latchSet: map[int]bool{1: true}}

	over := NewOverSequence()
	over.Insert(NewCube([]aig.Literal{1}), 0)
	over.Insert(NewCube([]aig.Literal{-1}), 0)
	require.Len(t, over.GetFrame(0), 2, "opposite-signed single-literal cubes must not subsume each other")

	q := &query{model: m, over: over, minUpdateLevel: 0}

	safe, level, err := q.isInvariant()
	require.NoError(t, err)
	assert.True(t, safe)
	assert.Equal(t, 0, level)
}

// TestIsInvariantNotYetInductive checks the complementary case: a
// frame with no cubes at all places no constraint on the latch, so
// the AND sweep is trivially satisfiable and the level is not yet
// proven inductive.
func TestIsInvariantNotYetInductive(t *testing.T) {
	m := &fixtureModel{numInputs: 0, numLatches: 1, maxID: 1, latchSet: map[int]bool{1: true}}

	over := NewOverSequence()
	q := &query{model: m, over: over, minUpdateLevel: 0}

	safe, _, err := q.isInvariant()
	require.NoError(t, err)
	assert.False(t, safe)
}

func TestFrameSizesReportsPerLevelCubeCounts(t *testing.T) {
	m := &fixtureModel{numInputs: 0, numLatches: 1, maxID: 1, latchSet: map[int]bool{1: true}}

	over := NewOverSequence()
	over.Insert(NewCube([]aig.Literal{1}), 0)
	over.Insert(NewCube([]aig.Literal{1}), 1)
	over.Insert(NewCube([]aig.Literal{-1}), 1)

	q := &query{model: m, over: over}
	assert.Equal(t, []int{1, 2}, q.frameSizes())
}
