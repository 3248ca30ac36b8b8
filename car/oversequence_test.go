package car

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carverify/forwardcar/aig"
)

func TestOverSequenceInsertIsIdempotent(t *testing.T) {
	o := NewOverSequence()
	c := NewCube([]aig.Literal{lit(1, false)})
	o.Insert(c, 0)
	o.Insert(c, 0)
	assert.Len(t, o.GetFrame(0), 1)
}

func TestOverSequenceInsertDropsSubsumedCube(t *testing.T) {
	o := NewOverSequence()
	weak := NewCube([]aig.Literal{lit(1, false), lit(2, true)})
	o.Insert(weak, 0)

	strong := NewCube([]aig.Literal{lit(1, false)})
	o.Insert(strong, 0)

	frame := o.GetFrame(0)
	assert.Len(t, frame, 1, "the stronger, subsuming cube should replace the weaker one")
	assert.True(t, frame[0].Equal(strong))
}

func TestOverSequenceInsertRejectsRedundantCube(t *testing.T) {
	o := NewOverSequence()
	strong := NewCube([]aig.Literal{lit(1, false)})
	o.Insert(strong, 0)

	weak := NewCube([]aig.Literal{lit(1, false), lit(2, true)})
	o.Insert(weak, 0)

	assert.Len(t, o.GetFrame(0), 1, "a cube already subsumed by an existing one must be discarded")
}

func TestOverSequenceInsertRespectsMonotonicityAcrossLevels(t *testing.T) {
	o := NewOverSequence()
	c := NewCube([]aig.Literal{lit(1, false)})
	o.Insert(c, 2)

	// A cube present at level 2 semantically blocks level 0 and 1 too,
	// even though GetFrame only returns what's physically stored there.
	assert.True(t, o.IsBlockedByFrame(c, 0, false))
	assert.True(t, o.IsBlockedByFrame(c, 1, false))
	assert.True(t, o.IsBlockedByFrame(c, 2, false))
	assert.False(t, o.IsBlockedByFrame(c, 3, false))
}

func TestOverSequenceGetNewLevel(t *testing.T) {
	o := NewOverSequence()
	c := NewCube([]aig.Literal{lit(1, false)})
	o.Insert(c, 0)
	o.Insert(c, 1)

	assert.Equal(t, 1, o.GetNewLevel(c, 0, false))
}

func TestOverSequenceGetNewLevelUnblocked(t *testing.T) {
	o := NewOverSequence()
	c := NewCube([]aig.Literal{lit(1, false)})
	assert.Equal(t, -1, o.GetNewLevel(c, 0, false))
}
