package car

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carverify/forwardcar/aig"
)

func lit(v int, neg bool) aig.Literal {
	l := aig.Literal(v)
	if neg {
		l = l.Negate()
	}
	return l
}

func TestNewCubeSortsCanonically(t *testing.T) {
	c := NewCube([]aig.Literal{lit(3, false), lit(1, true), lit(2, false)})
	want := Cube{lit(1, true), lit(2, false), lit(3, false)}
	assert.True(t, c.Equal(want))
}

func TestCubeSubsumes(t *testing.T) {
	small := NewCube([]aig.Literal{lit(1, false)})
	big := NewCube([]aig.Literal{lit(1, false), lit(2, true)})

	assert.True(t, small.Subsumes(big), "fewer literals should subsume a superset assignment")
	assert.False(t, big.Subsumes(small))
	assert.True(t, small.Subsumes(small))
}

func TestCubeSubsumesRejectsConflictingLiteral(t *testing.T) {
	a := NewCube([]aig.Literal{lit(1, false)})
	b := NewCube([]aig.Literal{lit(1, true), lit(2, false)})
	assert.False(t, a.Subsumes(b))
}

func TestCubeContains(t *testing.T) {
	c := NewCube([]aig.Literal{lit(1, false), lit(2, true)})
	assert.True(t, c.Contains(lit(2, true)))
	assert.False(t, c.Contains(lit(2, false)))
	assert.False(t, c.Contains(lit(3, false)))
}

func TestCubeEqual(t *testing.T) {
	a := NewCube([]aig.Literal{lit(1, false), lit(2, true)})
	b := NewCube([]aig.Literal{lit(2, true), lit(1, false)})
	c := NewCube([]aig.Literal{lit(1, true), lit(2, true)})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestCubeNegated(t *testing.T) {
	c := NewCube([]aig.Literal{lit(1, false), lit(2, true)})
	clause := c.Negated()
	assert.ElementsMatch(t, aig.Clause{lit(1, true), lit(2, false)}, clause)
}

func TestCubeCloneIsIndependent(t *testing.T) {
	c := NewCube([]aig.Literal{lit(1, false)})
	clone := c.Clone()
	clone[0] = lit(2, false)
	assert.Equal(t, lit(1, false), c[0])
}
