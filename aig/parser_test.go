package aig_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverify/forwardcar/aig"
)

// toggleAag is a single latch that flips every cycle: latch 2 (var 1)
// inits to 0 and its next-state function is its own negation (literal
// 3 = ¬var1). The single output asserts the latch directly, so it is
// reachable after exactly one step.
const toggleAag = `aag 1 0 1 1 0
2 3
2
`

func TestParseASCIIToggle(t *testing.T) {
	m, err := aig.ParseASCII(strings.NewReader(toggleAag))
	require.NoError(t, err)

	assert.Equal(t, 0, m.GetNumInputs())
	assert.Equal(t, 1, m.GetNumLatches())
	assert.True(t, m.IsLatch(1))
	assert.False(t, m.IsInput(1))
	assert.Equal(t, []aig.Literal{-1}, m.GetInitialState())

	require.Len(t, m.GetOutputs(), 1)
	assert.Equal(t, 1, m.GetOutputs()[0])

	assert.Equal(t, aig.Literal(-1), m.GetPrime(1))
	assert.Equal(t, aig.Literal(1), m.GetPrime(-1))

	prev := m.GetPrevious(-1)
	assert.Contains(t, prev, aig.Literal(1))
}

// negatedOutputAag exercises the output-buffering path: the sole
// output is the negation of the latch, which is not itself a bare
// variable, so compile must introduce a buffer variable for it.
const negatedOutputAag = `aag 1 0 1 1 0
2 2
3
`

func TestParseASCIINegatedOutputIsBuffered(t *testing.T) {
	m, err := aig.ParseASCII(strings.NewReader(negatedOutputAag))
	require.NoError(t, err)

	require.Len(t, m.GetOutputs(), 1)
	bad := m.GetOutputs()[0]
	assert.Greater(t, bad, m.GetMaxId()-1)

	found := false
	for _, c := range m.GetClause() {
		if len(c) == 2 {
			found = true
		}
	}
	assert.True(t, found, "expected a buffering clause for the negated output")
}

func TestParseASCIITrivialConstants(t *testing.T) {
	const constAag = `aag 0 0 0 2 0
0
1
`
	m, err := aig.ParseASCII(strings.NewReader(constAag))
	require.NoError(t, err)
	require.Len(t, m.GetOutputs(), 2)
	assert.Equal(t, m.GetFalseId(), m.GetOutputs()[0])
	assert.Equal(t, m.GetTrueId(), m.GetOutputs()[1])
}

func TestParseASCIIRejectsBadHeader(t *testing.T) {
	_, err := aig.ParseASCII(strings.NewReader("not an aag file\n"))
	assert.Error(t, err)
}
