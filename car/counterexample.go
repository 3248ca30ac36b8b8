package car

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carverify/forwardcar/aig"
)

// Counterexample is a sequence of input vectors, one per cycle, in
// execution order starting from the all-zero initial latch
// assignment (spec §6's counterexample format).
type Counterexample struct {
	Inputs [][]aig.Literal
}

// Format renders the trace as space-separated signed literal IDs, one
// line per cycle — the on-disk format spec §6 describes.
func (c Counterexample) Format() string {
	var b strings.Builder
	for _, cycle := range c.Inputs {
		parts := make([]string, len(cycle))
		for i, lit := range cycle {
			parts[i] = strconv.Itoa(int(lit))
		}
		fmt.Fprintln(&b, strings.Join(parts, " "))
	}
	return b.String()
}

// buildCounterexample walks state's predecessor chain back to the
// root, recording each cycle's input vector in execution order (spec
// §4.7).
func buildCounterexample(under *UnderSequence, state *State) Counterexample {
	return Counterexample{Inputs: under.Trace(state)}
}
