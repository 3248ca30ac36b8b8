package car

import "github.com/carverify/forwardcar/aig"

// fixtureModel is a hand-built aig.Model for unit tests that need a
// transition system smaller and more legible than anything the ASCII
// parser would produce, without going through aig.ParseASCII at all.
type fixtureModel struct {
	numInputs  int
	numLatches int
	maxID      int
	init       []aig.Literal
	outputs    []int
	trueID     int
	falseID    int
	clauses    []aig.Clause
	// prime maps a latch variable to its next-state literal (sign
	// carried separately via prime's own sign convention below).
	prime    map[int]aig.Literal
	previous map[int][]aig.Literal
	latchSet map[int]bool
	inputSet map[int]bool
}

func (m *fixtureModel) GetNumInputs() int          { return m.numInputs }
func (m *fixtureModel) GetNumLatches() int         { return m.numLatches }
func (m *fixtureModel) GetInitialState() []aig.Literal { return m.init }
func (m *fixtureModel) GetOutputs() []int          { return m.outputs }
func (m *fixtureModel) GetTrueId() int             { return m.trueID }
func (m *fixtureModel) GetFalseId() int            { return m.falseID }
func (m *fixtureModel) GetMaxId() int              { return m.maxID }
func (m *fixtureModel) GetClause() []aig.Clause    { return m.clauses }

func (m *fixtureModel) IsLatch(v int) bool { return m.latchSet[v] }
func (m *fixtureModel) IsInput(v int) bool { return m.inputSet[v] }

func (m *fixtureModel) GetPrime(lit aig.Literal) aig.Literal {
	target, ok := m.prime[lit.Var()]
	if !ok {
		panic("fixtureModel: GetPrime called on a non-latch literal")
	}
	if lit.IsNegative() {
		return target.Negate()
	}
	return target
}

func (m *fixtureModel) GetPrevious(lit aig.Literal) []aig.Literal {
	out, ok := m.previous[int(lit)]
	if !ok {
		return nil
	}
	return out
}
