package aig

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// staticModel is a Model built once from a parsed AIGER file (or from
// ParseASCII's lower-level pieces) and never mutated afterwards.
type staticModel struct {
	numInputs  int
	numLatches int
	maxID      int
	trueID     int
	falseID    int
	init       []Literal
	outputs    []int
	prime      map[int]Literal   // latch variable -> next-state literal
	previous   map[Literal][]Literal
	clauses    []Clause
}

func (m *staticModel) GetNumInputs() int  { return m.numInputs }
func (m *staticModel) GetNumLatches() int { return m.numLatches }
func (m *staticModel) GetInitialState() []Literal {
	out := make([]Literal, len(m.init))
	copy(out, m.init)
	return out
}
func (m *staticModel) GetOutputs() []int { return m.outputs }
func (m *staticModel) GetTrueId() int    { return m.trueID }
func (m *staticModel) GetFalseId() int   { return m.falseID }

func (m *staticModel) GetPrime(lit Literal) Literal {
	v := lit.Var()
	next, ok := m.prime[v]
	if !ok {
		panic(fmt.Sprintf("aig: GetPrime called on non-latch variable %d", v))
	}
	if lit.IsNegative() {
		return next.Negate()
	}
	return next
}

func (m *staticModel) GetPrevious(lit Literal) []Literal {
	return m.previous[lit]
}

func (m *staticModel) IsLatch(v int) bool {
	return v > m.numInputs && v <= m.numInputs+m.numLatches
}

func (m *staticModel) IsInput(v int) bool {
	return v >= 1 && v <= m.numInputs
}

func (m *staticModel) GetClause() []Clause {
	return m.clauses
}

func (m *staticModel) GetMaxId() int { return m.maxID }

// aagGate is an AND gate as read from an ASCII-AIGER file: lhs := rhs0
// & rhs1, all three encoded in AIGER's literal convention (2*var+sign).
type aagGate struct {
	lhs, rhs0, rhs1 int
}

// ParseASCII reads an ASCII-AIGER ("aag") file and compiles it into a
// Model: every AND gate becomes three Tseitin clauses, every output
// becomes a bad-output variable (buffered through a fresh variable
// when the output literal is negated), and the latch next-state
// functions populate the Prime/Previous maps.
//
// Only the plain "aag M I L O A" header is supported; the HWMCC
// bad/constraint/justice/fairness line extensions are not parsed —
// outputs are treated directly as candidate bad signals, matching the
// single-bad-output framing the checker itself uses. Binary AIGER
// (.aig) is not supported.
func ParseASCII(r io.Reader) (Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	if !sc.Scan() {
		return nil, fmt.Errorf("aig: empty input")
	}
	header := strings.Fields(sc.Text())
	if len(header) < 6 || header[0] != "aag" {
		return nil, fmt.Errorf("aig: expected \"aag M I L O A\" header, got %q", sc.Text())
	}
	var M, I, L, O, A int
	var err error
	for i, dst := range []*int{&M, &I, &L, &O, &A} {
		if *dst, err = strconv.Atoi(header[i+1]); err != nil {
			return nil, fmt.Errorf("aig: malformed header field %d: %w", i+1, err)
		}
	}

	readInt := func(what string) (int, error) {
		if !sc.Scan() {
			return 0, fmt.Errorf("aig: unexpected end of input reading %s", what)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			return 0, fmt.Errorf("aig: blank line reading %s", what)
		}
		v, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, fmt.Errorf("aig: malformed %s literal: %w", what, err)
		}
		return v, nil
	}

	inputLits := make([]int, I)
	for i := 0; i < I; i++ {
		v, err := readInt("input")
		if err != nil {
			return nil, err
		}
		inputLits[i] = v
	}

	latchCur := make([]int, L)
	latchNext := make([]int, L)
	for i := 0; i < L; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("aig: unexpected end of input reading latch %d", i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			return nil, fmt.Errorf("aig: latch %d missing next-state literal", i)
		}
		cur, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("aig: malformed latch literal: %w", err)
		}
		next, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("aig: malformed latch next literal: %w", err)
		}
		latchCur[i] = cur
		latchNext[i] = next
	}

	outputLits := make([]int, O)
	for i := 0; i < O; i++ {
		v, err := readInt("output")
		if err != nil {
			return nil, err
		}
		outputLits[i] = v
	}

	gates := make([]aagGate, A)
	for i := 0; i < A; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("aig: unexpected end of input reading and-gate %d", i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("aig: and-gate %d has fewer than 3 literals", i)
		}
		lhs, err1 := strconv.Atoi(fields[0])
		rhs0, err2 := strconv.Atoi(fields[1])
		rhs1, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("aig: malformed and-gate %d", i)
		}
		gates[i] = aagGate{lhs: lhs, rhs0: rhs0, rhs1: rhs1}
	}

	return compile(M, I, L, inputLits, latchCur, latchNext, outputLits, gates)
}

// compile turns the raw AIGER literal tables into a staticModel,
// assuming the AIGER variable-numbering convention: inputs occupy
// 1..I, latches occupy I+1..I+L, and gates occupy I+L+1..M in file
// order — which is exactly the numbering car.Literal expects, so no
// variable renumbering is needed beyond the constant buffers.
func compile(M, I, L int, inputLits, latchCur, latchNext, outputLits []int, gates []aagGate) (Model, error) {
	trueID := M + 1
	falseID := M + 2

	resolve := func(aigerLit int) Literal {
		v := aigerLit >> 1
		neg := aigerLit&1 == 1
		if v == 0 {
			if neg {
				return Literal(trueID)
			}
			return Literal(falseID)
		}
		if neg {
			return Literal(-v)
		}
		return Literal(v)
	}

	m := &staticModel{
		numInputs:  I,
		numLatches: L,
		maxID:      falseID,
		trueID:     trueID,
		falseID:    falseID,
		prime:      make(map[int]Literal, L),
		previous:   make(map[Literal][]Literal, L),
	}

	m.clauses = append(m.clauses, Clause{Literal(trueID)})
	m.clauses = append(m.clauses, Clause{Literal(-falseID)})

	for i, cur := range latchCur {
		v := cur >> 1
		if v != I+i+1 {
			return nil, fmt.Errorf("aig: latch %d has non-canonical literal %d", i, cur)
		}
		next := resolve(latchNext[i])
		m.prime[v] = next
		m.previous[next] = append(m.previous[next], Literal(v))
		m.previous[next.Negate()] = append(m.previous[next.Negate()], Literal(-v))
	}

	m.init = make([]Literal, L)
	for i := range m.init {
		m.init[i] = Literal(-(I + i + 1))
	}

	for i, in := range inputLits {
		if in>>1 != i+1 {
			return nil, fmt.Errorf("aig: input %d has non-canonical literal %d", i, in)
		}
	}

	for gi, g := range gates {
		lhsVar := g.lhs >> 1
		if lhsVar != I+L+gi+1 {
			return nil, fmt.Errorf("aig: and-gate %d has non-canonical literal %d", gi, g.lhs)
		}
		gv := Literal(lhsVar)
		a := resolve(g.rhs0)
		b := resolve(g.rhs1)
		m.clauses = append(m.clauses,
			Clause{gv.Negate(), a},
			Clause{gv.Negate(), b},
			Clause{gv, a.Negate(), b.Negate()},
		)
	}

	// Each output becomes a bad-output variable. A positively-signed
	// output literal already names one directly; a negated one needs a
	// fresh buffer variable bv with bv <=> lit so GetOutputs can keep
	// returning bare variable IDs.
	buf := M + 3
	m.outputs = make([]int, 0, len(outputLits))
	for _, lit := range outputLits {
		signed := resolve(lit)
		if !signed.IsNegative() {
			m.outputs = append(m.outputs, int(signed))
			continue
		}
		bv := buf
		buf++
		bl := Literal(bv)
		m.clauses = append(m.clauses,
			Clause{bl.Negate(), signed},
			Clause{bl, signed.Negate()},
		)
		m.outputs = append(m.outputs, bv)
	}
	if buf > M+3 {
		m.maxID = buf - 1
	}

	return m, nil
}
