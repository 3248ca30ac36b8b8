package car

import (
	"sort"

	"github.com/carverify/forwardcar/aig"
)

// Cube is a conjunction of literals, dually read as a clause (the
// disjunction of their negations) when it blocks a frame. Cubes are
// kept sorted by absolute value, then by sign, so subsumption and
// equality checks are linear scans rather than set lookups.
type Cube []aig.Literal

func cmpLiteral(a, b aig.Literal) bool {
	if a.Var() != b.Var() {
		return a.Var() < b.Var()
	}
	return a < b
}

// NewCube copies and canonically sorts lits into a Cube.
func NewCube(lits []aig.Literal) Cube {
	c := make(Cube, len(lits))
	copy(c, lits)
	sort.Slice(c, func(i, j int) bool { return cmpLiteral(c[i], c[j]) })
	return c
}

// Sort reorders c in place into canonical order.
func (c Cube) Sort() {
	sort.Slice(c, func(i, j int) bool { return cmpLiteral(c[i], c[j]) })
}

// Subsumes reports whether every literal of c also appears in other,
// i.e. c is a (not necessarily proper) subset of other. Both must be
// sorted. A cube that subsumes another is the logically stronger
// blocking clause: fewer literals blocks a larger state space.
func (c Cube) Subsumes(other Cube) bool {
	if len(c) > len(other) {
		return false
	}
	i, j := 0, 0
	for i < len(c) && j < len(other) {
		switch {
		case c[i] == other[j]:
			i++
			j++
		case cmpLiteral(other[j], c[i]):
			j++
		default:
			return false
		}
	}
	return i == len(c)
}

// Contains reports whether lit appears in c (set membership, used by
// partial-cube matching rather than positional matching).
func (c Cube) Contains(lit aig.Literal) bool {
	for _, l := range c {
		if l == lit {
			return true
		}
	}
	return false
}

// Equal reports whether two sorted cubes hold the same literals.
func (c Cube) Equal(other Cube) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Negated returns the clause form of c: every literal complemented,
// used when asserting ¬c as a blocking clause.
func (c Cube) Negated() aig.Clause {
	out := make(aig.Clause, len(c))
	for i, l := range c {
		out[i] = l.Negate()
	}
	return out
}

// Clone returns an independent copy of c.
func (c Cube) Clone() Cube {
	out := make(Cube, len(c))
	copy(out, c)
	return out
}
