package car

import "github.com/carverify/forwardcar/aig"

// stateHandle indexes into an UnderSequence's arena. Handle 0 names the
// initial state; noPredecessor marks the root's missing back-reference.
type stateHandle int

const noPredecessor stateHandle = -1

// State is one node of the under-sequence tree: a concrete (or, under
// partial-state generalization, partial) latch assignment, discovered
// as a predecessor of some other already-discovered state.
//
// The tree's back-reference runs in the direction the search
// discovers it, which is chronologically forward: a state's recorded
// predecessor is the state it was found to transition into, not the
// state it transitioned from. depth counts hops from the root in the
// search tree (a start-state candidate has depth 1), not real time from
// the initial state.
type State struct {
	handle      stateHandle
	predecessor stateHandle
	hasPred     bool
	inputs      []aig.Literal
	latches     Cube
	depth       int
}

// Inputs returns the input assignment this state uses to transition
// forward into its predecessor in the search tree (nil for the root).
func (s *State) Inputs() []aig.Literal { return s.inputs }

// Latches returns this state's latch assignment (full or, under
// partial-state generalization, a sub-cube sufficient to force it).
func (s *State) Latches() Cube { return s.latches }

// Depth returns the number of search-tree hops between this state and
// the root (0 for the root).
func (s *State) Depth() int { return s.depth }

// UnderSequence is an arena of State nodes rooted at the initial
// state; back-references are handles into the arena rather than
// pointers, so the tree is trivially serializable and free of cycles
// by construction — a state can only ever point to an earlier handle.
type UnderSequence struct {
	nodes []*State
}

// NewUnderSequence creates an under-sequence whose root is the initial
// state (no predecessor, empty inputs, depth 0).
func NewUnderSequence(initialLatches Cube) *UnderSequence {
	u := &UnderSequence{}
	root := &State{
		handle:      0,
		predecessor: noPredecessor,
		hasPred:     false,
		inputs:      nil,
		latches:     initialLatches,
		depth:       0,
	}
	u.nodes = append(u.nodes, root)
	return u
}

// Root returns the initial state.
func (u *UnderSequence) Root() *State { return u.nodes[0] }

// Push appends a new state whose predecessor is pred, returning the
// new node. The under-sequence is append-only during a query.
func (u *UnderSequence) Push(pred *State, inputs []aig.Literal, latches Cube) *State {
	s := &State{
		handle:      stateHandle(len(u.nodes)),
		predecessor: pred.handle,
		hasPred:     true,
		inputs:      inputs,
		latches:     latches,
		depth:       pred.depth + 1,
	}
	u.nodes = append(u.nodes, s)
	return s
}

// Predecessor returns s's predecessor state, or nil if s is the root.
func (u *UnderSequence) Predecessor(s *State) *State {
	if !s.hasPred {
		return nil
	}
	return u.nodes[s.predecessor]
}

// Trace walks s's predecessor chain back to the root.
//
// Each node's own input vector is the one it uses to transition
// forward, towards its predecessor (see State.Inputs) — a back-link in
// the search tree runs chronologically forward, since the search
// discovers a state's predecessor after the state itself. Walking from
// s to the root therefore visits states in chronological order
// already: s is the earliest real transition, the root's immediate
// successor is the last. No reversal is needed.
func (u *UnderSequence) Trace(s *State) [][]aig.Literal {
	var out [][]aig.Literal
	for cur := s; cur.hasPred; cur = u.Predecessor(cur) {
		out = append(out, cur.inputs)
	}
	return out
}

// Len returns the number of states in the arena.
func (u *UnderSequence) Len() int { return len(u.nodes) }

// StateAt returns the i'th state in arena order (0 is the root),
// for visualization's traversal over every discovered state.
func (u *UnderSequence) StateAt(i int) *State { return u.nodes[i] }

// HandleOf returns s's position in arena order, the inverse of
// StateAt, for visualization's edge construction.
func (u *UnderSequence) HandleOf(s *State) int { return int(s.handle) }
