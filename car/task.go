package car

// Task is a proof obligation: show state cannot reach bad within
// frameLevel steps, or refine the over-sequence until it can.
// isLocated marks a task whose frameLevel has already been advanced
// past its blocking frame for this stack entry, so the inner loop
// knows whether to recompute it before proceeding.
type Task struct {
	state      *State
	frameLevel int
	isLocated  bool
}

// taskStack is the inner loop's working stack of proof obligations.
type taskStack struct {
	items []Task
}

func (s *taskStack) push(t Task) { s.items = append(s.items, t) }

func (s *taskStack) pop() {
	s.items = s.items[:len(s.items)-1]
}

func (s *taskStack) top() *Task {
	return &s.items[len(s.items)-1]
}

func (s *taskStack) empty() bool { return len(s.items) == 0 }
