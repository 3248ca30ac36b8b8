package car

// Frame is an unordered collection of cubes at one level. Every state
// entailed by a frame cube has been proved unable to reach bad within
// that level's step budget.
type Frame struct {
	cubes []Cube
}

// Cubes returns the frame's cubes; callers must not mutate the slice.
func (f *Frame) Cubes() []Cube { return f.cubes }

// OverSequence is the ordered list of frames plus the effective_level
// counter tracking how much of it has been loaded into the frame
// solver. Cubes present at level k are semantically present at every
// level < k too (global monotonicity); physical storage does not
// duplicate them, so subsumption queries must scan from the target
// level upward through every later frame, not just the exact level.
type OverSequence struct {
	frames        []Frame
	effectiveLevel int
}

// NewOverSequence creates an over-sequence with one empty frame
// (level 0), ready for the initial-state blocking cubes.
func NewOverSequence() *OverSequence {
	return &OverSequence{frames: []Frame{{}}, effectiveLevel: -1}
}

// GetLength returns the number of frames.
func (o *OverSequence) GetLength() int { return len(o.frames) }

// EffectiveLevel returns the highest frame index currently loaded into
// the frame solver.
func (o *OverSequence) EffectiveLevel() int { return o.effectiveLevel }

// SetEffectiveLevel updates the effective-level counter; the driver
// calls this after loading a frame's cubes into the frame solver.
func (o *OverSequence) SetEffectiveLevel(level int) { o.effectiveLevel = level }

// GetFrame returns the cubes physically stored at level (not the
// semantic union of levels ≥ level — callers that need the effective
// blocking set use IsBlockedByFrame instead).
func (o *OverSequence) GetFrame(level int) []Cube {
	o.ensureLevel(level)
	return o.frames[level].cubes
}

func (o *OverSequence) ensureLevel(level int) {
	for len(o.frames) <= level {
		o.frames = append(o.frames, Frame{})
	}
}

// Insert adds cube at level, idempotently: if a cube already stored at
// level or any deeper level subsumes it, the new cube is redundant and
// discarded. Otherwise any existing cube at level or deeper that the
// new cube subsumes is now redundant and is dropped, since the new,
// smaller cube is the stronger statement.
func (o *OverSequence) Insert(cube Cube, level int) {
	o.ensureLevel(level)
	cube = cube.Clone()
	cube.Sort()

	for k := level; k < len(o.frames); k++ {
		for _, existing := range o.frames[k].cubes {
			if existing.Subsumes(cube) {
				return
			}
		}
	}

	for k := level; k < len(o.frames); k++ {
		kept := o.frames[k].cubes[:0:0]
		for _, existing := range o.frames[k].cubes {
			if cube.Subsumes(existing) && !cube.Equal(existing) {
				continue
			}
			kept = append(kept, existing)
		}
		o.frames[k].cubes = kept
	}

	o.frames[level].cubes = append(o.frames[level].cubes, cube)
}

// IsBlockedByFrame reports whether some cube at frame level or deeper
// subsumes latches — i.e. latches is already known unable to reach bad
// within that level's budget. partial only affects which matching
// discipline the caller's cube representation was built with (a full
// assignment vs. a generalized sub-cube); Cube.Subsumes is a plain
// subset test either way, so both modes share this one code path.
func (o *OverSequence) IsBlockedByFrame(latches Cube, level int, partial bool) bool {
	for k := level; k < len(o.frames); k++ {
		for _, c := range o.frames[k].cubes {
			if c.Subsumes(latches) {
				return true
			}
		}
	}
	return false
}

// GetNewLevel returns the smallest k in [start, GetLength()) for which
// IsBlockedByFrame(latches, k, partial) fails, minus one (that is, the
// largest level from start onward that still blocks); GetLength()-1
// if every frame from start onward blocks; or start-1 if even frame
// start fails to block (in particular -1 when start is 0, meaning the
// state is not even blocked by the initial frame).
func (o *OverSequence) GetNewLevel(latches Cube, start int, partial bool) int {
	for k := start; k < len(o.frames); k++ {
		if !o.IsBlockedByFrame(latches, k, partial) {
			return k - 1
		}
	}
	return len(o.frames) - 1
}
