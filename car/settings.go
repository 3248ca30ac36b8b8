package car

import "time"

// Settings configures one Checker run. The zero value is forward CAR
// with every optional refinement disabled.
type Settings struct {
	// Forward records that forward CAR is requested. Checker does not
	// read it: it always runs forward CAR, and no backward variant
	// exists in this package.
	Forward bool

	// Partial enables partial-state generalization via the partial
	// solver (spec §4.4).
	Partial bool

	// Rotate reorders latch literals in assumptions using the last
	// successful cube as a hint (spec §4.4 "rotation").
	Rotate bool

	// Propagation pushes subsumed cubes to higher frames between
	// outer iterations (spec §4.3).
	Propagation bool

	// MUC extracts a minimal unsatisfiable core from each raw conflict
	// (spec §4.4), bounded at min(|core|, 216) iterations.
	MUC bool

	// End is carried in Settings but Checker does not read it: start
	// states are enumerated in the same way whether it is set or not.
	End bool

	// TimeLimit is a wall-clock bound on one Check call. Zero means no
	// limit.
	TimeLimit time.Duration

	// Visualization emits a GML dump of the under-sequence on exit.
	Visualization bool

	// VisualizationPath is where the GML dump is written when
	// Visualization is set. Empty means no file is written even if
	// Visualization is true (the caller forgot to set a destination).
	VisualizationPath string
}

// DefaultSettings returns forward CAR with muc, propagation and
// partial-state generalization enabled — the configuration the
// end-to-end scenarios in spec §8 are written against.
func DefaultSettings() Settings {
	return Settings{
		Forward:     true,
		Partial:     true,
		Propagation: true,
		MUC:         true,
	}
}
