package car

// propagate pushes every frame's cubes forward one level where they
// still block, scanning k = 0 upward through effectiveLevel-1 (spec
// §4.3). A cube at level k that still blocks at k+1 is reinserted
// there; Insert's subsumption handling keeps the over-sequence
// consistent. Propagation never removes a cube, only raises the level
// at which it is also known to hold.
func propagate(over *OverSequence, frames *frameSolver, settings Settings) error {
	for k := 0; k < over.EffectiveLevel(); k++ {
		for _, c := range over.GetFrame(k) {
			sat, err := frames.SolveWithAssumption(c, k+1)
			if err != nil {
				return err
			}
			if !sat {
				over.Insert(c, k+1)
			}
		}
	}
	return nil
}
