package robot

// DefaultMimicMultiplier converts a normalized hand-openness command into a
// finger joint angle (0.872665 rad = 50 degrees over the full hand range).
const DefaultMimicMultiplier = 0.872665

// MimicMapper fans a single hand command out to the hand's finger and thumb
// joints through a fixed affine gain:
//
//	finger = value*Multiplier + Offset
type MimicMapper struct {
	Multiplier float64
	Offset     float64
}

// Expand returns the (name, value) pairs for every joint mimicking the given
// hand, in model order. The result is empty when the model carries no
// matching digit joints, in which case the hand command is a no-op.
func (m MimicMapper) Expand(reg *Registry, hand string, value float64) (names []string, values []float64) {
	for _, name := range reg.JointNames() {
		if isDigitOf(hand, name) {
			names = append(names, name)
			values = append(values, value*m.Multiplier+m.Offset)
		}
	}
	return names, values
}

// HandPosition folds a hand's state back into one value by rescaling the
// representative distal finger's raw angle through that joint's own limits:
//
//	reported = raw*(upper-lower) + lower
//
// Note this is the finger's limit range, not the inverse of the mimic gain,
// so setting a hand value and reading it back does not round-trip exactly.
func (m MimicMapper) HandPosition(finger *Joint, raw float64) float64 {
	return raw/(1/(finger.UpperLimit-finger.LowerLimit)) + finger.LowerLimit
}
