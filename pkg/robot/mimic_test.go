package robot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMimicMapperExpand(t *testing.T) {
	reg := NewRegistry(testDescription())
	m := MimicMapper{Multiplier: DefaultMimicMultiplier}

	names, values := m.Expand(reg, RHand, 0.5)

	assert.Equal(t, []string{"RFinger11", "RFinger12", "RThumb1"}, names)
	for _, v := range values {
		assert.InDelta(t, 0.5*DefaultMimicMultiplier, v, 1e-9)
	}
}

func TestMimicMapperExpandOffset(t *testing.T) {
	reg := NewRegistry(testDescription())
	m := MimicMapper{Multiplier: 2, Offset: 0.1}

	_, values := m.Expand(reg, LHand, 0.25)

	assert.Len(t, values, 2)
	for _, v := range values {
		assert.InDelta(t, 0.6, v, 1e-9)
	}
}

func TestMimicMapperExpandEmpty(t *testing.T) {
	desc := Description{Joints: []Joint{{Name: "RHand", LowerLimit: 0, UpperLimit: 1}}}
	reg := NewRegistry(desc)
	m := MimicMapper{Multiplier: DefaultMimicMultiplier}

	names, values := m.Expand(reg, RHand, 0.5)

	assert.Empty(t, names)
	assert.Empty(t, values)
}

// The reported hand position rescales the representative finger through its
// own limit range, not through the mimic gain, so a commanded value does
// not read back exactly: with finger limits [0, 0.872665] a command v
// returns v*0.872665^2.
func TestMimicMapperHandPositionNotRoundTrip(t *testing.T) {
	m := MimicMapper{Multiplier: DefaultMimicMultiplier}
	finger := &Joint{Name: "RFinger11", LowerLimit: 0, UpperLimit: 0.872665}

	raw := 0.5 * m.Multiplier // finger angle after commanding the hand to 0.5
	reported := m.HandPosition(finger, raw)

	assert.InDelta(t, 0.5*0.872665*0.872665, reported, 1e-6)
	assert.Greater(t, math.Abs(reported-0.5), 0.05, "readback deliberately differs from the command")
}

func TestMimicMapperHandPositionShiftedBounds(t *testing.T) {
	m := MimicMapper{Multiplier: DefaultMimicMultiplier}
	finger := &Joint{Name: "LFinger11", LowerLimit: -0.2, UpperLimit: 0.8}

	// A raw angle of zero reports the bound-shifted equivalent of zero.
	assert.InDelta(t, -0.2, m.HandPosition(finger, 0), 1e-9)
}
