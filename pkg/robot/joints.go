// Package robot provides the kinematic control overlay for the Pepper
// gripper assembly: composite hand actuation, joint state readback,
// self-collision queries and base motion dispatch.
package robot

import "strings"

// Composite hand actuators and the wrist links they hang off.
const (
	RHand = "RHand"
	LHand = "LHand"

	RightWrist = "r_wrist"
	LeftWrist  = "l_wrist"
)

// Representative distal fingers used to report a hand's position.
const (
	RightRepresentativeFinger = "RFinger11"
	LeftRepresentativeFinger  = "LFinger11"
)

// Hands returns the composite hand actuator names in a fixed order.
func Hands() []string {
	return []string{RHand, LHand}
}

// Joint is a single controllable degree of freedom with angle bounds and a
// velocity ceiling. MaxVelocity is lowered at load time for finger and thumb
// joints so they never exceed their controlling hand.
type Joint struct {
	Name        string
	Index       int
	LowerLimit  float64
	UpperLimit  float64
	MaxVelocity float64
}

// Link is a rigid structural segment with a collision index.
type Link struct {
	Name  string
	Index int
}

// Description enumerates the joints and links of a loaded body, in model
// order.
type Description struct {
	BodyID int
	Joints []Joint
	Links  []Link
}

// IsHand reports whether name is a composite hand actuator.
func IsHand(name string) bool {
	return name == RHand || name == LHand
}

// isDigitOf reports whether the joint name belongs to the given hand's
// fingers or thumbs (RHand controls RFinger*/RThumb* joints, LHand the
// L-prefixed ones).
func isDigitOf(hand, joint string) bool {
	side := hand[:1]
	return strings.Contains(joint, side+"Finger") || strings.Contains(joint, side+"Thumb")
}

// isWristDigit reports whether the link name belongs to the digits bonded to
// the given wrist ("r_wrist" exempts every link whose lowercased name
// contains "rfinger" or "rthumb").
func isWristDigit(wrist, link string) bool {
	side := wrist[:1]
	lower := strings.ToLower(link)
	return strings.Contains(lower, side+"finger") || strings.Contains(lower, side+"thumb")
}

// RepresentativeFinger returns the distal finger joint whose position stands
// in for the given hand when reporting state.
func RepresentativeFinger(hand string) string {
	if hand == RHand {
		return RightRepresentativeFinger
	}
	return LeftRepresentativeFinger
}
