package sim

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed pepper_gripper.json
var pepperGripperJSON []byte

// BodyDescription is the loadable form of an articulated body: joint limits
// and velocities, plus the collision sphere of each link. Joint and link
// indices are their positions in the slices.
type BodyDescription struct {
	Name   string             `json:"name"`
	Joints []JointDescription `json:"joints"`
	Links  []LinkDescription  `json:"links"`
}

// JointDescription holds the static limits of one degree of freedom.
type JointDescription struct {
	Name        string  `json:"name"`
	LowerLimit  float64 `json:"lower_limit"`
	UpperLimit  float64 `json:"upper_limit"`
	MaxVelocity float64 `json:"max_velocity"`
}

// LinkDescription holds one link's collision sphere, offset from the base
// origin in the base frame.
type LinkDescription struct {
	Name   string     `json:"name"`
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

// PepperGripperDescription parses the embedded Pepper gripper assembly:
// both hands with their finger and thumb chains, the wrists they hang off,
// and the torso.
func PepperGripperDescription() (BodyDescription, error) {
	var desc BodyDescription
	if err := json.Unmarshal(pepperGripperJSON, &desc); err != nil {
		return BodyDescription{}, fmt.Errorf("parse gripper description: %w", err)
	}
	return desc, nil
}
