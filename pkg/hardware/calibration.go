// Package hardware drives a feetech servo rig from joint angles, so a
// physical gripper can lead or shadow the simulated one.
package hardware

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// ServoCalibration maps one joint's angle range onto a servo's raw count
// range: LowerLimit radians at RangeMin counts, UpperLimit at RangeMax.
type ServoCalibration struct {
	ID         int     `json:"id"`
	RangeMin   int     `json:"range_min"`
	RangeMax   int     `json:"range_max"`
	LowerLimit float64 `json:"lower_limit"`
	UpperLimit float64 `json:"upper_limit"`
}

// Calibration holds calibration data for all servos, keyed by joint name.
type Calibration map[string]ServoCalibration

// LoadCalibration loads calibration data from a JSON file.
func LoadCalibration(path string) (Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration file: %w", err)
	}
	var cal Calibration
	if err := json.Unmarshal(data, &cal); err != nil {
		return nil, fmt.Errorf("parse calibration JSON: %w", err)
	}
	return cal, nil
}

// ToRaw converts a joint angle in radians to a raw servo position.
func (c ServoCalibration) ToRaw(angle float64) int {
	angleRange := c.UpperLimit - c.LowerLimit
	if angleRange == 0 {
		return c.RangeMin
	}
	frac := (angle - c.LowerLimit) / angleRange
	return int(frac*float64(c.RangeMax-c.RangeMin)) + c.RangeMin
}

// ToAngle converts a raw servo position to a joint angle in radians.
func (c ServoCalibration) ToAngle(raw int) float64 {
	countRange := float64(c.RangeMax - c.RangeMin)
	if countRange == 0 {
		return c.LowerLimit
	}
	frac := float64(raw-c.RangeMin) / countRange
	return frac*(c.UpperLimit-c.LowerLimit) + c.LowerLimit
}

// ServoIDs returns the servo IDs of all calibrated joints, ascending.
func (c Calibration) ServoIDs() []int {
	ids := make([]int, 0, len(c))
	for _, sc := range c {
		ids = append(ids, sc.ID)
	}
	sort.Ints(ids)
	return ids
}

// ByID returns the joint name and calibration for a given servo ID.
func (c Calibration) ByID(id int) (string, ServoCalibration, bool) {
	for name, sc := range c {
		if sc.ID == id {
			return name, sc, true
		}
	}
	return "", ServoCalibration{}, false
}
