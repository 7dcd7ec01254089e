package hardware

import (
	"context"
	"fmt"

	"github.com/hipsterbrown/feetech-servo/feetech"
)

// Rig represents a servo-actuated physical gripper on a feetech bus.
type Rig struct {
	bus         *feetech.Bus
	group       *feetech.ServoGroup
	calibration Calibration
}

// NewRig opens the serial bus and groups the calibrated servos.
func NewRig(port string, cal Calibration) (*Rig, error) {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: 1_000_000,
		Protocol: feetech.ProtocolSTS,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}

	group := feetech.NewServoGroupByIDs(bus, cal.ServoIDs()...)

	return &Rig{
		bus:         bus,
		group:       group,
		calibration: cal,
	}, nil
}

// Close closes the rig's bus connection.
func (r *Rig) Close() error {
	return r.bus.Close()
}

// Enable enables torque on all servos.
func (r *Rig) Enable(ctx context.Context) error {
	return r.group.EnableAll(ctx)
}

// Disable disables torque on all servos, leaving the rig passive so it can
// be moved by hand and read as a leader.
func (r *Rig) Disable(ctx context.Context) error {
	return r.group.DisableAll(ctx)
}

// ReadAngles reads the current joint angles in radians, keyed by joint
// name.
func (r *Rig) ReadAngles(ctx context.Context) (map[string]float64, error) {
	rawPositions, err := r.group.Positions(ctx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	angles := make(map[string]float64, len(rawPositions))
	for id, raw := range rawPositions {
		name, sc, ok := r.calibration.ByID(id)
		if !ok {
			continue
		}
		angles[name] = sc.ToAngle(raw)
	}
	return angles, nil
}

// WriteAngles writes target joint angles in radians. Joints without
// calibration are skipped.
func (r *Rig) WriteAngles(ctx context.Context, angles map[string]float64) error {
	rawPositions := make(feetech.PositionMap, len(angles))
	for name, angle := range angles {
		sc, ok := r.calibration[name]
		if !ok {
			continue
		}
		rawPositions[sc.ID] = sc.ToRaw(angle)
	}

	if err := r.group.SetPositions(ctx, rawPositions); err != nil {
		return fmt.Errorf("write positions: %w", err)
	}
	return nil
}
