package robot

import (
	"context"
	"fmt"
)

// SetAngle writes one joint or composite hand target. speed is a fraction of
// the joint's max velocity.
func (g *Gripper) SetAngle(ctx context.Context, name string, value, speed float64) error {
	return g.SetAngles(ctx, []string{name}, []float64{value}, []float64{speed})
}

// SetAngles writes a batch of joint targets. names and values must be
// parallel; speeds must either be parallel or hold a single value broadcast
// over the batch. Every occurrence of a hand actuator is replaced by its
// finger/thumb expansion, appended after the remaining entries in their
// original order. Validation runs to completion before any write, so a bad
// batch mutates nothing.
func (g *Gripper) SetAngles(ctx context.Context, names []string, values, speeds []float64) error {
	if g.reg == nil {
		return ErrNotLoaded
	}
	if len(values) != len(names) {
		return fmt.Errorf("%w: %d names, %d values", ErrInvalidArguments, len(names), len(values))
	}
	switch len(speeds) {
	case len(names):
	case 1:
		s := speeds[0]
		speeds = make([]float64, len(names))
		for i := range speeds {
			speeds[i] = s
		}
	default:
		return fmt.Errorf("%w: %d names, %d speeds", ErrInvalidArguments, len(names), len(speeds))
	}

	outNames := make([]string, 0, len(names))
	outValues := make([]float64, 0, len(names))
	outSpeeds := make([]float64, 0, len(names))
	var expNames []string
	var expValues, expSpeeds []float64

	for i, name := range names {
		if IsHand(name) {
			fingers, fingerValues := g.mimic.Expand(g.reg, name, values[i])
			expNames = append(expNames, fingers...)
			expValues = append(expValues, fingerValues...)
			for range fingers {
				expSpeeds = append(expSpeeds, speeds[i])
			}
			continue
		}
		outNames = append(outNames, name)
		outValues = append(outValues, values[i])
		outSpeeds = append(outSpeeds, speeds[i])
	}

	outNames = append(outNames, expNames...)
	outValues = append(outValues, expValues...)
	outSpeeds = append(outSpeeds, expSpeeds...)

	for _, name := range outNames {
		if _, err := g.reg.Joint(name); err != nil {
			return err
		}
	}
	if len(outNames) == 0 {
		return nil
	}
	return g.model.SetAngles(ctx, outNames, outValues, outSpeeds)
}

// AnglePosition reads one joint's angle, or a hand's folded position.
func (g *Gripper) AnglePosition(ctx context.Context, name string) (float64, error) {
	positions, err := g.AnglesPosition(ctx, []string{name})
	if err != nil {
		return 0, err
	}
	return positions[0], nil
}

// AnglesPosition reads the named joints, in input order. Every hand entry is
// overwritten with the representative finger's rescaled position; if the
// model carries no such finger the hand joint's raw angle is reported
// unchanged.
func (g *Gripper) AnglesPosition(ctx context.Context, names []string) ([]float64, error) {
	if g.reg == nil {
		return nil, ErrNotLoaded
	}
	for _, name := range names {
		if _, err := g.reg.Joint(name); err != nil {
			return nil, err
		}
	}

	positions, err := g.model.AnglesPosition(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	for i, name := range names {
		if !IsHand(name) {
			continue
		}
		finger, err := g.reg.Joint(RepresentativeFinger(name))
		if err != nil {
			continue
		}
		raw, err := g.model.AnglesPosition(ctx, []string{finger.Name})
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", finger.Name, err)
		}
		positions[i] = g.mimic.HandPosition(finger, raw[0])
	}
	return positions, nil
}
