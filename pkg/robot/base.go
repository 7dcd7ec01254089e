package robot

import (
	"context"
	"fmt"
)

// Frame identifies the reference coordinate system of a base motion goal.
type Frame int

const (
	FrameWorld Frame = 1
	FrameRobot Frame = 2
)

// Mode selects blocking or retargetable non-blocking base motion.
type Mode int

const (
	// Sync blocks the caller until the base controller reports completion.
	Sync Mode = iota
	// Async returns immediately; a goal already in flight is retargeted in
	// place, never queued.
	Async
)

// Base velocity and acceleration ceilings, matching the Pepper base
// envelope.
const (
	DefaultLinearVelocity      = 0.35 // m/s
	DefaultAngularVelocity     = 1.0  // rad/s
	DefaultLinearAcceleration  = 0.3  // m/s^2
	DefaultAngularAcceleration = 0.3  // rad/s^2
)

// MotionCommand is one frame-relative base motion request. Speed overrides
// the cruise velocity for this and later goals, clamped to the dispatcher
// ceiling; zero keeps the current setting.
type MotionCommand struct {
	X     float64
	Y     float64
	Theta float64
	Frame Frame
	Speed float64
	Mode  Mode
}

// Dispatcher forwards base motion commands to the low-level controller,
// holding the velocity and acceleration ceilings. Only one goal state exists
// at a time: async retargets, it never queues.
type Dispatcher struct {
	ctrl BaseController

	maxLinearVelocity      float64
	maxAngularVelocity     float64
	maxLinearAcceleration  float64
	maxAngularAcceleration float64
}

// NewDispatcher creates a dispatcher with the default Pepper ceilings.
func NewDispatcher(ctrl BaseController) *Dispatcher {
	return &Dispatcher{
		ctrl:                   ctrl,
		maxLinearVelocity:      DefaultLinearVelocity,
		maxAngularVelocity:     DefaultAngularVelocity,
		maxLinearAcceleration:  DefaultLinearAcceleration,
		maxAngularAcceleration: DefaultAngularAcceleration,
	}
}

// MoveTo dispatches a goal. Sync mode returns when the controller reports
// completion, ended only by the controller's own termination condition (ctx
// is forwarded so a stopped simulation cannot wedge the caller). Async mode
// returns immediately.
func (d *Dispatcher) MoveTo(ctx context.Context, cmd MotionCommand) error {
	if cmd.Frame != FrameWorld && cmd.Frame != FrameRobot {
		return fmt.Errorf("%w: frame %d", ErrInvalidArguments, cmd.Frame)
	}
	if cmd.Speed > 0 {
		d.ctrl.SetLinearVelocity(min(cmd.Speed, d.maxLinearVelocity))
	}
	return d.ctrl.MoveTo(ctx, cmd.X, cmd.Y, cmd.Theta, cmd.Frame, cmd.Mode == Async)
}

// Move applies an open-loop base velocity, clamped to the ceilings. The
// latest call wins over any active goal.
func (d *Dispatcher) Move(x, y, theta float64) error {
	return d.ctrl.Move(
		clamp(x, d.maxLinearVelocity),
		clamp(y, d.maxLinearVelocity),
		clamp(theta, d.maxAngularVelocity),
	)
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// MoveTo drives the base toward (x, y, theta) in the given frame. See
// Dispatcher.MoveTo for the sync/async contract.
func (g *Gripper) MoveTo(ctx context.Context, cmd MotionCommand) error {
	return g.base.MoveTo(ctx, cmd)
}

// Move applies an open-loop velocity on the base: x and y in m/s, theta in
// rad/s.
func (g *Gripper) Move(x, y, theta float64) error {
	return g.base.Move(x, y, theta)
}
