package sim

import (
	"context"
	"math"
	"sync"

	"github.com/LeslieMarande/qibullet/pkg/robot"
)

// Position and heading tolerances for goal completion.
const (
	goalPositionTolerance = 0.005 // m
	goalHeadingTolerance  = 0.005 // rad
)

// goalState is the single base goal slot. Retargeting rewrites the
// coordinates in place and keeps the done channel, so a blocked caller
// follows the motion to its final target.
type goalState struct {
	x, y, theta float64 // world frame
	done        chan struct{}
}

// BaseController drives a body's planar base toward position goals on the
// engine's stepped timeline, ramping linear and angular speed by the
// configured accelerations. It implements robot.BaseController.
type BaseController struct {
	engine *Engine
	body   int

	mu              sync.Mutex
	linearVelocity  float64
	angularVelocity float64
	linearAccel     float64
	angularAccel    float64
	goal            *goalState
	vx, vy, w       float64 // open-loop velocity mode, robot frame
	rampedLinear    float64
	rampedAngular   float64
}

// NewBaseController attaches a goal-tracking controller to a body and
// registers it on the engine step.
func NewBaseController(e *Engine, body int, linearVel, angularVel, linearAccel, angularAccel float64) *BaseController {
	c := &BaseController{
		engine:          e,
		body:            body,
		linearVelocity:  linearVel,
		angularVelocity: angularVel,
		linearAccel:     linearAccel,
		angularAccel:    angularAccel,
	}
	e.OnStep(c.step)
	return c
}

// SetLinearVelocity updates the cruise speed used by subsequent goals.
func (c *BaseController) SetLinearVelocity(speed float64) {
	c.mu.Lock()
	c.linearVelocity = speed
	c.mu.Unlock()
}

// MoveTo drives toward (x, y, theta) in the given frame. Async retargets
// any goal already in flight instead of queueing a second one. Sync blocks
// until the (possibly retargeted) goal completes; ctx only guards against a
// simulation that stopped stepping.
func (c *BaseController) MoveTo(ctx context.Context, x, y, theta float64, frame robot.Frame, async bool) error {
	if frame == robot.FrameRobot {
		pose, ok := c.engine.BodyPose(c.body)
		if !ok {
			return nil
		}
		sin, cos := math.Sincos(pose.Theta)
		x, y = pose.X+x*cos-y*sin, pose.Y+x*sin+y*cos
		theta = pose.Theta + theta
	}

	c.mu.Lock()
	c.vx, c.vy, c.w = 0, 0, 0
	if c.goal == nil {
		c.goal = &goalState{done: make(chan struct{})}
	}
	c.goal.x, c.goal.y, c.goal.theta = x, y, theta
	done := c.goal.done
	c.mu.Unlock()

	if async {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Move applies an open-loop velocity in the robot frame, abandoning any
// active goal. The goal's done channel is closed so a blocked caller is
// released.
func (c *BaseController) Move(x, y, theta float64) error {
	c.mu.Lock()
	if c.goal != nil {
		close(c.goal.done)
		c.goal = nil
	}
	c.vx, c.vy, c.w = x, y, theta
	c.mu.Unlock()
	return nil
}

// Goal returns the current world-frame goal, false when idle.
func (c *BaseController) Goal() (x, y, theta float64, active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.goal == nil {
		return 0, 0, 0, false
	}
	return c.goal.x, c.goal.y, c.goal.theta, true
}

func (c *BaseController) step(dt float64) {
	pose, ok := c.engine.BodyPose(c.body)
	if !ok {
		return
	}

	c.mu.Lock()
	if c.goal != nil {
		pose = c.stepGoal(pose, dt)
	} else if c.vx != 0 || c.vy != 0 || c.w != 0 {
		sin, cos := math.Sincos(pose.Theta)
		pose.X += (c.vx*cos - c.vy*sin) * dt
		pose.Y += (c.vx*sin + c.vy*cos) * dt
		pose.Theta = wrapAngle(pose.Theta + c.w*dt)
	}
	c.mu.Unlock()

	c.engine.SetBodyPose(c.body, pose)
}

// stepGoal advances one step toward the goal, called with c.mu held.
func (c *BaseController) stepGoal(pose Pose, dt float64) Pose {
	g := c.goal
	dx := g.x - pose.X
	dy := g.y - pose.Y
	dist := math.Hypot(dx, dy)
	dtheta := wrapAngle(g.theta - pose.Theta)

	if dist <= goalPositionTolerance && math.Abs(dtheta) <= goalHeadingTolerance {
		pose = Pose{X: g.x, Y: g.y, Theta: wrapAngle(g.theta)}
		close(g.done)
		c.goal = nil
		c.rampedLinear = 0
		c.rampedAngular = 0
		return pose
	}

	c.rampedLinear = math.Min(c.rampedLinear+c.linearAccel*dt, c.linearVelocity)
	c.rampedAngular = math.Min(c.rampedAngular+c.angularAccel*dt, c.angularVelocity)

	if dist > 0 {
		step := math.Min(c.rampedLinear*dt, dist)
		pose.X += dx / dist * step
		pose.Y += dy / dist * step
	}
	turn := math.Min(c.rampedAngular*dt, math.Abs(dtheta))
	pose.Theta = wrapAngle(pose.Theta + math.Copysign(turn, dtheta))
	return pose
}

func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
