// Package sim provides the software physics backend for the gripper
// overlay: a small kinematic world with position-servoed joints and
// sphere-approximated link geometry, plus the simulation lifecycle around
// it. It implements the engine and model contracts consumed by pkg/robot,
// so a binding to a real physics client can replace it without touching the
// overlay.
package sim

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/LeslieMarande/qibullet/pkg/robot"
)

// Pose is a planar base pose: position in meters, heading in radians.
type Pose struct {
	X     float64
	Y     float64
	Theta float64
}

type jointState struct {
	spec   robot.Joint
	angle  float64
	target float64
	speed  float64 // fraction of max velocity, (0, 1]
}

type linkState struct {
	spec   robot.Link
	center [3]float64 // offset from the base origin, base frame
	radius float64
}

type simBody struct {
	pose     Pose
	joints   map[string]*jointState
	order    []string
	links    map[int]*linkState
	filtered map[[2]int]bool // canonical link index pairs, contact suppressed
}

// Engine is the in-memory physics world. Joints servo toward their targets
// at a capped rate each step; contact queries test sphere overlap between
// link pairs minus the filtered ones.
type Engine struct {
	mu     sync.Mutex
	nextID int
	bodies map[int]*simBody
	hooks  []func(dt float64)
}

// NewEngine creates an empty world.
func NewEngine() *Engine {
	return &Engine{bodies: make(map[int]*simBody)}
}

// OnStep registers a hook run after every joint integration step, outside
// the engine lock. Base controllers drive their bodies from here.
func (e *Engine) OnStep(hook func(dt float64)) {
	e.mu.Lock()
	e.hooks = append(e.hooks, hook)
	e.mu.Unlock()
}

// Step advances the world by dt seconds.
func (e *Engine) Step(dt float64) {
	e.mu.Lock()
	for _, b := range e.bodies {
		for _, name := range b.order {
			j := b.joints[name]
			rate := j.spec.MaxVelocity * j.speed
			j.angle = approach(j.angle, j.target, rate*dt)
		}
	}
	hooks := e.hooks
	e.mu.Unlock()

	for _, hook := range hooks {
		hook(dt)
	}
}

// Reset destroys every body and hook; the engine keeps running.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.bodies = make(map[int]*simBody)
	e.hooks = nil
	e.mu.Unlock()
}

// BodyPose returns the planar pose of a body.
func (e *Engine) BodyPose(body int) (Pose, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.bodies[body]
	if !ok {
		return Pose{}, false
	}
	return b.pose, true
}

// SetBodyPose places a body. Used by base controllers and tests.
func (e *Engine) SetBodyPose(body int, p Pose) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.bodies[body]; ok {
		b.pose = p
	}
}

// SetLinkOffset moves a link's collision sphere relative to the base
// origin. Tests and demos use it to force or clear contacts.
func (e *Engine) SetLinkOffset(body, link int, center [3]float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.bodies[body]
	if !ok {
		return fmt.Errorf("body %d not loaded", body)
	}
	l, ok := b.links[link]
	if !ok {
		return fmt.Errorf("body %d has no link %d", body, link)
	}
	l.center = center
	return nil
}

// SetCollisionFilterPair enables or disables contact generation between one
// link pair. Only same-body pairs exist in this world.
func (e *Engine) SetCollisionFilterPair(_ context.Context, bodyA, bodyB, linkA, linkB int, enabled bool) error {
	if bodyA != bodyB {
		return fmt.Errorf("cross-body filter pairs not supported (%d, %d)", bodyA, bodyB)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.bodies[bodyA]
	if !ok {
		return fmt.Errorf("body %d not loaded", bodyA)
	}
	pair := canonicalPair(linkA, linkB)
	if enabled {
		delete(b.filtered, pair)
	} else {
		b.filtered[pair] = true
	}
	return nil
}

// ContactPoints returns the overlapping link sphere pairs of a body,
// restricted to the requested link indices (robot.AnyLink matches any).
// Pairs are reported once, in canonical low/high index orientation.
func (e *Engine) ContactPoints(_ context.Context, bodyA, bodyB, linkA, linkB int) ([]robot.ContactPoint, error) {
	if bodyA != bodyB {
		return nil, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.bodies[bodyA]
	if !ok {
		return nil, fmt.Errorf("body %d not loaded", bodyA)
	}

	var contacts []robot.ContactPoint
	for ia, la := range b.links {
		for ib, lb := range b.links {
			if ia >= ib || b.filtered[canonicalPair(ia, ib)] {
				continue
			}
			if linkA != robot.AnyLink && linkA != ia {
				continue
			}
			if linkB != robot.AnyLink && linkB != ib {
				continue
			}
			d := linkDistance(la, lb)
			if d < la.radius+lb.radius {
				contacts = append(contacts, robot.ContactPoint{
					BodyA:    bodyA,
					BodyB:    bodyA,
					LinkA:    ia,
					LinkB:    ib,
					Distance: d - (la.radius + lb.radius),
				})
			}
		}
	}
	return contacts, nil
}

func canonicalPair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// linkDistance is the center distance of two spheres of the same body. Both
// offsets ride the base pose, so the pose cancels and base-frame offsets
// compare directly.
func linkDistance(a, b *linkState) float64 {
	dx := a.center[0] - b.center[0]
	dy := a.center[1] - b.center[1]
	dz := a.center[2] - b.center[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func approach(current, target, limit float64) float64 {
	d := target - current
	if math.Abs(d) <= limit {
		return target
	}
	if d < 0 {
		return current - limit
	}
	return current + limit
}
