package robot

import (
	"context"
	"fmt"
)

// Gripper is the control overlay for one robot instance. It composes a raw
// Model rather than extending it: hand commands are expanded before they
// reach the model, hand queries are folded after they leave it.
type Gripper struct {
	model  Model
	engine PhysicsEngine
	base   *Dispatcher
	mimic  MimicMapper

	body int
	reg  *Registry
}

// NewGripper wires a gripper overlay over a raw body model, a physics engine
// handle and a base controller. Call LoadRobot before anything else.
func NewGripper(model Model, engine PhysicsEngine, ctrl BaseController) *Gripper {
	return &Gripper{
		model:  model,
		engine: engine,
		base:   NewDispatcher(ctrl),
		mimic:  MimicMapper{Multiplier: DefaultMimicMultiplier},
	}
}

// LoadRobot loads the body through the underlying model, indexes its joints
// and links, exempts each wrist/digit pair from self-collision and lowers
// the digit velocity ceilings to their hand's. A wrist or hand missing from
// the model skips that step; a physics engine failure aborts the load.
func (g *Gripper) LoadRobot(ctx context.Context) error {
	desc, err := g.model.LoadRobot(ctx)
	if err != nil {
		return fmt.Errorf("load robot: %w", err)
	}

	g.body = desc.BodyID
	g.reg = NewRegistry(desc)

	for _, pair := range g.reg.CollisionExclusions() {
		err := g.engine.SetCollisionFilterPair(ctx, g.body, g.body, pair[0], pair[1], false)
		if err != nil {
			return fmt.Errorf("collision filter pair (%d,%d): %w", pair[0], pair[1], err)
		}
	}

	for name, limit := range g.reg.PropagateHandLimits() {
		if err := g.model.SetJointMaxVelocity(ctx, name, limit); err != nil {
			return fmt.Errorf("propagate velocity limit to %s: %w", name, err)
		}
	}
	return nil
}

// Registry exposes the loaded joints and links, nil before LoadRobot.
func (g *Gripper) Registry() *Registry {
	return g.reg
}

// BodyID returns the physics body id assigned at load time.
func (g *Gripper) BodyID() int {
	return g.body
}
