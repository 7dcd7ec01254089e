package robot

import "context"

// AnyLink matches any link index in a contact query.
const AnyLink = -1

// ContactPoint is one contact record reported by the physics engine.
type ContactPoint struct {
	BodyA    int
	BodyB    int
	LinkA    int
	LinkB    int
	Distance float64
}

// Model is the raw articulated-body surface the gripper overlay wraps.
// LoadRobot loads the body and reports its joints and links; SetAngles and
// AnglesPosition act on physical joints only, with no composite-actuator
// handling. Backends: the software engine in pkg/sim, or any binding to a
// real physics client.
type Model interface {
	LoadRobot(ctx context.Context) (Description, error)

	// SetAngles writes target angles for the named joints. speeds are
	// fractions of each joint's max velocity. names, values and speeds are
	// parallel and pre-validated by the caller.
	SetAngles(ctx context.Context, names []string, values, speeds []float64) error

	// AnglesPosition reads the current angle of each named joint, in input
	// order.
	AnglesPosition(ctx context.Context, names []string) ([]float64, error)

	// SetJointMaxVelocity lowers the velocity ceiling the model enforces
	// for one joint. Used at load time to propagate a hand's ceiling onto
	// its fingers and thumbs.
	SetJointMaxVelocity(ctx context.Context, name string, limit float64) error
}

// PhysicsEngine is the narrow slice of the physics client consumed by the
// overlay: collision filtering at load time and contact queries per
// self-collision check.
type PhysicsEngine interface {
	// SetCollisionFilterPair enables or disables contact generation between
	// one link pair of two bodies.
	SetCollisionFilterPair(ctx context.Context, bodyA, bodyB, linkA, linkB int, enabled bool) error

	// ContactPoints returns the current contact records between the two
	// bodies, restricted to the given link indices. AnyLink matches any
	// link on that side.
	ContactPoints(ctx context.Context, bodyA, bodyB, linkA, linkB int) ([]ContactPoint, error)
}

// BaseController is the low-level mobile-base contract. Goal tracking,
// blocking behavior and termination are that component's concern; the
// overlay only forwards targets and the async flag.
type BaseController interface {
	// SetLinearVelocity updates the cruise speed used by subsequent goals,
	// in m/s.
	SetLinearVelocity(speed float64)

	// MoveTo drives toward (x, y, theta) in the given frame. With async
	// false the call blocks until the goal is reached; with async true it
	// returns immediately, replacing the goal of any motion already in
	// flight.
	MoveTo(ctx context.Context, x, y, theta float64, frame Frame, async bool) error

	// Move applies an open-loop base velocity, dropping any active goal.
	Move(x, y, theta float64) error
}
