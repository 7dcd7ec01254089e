package sim

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeslieMarande/qibullet/pkg/robot"
)

func newTestBase(t *testing.T) (*Engine, *BaseController) {
	t.Helper()
	e := NewEngine()
	m := NewBodyModel(e, BodyDescription{Name: "base"})
	c := NewBaseController(e, m.BodyID(),
		robot.DefaultLinearVelocity,
		robot.DefaultAngularVelocity,
		robot.DefaultLinearAcceleration,
		robot.DefaultAngularAcceleration)
	return e, c
}

// stepUntilIdle advances the world until the goal completes.
func stepUntilIdle(t *testing.T, e *Engine, c *BaseController) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		e.Step(0.05)
		if _, _, _, active := c.Goal(); !active {
			return
		}
	}
	t.Fatal("goal never completed")
}

func TestAsyncMoveToCompletes(t *testing.T) {
	e, c := newTestBase(t)
	ctx := context.Background()

	require.NoError(t, c.MoveTo(ctx, 0.5, 0, 0, robot.FrameWorld, true))
	stepUntilIdle(t, e, c)

	pose, ok := e.BodyPose(0)
	require.True(t, ok)
	assert.InDelta(t, 0.5, pose.X, 1e-6)
	assert.InDelta(t, 0, pose.Y, 1e-6)
}

// Re-issuing an async goal mid-flight must retarget the single goal slot,
// never track two goals; the base ends at the second target.
func TestAsyncMoveToRetargets(t *testing.T) {
	e, c := newTestBase(t)
	ctx := context.Background()

	require.NoError(t, c.MoveTo(ctx, 1, 0, 0, robot.FrameWorld, true))
	for i := 0; i < 5; i++ {
		e.Step(0.05)
	}
	require.NoError(t, c.MoveTo(ctx, 0, 1, 0, robot.FrameWorld, true))

	x, y, theta, active := c.Goal()
	require.True(t, active)
	assert.Equal(t, [3]float64{0, 1, 0}, [3]float64{x, y, theta})

	stepUntilIdle(t, e, c)
	pose, _ := e.BodyPose(0)
	assert.InDelta(t, 0, pose.X, 1e-6)
	assert.InDelta(t, 1, pose.Y, 1e-6)
}

func TestSyncMoveToBlocks(t *testing.T) {
	mgr := NewSimulationManager(nil)
	s := mgr.Launch(500)
	defer mgr.Stop(s)

	m := NewBodyModel(s.Engine(), BodyDescription{Name: "base"})
	c := NewBaseController(s.Engine(), m.BodyID(),
		robot.DefaultLinearVelocity,
		robot.DefaultAngularVelocity,
		robot.DefaultLinearAcceleration,
		robot.DefaultAngularAcceleration)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, c.MoveTo(ctx, 0.05, 0, 0, robot.FrameWorld, false))

	pose, _ := s.Engine().BodyPose(m.BodyID())
	assert.InDelta(t, 0.05, pose.X, 1e-6)
	_, _, _, active := c.Goal()
	assert.False(t, active)
}

func TestSyncMoveToReleasedByContext(t *testing.T) {
	_, c := newTestBase(t)

	// Nothing steps the engine, so only the context ends the wait.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := c.MoveTo(ctx, 1, 0, 0, robot.FrameWorld, false)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMoveDropsActiveGoal(t *testing.T) {
	e, c := newTestBase(t)
	ctx := context.Background()

	require.NoError(t, c.MoveTo(ctx, 1, 0, 0, robot.FrameWorld, true))
	require.NoError(t, c.Move(0.1, 0, 0))

	_, _, _, active := c.Goal()
	assert.False(t, active, "latest call wins")

	for i := 0; i < 20; i++ {
		e.Step(0.05)
	}
	pose, _ := e.BodyPose(0)
	assert.InDelta(t, 0.1, pose.X, 1e-6, "open-loop velocity integrates")
}

func TestMoveToRobotFrame(t *testing.T) {
	e, c := newTestBase(t)
	e.SetBodyPose(0, Pose{X: 1, Y: 0, Theta: math.Pi / 2})

	require.NoError(t, c.MoveTo(context.Background(), 1, 0, 0, robot.FrameRobot, true))

	// One meter ahead of a base facing +Y.
	x, y, theta, active := c.Goal()
	require.True(t, active)
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)
	assert.InDelta(t, math.Pi/2, theta, 1e-9)
}

func TestVelocityRamp(t *testing.T) {
	e, c := newTestBase(t)

	require.NoError(t, c.MoveTo(context.Background(), 10, 0, 0, robot.FrameWorld, true))
	e.Step(0.1)

	// After one step the speed is at most accel*dt, far below cruise.
	pose, _ := e.BodyPose(0)
	assert.LessOrEqual(t, pose.X, robot.DefaultLinearAcceleration*0.1*0.1+1e-9)
}
