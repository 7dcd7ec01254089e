package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/LeslieMarande/qibullet/pkg/robot"
	"github.com/LeslieMarande/qibullet/pkg/sim"
)

type DemoCommand struct {
	Hz       int     `long:"hz" default:"240" description:"Simulation step frequency"`
	Openness float64 `long:"openness" default:"0.5" description:"Hand openness command in [0, 1]"`
}

func (c *DemoCommand) Execute(args []string) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	mgr := sim.NewSimulationManager(logger)
	s := mgr.Launch(c.Hz)
	defer mgr.Stop(s)

	gripper, err := mgr.SpawnGripper(ctx, s)
	if err != nil {
		return err
	}

	// Close both hands through the composite actuators and let the fingers
	// servo in.
	err = gripper.SetAngles(ctx,
		[]string{robot.RHand, robot.LHand},
		[]float64{c.Openness, c.Openness},
		[]float64{1.0})
	if err != nil {
		return err
	}
	time.Sleep(500 * time.Millisecond)

	positions, err := gripper.AnglesPosition(ctx, []string{robot.RHand, robot.LHand})
	if err != nil {
		return err
	}
	logger.Info("hand positions",
		zap.Float64("commanded", c.Openness),
		zap.Float64("rhand", positions[0]),
		zap.Float64("lhand", positions[1]))

	logger.Info("self collision",
		zap.Bool("r_wrist", gripper.IsSelfColliding(ctx, robot.RightWrist)),
		zap.Bool("l_wrist", gripper.IsSelfColliding(ctx, robot.LeftWrist)))

	// Async goal, retargeted mid-flight, then a blocking return to origin.
	err = gripper.MoveTo(ctx, robot.MotionCommand{
		X: 1, Frame: robot.FrameWorld, Mode: robot.Async,
	})
	if err != nil {
		return err
	}
	time.Sleep(300 * time.Millisecond)
	err = gripper.MoveTo(ctx, robot.MotionCommand{
		Y: 1, Frame: robot.FrameWorld, Mode: robot.Async,
	})
	if err != nil {
		return err
	}
	logger.Info("goal retargeted", zap.Float64("x", 0), zap.Float64("y", 1))

	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	err = gripper.MoveTo(waitCtx, robot.MotionCommand{
		Frame: robot.FrameWorld, Speed: 0.35, Mode: robot.Sync,
	})
	if err != nil {
		return err
	}
	logger.Info("returned to origin")
	return nil
}
