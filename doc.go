// Package qibullet provides a kinematic control overlay for a simulated
// Pepper gripper and base assembly.
//
// The overlay sits between callers and an articulated-body backend: a single
// logical hand command fans out to the hand's finger and thumb joints, joint
// state queries fold the fingers back into one reported hand position, named
// links can be tested for self-collision, and frame-relative base motion runs
// either blocking or retargetable non-blocking.
//
// # Usage
//
// Launch a simulation and spawn a gripper:
//
//	mgr := sim.NewSimulationManager(logger)
//	s := mgr.Launch(240)
//	defer mgr.Stop(s)
//	gripper, _ := mgr.SpawnGripper(ctx, s)
//	gripper.SetAngle(ctx, "RHand", 0.5, 1.0)
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/qibullet: CLI with demo and teleoperate commands
//   - pkg/robot: gripper overlay, actuator registry, base motion dispatch
//   - pkg/sim: software physics backend and simulation lifecycle
//   - pkg/hardware: feetech servo rig mirroring a physical gripper
//   - pkg/teleop: teleoperation controller (hardware leader, simulated follower)
package qibullet
