// Package teleop provides teleoperation of the simulated gripper from a
// physical leader rig.
package teleop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LeslieMarande/qibullet/pkg/robot"
)

// Leader is the input side of the loop: a passive rig whose joint angles
// are sampled every tick. *hardware.Rig satisfies it.
type Leader interface {
	ReadAngles(ctx context.Context) (map[string]float64, error)
	Disable(ctx context.Context) error
	Close() error
}

// State represents the current state of teleoperation.
type State struct {
	Hand      float64 // reported hand position of the simulated gripper
	Target    float64 // hand openness read from the leader
	Timestamp time.Time
	Error     error
}

// Config holds configuration for the controller.
type Config struct {
	Leader  Leader
	Gripper *robot.Gripper
	Hand    string // composite actuator to drive, RHand by default
	Hz      int
}

// Controller manages the teleoperation control loop: each tick the leader's
// hand joint is sampled and forwarded to the simulated gripper's composite
// hand actuator.
type Controller struct {
	leader  Leader
	gripper *robot.Gripper
	hand    string
	hz      int

	mu      sync.RWMutex
	running bool
	stateCh chan State
	logCh   chan string
}

// NewController creates a new teleoperation controller.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Leader == nil || cfg.Gripper == nil {
		return nil, fmt.Errorf("teleop: leader and gripper are required")
	}
	if cfg.Hand == "" {
		cfg.Hand = robot.RHand
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	return &Controller{
		leader:  cfg.Leader,
		gripper: cfg.Gripper,
		hand:    cfg.Hand,
		hz:      cfg.Hz,
		stateCh: make(chan State, 1),
		logCh:   make(chan string, 10),
	}, nil
}

// Close closes the controller and releases the leader rig.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
	return c.leader.Close()
}

// States returns a channel that receives state updates.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// Hz returns the control frequency.
func (c *Controller) Hz() int {
	return c.hz
}

// Drive applies an open-loop base velocity on the simulated gripper. Used
// by the TUI's key bindings alongside the hand loop.
func (c *Controller) Drive(x, y, theta float64) {
	if err := c.gripper.Move(x, y, theta); err != nil {
		c.log("Drive error: %v", err)
	}
}

func (c *Controller) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Start begins the teleoperation control loop.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("already running")
	}
	c.running = true
	c.mu.Unlock()

	if err := c.leader.Disable(ctx); err != nil {
		c.log("Warning: failed to disable leader: %v", err)
	} else {
		c.log("Leader rig: torque disabled (passive mode)")
	}

	c.log("Teleoperation started at %d Hz, driving %s", c.hz, c.hand)

	ticker := time.NewTicker(time.Second / time.Duration(c.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return ctx.Err()
		case <-ticker.C:
			c.step(ctx)
		}
	}
}

func (c *Controller) step(ctx context.Context) {
	angles, err := c.leader.ReadAngles(ctx)
	if err != nil {
		c.log("Read error: %v", err)
		c.sendState(State{Error: err, Timestamp: time.Now()})
		return
	}

	target, ok := angles[c.hand]
	if !ok {
		c.log("Leader reports no %s joint", c.hand)
		return
	}

	if err := c.gripper.SetAngle(ctx, c.hand, target, 1.0); err != nil {
		c.log("Write error: %v", err)
	}

	hand, err := c.gripper.AnglePosition(ctx, c.hand)
	if err != nil {
		c.log("Readback error: %v", err)
	}

	c.sendState(State{
		Hand:      hand,
		Target:    target,
		Timestamp: time.Now(),
	})
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		c.stateCh <- s
	}
}

func (c *Controller) shutdown() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
	c.log("Teleoperation stopped")
}
