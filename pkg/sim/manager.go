package sim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/LeslieMarande/qibullet/pkg/robot"
)

// Simulation is one running world instance.
type Simulation struct {
	engine *Engine
	hz     int
	stop   chan struct{}
	done   chan struct{}
}

// Engine returns the world handle of this instance.
func (s *Simulation) Engine() *Engine {
	return s.engine
}

// Step advances the world manually by dt seconds. Only meaningful for
// instances launched without a background loop.
func (s *Simulation) Step(dt float64) {
	s.engine.Step(dt)
}

// SimulationManager handles the lifecycle of simulation instances.
type SimulationManager struct {
	log *zap.Logger
}

// NewSimulationManager creates a manager. A nil logger disables logging.
func NewSimulationManager(log *zap.Logger) *SimulationManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SimulationManager{log: log}
}

// Launch starts a simulation instance. With hz > 0 a background loop steps
// the world at that frequency until Stop; with hz <= 0 the caller steps
// manually.
func (m *SimulationManager) Launch(hz int) *Simulation {
	s := &Simulation{
		engine: NewEngine(),
		hz:     hz,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if hz > 0 {
		go m.run(s)
	} else {
		close(s.done)
	}
	m.log.Info("simulation launched", zap.Int("hz", hz))
	return s
}

func (m *SimulationManager) run(s *Simulation) {
	defer close(s.done)
	ticker := time.NewTicker(time.Second / time.Duration(s.hz))
	defer ticker.Stop()
	dt := 1.0 / float64(s.hz)
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.engine.Step(dt)
		}
	}
}

// Reset destroys everything loaded in the instance; the instance keeps
// running.
func (m *SimulationManager) Reset(s *Simulation) {
	s.engine.Reset()
	m.log.Info("simulation reset")
}

// Stop terminates the instance and waits for its stepping loop to exit.
func (m *SimulationManager) Stop(s *Simulation) {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	<-s.done
	m.log.Info("simulation stopped")
}

// SpawnGripper loads a Pepper gripper assembly into the instance and
// returns its loaded control overlay.
func (m *SimulationManager) SpawnGripper(ctx context.Context, s *Simulation) (*robot.Gripper, error) {
	desc, err := PepperGripperDescription()
	if err != nil {
		return nil, fmt.Errorf("gripper description: %w", err)
	}

	model := NewBodyModel(s.engine, desc)
	ctrl := NewBaseController(
		s.engine,
		model.BodyID(),
		robot.DefaultLinearVelocity,
		robot.DefaultAngularVelocity,
		robot.DefaultLinearAcceleration,
		robot.DefaultAngularAcceleration,
	)

	gripper := robot.NewGripper(model, s.engine, ctrl)
	if err := gripper.LoadRobot(ctx); err != nil {
		return nil, err
	}
	m.log.Info("gripper spawned",
		zap.Int("body", model.BodyID()),
		zap.Int("joints", len(desc.Joints)),
		zap.Int("links", len(desc.Links)))
	return gripper, nil
}
