package sim

import (
	"context"
	"fmt"

	"github.com/LeslieMarande/qibullet/pkg/robot"
)

// BodyModel binds one engine body to the robot.Model contract. The body is
// registered at construction so its id is known before the overlay loads;
// LoadRobot zeroes the joint states and reports the description.
type BodyModel struct {
	engine *Engine
	desc   BodyDescription
	id     int
}

// NewBodyModel instantiates a body from its description and returns the
// model bound to it.
func NewBodyModel(e *Engine, desc BodyDescription) *BodyModel {
	b := &simBody{
		joints:   make(map[string]*jointState, len(desc.Joints)),
		links:    make(map[int]*linkState, len(desc.Links)),
		filtered: make(map[[2]int]bool),
	}
	for i, jd := range desc.Joints {
		b.joints[jd.Name] = &jointState{spec: robot.Joint{
			Name:        jd.Name,
			Index:       i,
			LowerLimit:  jd.LowerLimit,
			UpperLimit:  jd.UpperLimit,
			MaxVelocity: jd.MaxVelocity,
		}}
		b.order = append(b.order, jd.Name)
	}
	for i, ld := range desc.Links {
		b.links[i] = &linkState{
			spec:   robot.Link{Name: ld.Name, Index: i},
			center: ld.Center,
			radius: ld.Radius,
		}
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.bodies[id] = b
	e.mu.Unlock()

	return &BodyModel{engine: e, desc: desc, id: id}
}

// BodyID returns the engine id of the bound body.
func (m *BodyModel) BodyID() int {
	return m.id
}

// LoadRobot resets every joint to zero and describes the body.
func (m *BodyModel) LoadRobot(_ context.Context) (robot.Description, error) {
	m.engine.mu.Lock()
	b, ok := m.engine.bodies[m.id]
	if !ok {
		m.engine.mu.Unlock()
		return robot.Description{}, fmt.Errorf("body %d not loaded", m.id)
	}
	desc := robot.Description{BodyID: m.id}
	for _, name := range b.order {
		j := b.joints[name]
		j.angle = 0
		j.target = 0
		j.speed = 0
		desc.Joints = append(desc.Joints, j.spec)
	}
	for i := 0; i < len(b.links); i++ {
		desc.Links = append(desc.Links, b.links[i].spec)
	}
	m.engine.mu.Unlock()
	return desc, nil
}

// SetAngles writes joint targets. Values clamp to the joint limits, speeds
// clamp to (0, 1] as fractions of max velocity.
func (m *BodyModel) SetAngles(_ context.Context, names []string, values, speeds []float64) error {
	m.engine.mu.Lock()
	defer m.engine.mu.Unlock()
	b, ok := m.engine.bodies[m.id]
	if !ok {
		return fmt.Errorf("body %d not loaded", m.id)
	}
	for i, name := range names {
		j, ok := b.joints[name]
		if !ok {
			return fmt.Errorf("body %d: unknown joint %q", m.id, name)
		}
		j.target = clampRange(values[i], j.spec.LowerLimit, j.spec.UpperLimit)
		j.speed = clampRange(speeds[i], 0, 1)
		if j.speed == 0 {
			j.speed = 1
		}
	}
	return nil
}

// SetJointMaxVelocity lowers the ceiling used when servoing a joint.
func (m *BodyModel) SetJointMaxVelocity(_ context.Context, name string, limit float64) error {
	m.engine.mu.Lock()
	defer m.engine.mu.Unlock()
	b, ok := m.engine.bodies[m.id]
	if !ok {
		return fmt.Errorf("body %d not loaded", m.id)
	}
	j, ok := b.joints[name]
	if !ok {
		return fmt.Errorf("body %d: unknown joint %q", m.id, name)
	}
	j.spec.MaxVelocity = limit
	return nil
}

// AnglesPosition reads the current joint angles, in input order.
func (m *BodyModel) AnglesPosition(_ context.Context, names []string) ([]float64, error) {
	m.engine.mu.Lock()
	defer m.engine.mu.Unlock()
	b, ok := m.engine.bodies[m.id]
	if !ok {
		return nil, fmt.Errorf("body %d not loaded", m.id)
	}
	positions := make([]float64, len(names))
	for i, name := range names {
		j, ok := b.joints[name]
		if !ok {
			return nil, fmt.Errorf("body %d: unknown joint %q", m.id, name)
		}
		positions[i] = j.angle
	}
	return positions, nil
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
