package robot

import (
	"context"
	"testing"
)

// testDescription is a trimmed gripper body: both hands, one wrist each,
// and a few digits, enough to exercise expansion and exclusion paths.
func testDescription() Description {
	return Description{
		BodyID: 7,
		Joints: []Joint{
			{Name: "HeadYaw", Index: 0, LowerLimit: -2.0, UpperLimit: 2.0, MaxVelocity: 7.0},
			{Name: "RHand", Index: 1, LowerLimit: 0, UpperLimit: 1, MaxVelocity: 6.28},
			{Name: "RFinger11", Index: 2, LowerLimit: 0, UpperLimit: 0.872665, MaxVelocity: 8.33},
			{Name: "RFinger12", Index: 3, LowerLimit: 0, UpperLimit: 0.872665, MaxVelocity: 8.33},
			{Name: "RThumb1", Index: 4, LowerLimit: 0, UpperLimit: 0.872665, MaxVelocity: 8.33},
			{Name: "LHand", Index: 5, LowerLimit: 0, UpperLimit: 1, MaxVelocity: 6.28},
			{Name: "LFinger11", Index: 6, LowerLimit: 0, UpperLimit: 0.872665, MaxVelocity: 8.33},
			{Name: "LThumb1", Index: 7, LowerLimit: 0, UpperLimit: 0.872665, MaxVelocity: 8.33},
		},
		Links: []Link{
			{Name: "torso", Index: 0},
			{Name: "r_wrist", Index: 1},
			{Name: "RFinger11_link", Index: 2},
			{Name: "RThumb1_link", Index: 3},
			{Name: "l_wrist", Index: 4},
			{Name: "LFinger11_link", Index: 5},
		},
	}
}

type write struct {
	names  []string
	values []float64
	speeds []float64
}

// fakeModel records writes and serves canned angles.
type fakeModel struct {
	desc    Description
	writes  []write
	angles  map[string]float64
	maxVels map[string]float64
}

func newFakeModel(desc Description) *fakeModel {
	return &fakeModel{
		desc:    desc,
		angles:  make(map[string]float64),
		maxVels: make(map[string]float64),
	}
}

func (m *fakeModel) LoadRobot(context.Context) (Description, error) {
	return m.desc, nil
}

func (m *fakeModel) SetAngles(_ context.Context, names []string, values, speeds []float64) error {
	m.writes = append(m.writes, write{names: names, values: values, speeds: speeds})
	for i, name := range names {
		m.angles[name] = values[i]
	}
	return nil
}

func (m *fakeModel) SetJointMaxVelocity(_ context.Context, name string, limit float64) error {
	m.maxVels[name] = limit
	return nil
}

func (m *fakeModel) AnglesPosition(_ context.Context, names []string) ([]float64, error) {
	positions := make([]float64, len(names))
	for i, name := range names {
		positions[i] = m.angles[name]
	}
	return positions, nil
}

// fakeEngine serves canned contacts and records filter pairs.
type fakeEngine struct {
	contacts    []ContactPoint
	filterPairs [][2]int
	contactErr  error
}

func (e *fakeEngine) SetCollisionFilterPair(_ context.Context, _, _, linkA, linkB int, enabled bool) error {
	if !enabled {
		e.filterPairs = append(e.filterPairs, [2]int{linkA, linkB})
	}
	return nil
}

func (e *fakeEngine) ContactPoints(_ context.Context, _, _, linkA, linkB int) ([]ContactPoint, error) {
	if e.contactErr != nil {
		return nil, e.contactErr
	}
	var out []ContactPoint
	for _, cp := range e.contacts {
		if linkA != AnyLink && cp.LinkA != linkA {
			continue
		}
		if linkB != AnyLink && cp.LinkB != linkB {
			continue
		}
		out = append(out, cp)
	}
	return out, nil
}

// fakeController records dispatched base commands.
type fakeController struct {
	speeds []float64
	goals  []goalCall
	moves  [][3]float64
}

type goalCall struct {
	x, y, theta float64
	frame       Frame
	async       bool
}

func (c *fakeController) SetLinearVelocity(speed float64) {
	c.speeds = append(c.speeds, speed)
}

func (c *fakeController) MoveTo(_ context.Context, x, y, theta float64, frame Frame, async bool) error {
	c.goals = append(c.goals, goalCall{x: x, y: y, theta: theta, frame: frame, async: async})
	return nil
}

func (c *fakeController) Move(x, y, theta float64) error {
	c.moves = append(c.moves, [3]float64{x, y, theta})
	return nil
}

// newTestGripper wires a loaded gripper over the fakes.
func newTestGripper(t *testing.T) (*Gripper, *fakeModel, *fakeEngine, *fakeController) {
	t.Helper()
	model := newFakeModel(testDescription())
	engine := &fakeEngine{}
	ctrl := &fakeController{}
	g := NewGripper(model, engine, ctrl)
	if err := g.LoadRobot(context.Background()); err != nil {
		t.Fatalf("LoadRobot: %v", err)
	}
	return g, model, engine, ctrl
}
