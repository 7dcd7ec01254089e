package robot

import "fmt"

// Registry holds the named joints and links of a loaded body. It is built
// once at load time and read-mostly afterwards; the only post-load mutation
// is the hand velocity propagation, which happens before the registry is
// handed to callers.
type Registry struct {
	joints     map[string]*Joint
	links      map[string]*Link
	jointOrder []string
	linkOrder  []string
}

// NewRegistry indexes the joints and links of a body description, keeping
// model order for deterministic iteration.
func NewRegistry(d Description) *Registry {
	r := &Registry{
		joints: make(map[string]*Joint, len(d.Joints)),
		links:  make(map[string]*Link, len(d.Links)),
	}
	for i := range d.Joints {
		j := d.Joints[i]
		r.joints[j.Name] = &j
		r.jointOrder = append(r.jointOrder, j.Name)
	}
	for i := range d.Links {
		l := d.Links[i]
		r.links[l.Name] = &l
		r.linkOrder = append(r.linkOrder, l.Name)
	}
	return r
}

// Joint looks up a joint by name.
func (r *Registry) Joint(name string) (*Joint, error) {
	j, ok := r.joints[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrJointNotFound, name)
	}
	return j, nil
}

// Link looks up a link by name.
func (r *Registry) Link(name string) (*Link, error) {
	l, ok := r.links[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLinkNotFound, name)
	}
	return l, nil
}

// JointNames returns all joint names in model order.
func (r *Registry) JointNames() []string {
	return r.jointOrder
}

// CollisionExclusions returns the link index pairs that must be exempted
// from self-collision: each wrist against the fingers and thumbs bonded to
// it. A wrist absent from the model contributes no pairs.
func (r *Registry) CollisionExclusions() [][2]int {
	var pairs [][2]int
	for _, wrist := range []string{RightWrist, LeftWrist} {
		w, ok := r.links[wrist]
		if !ok {
			continue
		}
		for _, name := range r.linkOrder {
			if isWristDigit(wrist, name) {
				pairs = append(pairs, [2]int{w.Index, r.links[name].Index})
			}
		}
	}
	return pairs
}

// PropagateHandLimits lowers every finger and thumb joint's max velocity to
// its controlling hand's ceiling, returning the propagated ceilings by
// joint name. A hand absent from the model is skipped.
func (r *Registry) PropagateHandLimits() map[string]float64 {
	propagated := make(map[string]float64)
	for _, hand := range Hands() {
		h, ok := r.joints[hand]
		if !ok {
			continue
		}
		for _, name := range r.jointOrder {
			if isDigitOf(hand, name) {
				r.joints[name].MaxVelocity = h.MaxVelocity
				propagated[name] = h.MaxVelocity
			}
		}
	}
	return propagated
}
