package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// ContactJoint is a single-step constraint between two bodies. B is nil when
// the contact is against world-fixed geometry. Normal points from B toward A.
type ContactJoint struct {
	A, B     *Body
	Normal   rl.Vector3
	Point    rl.Vector3
	Depth    float32
	Bounce   float32
	Friction float32

	// solver scratch
	rA, rB    rl.Vector3
	massN     float32
	bias      float32
	accumN    float32
	accumT    float32
	targetVel float32
}

// ContactSet is the transient joint group built by the collision pass and
// consumed by exactly one Integrate call.
type ContactSet struct {
	joints []ContactJoint
}

func NewContactSet() *ContactSet {
	return &ContactSet{joints: make([]ContactJoint, 0, 64)}
}

func (cs *ContactSet) Add(j ContactJoint) {
	cs.joints = append(cs.joints, j)
}

func (cs *ContactSet) Len() int {
	return len(cs.joints)
}

// Joints exposes the current joints read-only by convention.
func (cs *ContactSet) Joints() []ContactJoint {
	return cs.joints
}

// Empty drops every joint but keeps the backing storage.
func (cs *ContactSet) Empty() {
	cs.joints = cs.joints[:0]
}
