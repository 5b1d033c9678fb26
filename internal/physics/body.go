package physics

import (
	"skyring/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Body is the rigid-body state owned by the physics world. Exactly one game
// object owns a body; the world destroys it when that object goes away.
type Body struct {
	id uint64

	Position    rl.Vector3
	Orientation rl.Quaternion
	LinearVel   rl.Vector3
	AngularVel  rl.Vector3 // world frame, rad/s

	Mass       float32
	invMass    float32
	invInertia float32

	// Kinematic bodies move with their velocity but ignore forces and
	// contact impulses.
	Kinematic bool

	force  rl.Vector3
	torque rl.Vector3

	alive bool
}

func (b *Body) ID() uint64 { return b.id }

// Alive reports whether the body still belongs to a world.
func (b *Body) Alive() bool { return b.alive }

// SetMass sets the mass and an isotropic inertia derived from radius
// (solid sphere approximation). Zero or negative mass makes the body
// immovable by contacts.
func (b *Body) SetMass(mass, radius float32) {
	b.Mass = mass
	if mass <= 0 {
		b.invMass = 0
		b.invInertia = 0
		return
	}
	b.invMass = 1 / mass
	if radius <= 0 {
		radius = 1
	}
	b.invInertia = 1 / (0.4 * mass * radius * radius)
}

func (b *Body) InvMass() float32 {
	if b.Kinematic {
		return 0
	}
	return b.invMass
}

func (b *Body) invI() float32 {
	if b.Kinematic {
		return 0
	}
	return b.invInertia
}

// AddForce accumulates a world-frame force for the next integration.
func (b *Body) AddForce(f rl.Vector3) {
	b.force = geom.Add(b.force, f)
}

// AddRelForce accumulates a body-frame force.
func (b *Body) AddRelForce(f rl.Vector3) {
	b.AddForce(geom.VecToWorld(b.Orientation, f))
}

func (b *Body) AddTorque(t rl.Vector3) {
	b.torque = geom.Add(b.torque, t)
}

// AddRelTorque accumulates a body-frame torque.
func (b *Body) AddRelTorque(t rl.Vector3) {
	b.AddTorque(geom.VecToWorld(b.Orientation, t))
}

// Force returns the accumulated force, mainly for tests and telemetry.
func (b *Body) Force() rl.Vector3 { return b.force }

func (b *Body) Torque() rl.Vector3 { return b.torque }

func (b *Body) clearAccumulators() {
	b.force = rl.Vector3{}
	b.torque = rl.Vector3{}
}

// velocityAt returns the velocity of the body point at world offset r from
// the center of mass.
func (b *Body) velocityAt(r rl.Vector3) rl.Vector3 {
	return geom.Add(b.LinearVel, geom.Cross(b.AngularVel, r))
}

func (b *Body) applyImpulse(p, r rl.Vector3) {
	b.LinearVel = geom.Add(b.LinearVel, geom.Scale(p, b.InvMass()))
	b.AngularVel = geom.Add(b.AngularVel, geom.Scale(geom.Cross(r, p), b.invI()))
}
