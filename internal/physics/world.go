package physics

import (
	"log"

	"skyring/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultIterations matches the quick-step iteration count the game ships with.
const DefaultIterations = 10

// World owns every rigid body and advances them in fixed steps.
type World struct {
	Gravity rl.Vector3

	// ERP is the fraction of penetration corrected per step.
	ERP float32
	// Slop is the penetration depth tolerated without correction.
	Slop float32

	iterations int
	bodies     []*Body
	nextID     uint64
}

// NewWorld creates a world whose solver runs the given number of iterations
// per step for its whole lifetime. Gravity defaults to zero.
func NewWorld(iterations int) *World {
	if iterations < 1 {
		log.Printf("Physics: iteration count %d too small, using 1", iterations)
		iterations = 1
	}
	return &World{
		ERP:        0.2,
		Slop:       0.005,
		iterations: iterations,
		bodies:     make([]*Body, 0),
	}
}

func (w *World) Iterations() int {
	return w.iterations
}

// CreateBody adds a unit-mass body at rest at the origin.
func (w *World) CreateBody() *Body {
	w.nextID++
	b := &Body{
		id:          w.nextID,
		Orientation: geom.Identity(),
		alive:       true,
	}
	b.SetMass(1, 1)
	w.bodies = append(w.bodies, b)
	return b
}

// DestroyBody removes b from the world. Destroying a body twice is a no-op.
func (w *World) DestroyBody(b *Body) {
	if b == nil || !b.alive {
		return
	}
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	b.alive = false
}

func (w *World) Bodies() []*Body {
	return w.bodies
}

func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Integrate advances every body by exactly dt, honoring the joints in cs for
// this step only, then empties cs. Unconverged contacts are left as they are
// after the fixed iteration budget.
func (w *World) Integrate(dt float32, cs *ContactSet) {
	if dt <= 0 {
		if cs != nil {
			cs.Empty()
		}
		return
	}

	for _, b := range w.bodies {
		if b.Kinematic {
			continue
		}
		if b.invMass > 0 {
			accel := geom.Add(w.Gravity, geom.Scale(b.force, b.invMass))
			b.LinearVel = geom.Add(b.LinearVel, geom.Scale(accel, dt))
		}
		if b.invInertia > 0 {
			b.AngularVel = geom.Add(b.AngularVel, geom.Scale(b.torque, b.invInertia*dt))
		}
	}

	if cs != nil && cs.Len() > 0 {
		w.solve(dt, cs.joints)
	}

	for _, b := range w.bodies {
		b.Position = geom.Add(b.Position, geom.Scale(b.LinearVel, dt))
		b.Orientation = geom.IntegrateRotation(b.Orientation, b.AngularVel, dt)
		b.clearAccumulators()
	}

	if cs != nil {
		cs.Empty()
	}
}
