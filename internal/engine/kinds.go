package engine

import (
	"errors"
	"fmt"
	"sort"

	"skyring/internal/collision"
	"skyring/internal/geom"
	"skyring/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrUnknownKind = errors.New("unknown object kind")

// Sim is the pair of simulation services objects attach bodies and geoms to.
type Sim struct {
	Physics   *physics.World
	Collision *collision.Broadphase
	VelDamp   float32
	AngDamp   float32
}

// NewSim pairs p and c with the default damping coefficients.
func NewSim(p *physics.World, c *collision.Broadphase) *Sim {
	return &Sim{Physics: p, Collision: c, VelDamp: DefaultVelDamp, AngDamp: DefaultAngDamp}
}

// Spawn is a fully resolved template entry.
type Spawn struct {
	Kind     string
	Name     string
	Position rl.Vector3
	Rotation rl.Vector3 // degrees
	Look     Appearance

	Shape    string // "sphere", "box" or "" for none
	Mass     float32
	Bounce   float32
	Friction float32
	// Kinematic bodies keep their velocity through contacts and damping.
	Kinematic bool

	Props map[string]float64
}

func (s Spawn) Prop(name string, fallback float32) float32 {
	if v, ok := s.Props[name]; ok {
		return float32(v)
	}
	return fallback
}

// Factory builds an object of one kind and attaches it to sim.
type Factory func(s Spawn, sim *Sim) (Object, error)

var kindRegistry = map[string]Factory{}

// RegisterKind registers a factory under name. Registering a name twice panics.
func RegisterKind(name string, f Factory) {
	if _, exists := kindRegistry[name]; exists {
		panic(fmt.Sprintf("object kind %q already registered", name))
	}
	kindRegistry[name] = f
}

// NewObject builds the object described by s.
func NewObject(s Spawn, sim *Sim) (Object, error) {
	f, ok := kindRegistry[s.Kind]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", s.Name, s.Kind, ErrUnknownKind)
	}
	return f(s, sim)
}

// Kinds returns the registered kind names in sorted order.
func Kinds() []string {
	names := make([]string, 0, len(kindRegistry))
	for name := range kindRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBase creates the GameObject for s at its template pose.
func (s Spawn) NewBase() *GameObject {
	g := NewGameObject(s.Name, s.Kind)
	g.Position = s.Position
	g.Orientation = geom.FromEulerDeg(s.Rotation)
	g.Look = s.Look
	return g
}

func (sim *Sim) newGeom(s Spawn) *collision.Geom {
	switch s.Shape {
	case "sphere":
		r := s.Look.Radius()
		if s.Look.Primitive == "sphere" {
			r = s.Look.Size.X / 2
		}
		return sim.Collision.NewSphere(r)
	case "box":
		return sim.Collision.NewBox(s.Look.Size)
	}
	return nil
}

// AttachStatic gives g world-fixed collision geometry and no body.
func (sim *Sim) AttachStatic(g *GameObject, s Spawn) {
	geo := sim.newGeom(s)
	if geo == nil {
		return
	}
	geo.Position = g.Position
	geo.Orientation = g.Orientation
	geo.Bounce = s.Bounce
	geo.Friction = s.Friction
	geo.Owner = g
	g.Geom = geo
	sim.Collision.AddStatic(geo)
}

// AttachDynamic gives g a body of its own and, if the spawn has a shape, a
// geom in the dynamic space.
func (sim *Sim) AttachDynamic(g *GameObject, s Spawn) error {
	b := sim.Physics.CreateBody()
	b.Position = g.Position
	b.Orientation = g.Orientation
	b.SetMass(s.Mass, s.Look.Radius())
	b.Kinematic = s.Kinematic
	g.Body = b
	g.VelDamp = sim.VelDamp
	g.AngDamp = sim.AngDamp

	geo := sim.newGeom(s)
	if geo == nil {
		return nil
	}
	geo.Body = b
	geo.Bounce = s.Bounce
	geo.Friction = s.Friction
	geo.Owner = g
	if err := sim.Collision.AddDynamic(geo); err != nil {
		sim.Physics.DestroyBody(b)
		g.Body = nil
		return fmt.Errorf("attach %s: %w", g.Name, err)
	}
	g.Geom = geo
	return nil
}

// Detach destroys g's body and removes its geom.
func (sim *Sim) Detach(g *GameObject) {
	if g.Geom != nil {
		sim.Collision.Remove(g.Geom)
		g.Geom = nil
	}
	if g.Body != nil {
		sim.Physics.DestroyBody(g.Body)
		g.Body = nil
	}
}
