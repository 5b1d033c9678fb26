package engine

import (
	"sync/atomic"

	"skyring/internal/collision"
	"skyring/internal/geom"
	"skyring/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Default damping coefficients, per second.
const (
	DefaultVelDamp = 0.15
	DefaultAngDamp = 0.15
)

var nextUID atomic.Uint64

// Appearance describes how an object is drawn. Mesh names a catalog entry;
// the remaining fields are resolved from it at spawn time.
type Appearance struct {
	Mesh      string
	Primitive string
	Model     string
	Size      rl.Vector3
	Color     rl.Color
}

// Radius is a rough bounding radius used for billboards.
func (a *Appearance) Radius() float32 {
	return geom.Length(a.Size) / 2
}

// GameObject is the shared state of every object kind. Kinds embed it and
// override the parts of Object they need.
type GameObject struct {
	UID  uint64
	Name string
	Kind string

	Position    rl.Vector3
	Orientation rl.Quaternion
	LinearVel   rl.Vector3
	AngularVel  rl.Vector3

	// Body is nil for visual-only objects. It is never shared.
	Body *physics.Body
	Geom *collision.Geom

	Look    Appearance
	VelDamp float32
	AngDamp float32
}

func NewGameObject(name, kind string) *GameObject {
	return &GameObject{
		UID:         nextUID.Add(1),
		Name:        name,
		Kind:        kind,
		Orientation: geom.Identity(),
		VelDamp:     DefaultVelDamp,
		AngDamp:     DefaultAngDamp,
	}
}

func (g *GameObject) Base() *GameObject { return g }

// SyncFromPhysics copies the body's state into the object.
func (g *GameObject) SyncFromPhysics() {
	if g.Body == nil {
		return
	}
	g.Position = g.Body.Position
	g.Orientation = g.Body.Orientation
	g.LinearVel = g.Body.LinearVel
	g.AngularVel = g.Body.AngularVel
}

func (g *GameObject) Step(ctx *StepContext) {}

// Damp attenuates body velocities exponentially, approximating drag.
func (g *GameObject) Damp(ctx *StepContext) {
	if g.Body == nil || g.Body.Kinematic || ctx == nil {
		return
	}
	lin := math32.Exp(-g.VelDamp * ctx.DT)
	ang := math32.Exp(-g.AngDamp * ctx.DT)
	g.Body.LinearVel = geom.Scale(g.Body.LinearVel, lin)
	g.Body.AngularVel = geom.Scale(g.Body.AngularVel, ang)
	g.LinearVel = g.Body.LinearVel
	g.AngularVel = g.Body.AngularVel
}

func (g *GameObject) Draw(d Drawer) {
	d.DrawMesh(&g.Look, g.Position, g.Orientation)
}

func (g *GameObject) DistDraw(d Drawer) {
	d.DrawBillboard(g.Position, 2*g.Look.Radius(), g.Look.Color)
}
