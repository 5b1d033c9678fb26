package collision

import (
	"skyring/internal/geom"
	"skyring/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	}
	return "unknown"
}

// Geom is a collision shape registered in exactly one space. Geoms in the
// dynamic space follow their Body; static geoms use Position and
// Orientation directly.
type Geom struct {
	id   uint64
	Kind ShapeKind

	Radius float32    // sphere
	Size   rl.Vector3 // box, full extents

	Body        *physics.Body
	Position    rl.Vector3
	Orientation rl.Quaternion

	Bounce   float32
	Friction float32

	// Owner is the game object this geom belongs to.
	Owner any

	space *Space
}

func (g *Geom) ID() uint64 { return g.id }

// Space returns the space holding g, or nil once removed.
func (g *Geom) Space() *Space { return g.space }

func (g *Geom) Pos() rl.Vector3 {
	if g.Body != nil {
		return g.Body.Position
	}
	return g.Position
}

func (g *Geom) Rot() rl.Quaternion {
	if g.Body != nil {
		return g.Body.Orientation
	}
	return g.Orientation
}

func (g *Geom) Bounds() geom.AABB {
	if g.Kind == ShapeSphere {
		return geom.NewAABBFromSphere(g.Pos(), g.Radius)
	}
	return geom.NewAABBFromBox(g.Pos(), g.Size, g.Rot())
}
