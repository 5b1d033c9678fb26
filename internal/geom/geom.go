// Package geom holds the small vector and rotation helpers shared by the
// simulation, camera and renderer.
package geom

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Angles in the catalog and sky settings are expressed in revolutions.
const (
	Rev2Rad = 2 * math32.Pi
	Rad2Rev = 1 / Rev2Rad
	Rev2Deg = 360.0
	Deg2Rev = 1 / Rev2Deg
)

// Up is the world up axis.
var Up = rl.Vector3{X: 0, Y: 1, Z: 0}

func Dist(a, b rl.Vector3) float32 {
	return math32.Sqrt(DistSq(a, b))
}

func DistSq(a, b rl.Vector3) float32 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return dx*dx + dy*dy + dz*dz
}

func Length(v rl.Vector3) float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func Scale(v rl.Vector3, s float32) rl.Vector3 {
	return rl.Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func Add(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

func Sub(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func Dot(a, b rl.Vector3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func Cross(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Normalize returns v scaled to unit length, or the zero vector when v is
// degenerate.
func Normalize(v rl.Vector3) rl.Vector3 {
	l := Length(v)
	if l < 1e-9 {
		return rl.Vector3{}
	}
	return Scale(v, 1/l)
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
