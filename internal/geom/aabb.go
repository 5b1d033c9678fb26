package geom

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{Min: Sub(center, half), Max: Add(center, half)}
}

// NewAABBFromSphere bounds a sphere.
func NewAABBFromSphere(center rl.Vector3, radius float32) AABB {
	r := rl.Vector3{X: radius, Y: radius, Z: radius}
	return AABB{Min: Sub(center, r), Max: Add(center, r)}
}

// NewAABBFromBox bounds an oriented box given its full size.
func NewAABBFromBox(center, size rl.Vector3, rot rl.Quaternion) AABB {
	ax := VecToWorld(rot, rl.Vector3{X: size.X / 2})
	ay := VecToWorld(rot, rl.Vector3{Y: size.Y / 2})
	az := VecToWorld(rot, rl.Vector3{Z: size.Z / 2})
	ext := rl.Vector3{
		X: abs(ax.X) + abs(ay.X) + abs(az.X),
		Y: abs(ax.Y) + abs(ay.Y) + abs(az.Y),
		Z: abs(ax.Z) + abs(ay.Z) + abs(az.Z),
	}
	return AABB{Min: Sub(center, ext), Max: Add(center, ext)}
}

func (a AABB) Center() rl.Vector3 {
	return Scale(Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return Sub(a.Max, a.Min)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Resolve returns the minimum translation vector to push 'a' out of 'b'.
// Returns zero vector if no overlap.
func (a AABB) Resolve(b AABB) rl.Vector3 {
	if !a.Intersects(b) {
		return rl.Vector3{}
	}

	best := b.Max.X - a.Min.X
	result := rl.Vector3{X: best}
	try := func(depth float32, v rl.Vector3) {
		if depth < best {
			best = depth
			result = v
		}
	}
	try(a.Max.X-b.Min.X, rl.Vector3{X: -(a.Max.X - b.Min.X)})
	try(b.Max.Y-a.Min.Y, rl.Vector3{Y: b.Max.Y - a.Min.Y})
	try(a.Max.Y-b.Min.Y, rl.Vector3{Y: -(a.Max.Y - b.Min.Y)})
	try(b.Max.Z-a.Min.Z, rl.Vector3{Z: b.Max.Z - a.Min.Z})
	try(a.Max.Z-b.Min.Z, rl.Vector3{Z: -(a.Max.Z - b.Min.Z)})
	return result
}

// ClosestPoint clamps p into the box.
func (a AABB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: Clamp(p.X, a.Min.X, a.Max.X),
		Y: Clamp(p.Y, a.Min.Y, a.Max.Y),
		Z: Clamp(p.Z, a.Min.Z, a.Max.Z),
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
