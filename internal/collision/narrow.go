package collision

import (
	"skyring/internal/geom"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type contact struct {
	normal rl.Vector3 // from b toward a
	point  rl.Vector3
	depth  float32
}

func narrow(a, b *Geom) (contact, bool) {
	switch {
	case a.Kind == ShapeSphere && b.Kind == ShapeSphere:
		return sphereSphere(a, b)
	case a.Kind == ShapeSphere && b.Kind == ShapeBox:
		return sphereBox(a, b)
	case a.Kind == ShapeBox && b.Kind == ShapeSphere:
		c, ok := sphereBox(b, a)
		c.normal = geom.Scale(c.normal, -1)
		return c, ok
	default:
		return boxBox(a, b)
	}
}

func sphereSphere(a, b *Geom) (contact, bool) {
	pa, pb := a.Pos(), b.Pos()
	d := geom.Sub(pa, pb)
	dist := geom.Length(d)
	sum := a.Radius + b.Radius
	if dist >= sum {
		return contact{}, false
	}
	n := geom.Up
	if dist > 1e-6 {
		n = geom.Scale(d, 1/dist)
	}
	return contact{
		normal: n,
		point:  geom.Add(pb, geom.Scale(n, b.Radius-(sum-dist)/2)),
		depth:  sum - dist,
	}, true
}

// sphereBox tests sphere s against oriented box b; the normal points from
// the box toward the sphere.
func sphereBox(s, b *Geom) (contact, bool) {
	rot := b.Rot()
	center := b.Pos()
	local := geom.VecToLocal(rot, geom.Sub(s.Pos(), center))
	half := geom.Scale(b.Size, 0.5)
	box := geom.AABB{Min: geom.Scale(half, -1), Max: half}
	closest := box.ClosestPoint(local)
	diff := geom.Sub(local, closest)
	distSq := geom.Dot(diff, diff)
	if distSq >= s.Radius*s.Radius {
		return contact{}, false
	}

	var nLocal rl.Vector3
	var depth float32
	if distSq > 1e-12 {
		dist := math32.Sqrt(distSq)
		nLocal = geom.Scale(diff, 1/dist)
		depth = s.Radius - dist
	} else {
		// center inside the box: leave through the nearest face
		dx := half.X - math32.Abs(local.X)
		dy := half.Y - math32.Abs(local.Y)
		dz := half.Z - math32.Abs(local.Z)
		switch {
		case dx <= dy && dx <= dz:
			nLocal = rl.Vector3{X: sign(local.X)}
			depth = dx + s.Radius
		case dy <= dz:
			nLocal = rl.Vector3{Y: sign(local.Y)}
			depth = dy + s.Radius
		default:
			nLocal = rl.Vector3{Z: sign(local.Z)}
			depth = dz + s.Radius
		}
	}
	return contact{
		normal: geom.VecToWorld(rot, nLocal),
		point:  geom.RelPoint(center, rot, closest),
		depth:  depth,
	}, true
}

// boxBox works on world bounding boxes, so rotated boxes collide as their
// enclosing axis-aligned volume.
func boxBox(a, b *Geom) (contact, bool) {
	ba, bb := a.Bounds(), b.Bounds()
	mtv := ba.Resolve(bb)
	depth := geom.Length(mtv)
	if depth < 1e-6 {
		return contact{}, false
	}
	overlap := geom.AABB{
		Min: rl.Vector3{X: math32.Max(ba.Min.X, bb.Min.X), Y: math32.Max(ba.Min.Y, bb.Min.Y), Z: math32.Max(ba.Min.Z, bb.Min.Z)},
		Max: rl.Vector3{X: math32.Min(ba.Max.X, bb.Max.X), Y: math32.Min(ba.Max.Y, bb.Max.Y), Z: math32.Min(ba.Max.Z, bb.Max.Z)},
	}
	return contact{
		normal: geom.Scale(mtv, 1/depth),
		point:  overlap.Center(),
		depth:  depth,
	}, true
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
