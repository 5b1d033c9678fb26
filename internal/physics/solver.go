package physics

import (
	"skyring/internal/geom"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Below this approach speed contacts do not bounce.
const bounceThreshold = 0.1

func (w *World) solve(dt float32, joints []ContactJoint) {
	for i := range joints {
		w.prepare(&joints[i], dt)
	}
	for it := 0; it < w.iterations; it++ {
		for i := range joints {
			solveJoint(&joints[i])
		}
	}
}

func (w *World) prepare(j *ContactJoint, dt float32) {
	j.Normal = geom.Normalize(j.Normal)
	j.accumN = 0
	j.accumT = 0
	j.rA = geom.Sub(j.Point, j.A.Position)
	if j.B != nil {
		j.rB = geom.Sub(j.Point, j.B.Position)
	}

	k := invMass(j.A) + invMass(j.B)
	rnA := geom.Cross(j.rA, j.Normal)
	k += j.A.invI() * geom.Dot(rnA, rnA)
	if j.B != nil {
		rnB := geom.Cross(j.rB, j.Normal)
		k += j.B.invI() * geom.Dot(rnB, rnB)
	}
	if k > 0 {
		j.massN = 1 / k
	} else {
		j.massN = 0
	}

	j.bias = 0
	if pen := j.Depth - w.Slop; pen > 0 {
		j.bias = w.ERP / dt * pen
	}

	// Restitution uses the approach speed from before solving.
	vn := geom.Dot(relativeVelocity(j), j.Normal)
	j.targetVel = 0
	if vn < -bounceThreshold {
		j.targetVel = -j.Bounce * vn
	}
}

func solveJoint(j *ContactJoint) {
	if j.massN == 0 {
		return
	}

	vrel := relativeVelocity(j)
	vn := geom.Dot(vrel, j.Normal)
	target := j.targetVel
	if j.bias > target {
		target = j.bias
	}
	lambda := (target - vn) * j.massN
	old := j.accumN
	j.accumN = old + lambda
	if j.accumN < 0 {
		j.accumN = 0
	}
	applyPair(j, geom.Scale(j.Normal, j.accumN-old))

	if j.Friction <= 0 {
		return
	}
	vrel = relativeVelocity(j)
	tangent := geom.Sub(vrel, geom.Scale(j.Normal, geom.Dot(vrel, j.Normal)))
	speed := geom.Length(tangent)
	if speed < 1e-6 {
		return
	}
	tangent = geom.Scale(tangent, 1/speed)
	lambdaT := -speed * j.massN
	maxT := j.Friction * j.accumN
	oldT := j.accumT
	j.accumT = math32.Max(-maxT, math32.Min(oldT+lambdaT, maxT))
	applyPair(j, geom.Scale(tangent, j.accumT-oldT))
}

func relativeVelocity(j *ContactJoint) (v rl.Vector3) {
	v = j.A.velocityAt(j.rA)
	if j.B != nil {
		v = geom.Sub(v, j.B.velocityAt(j.rB))
	}
	return v
}

func applyPair(j *ContactJoint, p rl.Vector3) {
	j.A.applyImpulse(p, j.rA)
	if j.B != nil {
		j.B.applyImpulse(geom.Scale(p, -1), j.rB)
	}
}

func invMass(b *Body) float32 {
	if b == nil {
		return 0
	}
	return b.InvMass()
}
