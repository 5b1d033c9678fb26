package geom

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Identity is the rotation that leaves vectors unchanged.
func Identity() rl.Quaternion {
	return rl.Quaternion{X: 0, Y: 0, Z: 0, W: 1}
}

// FromEulerDeg builds an orientation from pitch/yaw/roll in degrees, the
// convention used for template rotations.
func FromEulerDeg(e rl.Vector3) rl.Quaternion {
	return rl.QuaternionFromEuler(e.X*rl.Deg2rad, e.Y*rl.Deg2rad, e.Z*rl.Deg2rad)
}

// VecToWorld rotates a body-frame vector into the world frame.
func VecToWorld(rot rl.Quaternion, v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, rot)
}

// VecToLocal rotates a world vector into the body frame.
func VecToLocal(rot rl.Quaternion, v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, Conjugate(rot))
}

// RelPoint returns the world position of a point given in the body frame of
// an object at pos with orientation rot.
func RelPoint(pos rl.Vector3, rot rl.Quaternion, local rl.Vector3) rl.Vector3 {
	return Add(pos, VecToWorld(rot, local))
}

func Conjugate(q rl.Quaternion) rl.Quaternion {
	return rl.Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// NormalizeQuat keeps integrated orientations on the unit sphere. A
// degenerate quaternion collapses to the identity.
func NormalizeQuat(q rl.Quaternion) rl.Quaternion {
	l := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l < 1e-9 {
		return Identity()
	}
	inv := 1 / l
	return rl.Quaternion{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// IntegrateRotation advances q by the world-frame angular velocity w (rad/s)
// over dt using the first order update q' = q + 0.5*dt*(w*q).
func IntegrateRotation(q rl.Quaternion, w rl.Vector3, dt float32) rl.Quaternion {
	if w.X == 0 && w.Y == 0 && w.Z == 0 {
		return q
	}
	h := 0.5 * dt
	dq := rl.Quaternion{
		X: h * (w.X*q.W + w.Y*q.Z - w.Z*q.Y),
		Y: h * (w.Y*q.W + w.Z*q.X - w.X*q.Z),
		Z: h * (w.Z*q.W + w.X*q.Y - w.Y*q.X),
		W: h * (-w.X*q.X - w.Y*q.Y - w.Z*q.Z),
	}
	return NormalizeQuat(rl.Quaternion{X: q.X + dq.X, Y: q.Y + dq.Y, Z: q.Z + dq.Z, W: q.W + dq.W})
}
