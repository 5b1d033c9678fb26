// Package camera computes the eye/look-at triple the renderer orients to.
package camera

import (
	"skyring/internal/engine"
	"skyring/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Camera interface {
	Position() rl.Vector3
	ViewParameters() (eye, center, up rl.Vector3)
}

// Offsets from the avatar, in the avatar's own frame.
var (
	FollowPosOffset = rl.Vector3{X: 0, Y: 1.1, Z: -7}
	FollowTgtOffset = rl.Vector3{X: 0, Y: 1.1, Z: 0}
	FollowUpVector  = rl.Vector3{X: 0, Y: 1, Z: 0}
)

// TitleEye is where the title screen looks at the system from.
var TitleEye = rl.Vector3{X: 0, Y: -5e9, Z: -7e10}

// FreeCamera holds an externally driven pose.
type FreeCamera struct {
	Eye    rl.Vector3
	Target rl.Vector3
	Up     rl.Vector3
}

func NewFreeCamera(eye, target rl.Vector3) *FreeCamera {
	return &FreeCamera{Eye: eye, Target: target, Up: geom.Up}
}

// NewTitleCamera looks at the game origin from far out in the system.
func NewTitleCamera() *FreeCamera {
	return NewFreeCamera(TitleEye, rl.Vector3{})
}

func (c *FreeCamera) Position() rl.Vector3 {
	return c.Eye
}

func (c *FreeCamera) ViewParameters() (eye, center, up rl.Vector3) {
	return c.Eye, c.Target, c.Up
}

// Orbit swings the eye around the target about the world up axis by rev
// revolutions, keeping its distance and height.
func (c *FreeCamera) Orbit(rev float32) {
	q := rl.QuaternionFromAxisAngle(geom.Up, rev*geom.Rev2Rad)
	c.Eye = geom.Add(c.Target, geom.VecToWorld(q, geom.Sub(c.Eye, c.Target)))
}

// FollowCamera tracks an object through a UID handle. When the object is
// gone the camera keeps its last pose and reports Lost until replaced.
type FollowCamera struct {
	PosOffset rl.Vector3
	TgtOffset rl.Vector3
	UpVector  rl.Vector3

	target engine.Ref
	list   *engine.ObjectList

	last struct{ eye, center, up rl.Vector3 }
	lost bool
}

func NewFollowCamera(list *engine.ObjectList, target engine.Object) *FollowCamera {
	c := &FollowCamera{
		PosOffset: FollowPosOffset,
		TgtOffset: FollowTgtOffset,
		UpVector:  FollowUpVector,
		target:    engine.RefTo(target),
		list:      list,
	}
	if target != nil {
		c.update(target.Base())
	} else {
		c.lost = true
	}
	return c
}

func (c *FollowCamera) Target() engine.Ref {
	return c.target
}

// Lost reports whether the tracked object has left the object list.
func (c *FollowCamera) Lost() bool {
	if c.target.Get(c.list) == nil {
		c.lost = true
	}
	return c.lost
}

func (c *FollowCamera) update(g *engine.GameObject) {
	c.last.eye = geom.RelPoint(g.Position, g.Orientation, c.PosOffset)
	c.last.center = geom.RelPoint(g.Position, g.Orientation, c.TgtOffset)
	c.last.up = geom.VecToWorld(g.Orientation, c.UpVector)
}

func (c *FollowCamera) ViewParameters() (eye, center, up rl.Vector3) {
	if obj := c.target.Get(c.list); obj != nil {
		c.update(obj.Base())
	} else {
		c.lost = true
	}
	return c.last.eye, c.last.center, c.last.up
}

func (c *FollowCamera) Position() rl.Vector3 {
	eye, _, _ := c.ViewParameters()
	return eye
}

// ToRaylib builds the raylib camera for c.
func ToRaylib(c Camera, fovy float32) rl.Camera3D {
	eye, center, up := c.ViewParameters()
	return rl.Camera3D{
		Position:   eye,
		Target:     center,
		Up:         up,
		Fovy:       fovy,
		Projection: rl.CameraPerspective,
	}
}
