// Package objects holds the object kinds that can appear in area and
// mission templates. Each kind registers itself with the engine on import.
package objects

import (
	"skyring/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	KindProp   = "Prop"
	KindDebris = "Debris"
	KindAvatar = "Avatar"
	KindBeacon = "Beacon"
)

func init() {
	engine.RegisterKind(KindProp, newProp)
	engine.RegisterKind(KindDebris, newDebris)
	engine.RegisterKind(KindAvatar, newAvatar)
	engine.RegisterKind(KindBeacon, newBeacon)
}

// Prop is world-fixed scenery. It collides but never moves.
type Prop struct {
	*engine.GameObject
}

func newProp(s engine.Spawn, sim *engine.Sim) (engine.Object, error) {
	p := &Prop{GameObject: s.NewBase()}
	sim.AttachStatic(p.GameObject, s)
	return p, nil
}

// Debris is a free-floating body pushed around by contacts. Props vx, vy
// and vz give it a starting drift; a kinematic mesh keeps that drift.
type Debris struct {
	*engine.GameObject
}

func newDebris(s engine.Spawn, sim *engine.Sim) (engine.Object, error) {
	d := &Debris{GameObject: s.NewBase()}
	if err := sim.AttachDynamic(d.GameObject, s); err != nil {
		return nil, err
	}
	d.Body.LinearVel = rl.Vector3{X: s.Prop("vx", 0), Y: s.Prop("vy", 0), Z: s.Prop("vz", 0)}
	d.LinearVel = d.Body.LinearVel
	return d, nil
}
