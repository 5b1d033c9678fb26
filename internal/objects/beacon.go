package objects

import (
	"skyring/internal/engine"
	"skyring/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Beacon is a visual-only objective marker. Mission control lights it when
// the avatar gets close enough.
type Beacon struct {
	*engine.GameObject

	Spin    float32 // rev/s
	reached bool
	unlit   rl.Color
	lit     rl.Color
}

func newBeacon(s engine.Spawn, sim *engine.Sim) (engine.Object, error) {
	b := &Beacon{
		GameObject: s.NewBase(),
		Spin:       s.Prop("spin", 0.25),
		unlit:      s.Look.Color,
		lit:        rl.Color{R: 120, G: 255, B: 140, A: 255},
	}
	return b, nil
}

func (b *Beacon) Reached() bool { return b.reached }

func (b *Beacon) SetReached(v bool) {
	b.reached = v
	if v {
		b.Look.Color = b.lit
	} else {
		b.Look.Color = b.unlit
	}
}

// Step turns the marker in place. There is no body, so the object's own
// orientation is the authority.
func (b *Beacon) Step(ctx *engine.StepContext) {
	w := rl.Vector3{Y: b.Spin * geom.Rev2Rad}
	b.Orientation = geom.IntegrateRotation(b.Orientation, w, ctx.DT)
}
