package objects

import (
	"skyring/internal/engine"
	"skyring/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Avatar is the player's flyer. Its forces come from the step's input
// snapshot and are consumed by the next integration.
type Avatar struct {
	*engine.GameObject

	Thrust float32 // newtons at full stick
	Lift   float32
	Torque float32
}

func newAvatar(s engine.Spawn, sim *engine.Sim) (engine.Object, error) {
	a := &Avatar{
		GameObject: s.NewBase(),
		Thrust:     s.Prop("thrust", 40),
		Lift:       s.Prop("lift", 20),
		Torque:     s.Prop("torque", 6),
	}
	if err := sim.AttachDynamic(a.GameObject, s); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Avatar) IsAvatar() bool { return true }

// Step maps the sticks onto body-frame forces: left stick flies and
// strafes, right stick turns, triggers climb and sink.
func (a *Avatar) Step(ctx *engine.StepContext) {
	if a.Body == nil {
		return
	}
	in := ctx.Input
	force := rl.Vector3{
		X: -in.Axis(input.AxisLX) * a.Thrust,
		Y: (in.Axis(input.AxisR2) - in.Axis(input.AxisL2)) * a.Lift,
		Z: in.Axis(input.AxisLY) * a.Thrust,
	}
	torque := rl.Vector3{
		X: -in.Axis(input.AxisRY) * a.Torque,
		Y: -in.Axis(input.AxisRX) * a.Torque,
	}
	if force != (rl.Vector3{}) {
		a.Body.AddRelForce(force)
	}
	if torque != (rl.Vector3{}) {
		a.Body.AddRelTorque(torque)
	}
}
