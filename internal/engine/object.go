package engine

import (
	"skyring/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Object is the per-step contract every simulated entity implements.
// Within one step the driver calls SyncFromPhysics on every object before
// any Step, and each object's Damp right after its own Step.
type Object interface {
	Base() *GameObject
	SyncFromPhysics()
	Step(ctx *StepContext)
	Damp(ctx *StepContext)
	// Draw assumes depth testing and lighting are on.
	Draw(d Drawer)
	// DistDraw draws a cheap stand-in with depth testing on and lighting off.
	DistDraw(d Drawer)
}

// Avatar is implemented by the object the player flies. A mission needs
// exactly one to be playable.
type Avatar interface {
	Object
	IsAvatar() bool
}

// Drawer is the subset of the renderer objects draw through.
type Drawer interface {
	DrawMesh(look *Appearance, pos rl.Vector3, rot rl.Quaternion)
	DrawBillboard(pos rl.Vector3, size float32, tint rl.Color)
}

// StepContext carries what object logic may read during one step.
type StepContext struct {
	Step  uint64
	DT    float32
	Input input.Snapshot
	World WorldAccess
}

// WorldAccess gives objects read access to their siblings without an
// import of the world package.
type WorldAccess interface {
	Objects() []Object
	FindByName(name string) Object
	Avatar() Object
}
