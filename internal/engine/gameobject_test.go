package engine

import (
	"testing"

	"skyring/internal/collision"
	"skyring/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type drawLog struct {
	meshes     []string
	billboards int
}

func (d *drawLog) DrawMesh(look *Appearance, pos rl.Vector3, rot rl.Quaternion) {
	d.meshes = append(d.meshes, look.Mesh)
}

func (d *drawLog) DrawBillboard(pos rl.Vector3, size float32, tint rl.Color) {
	d.billboards++
}

func newSim() *Sim {
	return NewSim(physics.NewWorld(physics.DefaultIterations), collision.NewBroadphase(collision.DefaultCellSize))
}

func TestSyncFromPhysics(t *testing.T) {
	sim := newSim()
	g := NewGameObject("Crate", "Debris")
	if err := sim.AttachDynamic(g, Spawn{Shape: "box", Mass: 1, Look: Appearance{Size: rl.Vector3{X: 1, Y: 1, Z: 1}}}); err != nil {
		t.Fatalf("AttachDynamic failed: %v", err)
	}
	g.Body.Position = rl.Vector3{X: 4}
	g.Body.LinearVel = rl.Vector3{Y: 2}

	g.SyncFromPhysics()

	if g.Position.X != 4 || g.LinearVel.Y != 2 {
		t.Errorf("Expected synced state, got pos %v vel %v", g.Position, g.LinearVel)
	}
}

func TestSyncWithoutBodyIsNoop(t *testing.T) {
	g := NewGameObject("Marker", "Beacon")
	g.Position = rl.Vector3{Z: 9}
	g.SyncFromPhysics()
	if g.Position.Z != 9 {
		t.Errorf("Expected position untouched, got %v", g.Position)
	}
}

func TestDampAttenuates(t *testing.T) {
	sim := newSim()
	g := NewGameObject("Crate", "Debris")
	if err := sim.AttachDynamic(g, Spawn{Mass: 1}); err != nil {
		t.Fatalf("AttachDynamic failed: %v", err)
	}
	g.Body.LinearVel = rl.Vector3{X: 10}
	g.Body.AngularVel = rl.Vector3{Y: 10}

	g.Damp(&StepContext{DT: 1})

	if g.Body.LinearVel.X >= 10 || g.Body.LinearVel.X < 8 {
		t.Errorf("Expected mild linear damping, got %f", g.Body.LinearVel.X)
	}
	if g.Body.AngularVel.Y >= 10 {
		t.Errorf("Expected angular damping, got %f", g.Body.AngularVel.Y)
	}
}

func TestDrawAndDistDraw(t *testing.T) {
	g := NewGameObject("Rock", "Prop")
	g.Look = Appearance{Mesh: "rock", Size: rl.Vector3{X: 2, Y: 2, Z: 2}}
	d := &drawLog{}

	g.Draw(d)
	g.DistDraw(d)

	if len(d.meshes) != 1 || d.meshes[0] != "rock" {
		t.Errorf("Expected one rock mesh draw, got %v", d.meshes)
	}
	if d.billboards != 1 {
		t.Errorf("Expected one billboard, got %d", d.billboards)
	}
}

func TestDetachReleasesBodyAndGeom(t *testing.T) {
	sim := newSim()
	g := NewGameObject("Crate", "Debris")
	if err := sim.AttachDynamic(g, Spawn{Shape: "sphere", Mass: 1, Look: Appearance{Size: rl.Vector3{X: 1, Y: 1, Z: 1}}}); err != nil {
		t.Fatalf("AttachDynamic failed: %v", err)
	}
	body := g.Body

	sim.Detach(g)

	if sim.Physics.BodyCount() != 0 || sim.Collision.Dynamic.Len() != 0 {
		t.Error("Expected body and geom to be gone")
	}
	if body.Alive() || g.Body != nil || g.Geom != nil {
		t.Error("Expected object to drop its references")
	}
}

func TestRegisterKindDuplicatePanics(t *testing.T) {
	RegisterKind("TestOnlyKind", func(s Spawn, sim *Sim) (Object, error) { return s.NewBase(), nil })
	defer func() {
		if recover() == nil {
			t.Error("Expected duplicate registration to panic")
		}
	}()
	RegisterKind("TestOnlyKind", nil)
}

func TestNewObjectUnknownKind(t *testing.T) {
	if _, err := NewObject(Spawn{Kind: "NoSuchKind"}, newSim()); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestZeroDampingKeepsVelocity(t *testing.T) {
	sim := newSim()
	sim.VelDamp, sim.AngDamp = 0, 0
	g := NewGameObject("Crate", "Debris")
	if err := sim.AttachDynamic(g, Spawn{Shape: "box", Mass: 1, Look: Appearance{Size: rl.Vector3{X: 1, Y: 1, Z: 1}}}); err != nil {
		t.Fatalf("AttachDynamic failed: %v", err)
	}
	if g.VelDamp != 0 || g.AngDamp != 0 {
		t.Fatalf("Expected the sim's zero damping, got %f and %f", g.VelDamp, g.AngDamp)
	}
	g.Body.LinearVel = rl.Vector3{X: 3}
	g.Body.AngularVel = rl.Vector3{Y: 2}
	g.Damp(&StepContext{DT: 1})
	if g.Body.LinearVel.X != 3 || g.Body.AngularVel.Y != 2 {
		t.Errorf("Expected velocities untouched, got %v and %v", g.Body.LinearVel, g.Body.AngularVel)
	}
}

func TestAttachDynamicKinematic(t *testing.T) {
	sim := newSim()
	g := NewGameObject("Hauler", "Debris")
	if err := sim.AttachDynamic(g, Spawn{Shape: "box", Mass: 5, Kinematic: true, Look: Appearance{Size: rl.Vector3{X: 4, Y: 2, Z: 8}}}); err != nil {
		t.Fatalf("AttachDynamic failed: %v", err)
	}
	if !g.Body.Kinematic {
		t.Error("Expected a kinematic body")
	}
	if g.VelDamp != DefaultVelDamp {
		t.Errorf("Expected default damping %f, got %f", DefaultVelDamp, g.VelDamp)
	}
}
