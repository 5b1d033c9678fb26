// Package world is the engine context: it owns the simulation state of one
// run and advances it one fixed step at a time.
package world

import (
	"errors"
	"fmt"
	"log"

	"skyring/internal/assets"
	"skyring/internal/camera"
	"skyring/internal/collision"
	"skyring/internal/config"
	"skyring/internal/engine"
	"skyring/internal/input"
	"skyring/internal/mission"
	"skyring/internal/physics"
	"skyring/internal/sky"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrUnknownArea    = errors.New("unknown area")
	ErrUnknownMission = errors.New("unknown mission")
	ErrAreaMismatch   = errors.New("mission belongs to another area")
	ErrNoArea         = errors.New("no area loaded")
	ErrMissionActive  = errors.New("a mission is already loaded")
	ErrNoAvatar       = errors.New("no avatar found")
)

type World struct {
	Tuning  config.Tuning
	Catalog *assets.Catalog

	Physics   *physics.World
	Collision *collision.Broadphase
	Contacts  *physics.ContactSet
	List      *engine.ObjectList
	Sky       *sky.Sky
	Control   *mission.Control
	Camera    camera.Camera

	// OnMissionLoaded fires after a mission is installed.
	OnMissionLoaded engine.EventWithArg[*mission.Control]

	sim     *engine.Sim
	steps   uint64
	area    string
	mission string
	avatar  engine.Ref
	pairs   collision.Pairs
}

func New(t config.Tuning, cat *assets.Catalog) *World {
	w := &World{Tuning: t, Catalog: cat}
	w.Reset()
	return w
}

func (w *World) newSim() *engine.Sim {
	pw := physics.NewWorld(w.Tuning.SolverIterations)
	pw.Gravity = rl.Vector3{X: w.Tuning.Gravity[0], Y: w.Tuning.Gravity[1], Z: w.Tuning.Gravity[2]}
	sim := engine.NewSim(pw, collision.NewBroadphase(w.Tuning.CollisionCell))
	sim.VelDamp = w.Tuning.VelDamp
	sim.AngDamp = w.Tuning.AngDamp
	return sim
}

func (w *World) install(sim *engine.Sim) {
	w.sim = sim
	w.Physics = sim.Physics
	w.Collision = sim.Collision
}

// Reset discards every object, the area and mission, and zeroes the step
// counter.
func (w *World) Reset() {
	w.install(w.newSim())
	w.Contacts = physics.NewContactSet()
	w.List = engine.NewObjectList()
	w.Sky = sky.New(sky.DefaultSettings())
	w.Control = nil
	w.Camera = camera.NewTitleCamera()
	w.steps = 0
	w.area = ""
	w.mission = ""
	w.avatar = engine.Ref{}
	w.pairs = nil
}

// Steps is the number of fixed steps run since the last Reset.
func (w *World) Steps() uint64 { return w.steps }

func (w *World) AreaName() string { return w.area }

func (w *World) MissionName() string { return w.mission }

// InGameplay reports whether both an area and a mission are loaded.
func (w *World) InGameplay() bool {
	return w.area != "" && w.mission != "" && w.Control != nil
}

// Pairs returns the contacts found by the last step.
func (w *World) Pairs() collision.Pairs { return w.pairs }

func (w *World) Sim() *engine.Sim { return w.sim }

// build creates objects for defs in sim. On error every object built so far
// is detached again.
func (w *World) build(sim *engine.Sim, defs []assets.ObjectDef) ([]engine.Object, error) {
	out := make([]engine.Object, 0, len(defs))
	for _, def := range defs {
		spawn, err := w.Catalog.Spawn(def)
		if err == nil {
			var obj engine.Object
			obj, err = engine.NewObject(spawn, sim)
			if err == nil {
				out = append(out, obj)
				continue
			}
		}
		for _, o := range out {
			sim.Detach(o.Base())
		}
		return nil, err
	}
	return out, nil
}

// LoadArea replaces the active objects with fresh copies of the area's
// template objects and installs its sky. Any mission is dropped. On error
// nothing changes.
func (w *World) LoadArea(name string) error {
	if w.Catalog == nil {
		return fmt.Errorf("load area %q: %w", name, ErrUnknownArea)
	}
	def, ok := w.Catalog.Area(name)
	if !ok {
		return fmt.Errorf("load area %q: %w", name, ErrUnknownArea)
	}

	sim := w.newSim()
	objs, err := w.build(sim, def.Objects)
	if err != nil {
		return fmt.Errorf("load area %q: %w", name, err)
	}

	for _, o := range w.List.All() {
		w.sim.Detach(o.Base())
	}
	w.install(sim)
	w.Contacts.Empty()
	w.List = engine.NewObjectList()
	for _, o := range objs {
		w.List.Add(o)
	}

	settings := def.Sky
	if settings == (sky.Settings{}) {
		settings = sky.DefaultSettings()
	}
	w.Sky = sky.New(settings)
	w.area = name
	w.mission = ""
	w.Control = nil
	w.avatar = engine.Ref{}
	w.pairs = nil
	w.Camera = camera.NewTitleCamera()

	log.Printf("World: area %s loaded with %d objects", name, len(objs))
	return nil
}

// LoadMission adds the mission's objects to the loaded area, installs a
// fresh mission control and points a follow camera at the avatar. Without
// an avatar the load fails and nothing changes.
func (w *World) LoadMission(name string) error {
	if w.Catalog == nil {
		return fmt.Errorf("load mission %q: %w", name, ErrUnknownMission)
	}
	def, ok := w.Catalog.Mission(name)
	if !ok {
		return fmt.Errorf("load mission %q: %w", name, ErrUnknownMission)
	}
	if w.area == "" {
		return fmt.Errorf("load mission %q: %w", name, ErrNoArea)
	}
	if def.Area != w.area {
		return fmt.Errorf("load mission %q for area %q with %q loaded: %w", name, def.Area, w.area, ErrAreaMismatch)
	}
	if w.mission != "" {
		return fmt.Errorf("load mission %q over %q: %w", name, w.mission, ErrMissionActive)
	}

	objs, err := w.build(w.sim, def.Objects)
	if err != nil {
		return fmt.Errorf("load mission %q: %w", name, err)
	}

	avatar := w.List.FindAvatar()
	if avatar == nil {
		for _, o := range objs {
			if a, ok := o.(engine.Avatar); ok && a.IsAvatar() {
				avatar = a
				break
			}
		}
	}
	if avatar == nil {
		for _, o := range objs {
			w.sim.Detach(o.Base())
		}
		return fmt.Errorf("load mission %q: %w", name, ErrNoAvatar)
	}

	for _, o := range objs {
		w.List.Add(o)
	}
	w.Control = mission.New(name, def.Control, w.Tuning.TickRateHz)
	w.avatar = engine.RefTo(avatar)
	w.Camera = camera.NewFollowCamera(w.List, avatar)
	w.mission = name

	log.Printf("World: mission %s loaded, avatar %s", name, avatar.Base().Name)
	w.OnMissionLoaded.Invoke(w.Control)
	return nil
}

// Restart reloads the current area and mission from their templates.
func (w *World) Restart() error {
	area, m := w.area, w.mission
	if area == "" {
		return ErrNoArea
	}
	if err := w.LoadArea(area); err != nil {
		return err
	}
	if m == "" {
		return nil
	}
	return w.LoadMission(m)
}

// RemoveObject destroys o. A follow camera tracking o is replaced by a
// free camera holding its last pose.
func (w *World) RemoveObject(o engine.Object) bool {
	if !w.List.Remove(o) {
		return false
	}
	w.sim.Detach(o.Base())
	if fc, ok := w.Camera.(*camera.FollowCamera); ok && fc.Lost() {
		eye, center, up := fc.ViewParameters()
		free := camera.NewFreeCamera(eye, center)
		free.Up = up
		w.Camera = free
		log.Printf("World: camera target %s removed, switching to free camera", o.Base().Name)
	}
	if w.avatar.Refers(o) {
		w.avatar.Clear()
	}
	return true
}

// Step runs one fixed step: mission control, collision, integration, then
// sync of every object followed by each object's step and damp.
func (w *World) Step(in input.Snapshot) {
	dt := w.Tuning.DT()
	ctx := &engine.StepContext{Step: w.steps, DT: dt, Input: in, World: w}

	if w.Control != nil {
		w.guard("mission control", func() { w.Control.Step(ctx) })
	}

	w.Contacts.Empty()
	w.pairs = w.Collision.Collide(w.Contacts)
	w.Physics.Integrate(dt, w.Contacts)

	objs := w.List.All()
	for _, o := range objs {
		o.SyncFromPhysics()
	}
	for _, o := range objs {
		w.guard(o.Base().Name, func() {
			o.Step(ctx)
			o.Damp(ctx)
		})
	}

	w.steps++
}

// guard keeps a panicking object from taking the step down with it.
func (w *World) guard(who string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("World: %s panicked at step %d: %v", who, w.steps, r)
		}
	}()
	fn()
}

func (w *World) FindByName(name string) engine.Object {
	return w.List.FindByName(name)
}

func (w *World) Avatar() engine.Object {
	return w.avatar.Get(w.List)
}
