package world

import (
	"errors"
	"fmt"
	"testing"

	"skyring/internal/assets"
	"skyring/internal/camera"
	"skyring/internal/config"
	"skyring/internal/engine"
	"skyring/internal/input"
	"skyring/internal/mission"
	_ "skyring/internal/objects"
)

var tracerLog []string

// Tracer records the order in which the step calls reach it.
type Tracer struct {
	*engine.GameObject
	panics bool
}

func (p *Tracer) SyncFromPhysics() {
	tracerLog = append(tracerLog, "sync "+p.Name)
	p.GameObject.SyncFromPhysics()
}

func (p *Tracer) Step(ctx *engine.StepContext) {
	tracerLog = append(tracerLog, "step "+p.Name)
	if p.panics {
		panic("tracer failure")
	}
}

func (p *Tracer) Damp(ctx *engine.StepContext) {
	tracerLog = append(tracerLog, "damp "+p.Name)
	p.GameObject.Damp(ctx)
}

func init() {
	engine.RegisterKind("Tracer", func(s engine.Spawn, sim *engine.Sim) (engine.Object, error) {
		p := &Tracer{GameObject: s.NewBase(), panics: s.Prop("panic", 0) != 0}
		return p, sim.AttachDynamic(p.GameObject, s)
	})
}

const testCatalog = `
meshes:
  rock:
    primitive: sphere
    size: [4, 4, 4]
    shape: sphere
  flyer:
    primitive: cube
    size: [1, 0.5, 2]
    shape: box
    mass: 2
  ball:
    primitive: sphere
    size: [1, 1, 1]
    shape: sphere
    mass: 1
    bounce: 0.5
  marker:
    primitive: cube
    size: [1, 1, 1]
    shape: none
areas:
  ring:
    title: The Ring
    objects:
      - {kind: Prop, name: Rock1, mesh: rock, position: [0, 0, 30]}
      - {kind: Debris, name: Ball1, mesh: ball, position: [0, 0, 27.8]}
      - {kind: Debris, name: Ball2, mesh: ball, position: [0.5, 0, 27.2]}
  lab:
    objects:
      - {kind: Tracer, name: P1, mesh: ball, position: [0, 0, 0]}
      - {kind: Tracer, name: P2, mesh: ball, position: [10, 0, 0]}
      - {kind: Tracer, name: Bad, mesh: ball, position: [20, 0, 0], props: {panic: 1}}
missions:
  first_flight:
    area: ring
    objects:
      - {kind: Avatar, name: LIBAvatar, mesh: flyer, position: [0, 0, 0]}
      - {kind: Beacon, name: B1, mesh: marker, position: [0, 0, 60]}
    control:
      objectives: [B1]
  hollow:
    area: ring
    objects:
      - {kind: Beacon, name: B2, mesh: marker, position: [0, 0, 60]}
  lab_run:
    area: lab
    objects:
      - {kind: Avatar, name: LabAvatar, mesh: flyer, position: [0, 50, 0]}
`

func newTestWorld(t *testing.T) *World {
	t.Helper()
	cat, err := assets.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return New(config.Default(), cat)
}

func TestStepCounter(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadArea("ring"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	for i := 0; i < 25; i++ {
		w.Step(input.Snapshot{})
	}
	if w.Steps() != 25 {
		t.Errorf("Expected 25 steps, got %d", w.Steps())
	}
	w.Reset()
	if w.Steps() != 0 || w.List.Len() != 0 || w.AreaName() != "" {
		t.Errorf("Expected empty world after Reset, got steps=%d objects=%d area=%q", w.Steps(), w.List.Len(), w.AreaName())
	}
}

func TestStepOrder(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadArea("lab"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	tracerLog = nil
	w.Step(input.Snapshot{})

	expected := []string{
		"sync P1", "sync P2", "sync Bad",
		"step P1", "damp P1",
		"step P2", "damp P2",
		"step Bad",
	}
	if fmt.Sprint(tracerLog) != fmt.Sprint(expected) {
		t.Errorf("Expected call order %v, got %v", expected, tracerLog)
	}
}

func TestPanickingObjectDoesNotStopStep(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadArea("lab"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	w.Step(input.Snapshot{})
	w.Step(input.Snapshot{})
	if w.Steps() != 2 {
		t.Errorf("Expected 2 steps despite panic, got %d", w.Steps())
	}
	if w.Contacts.Len() != 0 {
		t.Errorf("Expected contact set empty after step, got %d", w.Contacts.Len())
	}
}

func TestContactsEmptiedEachStep(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadArea("ring"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	w.Step(input.Snapshot{})
	if w.Pairs().Count() == 0 {
		t.Errorf("Expected overlapping balls and rock to produce pairs")
	}
	if w.Contacts.Len() != 0 {
		t.Errorf("Expected contacts consumed by integrate, got %d", w.Contacts.Len())
	}
}

func TestDeterminism(t *testing.T) {
	a := newTestWorld(t)
	b := newTestWorld(t)
	for _, w := range []*World{a, b} {
		if err := w.LoadArea("ring"); err != nil {
			t.Fatalf("LoadArea failed: %v", err)
		}
		if err := w.LoadMission("first_flight"); err != nil {
			t.Fatalf("LoadMission failed: %v", err)
		}
	}

	in := input.Snapshot{Axes: map[string]float32{input.AxisLY: 0.7, input.AxisRX: -0.3}}
	for i := 0; i < 120; i++ {
		a.Step(in)
		b.Step(in)
	}

	oa, ob := a.Objects(), b.Objects()
	if len(oa) != len(ob) {
		t.Fatalf("Expected same object count, got %d and %d", len(oa), len(ob))
	}
	for i := range oa {
		ga, gb := oa[i].Base(), ob[i].Base()
		if ga.Position != gb.Position || ga.Orientation != gb.Orientation {
			t.Errorf("Expected %s identical across runs, got %v and %v", ga.Name, ga.Position, gb.Position)
		}
	}
}

func TestLoadAreaCopiesTemplates(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadArea("ring"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	first := w.FindByName("Rock1").Base()
	first.Position.X = 999

	if err := w.LoadArea("ring"); err != nil {
		t.Fatalf("second LoadArea failed: %v", err)
	}
	second := w.FindByName("Rock1").Base()
	if second == first {
		t.Fatalf("Expected a fresh object on reload")
	}
	if second.Position.X != 0 {
		t.Errorf("Expected template position X=0, got %f", second.Position.X)
	}
	if w.List.Len() != 3 {
		t.Errorf("Expected 3 objects after reload, got %d", w.List.Len())
	}
	if w.Physics.BodyCount() != 2 {
		t.Errorf("Expected 2 bodies after reload, got %d", w.Physics.BodyCount())
	}
}

func TestLoadAreaUnknownLeavesState(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadArea("ring"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	before := w.List
	err := w.LoadArea("nowhere")
	if !errors.Is(err, ErrUnknownArea) {
		t.Errorf("Expected ErrUnknownArea, got %v", err)
	}
	if w.List != before || w.AreaName() != "ring" {
		t.Errorf("Expected state untouched after failed load")
	}
}

func TestLoadMission(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadMission("first_flight"); !errors.Is(err, ErrNoArea) {
		t.Errorf("Expected ErrNoArea, got %v", err)
	}
	if err := w.LoadArea("ring"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	if w.InGameplay() {
		t.Errorf("Expected no gameplay before mission load")
	}

	var loaded string
	w.OnMissionLoaded.AddListener(func(m *mission.Control) { loaded = m.Name })
	if err := w.LoadMission("first_flight"); err != nil {
		t.Fatalf("LoadMission failed: %v", err)
	}
	if !w.InGameplay() {
		t.Errorf("Expected gameplay after mission load")
	}
	if loaded != "first_flight" {
		t.Errorf("Expected OnMissionLoaded with first_flight, got %q", loaded)
	}
	if w.List.Len() != 5 {
		t.Errorf("Expected 5 objects, got %d", w.List.Len())
	}
	fc, ok := w.Camera.(*camera.FollowCamera)
	if !ok {
		t.Fatalf("Expected follow camera, got %T", w.Camera)
	}
	if w.Avatar() == nil || !fc.Target().Refers(w.Avatar()) {
		t.Errorf("Expected camera to follow the avatar")
	}
	if err := w.LoadMission("first_flight"); !errors.Is(err, ErrMissionActive) {
		t.Errorf("Expected ErrMissionActive, got %v", err)
	}
}

func TestLoadMissionAreaMismatch(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadArea("ring"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	err := w.LoadMission("lab_run")
	if !errors.Is(err, ErrAreaMismatch) {
		t.Errorf("Expected ErrAreaMismatch, got %v", err)
	}
	if w.List.Len() != 3 {
		t.Errorf("Expected object list unchanged, got %d", w.List.Len())
	}
}

func TestLoadMissionWithoutAvatar(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadArea("ring"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	bodies := w.Physics.BodyCount()
	err := w.LoadMission("hollow")
	if !errors.Is(err, ErrNoAvatar) {
		t.Errorf("Expected ErrNoAvatar, got %v", err)
	}
	if w.List.Len() != 3 || w.Physics.BodyCount() != bodies {
		t.Errorf("Expected rollback, got %d objects %d bodies", w.List.Len(), w.Physics.BodyCount())
	}
	if _, ok := w.Camera.(*camera.FollowCamera); ok {
		t.Errorf("Expected no follow camera without an avatar")
	}
	if w.InGameplay() {
		t.Errorf("Expected no gameplay after failed mission load")
	}
}

func TestRemoveFollowedObject(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadArea("ring"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	if err := w.LoadMission("first_flight"); err != nil {
		t.Fatalf("LoadMission failed: %v", err)
	}
	eye, _, _ := w.Camera.ViewParameters()
	if !w.RemoveObject(w.Avatar()) {
		t.Fatalf("Expected avatar removed")
	}
	fc, ok := w.Camera.(*camera.FreeCamera)
	if !ok {
		t.Fatalf("Expected free camera after avatar removal, got %T", w.Camera)
	}
	if fc.Eye != eye {
		t.Errorf("Expected camera to keep last eye %v, got %v", eye, fc.Eye)
	}
	if w.Avatar() != nil {
		t.Errorf("Expected no avatar after removal")
	}
	w.Step(input.Snapshot{})
}

func TestRestart(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadArea("ring"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	if err := w.LoadMission("first_flight"); err != nil {
		t.Fatalf("LoadMission failed: %v", err)
	}
	for i := 0; i < 30; i++ {
		w.Step(input.Snapshot{Axes: map[string]float32{input.AxisLY: 1}})
	}
	if err := w.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if got := w.Avatar().Base().Position; got.Z != 0 || got.X != 0 {
		t.Errorf("Expected avatar back at template position, got %v", got)
	}
	if w.MissionName() != "first_flight" {
		t.Errorf("Expected mission reloaded, got %q", w.MissionName())
	}
}

func TestTelemetry(t *testing.T) {
	w := newTestWorld(t)
	if err := w.LoadArea("ring"); err != nil {
		t.Fatalf("LoadArea failed: %v", err)
	}
	if err := w.LoadMission("first_flight"); err != nil {
		t.Fatalf("LoadMission failed: %v", err)
	}
	w.Step(input.Snapshot{})
	tel := w.Telemetry()
	if tel.Step != 1 || tel.Area != "ring" || tel.Mission != "first_flight" {
		t.Errorf("Expected step 1 in ring/first_flight, got %+v", tel)
	}
	if len(tel.Objects) != 5 {
		t.Errorf("Expected 5 objects, got %d", len(tel.Objects))
	}
	if tel.Progress[1] != 1 {
		t.Errorf("Expected 1 objective, got %d", tel.Progress[1])
	}
}
