package assets

import (
	"errors"
	"strings"
	"testing"

	"skyring/internal/engine"
	_ "skyring/internal/objects"
)

const testCatalog = `
meshes:
  rock:
    primitive: sphere
    size: [4, 4, 4]
    color: Brown
    shape: sphere
  flyer:
    primitive: cube
    size: [1, 0.5, 2]
    color: SkyBlue
    shape: box
    mass: 2
  marker:
    primitive: cube
    size: [1, 1, 1]
    color: Gold
    shape: none
  hauler:
    primitive: cube
    size: [4, 2, 8]
    shape: box
    mass: 10
    kinematic: true
areas:
  ring:
    title: The Ring
    sky:
      game_angle: 0.1
      game_tilt: [10, 1, 0, 0]
      t3_angle: 0.3
    objects:
      - {kind: Prop, name: Rock1, mesh: rock, position: [0, 0, 30]}
      - {kind: Prop, name: Rock2, mesh: rock, position: [10, 0, 30], rotation: [0, 45, 0]}
      - {kind: Debris, name: Hauler1, mesh: hauler, position: [0, 20, 0], props: {vz: 3}}
missions:
  first_flight:
    title: First Flight
    area: ring
    objects:
      - {kind: Avatar, name: LIBAvatar, mesh: flyer, position: [0, 0, 0], props: {thrust: 50}}
      - {kind: Beacon, name: B1, mesh: marker, position: [0, 0, 60]}
    control:
      objectives: [B1, Rock2]
      reach_radius: 4
`

func TestParseCatalog(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(c.Meshes) != 4 || len(c.Areas) != 1 || len(c.Missions) != 1 {
		t.Errorf("Expected 4 meshes 1 area 1 mission, got %d %d %d", len(c.Meshes), len(c.Areas), len(c.Missions))
	}
	a := c.Areas["ring"]
	if a.Sky.GameTilt[0] != 10 || a.Sky.T3Angle != 0.3 {
		t.Errorf("Expected sky settings decoded, got %+v", a.Sky)
	}
	m := c.Missions["first_flight"]
	if m.Control.ReachRadius != 4 || len(m.Control.Objectives) != 2 {
		t.Errorf("Expected control decoded, got %+v", m.Control)
	}
}

func TestSchemaRejectsBadPrimitive(t *testing.T) {
	bad := strings.Replace(testCatalog, "primitive: sphere", "primitive: teapot", 1)
	if _, err := Parse([]byte(bad)); !errors.Is(err, ErrSchema) {
		t.Errorf("Expected schema error, got %v", err)
	}
}

func TestUnresolvedMesh(t *testing.T) {
	bad := strings.Replace(testCatalog, "mesh: rock, position: [0, 0, 30]", "mesh: boulder, position: [0, 0, 30]", 1)
	if _, err := Parse([]byte(bad)); !errors.Is(err, ErrUnresolvedMesh) {
		t.Errorf("Expected unresolved mesh error, got %v", err)
	}
}

func TestUnknownKind(t *testing.T) {
	bad := strings.Replace(testCatalog, "kind: Beacon", "kind: Dragon", 1)
	if _, err := Parse([]byte(bad)); !errors.Is(err, engine.ErrUnknownKind) {
		t.Errorf("Expected unknown kind error, got %v", err)
	}
}

func TestUnresolvedObjective(t *testing.T) {
	bad := strings.Replace(testCatalog, "objectives: [B1, Rock2]", "objectives: [B9]", 1)
	if _, err := Parse([]byte(bad)); !errors.Is(err, ErrUnresolved) {
		t.Errorf("Expected unresolved objective error, got %v", err)
	}
}

func TestAreaCloneIsIndependent(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	first, _ := c.Area("ring")
	second, _ := c.Area("ring")

	first.Objects[0].Position[0] = 999
	first.Sky.GameTilt[0] = 45

	if second.Objects[0].Position[0] == 999 || c.Areas["ring"].Objects[0].Position[0] == 999 {
		t.Error("Expected mutation of one copy not to leak into others")
	}
	if c.Areas["ring"].Sky.GameTilt[0] != 10 {
		t.Error("Expected template sky untouched")
	}
}

func TestMissionCloneIsIndependent(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	m, _ := c.Mission("first_flight")
	m.Control.Objectives[0] = "changed"
	m.Objects[0].Props["thrust"] = 1

	orig := c.Missions["first_flight"]
	if orig.Control.Objectives[0] != "B1" || orig.Objects[0].Props["thrust"] != 50 {
		t.Error("Expected template mission untouched")
	}
}

func TestSpawn(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	m := c.Missions["first_flight"]
	s, err := c.Spawn(m.Objects[0])
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if s.Kind != "Avatar" || s.Shape != "box" || s.Mass != 2 || s.Prop("thrust", 0) != 50 {
		t.Errorf("Unexpected spawn %+v", s)
	}
	if s.Look.Color != LookupColor("SkyBlue") || s.Look.Size.Z != 2 {
		t.Errorf("Expected resolved appearance, got %+v", s.Look)
	}

	marker, _ := c.Spawn(m.Objects[1])
	if marker.Shape != "" {
		t.Errorf("Expected shape none to mean no geometry, got %q", marker.Shape)
	}
	if s.Kinematic || marker.Kinematic {
		t.Error("Expected meshes without the flag to be dynamic")
	}
}

func TestSpawnKinematicMesh(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	a, _ := c.Area("ring")
	s, err := c.Spawn(a.Objects[2])
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if !s.Kinematic || s.Prop("vz", 0) != 3 {
		t.Errorf("Expected kinematic hauler drifting at 3, got %+v", s)
	}
}

func TestSchemaRejectsNonBoolKinematic(t *testing.T) {
	bad := strings.Replace(testCatalog, "kinematic: true", "kinematic: yes please", 1)
	if _, err := Parse([]byte(bad)); err == nil {
		t.Error("Expected schema error for a non-boolean kinematic flag")
	}
}

func TestLookupColorFallback(t *testing.T) {
	if LookupColor("NoSuchColor") != LookupColor("White") {
		t.Error("Expected unknown color to fall back to white")
	}
}

func TestShippedCatalogLoads(t *testing.T) {
	c, err := Load("../../assets/catalog/main.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for _, name := range c.MissionNames() {
		m, _ := c.Mission(name)
		if _, ok := c.Area(m.Area); !ok {
			t.Errorf("Expected mission %s area %s to exist", name, m.Area)
		}
	}
}
