// Package assets loads the catalog of meshes, areas and missions the game
// is built from, and caches the GPU models drawn for them.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"skyring/internal/engine"
	"skyring/internal/mission"
	"skyring/internal/sky"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

var (
	ErrSchema         = errors.New("catalog does not match schema")
	ErrUnresolvedMesh = errors.New("unresolved mesh reference")
	ErrUnresolved     = errors.New("unresolved reference")
)

type Vec3 [3]float32

func (v Vec3) Vector() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

type MeshDef struct {
	Primitive string  `yaml:"primitive"`
	Model     string  `yaml:"model,omitempty"`
	Size      Vec3    `yaml:"size"`
	Color     string  `yaml:"color,omitempty"`
	Shape     string  `yaml:"shape,omitempty"`
	Mass      float32 `yaml:"mass,omitempty"`
	Bounce    float32 `yaml:"bounce,omitempty"`
	Friction  float32 `yaml:"friction,omitempty"`
	Kinematic bool    `yaml:"kinematic,omitempty"`
}

// ObjectDef is one (kind, mesh, position, rotation) template entry.
// Rotation is pitch/yaw/roll in degrees.
type ObjectDef struct {
	Kind     string             `yaml:"kind"`
	Name     string             `yaml:"name"`
	Mesh     string             `yaml:"mesh"`
	Position Vec3               `yaml:"position"`
	Rotation Vec3               `yaml:"rotation,omitempty"`
	Props    map[string]float64 `yaml:"props,omitempty"`
}

type AreaDef struct {
	Title   string       `yaml:"title"`
	Sky     sky.Settings `yaml:"sky"`
	Objects []ObjectDef  `yaml:"objects"`
}

type MissionDef struct {
	Title   string         `yaml:"title"`
	Area    string         `yaml:"area"`
	Objects []ObjectDef    `yaml:"objects"`
	Control mission.Config `yaml:"control"`
}

// Catalog is immutable once loaded. Callers take templates out of it with
// Area and Mission, which hand back deep copies.
type Catalog struct {
	Meshes   map[string]MeshDef     `yaml:"meshes"`
	Areas    map[string]*AreaDef    `yaml:"areas"`
	Missions map[string]*MissionDef `yaml:"missions"`
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the catalog schema, decodes it and checks
// every cross reference.
func Parse(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Resolve(); err != nil {
		return nil, err
	}
	return &c, nil
}

func validateSchema(doc any) error {
	// round trip through JSON so numbers and maps have the shapes the
	// validator expects
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("catalog to json: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("catalog to json: %w", err)
	}
	if err := catalogSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// Resolve checks that every mesh, kind, area and objective reference
// points at something.
func (c *Catalog) Resolve() error {
	kinds := map[string]bool{}
	for _, k := range engine.Kinds() {
		kinds[k] = true
	}
	check := func(owner string, objs []ObjectDef) error {
		for _, o := range objs {
			if _, ok := c.Meshes[o.Mesh]; !ok {
				return fmt.Errorf("%s object %q mesh %q: %w", owner, o.Name, o.Mesh, ErrUnresolvedMesh)
			}
			if !kinds[o.Kind] {
				return fmt.Errorf("%s object %q kind %q: %w", owner, o.Name, o.Kind, engine.ErrUnknownKind)
			}
		}
		return nil
	}

	for _, name := range c.AreaNames() {
		if err := check("area "+name, c.Areas[name].Objects); err != nil {
			return err
		}
	}
	for _, name := range c.MissionNames() {
		m := c.Missions[name]
		area, ok := c.Areas[m.Area]
		if !ok {
			return fmt.Errorf("mission %q area %q: %w", name, m.Area, ErrUnresolved)
		}
		if err := check("mission "+name, m.Objects); err != nil {
			return err
		}
		names := map[string]bool{}
		for _, o := range area.Objects {
			names[o.Name] = true
		}
		for _, o := range m.Objects {
			names[o.Name] = true
		}
		for _, obj := range m.Control.Objectives {
			if !names[obj] {
				return fmt.Errorf("mission %q objective %q: %w", name, obj, ErrUnresolved)
			}
		}
	}
	return nil
}

func (c *Catalog) AreaNames() []string {
	names := make([]string, 0, len(c.Areas))
	for n := range c.Areas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) MissionNames() []string {
	names := make([]string, 0, len(c.Missions))
	for n := range c.Missions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Area returns a deep copy of the named area template.
func (c *Catalog) Area(name string) (*AreaDef, bool) {
	a, ok := c.Areas[name]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// Mission returns a deep copy of the named mission template.
func (c *Catalog) Mission(name string) (*MissionDef, bool) {
	m, ok := c.Missions[name]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

func (a *AreaDef) Clone() *AreaDef {
	out := &AreaDef{}
	if err := copier.CopyWithOption(out, a, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("clone area: %v", err))
	}
	return out
}

func (m *MissionDef) Clone() *MissionDef {
	out := &MissionDef{}
	if err := copier.CopyWithOption(out, m, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("clone mission: %v", err))
	}
	return out
}

// Spawn resolves o's mesh into a ready-to-build spawn description.
func (c *Catalog) Spawn(o ObjectDef) (engine.Spawn, error) {
	mesh, ok := c.Meshes[o.Mesh]
	if !ok {
		return engine.Spawn{}, fmt.Errorf("object %q mesh %q: %w", o.Name, o.Mesh, ErrUnresolvedMesh)
	}
	shape := mesh.Shape
	if shape == "none" {
		shape = ""
	}
	props := make(map[string]float64, len(o.Props))
	for k, v := range o.Props {
		props[k] = v
	}
	return engine.Spawn{
		Kind:     o.Kind,
		Name:     o.Name,
		Position: o.Position.Vector(),
		Rotation: o.Rotation.Vector(),
		Look: engine.Appearance{
			Mesh:      o.Mesh,
			Primitive: mesh.Primitive,
			Model:     mesh.Model,
			Size:      mesh.Size.Vector(),
			Color:     LookupColor(mesh.Color),
		},
		Shape:    shape,
		Mass:     mesh.Mass,
		Bounce:   mesh.Bounce,
		Friction:  mesh.Friction,
		Kinematic: mesh.Kinematic,
		Props:     props,
	}, nil
}
