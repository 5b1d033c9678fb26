// Package collision finds touching geometry each step. World-fixed geometry
// lives in a static space that is never tested against itself; moving
// geometry lives in a dynamic space tested against itself and the static one.
package collision

import (
	"errors"
	"fmt"
	"log"

	"skyring/internal/geom"
	"skyring/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrNoBody = errors.New("dynamic geom has no body")

// Pairs is the symmetric adjacency map produced by one collision pass.
type Pairs map[*Geom][]*Geom

// Touching reports whether a and b were found in contact.
func (p Pairs) Touching(a, b *Geom) bool {
	for _, o := range p[a] {
		if o == b {
			return true
		}
	}
	return false
}

// Count returns the number of unordered pairs.
func (p Pairs) Count() int {
	n := 0
	for _, l := range p {
		n += len(l)
	}
	return n / 2
}

func (p Pairs) record(a, b *Geom) {
	p[a] = append(p[a], b)
	p[b] = append(p[b], a)
}

type Broadphase struct {
	Static  *Space
	Dynamic *Space

	pairs  Pairs
	nextID uint64
}

func NewBroadphase(cellSize float32) *Broadphase {
	return &Broadphase{
		Static:  NewSpace("static", cellSize),
		Dynamic: NewSpace("dynamic", cellSize),
		pairs:   make(Pairs),
	}
}

func (bp *Broadphase) newGeom(kind ShapeKind) *Geom {
	bp.nextID++
	return &Geom{id: bp.nextID, Kind: kind, Orientation: geom.Identity()}
}

func (bp *Broadphase) NewSphere(radius float32) *Geom {
	g := bp.newGeom(ShapeSphere)
	g.Radius = radius
	return g
}

func (bp *Broadphase) NewBox(size rl.Vector3) *Geom {
	g := bp.newGeom(ShapeBox)
	g.Size = size
	return g
}

func (bp *Broadphase) AddStatic(g *Geom) {
	bp.Static.add(g)
}

func (bp *Broadphase) AddDynamic(g *Geom) error {
	if g.Body == nil {
		return fmt.Errorf("add geom %d: %w", g.id, ErrNoBody)
	}
	bp.Dynamic.add(g)
	return nil
}

// Remove takes g out of whichever space holds it.
func (bp *Broadphase) Remove(g *Geom) {
	if g == nil || g.space == nil {
		return
	}
	if !g.space.remove(g) {
		log.Printf("Collision: geom %d not found in %s space", g.id, g.space.Name)
	}
}

// Pairs returns the result of the last Collide call.
func (bp *Broadphase) Pairs() Pairs {
	return bp.pairs
}

// Collide rebuilds the adjacency map from scratch and appends one contact
// joint to cs for every contact found.
func (bp *Broadphase) Collide(cs *physics.ContactSet) Pairs {
	bp.pairs = make(Pairs)

	bp.Dynamic.rebuild()
	if bp.Static.dirty {
		bp.Static.rebuild()
	}

	for _, a := range bp.Dynamic.geoms {
		bounds := a.Bounds()
		bp.Dynamic.query(bounds, func(b *Geom) {
			if b.id <= a.id {
				return
			}
			bp.test(a, b, cs)
		})
		bp.Static.query(bounds, func(b *Geom) {
			bp.test(a, b, cs)
		})
	}
	return bp.pairs
}

func (bp *Broadphase) test(a, b *Geom, cs *physics.ContactSet) {
	c, ok := narrow(a, b)
	if !ok {
		return
	}
	bp.pairs.record(a, b)
	if cs == nil {
		return
	}
	cs.Add(physics.ContactJoint{
		A:        a.Body,
		B:        b.Body,
		Normal:   c.normal,
		Point:    c.point,
		Depth:    c.depth,
		Bounce:   (a.Bounce + b.Bounce) / 2,
		Friction: (a.Friction + b.Friction) / 2,
	})
}
