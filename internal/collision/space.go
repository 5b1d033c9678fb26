package collision

import (
	"skyring/internal/geom"

	"github.com/chewxy/math32"
)

// DefaultCellSize is the edge length of a broadphase grid cell.
const DefaultCellSize = 16.0

// Geoms covering more cells than this go to a list checked against every
// query instead of being stamped into the grid.
const maxCellsPerGeom = 64

type cellKey struct {
	X, Y, Z int32
}

// Space is a uniform-grid spatial partition. Insertion order is preserved so
// queries visit candidates in a stable order.
type Space struct {
	Name     string
	cellSize float32
	geoms    []*Geom
	grid     map[cellKey][]*Geom
	large    []*Geom
	dirty    bool
}

func NewSpace(name string, cellSize float32) *Space {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Space{
		Name:     name,
		cellSize: cellSize,
		grid:     make(map[cellKey][]*Geom),
	}
}

func (s *Space) add(g *Geom) {
	g.space = s
	s.geoms = append(s.geoms, g)
	s.dirty = true
}

func (s *Space) remove(g *Geom) bool {
	for i, o := range s.geoms {
		if o == g {
			s.geoms = append(s.geoms[:i], s.geoms[i+1:]...)
			g.space = nil
			s.dirty = true
			return true
		}
	}
	return false
}

func (s *Space) Geoms() []*Geom {
	return s.geoms
}

func (s *Space) Len() int {
	return len(s.geoms)
}

func (s *Space) cellRange(b geom.AABB) (lo, hi cellKey) {
	lo = cellKey{s.cell(b.Min.X), s.cell(b.Min.Y), s.cell(b.Min.Z)}
	hi = cellKey{s.cell(b.Max.X), s.cell(b.Max.Y), s.cell(b.Max.Z)}
	return lo, hi
}

func (s *Space) cell(v float32) int32 {
	return int32(math32.Floor(v / s.cellSize))
}

// rebuild clears and repopulates the grid from current geom bounds.
func (s *Space) rebuild() {
	for k := range s.grid {
		delete(s.grid, k)
	}
	s.large = s.large[:0]
	for _, g := range s.geoms {
		lo, hi := s.cellRange(g.Bounds())
		n := int64(hi.X-lo.X+1) * int64(hi.Y-lo.Y+1) * int64(hi.Z-lo.Z+1)
		if n > maxCellsPerGeom {
			s.large = append(s.large, g)
			continue
		}
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				for z := lo.Z; z <= hi.Z; z++ {
					k := cellKey{x, y, z}
					s.grid[k] = append(s.grid[k], g)
				}
			}
		}
	}
	s.dirty = false
}

// query calls fn once for every geom whose bounds overlap b.
func (s *Space) query(b geom.AABB, fn func(*Geom)) {
	seen := make(map[*Geom]struct{})
	visit := func(g *Geom) {
		if _, ok := seen[g]; ok {
			return
		}
		seen[g] = struct{}{}
		if g.Bounds().Intersects(b) {
			fn(g)
		}
	}

	lo, hi := s.cellRange(b)
	n := int64(hi.X-lo.X+1) * int64(hi.Y-lo.Y+1) * int64(hi.Z-lo.Z+1)
	if n > maxCellsPerGeom {
		for _, g := range s.geoms {
			visit(g)
		}
		return
	}
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				for _, g := range s.grid[cellKey{x, y, z}] {
					visit(g)
				}
			}
		}
	}
	for _, g := range s.large {
		visit(g)
	}
}
