// Package sky computes the distant scenery around the play area: the ring,
// its stars and the far jungle clumps. Everything here is in game
// coordinates and is drawn before gameplay geometry.
package sky

import (
	"math/rand"

	"skyring/internal/geom"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Distances and sizes in meters, measured from the central star.
const (
	VoyRadius       = 2e4
	T3Dist          = 2.5e11
	T3Radius        = 2.5e9
	GoldDist        = 2.6e7
	GoldRadius      = 5e5
	RingRadius      = 8e4
	JungleSize      = 20000
	jungleCount     = 150
	jungleSeed      = 2
	ringSegments    = 50
	billboardCutoff = 15
)

// Settings places the gameplay origin relative to the ring. Angles are in
// revolutions; Tilt is an angle in degrees followed by an axis.
type Settings struct {
	GameAngle   float32    `yaml:"game_angle" json:"game_angle"`
	GameYOffset float32    `yaml:"game_y_offset" json:"game_y_offset"`
	GameDOffset float32    `yaml:"game_d_offset" json:"game_d_offset"`
	GameTilt    [4]float32 `yaml:"game_tilt" json:"game_tilt"`
	T3Angle     float32    `yaml:"t3_angle" json:"t3_angle"`
}

func DefaultSettings() Settings {
	return Settings{T3Angle: 0.3}
}

type Billboard struct {
	Name  string
	Pos   rl.Vector3
	Size  float32
	Color rl.Color
}

// Ring is a closed polyline drawn without depth testing.
type Ring struct {
	Points []rl.Vector3
	Color  rl.Color
}

type source struct {
	name  string
	pos   rl.Vector3 // sky frame
	size  float32
	color rl.Color
}

type Sky struct {
	Settings Settings

	tilt    rl.Quaternion
	spin    rl.Quaternion
	offset  rl.Vector3
	sources []source
	rings   []Ring
}

func New(s Settings) *Sky {
	sk := &Sky{Settings: s}
	sk.tilt = geom.Identity()
	axis := rl.Vector3{X: s.GameTilt[1], Y: s.GameTilt[2], Z: s.GameTilt[3]}
	if s.GameTilt[0] != 0 && geom.Length(axis) > 0 {
		sk.tilt = rl.QuaternionFromAxisAngle(axis, s.GameTilt[0]*rl.Deg2rad)
	}
	sk.spin = rl.QuaternionFromAxisAngle(geom.Up, s.GameAngle*geom.Rev2Rad)
	sk.offset = rl.Vector3{Y: -s.GameYOffset, Z: GoldDist + s.GameDOffset}

	t3 := s.T3Angle * geom.Rev2Rad
	sk.sources = []source{
		{"T3", rl.Vector3{X: math32.Sin(t3) * T3Dist, Z: math32.Cos(t3) * T3Dist}, T3Radius * 2, rl.Color{R: 255, G: 244, B: 214, A: 255}},
		{"Gold", rl.Vector3{X: GoldDist}, GoldRadius * 2, rl.Color{R: 255, G: 200, B: 60, A: 255}},
		{"Voy", rl.Vector3{}, VoyRadius * 2, rl.Color{R: 210, G: 230, B: 255, A: 255}},
	}
	for _, p := range junglePositions() {
		sk.sources = append(sk.sources, source{"Jungle", p, JungleSize, rl.Color{R: 60, G: 150, B: 70, A: 255}})
	}
	sk.rings = sk.buildRings()
	return sk
}

// junglePositions scatters the far jungles through the ring tube. The seed
// is fixed so every run sees the same sky.
func junglePositions() []rl.Vector3 {
	rng := rand.New(rand.NewSource(jungleSeed))
	out := make([]rl.Vector3, 0, jungleCount)
	for i := 0; i < jungleCount; i++ {
		ang := rng.Float32() * 2 * math32.Pi
		r := rng.Float32()*RingRadius - RingRadius/2
		y := rng.Float32()*RingRadius - RingRadius/2
		out = append(out, rl.Vector3{
			X: math32.Cos(ang) * (GoldDist + r),
			Y: y,
			Z: math32.Sin(ang) * (GoldDist + r),
		})
	}
	return out
}

// ToGame maps a point from the ring frame into game coordinates.
func (s *Sky) ToGame(p rl.Vector3) rl.Vector3 {
	return geom.VecToWorld(s.tilt, geom.Add(geom.VecToWorld(s.spin, p), s.offset))
}

// ToSky is the inverse of ToGame.
func (s *Sky) ToSky(p rl.Vector3) rl.Vector3 {
	return geom.VecToLocal(s.spin, geom.Sub(geom.VecToLocal(s.tilt, p), s.offset))
}

func (s *Sky) buildRings() []Ring {
	rings := make([]Ring, 0, 7)
	rings = append(rings, s.circle(0, rl.Color{R: 255, G: 255, B: 255, A: 128}))
	// faint haze around the ring, each layer tipped a little further
	for i := 1; i <= 6; i++ {
		rings = append(rings, s.circle(float32(2*i)*rl.Deg2rad, rl.Color{R: 255, G: 255, B: 255, A: 20}))
	}
	return rings
}

func (s *Sky) circle(tip float32, c rl.Color) Ring {
	q := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, tip)
	pts := make([]rl.Vector3, 0, ringSegments+1)
	for i := 0; i <= ringSegments; i++ {
		a := float32(i) / ringSegments * 2 * math32.Pi
		p := rl.Vector3{X: math32.Cos(a) * GoldDist, Z: math32.Sin(a) * GoldDist}
		pts = append(pts, s.ToGame(geom.VecToWorld(q, p)))
	}
	return Ring{Points: pts, Color: c}
}

func (s *Sky) Rings() []Ring {
	return s.rings
}

// Billboards returns the sky billboards worth drawing from cam. A billboard
// is skipped when width*height/distance falls below the cutoff.
func (s *Sky) Billboards(cam rl.Vector3) []Billboard {
	local := s.ToSky(cam)
	out := make([]Billboard, 0, 8)
	for _, src := range s.sources {
		d := geom.Dist(src.pos, local)
		if d <= 0 || src.size*src.size/d < billboardCutoff {
			continue
		}
		out = append(out, Billboard{Name: src.name, Pos: s.ToGame(src.pos), Size: src.size, Color: src.color})
	}
	return out
}

// LightDir points from the play area toward T3, the system's star.
func (s *Sky) LightDir() rl.Vector3 {
	return geom.Normalize(s.ToGame(s.sources[0].pos))
}
