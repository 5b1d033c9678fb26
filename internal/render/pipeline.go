package render

import (
	"fmt"

	"skyring/internal/camera"
	"skyring/internal/config"
	"skyring/internal/engine"
	"skyring/internal/geom"
	"skyring/internal/sky"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Partition splits objs by distance from camPos. An object is far only when
// its distance is strictly greater than threshold.
func Partition(objs []engine.Object, camPos rl.Vector3, threshold float32) (near, far []engine.Object) {
	limit := threshold * threshold
	for _, o := range objs {
		if geom.DistSq(o.Base().Position, camPos) > limit {
			far = append(far, o)
		} else {
			near = append(near, o)
		}
	}
	return near, far
}

// FrameInput is the read-only state one frame is drawn from.
type FrameInput struct {
	Camera  camera.Camera
	Objects []engine.Object
	Sky     *sky.Sky
	// Overlay draws the mission HUD or the title menu.
	Overlay func(b Backend)
	// Fade is composited over everything but the debug text. Zero alpha
	// skips it.
	Fade rl.Color
	// Debug formats the debug overlay from this frame's near and far
	// object counts. Nil draws no debug text.
	Debug func(near, far int) []string
}

type Pipeline struct {
	Backend Backend
	Display config.Display
}

func NewPipeline(b Backend, d config.Display) *Pipeline {
	return &Pipeline{Backend: b, Display: d}
}

// Threshold is the near/far cutoff distance.
func (p *Pipeline) Threshold() float32 {
	return p.Display.NearFactor * p.Display.GameplayClip
}

func (p *Pipeline) Frame(in FrameInput) {
	b := p.Backend
	camPos := in.Camera.Position()
	near, far := Partition(in.Objects, camPos, p.Threshold())

	b.BeginFrame()
	if in.Sky != nil {
		b.SetLight(in.Sky.LightDir())
	}

	b.BeginPass(in.Camera, Pass{Layer: LayerSky, Near: p.Display.NearClip, Far: p.Display.SkyClip})
	if in.Sky != nil {
		for _, r := range in.Sky.Rings() {
			b.DrawPolyline(r.Points, r.Color)
		}
	}
	b.EndPass()

	b.BeginPass(in.Camera, Pass{Layer: LayerBillboards, Near: p.Display.NearClip, Far: p.Display.SkyClip, DepthTest: true})
	if in.Sky != nil {
		for _, bb := range in.Sky.Billboards(camPos) {
			b.DrawBillboard(bb.Pos, bb.Size, bb.Color)
		}
	}
	for _, o := range far {
		o.DistDraw(b)
	}
	b.EndPass()

	b.BeginPass(in.Camera, Pass{Layer: LayerNear, Near: p.Display.NearClip, Far: p.Display.GameplayClip, DepthTest: true, Lighting: true})
	for _, o := range near {
		o.Draw(b)
	}
	b.EndPass()

	b.Begin2D()
	if in.Overlay != nil {
		in.Overlay(b)
	}
	if in.Fade.A > 0 {
		b.FillScreen(in.Fade)
	}
	if in.Debug != nil {
		for i, line := range in.Debug(len(near), len(far)) {
			b.DrawText(line, 10, 10+int32(i)*18, 16, rl.Lime)
		}
	}
	b.End2D()

	b.EndFrame()
}

// DebugLines formats the standard debug overlay.
func DebugLines(step uint64, objects, near, far, pairs int) []string {
	return []string{
		fmt.Sprintf("step %d", step),
		fmt.Sprintf("objects %d (near %d, far %d)", objects, near, far),
		fmt.Sprintf("contacts %d", pairs),
	}
}
