package render

import (
	"fmt"
	"strings"
	"testing"

	"skyring/internal/camera"
	"skyring/internal/config"
	"skyring/internal/engine"
	"skyring/internal/sky"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func objAt(name string, z float32) *engine.GameObject {
	g := engine.NewGameObject(name, "Prop")
	g.Position = rl.Vector3{Z: z}
	g.Look = engine.Appearance{Mesh: name, Primitive: "cube", Size: rl.Vector3{X: 1, Y: 1, Z: 1}, Color: rl.Red}
	return g
}

func indexOf(ops []string, prefix string) int {
	for i, op := range ops {
		if strings.HasPrefix(op, prefix) {
			return i
		}
	}
	return -1
}

func TestPartitionBoundary(t *testing.T) {
	p := NewPipeline(NewRecorder(), config.Default().Display)
	th := p.Threshold()
	if th != 45000 {
		t.Fatalf("Expected threshold 0.9 of the gameplay clip (45000), got %f", th)
	}
	cam := rl.Vector3{}
	objs := []engine.Object{objAt("under", th-0.01), objAt("at", th), objAt("past", th+0.01), objAt("close", 5)}
	near, far := Partition(objs, cam, th)
	if len(near) != 3 || len(far) != 1 {
		t.Fatalf("Expected 3 near 1 far, got %d %d", len(near), len(far))
	}
	if far[0].Base().Name != "past" {
		t.Errorf("Expected past to be far, got %s", far[0].Base().Name)
	}
	for i, want := range []string{"under", "at", "close"} {
		if near[i].Base().Name != want {
			t.Errorf("Expected near[%d] = %s, got %s", i, want, near[i].Base().Name)
		}
	}
}

func TestFrameLayerOrder(t *testing.T) {
	rec := NewRecorder()
	d := config.Default().Display
	p := NewPipeline(rec, d)
	cam := camera.NewFreeCamera(rl.Vector3{}, rl.Vector3{Z: 1})

	objs := []engine.Object{objAt("nearbox", 10), objAt("farbox", d.GameplayClip)}
	p.Frame(FrameInput{
		Camera:  cam,
		Objects: objs,
		Sky:     sky.New(sky.DefaultSettings()),
		Overlay: func(b Backend) { b.DrawText("hud", 0, 0, 10, rl.White) },
		Fade:    rl.Color{A: 128},
		Debug: func(near, far int) []string {
			return []string{fmt.Sprintf("dbg %d %d", near, far)}
		},
	})

	order := []string{"frame", "pass sky", "polyline", "pass billboards", "billboard", "pass near", "mesh nearbox", "2d", "text hud", "fill", "text dbg", "end frame"}
	last := -1
	for _, want := range order {
		i := indexOf(rec.Ops[last+1:], want)
		if i < 0 {
			t.Fatalf("Expected %q after op %d, ops: %v", want, last, rec.Ops)
		}
		last += i + 1
	}
	if indexOf(rec.Ops, "mesh farbox") >= 0 {
		t.Errorf("Expected far object drawn as billboard, not mesh")
	}

	if indexOf(rec.Ops, "text dbg 1 1") < 0 {
		t.Errorf("Expected debug text with this frame's counts, got %v", rec.Ops)
	}
}

func TestDebugCountsFollowCurrentFrame(t *testing.T) {
	rec := NewRecorder()
	d := config.Default().Display
	p := NewPipeline(rec, d)
	cam := camera.NewFreeCamera(rl.Vector3{}, rl.Vector3{Z: 1})
	var gotNear, gotFar int
	debug := func(near, far int) []string {
		gotNear, gotFar = near, far
		return nil
	}

	p.Frame(FrameInput{Camera: cam, Objects: []engine.Object{objAt("a", 10)}, Debug: debug})
	p.Frame(FrameInput{Camera: cam, Objects: []engine.Object{objAt("b", 10), objAt("c", d.GameplayClip), objAt("e", d.GameplayClip)}, Debug: debug})
	if gotNear != 1 || gotFar != 2 {
		t.Errorf("Expected 1 near 2 far for the second frame, got %d %d", gotNear, gotFar)
	}
}

func TestLightFollowsSky(t *testing.T) {
	rec := NewRecorder()
	p := NewPipeline(rec, config.Default().Display)
	cam := camera.NewTitleCamera()

	dawn := sky.New(sky.Settings{T3Angle: 0.05})
	p.Frame(FrameInput{Camera: cam, Sky: dawn})
	first := rec.Light
	if first != dawn.LightDir() {
		t.Errorf("Expected light %v, got %v", dawn.LightDir(), first)
	}
	if indexOf(rec.Ops, "light") > indexOf(rec.Ops, "pass near") {
		t.Errorf("Expected light set before the near pass, got %v", rec.Ops)
	}

	tilted := sky.New(sky.Settings{T3Angle: 0.3, GameTilt: [4]float32{30, 1, 0, 0}})
	p.Frame(FrameInput{Camera: cam, Sky: tilted})
	if rec.Light != tilted.LightDir() {
		t.Errorf("Expected light %v, got %v", tilted.LightDir(), rec.Light)
	}
	if rec.Light == first {
		t.Errorf("Expected a different light for a different sky, got %v twice", first)
	}
}

func TestFramePassSettings(t *testing.T) {
	rec := NewRecorder()
	d := config.Default().Display
	p := NewPipeline(rec, d)
	p.Frame(FrameInput{Camera: camera.NewTitleCamera()})

	if len(rec.Passes) != 3 {
		t.Fatalf("Expected 3 passes, got %d", len(rec.Passes))
	}
	skyPass, bb, near := rec.Passes[0], rec.Passes[1], rec.Passes[2]
	if skyPass.DepthTest || skyPass.Lighting || skyPass.Far != d.SkyClip {
		t.Errorf("Expected sky pass without depth test at sky clip, got %+v", skyPass)
	}
	if !bb.DepthTest || bb.Lighting || bb.Far != d.SkyClip {
		t.Errorf("Expected billboard pass depth tested and unlit, got %+v", bb)
	}
	if !near.DepthTest || !near.Lighting || near.Far != d.GameplayClip {
		t.Errorf("Expected near pass lit at gameplay clip, got %+v", near)
	}
}

func TestFadeBlendsOverScene(t *testing.T) {
	rec := NewRecorder()
	rec.Clear = rl.Color{R: 200, G: 100, B: 0, A: 255}
	p := NewPipeline(rec, config.Default().Display)
	p.Frame(FrameInput{
		Camera: camera.NewFreeCamera(rl.Vector3{}, rl.Vector3{Z: 1}),
		Fade:   rl.Color{R: 0, G: 0, B: 0, A: 128},
	})
	// 128/255 of black over the clear color
	if rec.Pixel.R != 100 || rec.Pixel.G != 50 || rec.Pixel.B != 0 {
		t.Errorf("Expected pixel (100,50,0), got %v", rec.Pixel)
	}
}

func TestNoFadeWhenTransparent(t *testing.T) {
	rec := NewRecorder()
	p := NewPipeline(rec, config.Default().Display)
	p.Frame(FrameInput{Camera: camera.NewTitleCamera()})
	if indexOf(rec.Ops, "fill") >= 0 {
		t.Errorf("Expected no fill without a fade, got %v", rec.Ops)
	}
}
