package render

import (
	"fmt"

	"skyring/internal/camera"
	"skyring/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Recorder is a headless Backend. It logs every call and keeps a single
// pixel framebuffer so blending can be checked without a window.
type Recorder struct {
	Ops     []string
	Passes  []Pass
	Pixel   rl.Color
	Clear   rl.Color
	Width   int32
	Height  int32
	Clicked map[string]bool
	Light   rl.Vector3

	pass *Pass
}

func NewRecorder() *Recorder {
	return &Recorder{Width: 800, Height: 600, Clear: rl.Black, Clicked: map[string]bool{}}
}

func (r *Recorder) log(format string, args ...any) {
	r.Ops = append(r.Ops, fmt.Sprintf(format, args...))
}

func (r *Recorder) BeginFrame() {
	r.Ops = r.Ops[:0]
	r.Passes = r.Passes[:0]
	r.Pixel = r.Clear
	r.log("frame")
}

func (r *Recorder) SetLight(dir rl.Vector3) {
	r.Light = dir
	r.log("light")
}

func (r *Recorder) BeginPass(cam camera.Camera, p Pass) {
	r.Passes = append(r.Passes, p)
	r.pass = &r.Passes[len(r.Passes)-1]
	r.log("pass %s", p.Layer)
}

func (r *Recorder) EndPass() {
	r.pass = nil
	r.log("end pass")
}

func (r *Recorder) DrawPolyline(points []rl.Vector3, c rl.Color) {
	r.log("polyline %d", len(points))
	r.blend(c)
}

func (r *Recorder) DrawMesh(look *engine.Appearance, pos rl.Vector3, rot rl.Quaternion) {
	r.log("mesh %s", look.Mesh)
	r.blend(look.Color)
}

func (r *Recorder) DrawBillboard(pos rl.Vector3, size float32, tint rl.Color) {
	r.log("billboard %.0f", size)
	r.blend(tint)
}

func (r *Recorder) Begin2D() {
	r.log("2d")
}

func (r *Recorder) ScreenSize() (int32, int32) {
	return r.Width, r.Height
}

func (r *Recorder) DrawText(text string, x, y, size int32, c rl.Color) {
	r.log("text %s", text)
}

func (r *Recorder) Panel(bounds rl.Rectangle, title string) {
	r.log("panel %s", title)
}

func (r *Recorder) Button(bounds rl.Rectangle, label string) bool {
	r.log("button %s", label)
	return r.Clicked[label]
}

func (r *Recorder) FillScreen(c rl.Color) {
	r.log("fill %d", c.A)
	r.blend(c)
}

func (r *Recorder) End2D() {
	r.log("end 2d")
}

func (r *Recorder) EndFrame() {
	r.log("end frame")
}

// Current returns the pass being drawn, or nil outside 3D passes.
func (r *Recorder) Current() *Pass {
	return r.pass
}

// blend composites c over the pixel with source-alpha blending.
func (r *Recorder) blend(c rl.Color) {
	a := float32(c.A) / 255
	mix := func(src, dst uint8) uint8 {
		return uint8(float32(src)*a + float32(dst)*(1-a) + 0.5)
	}
	r.Pixel = rl.Color{
		R: mix(c.R, r.Pixel.R),
		G: mix(c.G, r.Pixel.G),
		B: mix(c.B, r.Pixel.B),
		A: 255,
	}
}
