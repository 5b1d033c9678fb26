package render

import (
	"skyring/internal/assets"
	"skyring/internal/camera"
	"skyring/internal/config"
	"skyring/internal/engine"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Raylib draws to the open window. Create it after rl.InitWindow.
type Raylib struct {
	Display config.Display
	// LightDir is the direction toward the light for lit passes.
	LightDir rl.Vector3

	light *lighting
	unlit rl.Shader
	cam   rl.Camera3D
	lit   bool
}

func NewRaylib(d config.Display) *Raylib {
	r := &Raylib{
		Display:  d,
		LightDir: rl.Vector3{X: 0.3, Y: 1, Z: 0.2},
		unlit:    rl.LoadMaterialDefault().Shader,
	}
	r.light = loadLighting(d.ShaderDir)
	return r
}

func (r *Raylib) SetLight(dir rl.Vector3) {
	r.LightDir = dir
}

func (r *Raylib) BeginFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
}

// BeginPass enters 3D mode with a projection built for the pass's own clip
// range.
func (r *Raylib) BeginPass(cam camera.Camera, p Pass) {
	r.cam = camera.ToRaylib(cam, r.Display.FOV)
	rl.BeginMode3D(r.cam)

	w, h := r.ScreenSize()
	aspect := float32(w) / float32(h)
	rl.SetMatrixProjection(rl.MatrixPerspective(r.Display.FOV*rl.Deg2rad, aspect, p.Near, p.Far))

	if p.DepthTest {
		rl.EnableDepthTest()
	} else {
		rl.DisableDepthTest()
	}
	// sky-range depth values must not reach the near pass
	if p.Layer == LayerBillboards {
		rl.DisableDepthMask()
	}

	r.lit = p.Lighting && r.light != nil
	if r.lit {
		r.light.update(r.cam.Position, r.LightDir)
	}
}

func (r *Raylib) EndPass() {
	rl.EnableDepthMask()
	rl.EnableDepthTest()
	rl.EndMode3D()
	r.lit = false
}

func (r *Raylib) DrawPolyline(points []rl.Vector3, c rl.Color) {
	for i := 1; i < len(points); i++ {
		rl.DrawLine3D(points[i-1], points[i], c)
	}
}

func (r *Raylib) DrawMesh(look *engine.Appearance, pos rl.Vector3, rot rl.Quaternion) {
	model := assets.ModelFor(look)
	model.Transform = rl.QuaternionToMatrix(rot)
	if model.Materials != nil {
		if r.lit {
			model.Materials.Shader = r.light.shader
		} else {
			model.Materials.Shader = r.unlit
		}
	}
	rl.DrawModel(model, pos, 1, look.Color)
}

func (r *Raylib) DrawBillboard(pos rl.Vector3, size float32, tint rl.Color) {
	rl.DrawBillboard(r.cam, assets.WhiteTexture(), pos, size, tint)
}

func (r *Raylib) Begin2D() {
	rl.DisableDepthTest()
}

func (r *Raylib) ScreenSize() (int32, int32) {
	return int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
}

func (r *Raylib) DrawText(text string, x, y, size int32, c rl.Color) {
	rl.DrawText(text, x, y, size, c)
}

func (r *Raylib) Panel(bounds rl.Rectangle, title string) {
	gui.Panel(bounds, title)
}

func (r *Raylib) Button(bounds rl.Rectangle, label string) bool {
	return gui.Button(bounds, label)
}

func (r *Raylib) FillScreen(c rl.Color) {
	w, h := r.ScreenSize()
	rl.DrawRectangle(0, 0, w, h, c)
}

func (r *Raylib) End2D() {
	rl.EnableDepthTest()
}

func (r *Raylib) EndFrame() {
	rl.EndDrawing()
}

func (r *Raylib) Unload() {
	if r.light != nil {
		r.light.unload()
	}
}
