// Package render draws one frame in fixed layers: sky, billboards and far
// objects, near objects, the 2D overlay, the fade and the debug overlay.
package render

import (
	"skyring/internal/camera"
	"skyring/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Layer int

const (
	LayerSky Layer = iota
	LayerBillboards
	LayerNear
)

func (l Layer) String() string {
	switch l {
	case LayerSky:
		return "sky"
	case LayerBillboards:
		return "billboards"
	case LayerNear:
		return "near"
	}
	return "unknown"
}

// Pass is the projection and state one 3D layer is drawn with.
type Pass struct {
	Layer     Layer
	Near      float32
	Far       float32
	DepthTest bool
	Lighting  bool
}

// Backend is everything the pipeline draws through. Only the pipeline calls
// the Begin/End methods; objects and overlays see the drawing calls.
type Backend interface {
	engine.Drawer

	BeginFrame()
	// SetLight points lit passes toward dir until the next call.
	SetLight(dir rl.Vector3)
	BeginPass(cam camera.Camera, p Pass)
	DrawPolyline(points []rl.Vector3, c rl.Color)
	EndPass()

	Begin2D()
	ScreenSize() (w, h int32)
	DrawText(text string, x, y, size int32, c rl.Color)
	Panel(bounds rl.Rectangle, title string)
	Button(bounds rl.Rectangle, label string) bool
	FillScreen(c rl.Color)
	End2D()

	EndFrame()
}
