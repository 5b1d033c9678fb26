package assets

import (
	"skyring/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var manager *Manager

// Manager caches GPU resources. It needs an open window.
type Manager struct {
	models     map[string]rl.Model
	primitives map[string]rl.Model
	textures   map[string]rl.Texture2D
}

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Pink":      rl.Pink,
	"Maroon":    rl.Maroon,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"SkyBlue":   rl.SkyBlue,
	"DarkBlue":  rl.DarkBlue,
	"Lime":      rl.Lime,
	"DarkGreen": rl.DarkGreen,
	"Magenta":   rl.Magenta,
}

// LookupColor returns a raylib color from a name string
func LookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

func Init() {
	manager = &Manager{
		models:     make(map[string]rl.Model),
		primitives: make(map[string]rl.Model),
		textures:   make(map[string]rl.Texture2D),
	}
}

func LoadModel(path string) rl.Model {
	if manager == nil {
		Init()
	}

	if model, exists := manager.models[path]; exists {
		return model
	}

	model := rl.LoadModel(path)
	manager.models[path] = model
	return model
}

// ModelFor returns the model drawn for look, generating primitive meshes
// once per catalog mesh name.
func ModelFor(look *engine.Appearance) rl.Model {
	if look.Primitive == "model" && look.Model != "" {
		return LoadModel(look.Model)
	}
	if manager == nil {
		Init()
	}
	if model, exists := manager.primitives[look.Mesh]; exists {
		return model
	}

	var mesh rl.Mesh
	switch look.Primitive {
	case "sphere":
		mesh = rl.GenMeshSphere(look.Size.X/2, 16, 16)
	default:
		mesh = rl.GenMeshCube(look.Size.X, look.Size.Y, look.Size.Z)
	}
	model := rl.LoadModelFromMesh(mesh)
	manager.primitives[look.Mesh] = model
	return model
}

// WhiteTexture is a 1x1 texture used to draw untextured billboards.
func WhiteTexture() rl.Texture2D {
	if manager == nil {
		Init()
	}
	const key = "__white"
	if tex, exists := manager.textures[key]; exists {
		return tex
	}
	img := rl.GenImageColor(1, 1, rl.White)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	manager.textures[key] = tex
	return tex
}

func Unload() {
	if manager == nil {
		return
	}

	for _, model := range manager.models {
		rl.UnloadModel(model)
	}
	for _, model := range manager.primitives {
		rl.UnloadModel(model)
	}
	for _, texture := range manager.textures {
		rl.UnloadTexture(texture)
	}

	manager = nil
}
