package render

import (
	"log"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  float shine = pow(max(dot(N, normalize(L + V)), 0.0), 32.0) * 0.3;
  vec3 lit = colDiffuse.rgb * (ambient.rgb + NdotL) + vec3(shine) * step(0.0, NdotL);
  finalColor = vec4(lit, colDiffuse.a);
}
`
)

// lighting wraps the directional light shader used by the near pass.
type lighting struct {
	shader     rl.Shader
	viewPosLoc int32
	dirLoc     int32
	ambientLoc int32
}

// loadLighting loads lighting.vs/lighting.fs from dir when both exist and
// falls back to the built-in shader otherwise.
func loadLighting(dir string) *lighting {
	var shader rl.Shader
	vs, fs := filepath.Join(dir, "lighting.vs"), filepath.Join(dir, "lighting.fs")
	if dir != "" && fileExists(vs) && fileExists(fs) {
		shader = rl.LoadShader(vs, fs)
	} else {
		shader = rl.LoadShaderFromMemory(litVS, litFS)
	}
	if !rl.IsShaderValid(shader) {
		log.Printf("Render: lighting shader failed to load, near pass will be unlit")
		return nil
	}
	l := &lighting{
		shader:     shader,
		viewPosLoc: rl.GetShaderLocation(shader, "viewPos"),
		dirLoc:     rl.GetShaderLocation(shader, "lightDir"),
		ambientLoc: rl.GetShaderLocation(shader, "ambient"),
	}
	rl.SetShaderValue(shader, l.ambientLoc, []float32{0.25, 0.25, 0.3, 1}, rl.ShaderUniformVec4)
	return l
}

func (l *lighting) update(viewPos, lightDir rl.Vector3) {
	rl.SetShaderValue(l.shader, l.viewPosLoc, []float32{viewPos.X, viewPos.Y, viewPos.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(l.shader, l.dirLoc, []float32{lightDir.X, lightDir.Y, lightDir.Z}, rl.ShaderUniformVec3)
}

func (l *lighting) unload() {
	rl.UnloadShader(l.shader)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
