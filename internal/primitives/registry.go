package primitives

import (
	"image"

	"scroll-scene/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Registry maps scene geometries to GPU meshes and owns the shared toon material.
// Meshes are created on first use so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	meshes   map[scene.Geometry]rl.Mesh
	mtl      rl.Material
	ready    bool
	gradient rl.Texture2D
	hasRamp  bool
	view     View
}

// NewRegistry returns an empty registry. Nothing touches the GPU until the first Draw.
func NewRegistry() *Registry {
	return &Registry{meshes: make(map[scene.Geometry]rl.Mesh)}
}

// SetView sets camera position and light for this frame. Call once per frame before drawing.
func (r *Registry) SetView(v View) {
	r.view = v
}

// HasGradient reports whether a gradient map has been uploaded.
func (r *Registry) HasGradient() bool { return r.hasRamp }

// SetGradient uploads img as the toon gradient map with point filtering, replacing any previous one.
// Must run on the render goroutine.
func (r *Registry) SetGradient(img image.Image) {
	if img == nil {
		return
	}
	r.ensureMaterial()
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	if !rl.IsTextureValid(tex) {
		return
	}
	rl.SetTextureFilter(tex, rl.FilterPoint)
	rl.SetTextureWrap(tex, rl.WrapClamp)
	if r.hasRamp {
		rl.UnloadTexture(r.gradient)
	}
	r.gradient = tex
	r.hasRamp = true
	rl.SetMaterialTexture(&r.mtl, rl.MapAlbedo, tex)
}

func (r *Registry) ensureMaterial() {
	if r.ready {
		return
	}
	r.mtl = rl.LoadMaterialDefault()
	if shader := loadToonShader(); rl.IsShaderValid(shader) {
		r.mtl.Shader = shader
	}
	r.ready = true
}

// ensureMesh generates the mesh for g if not yet cached.
func (r *Registry) ensureMesh(g scene.Geometry) (rl.Mesh, bool) {
	if m, ok := r.meshes[g]; ok {
		return m, true
	}
	var m rl.Mesh
	switch g.Kind {
	case scene.Torus:
		// raylib's torus has ring radius size/2 and tube radius radius*size/2.
		m = rl.GenMeshTorus(g.Tube/g.Radius, g.Radius*2, g.TubularSegments, g.RadialSegments)
	case scene.Cone:
		m = rl.GenMeshCone(g.Radius, g.Height, g.RadialSegments)
	case scene.TorusKnot:
		m = rl.GenMeshKnot(knotThickness(g), g.Radius*2, g.TubularSegments, g.RadialSegments)
	default:
		return m, false
	}
	r.meshes[g] = m
	return m, true
}

// knotThickness maps the tube/radius ratio onto raylib's knot thickness range [0.5, 3].
func knotThickness(g scene.Geometry) float32 {
	t := g.Tube / g.Radius * 2
	if t < 0.5 {
		return 0.5
	}
	if t > 3 {
		return 3
	}
	return t
}

// centerOffset shifts meshes whose origin is not their center. raylib's cone has its base at Y=0.
func centerOffset(g scene.Geometry) mgl32.Vec3 {
	if g.Kind == scene.Cone {
		return mgl32.Vec3{0, -g.Height / 2, 0}
	}
	return mgl32.Vec3{}
}

// Draw draws one object with the shared toon material in c.
// Must be called between BeginMode3D and EndMode3D. Unknown geometry kinds are skipped.
func (r *Registry) Draw(o *scene.Object, c colorful.Color) {
	r.ensureMaterial()
	mesh, ok := r.ensureMesh(o.Geometry)
	if !ok {
		return
	}
	r.setToonUniforms(c)
	off := centerOffset(o.Geometry)
	offsetM := rl.MatrixTranslate(off[0], off[1], off[2])
	rotM := rl.MatrixRotateXYZ(rl.NewVector3(o.Rotation[0], o.Rotation[1], o.Rotation[2]))
	transM := rl.MatrixTranslate(o.Position[0], o.Position[1], o.Position[2])
	// Order: offset (center mesh), then rotate, then translate to position.
	transform := rl.MatrixMultiply(rl.MatrixMultiply(offsetM, rotM), transM)
	rl.DrawMesh(mesh, r.mtl, transform)
}

// Unload frees every GPU resource the registry created.
func (r *Registry) Unload() {
	for g, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, g)
	}
	if r.hasRamp {
		rl.UnloadTexture(r.gradient)
		r.hasRamp = false
	}
	if r.ready {
		rl.UnloadShader(r.mtl.Shader)
		r.ready = false
	}
}

func loadToonShader() rl.Shader {
	return rl.LoadShaderFromMemory(toonVS, toonFS)
}

const (
	toonVS = `#version 330
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
	// toonFS samples the gradient map by half-Lambert irradiance. Without a map it falls back
	// to two hard bands at 0.7 and 1.0.
	toonFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform float hasGradient;
uniform vec4 baseColor;
uniform vec3 lightDir;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform vec4 ambient;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  float irradiance = dot(N, L) * 0.5 + 0.5;
  vec3 band;
  if (hasGradient > 0.5) {
    band = texture(texture0, vec2(irradiance, 0.5)).rgb;
  } else {
    band = irradiance < 0.7 ? vec3(0.7) : vec3(1.0);
  }
  vec3 lit = baseColor.rgb * (ambient.rgb + band * lightColor * lightIntensity);
  finalColor = vec4(lit, baseColor.a);
}
`
)

// defaultAmbient keeps the darkest band from going black.
var defaultAmbient = [4]float32{0.08, 0.08, 0.1, 1.0}

// setToonUniforms sets color, light and gradient state on the toon shader (cgo-safe: local arrays).
func (r *Registry) setToonUniforms(c colorful.Color) {
	shader := r.mtl.Shader
	if !rl.IsShaderValid(shader) {
		return
	}
	base := [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}
	dir := [3]float32{r.view.LightDir[0], r.view.LightDir[1], r.view.LightDir[2]}
	lc := r.view.LightColor
	lightColor := [3]float32{float32(lc.R), float32(lc.G), float32(lc.B)}
	amb := defaultAmbient
	hasGradient := float32(0)
	if r.hasRamp {
		hasGradient = 1
	}
	if loc := rl.GetShaderLocation(shader, "baseColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, base[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, dir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{r.view.LightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "hasGradient"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{hasGradient}, rl.ShaderUniformFloat)
	}
}
