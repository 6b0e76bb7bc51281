// Package renderer draws a rotating mesh with OpenGL.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/cubespin/internal/engine/lighting"
	"github.com/Faultbox/cubespin/internal/engine/mesh"
	"github.com/Faultbox/cubespin/internal/engine/shader"
	"github.com/Faultbox/cubespin/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Color     string // face color, hex
	ShowEdges bool
	Light     lighting.Sun // zero value means lighting.DefaultSun
}

// edgeDarken is how far edge lines are blended from the face color to black.
const edgeDarken = 0.6

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uViewProj;

out vec3 vWorld;

void main() {
	vWorld = aPos;
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

// Face normals come from screen-space derivatives so the shared, rotating
// vertex buffer needs no normal attribute.
const fragmentShaderSource = `
#version 410 core

in vec3 vWorld;

uniform vec3 uColor;
uniform float uShade;
uniform vec3 uLightDir;
uniform float uAmbient;

out vec4 FragColor;

void main() {
	vec3 n = normalize(cross(dFdx(vWorld), dFdy(vWorld)));
	float diffuse = max(dot(n, uLightDir), 0.0);
	float light = mix(1.0, uAmbient + (1.0 - uAmbient) * diffuse, uShade);
	FragColor = vec4(uColor * light, 1.0);
}
`

// Renderer owns the GL program and buffers for one mesh.
type Renderer struct {
	config Config
	log    *zap.Logger

	program       *shader.Program
	faceColor     [3]float32
	edgeColor     [3]float32
	vao           uint32
	vbo           uint32
	faceEBO       uint32
	edgeEBO       uint32
	faceCount     int32
	edgeCount     int32
	vertexScratch []float32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	face, edge, err := parseColors(cfg.Color)
	if err != nil {
		return nil, err
	}

	if cfg.Light == (lighting.Sun{}) {
		cfg.Light = lighting.DefaultSun()
	}

	r := &Renderer{
		config:    cfg,
		log:       log,
		faceColor: face,
		edgeColor: edge,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	r.program, err = shader.New(vertexShaderSource, fragmentShaderSource,
		"uViewProj", "uColor", "uShade", "uLightDir", "uAmbient")
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	dir, ambient := cfg.Light.Uniforms()
	r.program.Use()
	r.program.SetVec3("uLightDir", dir)
	r.program.SetFloat("uAmbient", ambient)
	gl.UseProgram(0)

	log.Debug("shader program created", zap.Uint32("program", r.program.ID))
	return r, nil
}

// parseColors returns the face color and the darker edge color.
func parseColors(hex string) (face, edge [3]float32, err error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return face, edge, fmt.Errorf("cube color %q: %w", hex, err)
	}
	e := c.BlendLab(colorful.Color{}, edgeDarken).Clamped()
	face = [3]float32{float32(c.R), float32(c.G), float32(c.B)}
	edge = [3]float32{float32(e.R), float32(e.G), float32(e.B)}
	return face, edge, nil
}

// Upload creates the GL buffers for m. Positions are streamed every frame by
// Draw; the index buffers are static.
func (r *Renderer) Upload(m *mesh.Mesh) error {
	if r.vao != 0 {
		return errors.New("geometry already uploaded")
	}
	if len(m.Positions) == 0 || len(m.Indices) == 0 {
		return errors.New("empty mesh")
	}

	r.vertexScratch = make([]float32, len(m.Positions)*3)
	fillVertices(r.vertexScratch, m.Positions)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vertexScratch)*4, gl.Ptr(r.vertexScratch), gl.DYNAMIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &r.faceEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.faceEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	r.faceCount = int32(len(m.Indices))

	if len(m.Edges) > 0 {
		gl.GenBuffers(1, &r.edgeEBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.edgeEBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Edges)*4, unsafe.Pointer(&m.Edges[0]), gl.STATIC_DRAW)
		r.edgeCount = int32(len(m.Edges))
	}

	// Unbind the VAO first so it keeps its element buffer binding.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.log.Debug("geometry uploaded",
		zap.Uint32("vao", r.vao),
		zap.Int("vertices", len(m.Positions)),
		zap.Int32("triangles", r.faceCount/3),
		zap.Int32("edges", r.edgeCount/2),
	)
	return nil
}

func fillVertices(dst []float32, positions []math.Vec3) {
	for i, p := range positions {
		dst[i*3] = float32(p.X)
		dst[i*3+1] = float32(p.Y)
		dst[i*3+2] = float32(p.Z)
	}
}

// Draw clears the framebuffer and draws the current positions.
func (r *Renderer) Draw(positions []math.Vec3, viewProj math.Mat4, width, height int) error {
	if r.vao == 0 {
		return errors.New("no geometry uploaded")
	}
	if len(positions)*3 != len(r.vertexScratch) {
		return fmt.Errorf("vertex count changed: have %d, uploaded %d", len(positions), len(r.vertexScratch)/3)
	}

	fillVertices(r.vertexScratch, positions)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.vertexScratch)*4, gl.Ptr(r.vertexScratch))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj.Float32())
	gl.BindVertexArray(r.vao)

	// Push faces back so edge lines win the depth test.
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(1, 1)
	r.program.SetVec3("uColor", r.faceColor)
	r.program.SetFloat("uShade", 1)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.faceEBO)
	gl.DrawElements(gl.TRIANGLES, r.faceCount, gl.UNSIGNED_INT, nil)
	gl.Disable(gl.POLYGON_OFFSET_FILL)

	if r.config.ShowEdges && r.edgeCount > 0 {
		r.program.SetVec3("uColor", r.edgeColor)
		r.program.SetFloat("uShade", 0)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.edgeEBO)
		gl.DrawElements(gl.LINES, r.edgeCount, gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("GL error 0x%x during draw", code)
	}
	return nil
}

// ReadPixels returns the RGBA contents of the framebuffer, bottom row first.
func (r *Renderer) ReadPixels(width, height int) ([]byte, error) {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if code := gl.GetError(); code != gl.NO_ERROR {
		return nil, fmt.Errorf("GL error 0x%x reading pixels", code)
	}
	return pixels, nil
}

// Close deletes all GL objects. It reports GL errors raised while deleting.
func (r *Renderer) Close() error {
	r.log.Debug("closing renderer")

	var err error
	check := func(what string) {
		if code := gl.GetError(); code != gl.NO_ERROR {
			err = multierr.Append(err, fmt.Errorf("delete %s: GL error 0x%x", what, code))
		}
	}

	if r.edgeEBO != 0 {
		gl.DeleteBuffers(1, &r.edgeEBO)
		r.edgeEBO = 0
		check("edge buffer")
	}
	if r.faceEBO != 0 {
		gl.DeleteBuffers(1, &r.faceEBO)
		r.faceEBO = 0
		check("face buffer")
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
		check("vertex buffer")
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
		check("vertex array")
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
		check("program")
	}
	return err
}
