// Package hologram draws one scene three times into separate scissored
// viewports of a single surface, the layout a reflective pyramid needs to
// show the model from three sides.
package hologram

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/hologram/internal/engine/gpu"
	"github.com/Faultbox/hologram/internal/engine/mesh"
	"github.com/Faultbox/hologram/internal/engine/transform"
	"github.com/Faultbox/hologram/internal/logger"
)

// Shader binding names.
const (
	UniformMVP      = "u_MVPMatrix"
	UniformMV       = "u_MVMatrix"
	UniformLightPos = "u_LightPos"
	UniformTexture  = "u_Texture"

	AttribPosition = "a_Position"
	AttribNormal   = "a_Normal"
	AttribTexCoord = "a_TexCoordinate"
)

// Attributes lists the vertex attributes in the location order the shader
// program is linked with.
var Attributes = []string{AttribPosition, AttribNormal, AttribTexCoord}

// ErrClosed is returned by Init after Close.
var ErrClosed = errors.New("hologram: renderer closed")

// UniformNotFoundError reports a shader binding the program does not expose.
// The renderer keeps drawing and leaves that binding unset.
type UniformNotFoundError struct {
	Program   uint32
	Name      string
	Attribute bool
}

func (e *UniformNotFoundError) Error() string {
	kind := "uniform"
	if e.Attribute {
		kind = "attribute"
	}
	return fmt.Sprintf("hologram: %s %q not found in program %d", kind, e.Name, e.Program)
}

// State is the renderer lifecycle.
type State int

const (
	Uninitialized State = iota
	Ready
	Rendering
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Rendering:
		return "rendering"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Scene is what the host hands over once the GL context exists. Mesh may be
// nil when buffer creation failed; the regions are then cleared but empty.
type Scene struct {
	Program uint32
	Texture uint32
	Mesh    *mesh.GPUMesh
}

// Options configures a Renderer.
type Options struct {
	ClearColor [4]float32
}

type locations struct {
	mvp, mv, light, texture    int32
	position, normal, texCoord int32
}

// Renderer runs on the render thread only.
type Renderer struct {
	gl       gpu.GL
	pipeline *transform.Pipeline
	opts     Options
	log      *zap.Logger

	state   State
	scene   Scene
	loc     locations
	missing []error

	width, height int32
	regions       [3]gpu.Rect
}

// New returns an uninitialized renderer drawing through gl with matrices
// from pipeline.
func New(gl gpu.GL, pipeline *transform.Pipeline, opts Options) *Renderer {
	return &Renderer{
		gl:       gl,
		pipeline: pipeline,
		opts:     opts,
		log:      logger.Named("hologram"),
	}
}

// State returns the lifecycle state.
func (r *Renderer) State() State {
	return r.state
}

// Missing returns the bindings Init could not resolve.
func (r *Renderer) Missing() []error {
	return r.missing
}

// Regions returns the viewports of the current surface.
func (r *Renderer) Regions() [3]gpu.Rect {
	return r.regions
}

// Init resolves shader bindings, resets the model orientation and sets the
// fixed GL state. It may be called again after the context is recreated.
func (r *Renderer) Init(scene Scene) error {
	if r.state == Closed {
		return ErrClosed
	}
	if scene.Program == 0 {
		return errors.New("hologram: no shader program")
	}

	r.scene = scene
	r.missing = r.missing[:0]
	r.loc = locations{
		mvp:      r.uniform(UniformMVP),
		mv:       r.uniform(UniformMV),
		light:    r.uniform(UniformLightPos),
		texture:  r.uniform(UniformTexture),
		position: r.attrib(AttribPosition),
		normal:   r.attrib(AttribNormal),
		texCoord: r.attrib(AttribTexCoord),
	}

	r.pipeline.Reset()

	c := r.opts.ClearColor
	r.gl.ClearColor(c[0], c[1], c[2], c[3])
	r.gl.Enable(gpu.DepthTest)

	r.state = Ready
	vertices := int32(0)
	if scene.Mesh != nil {
		vertices = scene.Mesh.Count
	}
	r.log.Info("renderer ready",
		zap.Uint32("program", scene.Program),
		zap.Uint32("texture", scene.Texture),
		zap.Int32("vertices", vertices),
		zap.Int("missing_bindings", len(r.missing)),
	)
	return nil
}

func (r *Renderer) uniform(name string) int32 {
	loc := r.gl.GetUniformLocation(r.scene.Program, name)
	if loc < 0 {
		r.notFound(&UniformNotFoundError{Program: r.scene.Program, Name: name})
	}
	return loc
}

func (r *Renderer) attrib(name string) int32 {
	loc := r.gl.GetAttribLocation(r.scene.Program, name)
	if loc < 0 {
		r.notFound(&UniformNotFoundError{Program: r.scene.Program, Name: name, Attribute: true})
	}
	return loc
}

func (r *Renderer) notFound(err *UniformNotFoundError) {
	r.missing = append(r.missing, err)
	r.log.Warn("shader binding not found, leaving it unset", zap.Error(err))
}

// Resize records the surface size and recomputes projection and regions.
func (r *Renderer) Resize(width, height int) {
	if r.state == Closed {
		return
	}
	r.width, r.height = int32(width), int32(height)
	r.regions = Regions(r.width, r.height)
	r.pipeline.Resize(width, height)
	r.log.Debug("surface resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// DrawFrame advances the transform pipeline once and draws the scene into
// each region with the same matrices.
func (r *Renderer) DrawFrame() {
	if r.state != Ready && r.state != Rendering {
		return
	}
	if r.width <= 0 || r.height <= 0 {
		return
	}
	r.state = Rendering

	// Scissoring stays on for the whole frame. The first clear covers the
	// parts of the surface no region reaches.
	r.gl.Enable(gpu.ScissorTest)
	r.gl.Scissor(0, 0, r.width, r.height)
	r.gl.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)

	frame := r.pipeline.Next()

	for _, reg := range r.regions {
		r.gl.Viewport(reg.X, reg.Y, reg.Width, reg.Height)
		r.gl.Scissor(reg.X, reg.Y, reg.Width, reg.Height)
		r.gl.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)
		r.drawScene(frame)
	}
}

func (r *Renderer) drawScene(f transform.Frame) {
	m := r.scene.Mesh
	if m == nil || m.Count == 0 {
		return
	}

	r.gl.UseProgram(r.scene.Program)

	if r.loc.mv >= 0 {
		r.gl.UniformMatrix4fv(r.loc.mv, f.ModelView)
	}
	if r.loc.mvp >= 0 {
		r.gl.UniformMatrix4fv(r.loc.mvp, f.MVP)
	}
	if r.loc.light >= 0 {
		r.gl.Uniform3f(r.loc.light, f.LightEye.X(), f.LightEye.Y(), f.LightEye.Z())
	}

	r.gl.ActiveTexture(gpu.Texture0)
	r.gl.BindTexture(gpu.Texture2D, r.scene.Texture)
	if r.loc.texture >= 0 {
		r.gl.Uniform1i(r.loc.texture, 0)
	}

	r.bindStream(r.loc.position, m.Positions, 3)
	r.bindStream(r.loc.normal, m.Normals, 3)
	r.bindStream(r.loc.texCoord, m.TexCoords, 2)
	r.gl.BindBuffer(gpu.ArrayBuffer, 0)

	r.gl.DrawArrays(gpu.Triangles, 0, m.Count)
}

func (r *Renderer) bindStream(loc int32, buffer uint32, size int32) {
	if loc < 0 {
		return
	}
	r.gl.BindBuffer(gpu.ArrayBuffer, buffer)
	r.gl.EnableVertexAttribArray(uint32(loc))
	r.gl.VertexAttribPointer(uint32(loc), size, gpu.Float, false, 0, 0)
}

// Close releases the mesh buffers. The renderer cannot be used afterwards.
func (r *Renderer) Close() {
	if r.state == Closed {
		return
	}
	r.scene.Mesh.Delete(r.gl)
	r.scene = Scene{}
	r.state = Closed
	r.log.Info("renderer closed")
}
