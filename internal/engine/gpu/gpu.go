// Package gpu defines the subset of OpenGL the hologram core draws with.
//
// The interface is implemented by renderer.Device on top of go-gl and by
// gputest.Recorder in tests, so the core can run without a GL context.
package gpu

import "github.com/go-gl/mathgl/mgl32"

// OpenGL enum values used by the core. They match the GL headers.
const (
	NoError     uint32 = 0
	OutOfMemory uint32 = 0x0505

	DepthBufferBit uint32 = 0x00000100
	ColorBufferBit uint32 = 0x00004000

	DepthTest   uint32 = 0x0B71
	ScissorTest uint32 = 0x0C11

	Triangles uint32 = 0x0004
	Float     uint32 = 0x1406

	ArrayBuffer uint32 = 0x8892
	StaticDraw  uint32 = 0x88E4

	Texture2D uint32 = 0x0DE1
	Texture0  uint32 = 0x84C0
)

// GL is the OpenGL surface used by the mesh uploader and the hologram
// renderer. All calls happen on the render thread.
type GL interface {
	Enable(capability uint32)
	Disable(capability uint32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	Scissor(x, y, width, height int32)
	GetError() uint32

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []float32, usage uint32)

	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	GetAttribLocation(program uint32, name string) int32
	UniformMatrix4fv(location int32, m mgl32.Mat4)
	Uniform3f(location int32, x, y, z float32)
	Uniform1i(location int32, v int32)

	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)

	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	DrawArrays(mode uint32, first, count int32)
}

// Rect is a window-space rectangle with its origin at the lower left, as
// glViewport and glScissor take it.
type Rect struct {
	X, Y, Width, Height int32
}

// Contains reports whether pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersect returns the overlap of r and o, or an empty Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
