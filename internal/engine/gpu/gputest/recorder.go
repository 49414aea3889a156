// Package gputest provides a recording gpu.GL for tests.
package gputest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hologram/internal/engine/gpu"
)

// Call is one recorded GL call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recorder implements gpu.GL by logging calls and simulating a tiny
// framebuffer. Each pixel holds 0 after a clear and n after the n-th draw
// call, which makes viewport and scissor leaks visible.
type Recorder struct {
	Calls []Call

	// Uniforms and Attribs map names to locations. Unknown names return -1.
	Uniforms map[string]int32
	Attribs  map[string]int32

	// FailGenBuffer makes the n-th GenBuffer call (1-based) return 0.
	FailGenBuffer int
	// UploadError is returned by GetError after the first BufferData call.
	UploadError uint32

	// Matrices and vectors last written per uniform location.
	Matrices map[int32]mgl32.Mat4
	Vec3s    map[int32]mgl32.Vec3
	Ints     map[int32]int32

	Width, Height int32
	Pixels        []int
	Draws         int

	enabled    map[uint32]bool
	viewport   gpu.Rect
	scissor    gpu.Rect
	nextBuffer uint32
	genCalls   int
	pendingErr uint32
	live       map[uint32]bool
}

// NewRecorder returns a Recorder with a width×height framebuffer, filled
// with -1 to mark pixels nobody touched.
func NewRecorder(width, height int32) *Recorder {
	r := &Recorder{
		Uniforms: map[string]int32{},
		Attribs:  map[string]int32{},
		Matrices: map[int32]mgl32.Mat4{},
		Vec3s:    map[int32]mgl32.Vec3{},
		Ints:     map[int32]int32{},
		Width:    width,
		Height:   height,
		Pixels:   make([]int, width*height),
		enabled:  map[uint32]bool{},
		live:     map[uint32]bool{},
	}
	for i := range r.Pixels {
		r.Pixels[i] = -1
	}
	return r
}

// Pixel returns the value at (x, y), origin lower left.
func (r *Recorder) Pixel(x, y int32) int {
	return r.Pixels[y*r.Width+x]
}

// Named returns the recorded calls with the given name.
func (r *Recorder) Named(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// LiveBuffers returns how many buffers were generated and not deleted.
func (r *Recorder) LiveBuffers() int {
	return len(r.live)
}

// Reset forgets recorded calls but keeps GL state.
func (r *Recorder) Reset() {
	r.Calls = nil
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) fill(area gpu.Rect, v int) {
	area = area.Intersect(gpu.Rect{Width: r.Width, Height: r.Height})
	if r.enabled[gpu.ScissorTest] {
		area = area.Intersect(r.scissor)
	}
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			r.Pixels[y*r.Width+x] = v
		}
	}
}

func (r *Recorder) Enable(c uint32) {
	r.record("Enable", c)
	r.enabled[c] = true
}

func (r *Recorder) Disable(c uint32) {
	r.record("Disable", c)
	r.enabled[c] = false
}

// Enabled reports whether a capability is currently on.
func (r *Recorder) Enabled(c uint32) bool {
	return r.enabled[c]
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask uint32) {
	r.record("Clear", mask)
	if mask&gpu.ColorBufferBit != 0 {
		r.fill(gpu.Rect{Width: r.Width, Height: r.Height}, 0)
	}
}

func (r *Recorder) Viewport(x, y, w, h int32) {
	r.record("Viewport", x, y, w, h)
	r.viewport = gpu.Rect{X: x, Y: y, Width: w, Height: h}
}

func (r *Recorder) Scissor(x, y, w, h int32) {
	r.record("Scissor", x, y, w, h)
	r.scissor = gpu.Rect{X: x, Y: y, Width: w, Height: h}
}

func (r *Recorder) GetError() uint32 {
	err := r.pendingErr
	r.pendingErr = gpu.NoError
	return err
}

func (r *Recorder) GenBuffer() uint32 {
	r.genCalls++
	if r.FailGenBuffer == r.genCalls {
		r.record("GenBuffer", uint32(0))
		return 0
	}
	r.nextBuffer++
	r.live[r.nextBuffer] = true
	r.record("GenBuffer", r.nextBuffer)
	return r.nextBuffer
}

func (r *Recorder) DeleteBuffer(b uint32) {
	r.record("DeleteBuffer", b)
	delete(r.live, b)
}

func (r *Recorder) BindBuffer(target, b uint32) {
	r.record("BindBuffer", target, b)
}

func (r *Recorder) BufferData(target uint32, data []float32, usage uint32) {
	r.record("BufferData", target, len(data), usage)
	if r.UploadError != gpu.NoError {
		r.pendingErr = r.UploadError
		r.UploadError = gpu.NoError
	}
}

func (r *Recorder) UseProgram(p uint32) {
	r.record("UseProgram", p)
}

func (r *Recorder) GetUniformLocation(p uint32, name string) int32 {
	r.record("GetUniformLocation", p, name)
	if loc, ok := r.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) GetAttribLocation(p uint32, name string) int32 {
	r.record("GetAttribLocation", p, name)
	if loc, ok := r.Attribs[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) UniformMatrix4fv(loc int32, m mgl32.Mat4) {
	r.record("UniformMatrix4fv", loc)
	r.Matrices[loc] = m
}

func (r *Recorder) Uniform3f(loc int32, x, y, z float32) {
	r.record("Uniform3f", loc, x, y, z)
	r.Vec3s[loc] = mgl32.Vec3{x, y, z}
}

func (r *Recorder) Uniform1i(loc int32, v int32) {
	r.record("Uniform1i", loc, v)
	r.Ints[loc] = v
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.record("ActiveTexture", unit)
}

func (r *Recorder) BindTexture(target, tex uint32) {
	r.record("BindTexture", target, tex)
}

func (r *Recorder) EnableVertexAttribArray(i uint32) {
	r.record("EnableVertexAttribArray", i)
}

func (r *Recorder) VertexAttribPointer(i uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	r.record("VertexAttribPointer", i, size, xtype, normalized, stride, offset)
}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record("DrawArrays", mode, first, count)
	r.Draws++
	r.fill(r.viewport, r.Draws)
}

var _ gpu.GL = (*Recorder)(nil)
