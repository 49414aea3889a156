// Package renderer binds gpu.GL to a live OpenGL 4.1 core context.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/hologram/internal/engine/gpu"
	"github.com/Faultbox/hologram/internal/logger"
)

// Device issues gpu.GL calls against the current context.
type Device struct {
	// Core profile refuses attribute setup without a bound vertex array.
	vao uint32
}

// New initializes the OpenGL function pointers and binds a vertex array
// object for the lifetime of the context.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.DepthFunc(gl.LESS)

	return d, nil
}

// Close releases the vertex array object.
func (d *Device) Close() {
	logger.Info("closing GL device")
	if d.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func (d *Device) Enable(c uint32) { gl.Enable(c) }
func (d *Device) Disable(c uint32) { gl.Disable(c) }

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (d *Device) Clear(mask uint32) { gl.Clear(mask) }

func (d *Device) Viewport(x, y, w, h int32) { gl.Viewport(x, y, w, h) }
func (d *Device) Scissor(x, y, w, h int32) { gl.Scissor(x, y, w, h) }

func (d *Device) GetError() uint32 { return gl.GetError() }

func (d *Device) GenBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (d *Device) DeleteBuffer(b uint32) { gl.DeleteBuffers(1, &b) }

func (d *Device) BindBuffer(target, b uint32) { gl.BindBuffer(target, b) }

// BufferData uploads data; an empty slice allocates nothing.
func (d *Device) BufferData(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, unsafe.Pointer(&data[0]), usage)
}

func (d *Device) UseProgram(p uint32) { gl.UseProgram(p) }

func (d *Device) GetUniformLocation(p uint32, name string) int32 {
	cname, free := gl.Strs(name + "\x00")
	defer free()
	return gl.GetUniformLocation(p, *cname)
}

func (d *Device) GetAttribLocation(p uint32, name string) int32 {
	cname, free := gl.Strs(name + "\x00")
	defer free()
	return gl.GetAttribLocation(p, *cname)
}

func (d *Device) UniformMatrix4fv(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *Device) Uniform3f(loc int32, x, y, z float32) { gl.Uniform3f(loc, x, y, z) }
func (d *Device) Uniform1i(loc int32, v int32) { gl.Uniform1i(loc, v) }

func (d *Device) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }
func (d *Device) BindTexture(target, tex uint32) { gl.BindTexture(target, tex) }
func (d *Device) EnableVertexAttribArray(i uint32) { gl.EnableVertexAttribArray(i) }

func (d *Device) VertexAttribPointer(i uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(i, size, xtype, normalized, stride, offset)
}

func (d *Device) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

var _ gpu.GL = (*Device)(nil)
