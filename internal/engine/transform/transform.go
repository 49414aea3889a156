// Package transform computes the per-frame matrices for the hologram scene:
// a fixed camera, a frustum projection, a light in eye space and a model
// orientation accumulated from user drags.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Scene constants.
const (
	ModelDistance float32 = -3.5
	Near          float32 = 1
	Far           float32 = 1000
)

var (
	Eye    = mgl32.Vec3{0, 0, -0.5}
	Center = mgl32.Vec3{0, 0, -5}
	Up     = mgl32.Vec3{0, 1, 0}

	// LightOffset places the light relative to the model-space origin.
	LightOffset = mgl32.Vec3{0, 0, -1}
)

// Frame is the output of one pipeline step, shared by every viewport pass
// of the frame.
type Frame struct {
	MVP       mgl32.Mat4
	ModelView mgl32.Mat4
	LightEye  mgl32.Vec4
}

// Pipeline owns the camera, projection and accumulated rotation. It is used
// from the render thread only.
type Pipeline struct {
	input *Rotation

	view        mgl32.Mat4
	projection  mgl32.Mat4
	lightModel  mgl32.Mat4
	accumulated mgl32.Mat4
}

// NewPipeline returns a pipeline reading drag deltas from input. The
// projection assumes a square surface until Resize is called.
func NewPipeline(input *Rotation) *Pipeline {
	p := &Pipeline{
		input:      input,
		view:       mgl32.LookAtV(Eye, Center, Up),
		lightModel: mgl32.Translate3D(LightOffset.X(), LightOffset.Y(), LightOffset.Z()),
	}
	p.projection = frustum(1)
	p.Reset()
	return p
}

// Reset returns the model to its initial orientation.
func (p *Pipeline) Reset() {
	p.accumulated = mgl32.Ident4()
}

// Resize recomputes the projection for a width×height surface. A surface with
// no area keeps the previous projection.
func (p *Pipeline) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.projection = frustum(float32(width) / float32(height))
}

func frustum(aspect float32) mgl32.Mat4 {
	return mgl32.Frustum(-aspect, aspect, -1, 1, Near, Far)
}

// Next consumes the pending drag and returns this frame's matrices.
func (p *Pipeline) Next() Frame {
	lightWorld := p.lightModel.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	lightEye := p.view.Mul4x1(lightWorld)

	var dx, dy float32
	if p.input != nil {
		dx, dy = p.input.Consume()
	}

	// New input is applied on the left so it rotates about the eye axes,
	// not the model's own.
	p.accumulated = DeltaRotation(dx, dy).Mul4(p.accumulated)

	model := mgl32.Translate3D(0, 0, ModelDistance).Mul4(p.accumulated)
	modelView := p.view.Mul4(model)

	return Frame{
		MVP:       p.projection.Mul4(modelView),
		ModelView: modelView,
		LightEye:  lightEye,
	}
}

// DeltaRotation is the rotation for one frame of drag: dx degrees about Y
// followed by dy degrees about X.
func DeltaRotation(dx, dy float32) mgl32.Mat4 {
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(dx))
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(dy))
	return ry.Mul4(rx)
}

// Accumulated returns the current model orientation.
func (p *Pipeline) Accumulated() mgl32.Mat4 {
	return p.accumulated
}

// View returns the camera matrix.
func (p *Pipeline) View() mgl32.Mat4 {
	return p.view
}

// Projection returns the current projection matrix.
func (p *Pipeline) Projection() mgl32.Mat4 {
	return p.projection
}
