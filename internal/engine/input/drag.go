package input

import "github.com/Faultbox/hologram/internal/engine/transform"

// Drag turns pointer motion into rotation deltas. Horizontal motion spins
// the model about Y, vertical motion about X.
type Drag struct {
	rotation *transform.Rotation

	// Density is the display scale; motion is measured in
	// density-independent pixels and then halved.
	Density float32
	// Sensitivity scales the resulting degrees.
	Sensitivity float32

	active       bool
	lastX, lastY float32
}

// NewDrag returns a Drag feeding rotation.
func NewDrag(rotation *transform.Rotation, density, sensitivity float32) *Drag {
	if density <= 0 {
		density = 1
	}
	return &Drag{
		rotation:    rotation,
		Density:     density,
		Sensitivity: sensitivity,
	}
}

// Press starts a drag at (x, y).
func (d *Drag) Press(x, y float32) {
	d.active = true
	d.lastX, d.lastY = x, y
}

// Move reports the pointer at (x, y). It is ignored unless a drag is active.
func (d *Drag) Move(x, y float32) {
	if !d.active {
		return
	}
	d.Delta(x-d.lastX, y-d.lastY)
	d.lastX, d.lastY = x, y
}

// Delta feeds a relative motion in pixels regardless of drag state.
func (d *Drag) Delta(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	scale := d.Sensitivity / d.Density / 2
	d.rotation.Add(dx*scale, dy*scale)
}

// Release ends the drag.
func (d *Drag) Release() {
	d.active = false
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}
