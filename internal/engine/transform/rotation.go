package transform

import (
	"math"
	"sync/atomic"
)

// Rotation carries drag deltas, in degrees, from the input side to the
// render thread.
//
// Each scalar is stored in an atomic word, but Add is a separate load and
// store rather than a compound update and Consume is a load followed by a
// store of zero. A delta written between those steps can be lost. That is
// acceptable for interactive dragging and keeps both sides lock-free.
type Rotation struct {
	x atomic.Uint32 // rotation about Y
	y atomic.Uint32 // rotation about X
}

// Add accumulates a drag of dx degrees about Y and dy degrees about X.
func (r *Rotation) Add(dx, dy float32) {
	r.x.Store(math.Float32bits(math.Float32frombits(r.x.Load()) + dx))
	r.y.Store(math.Float32bits(math.Float32frombits(r.y.Load()) + dy))
}

// Consume returns the pending deltas and zeroes them.
func (r *Rotation) Consume() (dx, dy float32) {
	dx = math.Float32frombits(r.x.Load())
	r.x.Store(0)
	dy = math.Float32frombits(r.y.Load())
	r.y.Store(0)
	return dx, dy
}

// Pending returns the deltas without consuming them.
func (r *Rotation) Pending() (dx, dy float32) {
	return math.Float32frombits(r.x.Load()), math.Float32frombits(r.y.Load())
}
