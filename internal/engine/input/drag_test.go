package input

import (
	"testing"

	"github.com/Faultbox/hologram/internal/engine/transform"
)

func TestDragScaling(t *testing.T) {
	tests := []struct {
		name        string
		density     float32
		sensitivity float32
		moveX       float32
		moveY       float32
		wantX       float32
		wantY       float32
	}{
		{"unit density", 1, 1, 20, -10, 10, -5},
		{"high density", 2, 1, 20, 8, 5, 2},
		{"sensitivity", 1, 0.5, 40, 0, 10, 0},
		{"density defaults to one", 0, 1, 4, 4, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rot := &transform.Rotation{}
			d := NewDrag(rot, tt.density, tt.sensitivity)
			d.Press(100, 100)
			d.Move(100+tt.moveX, 100+tt.moveY)

			dx, dy := rot.Pending()
			if dx != tt.wantX || dy != tt.wantY {
				t.Errorf("pending = (%v, %v), want (%v, %v)", dx, dy, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestDragIgnoresMotionWithoutPress(t *testing.T) {
	rot := &transform.Rotation{}
	d := NewDrag(rot, 1, 1)
	d.Move(50, 50)
	if dx, dy := rot.Pending(); dx != 0 || dy != 0 {
		t.Errorf("pending = (%v, %v), want zero before press", dx, dy)
	}

	d.Press(0, 0)
	d.Release()
	d.Move(10, 10)
	if dx, dy := rot.Pending(); dx != 0 || dy != 0 {
		t.Errorf("pending = (%v, %v), want zero after release", dx, dy)
	}
	if d.Active() {
		t.Error("drag still active after release")
	}
}

func TestDragAccumulatesUntilConsumed(t *testing.T) {
	rot := &transform.Rotation{}
	d := NewDrag(rot, 1, 1)
	d.Press(0, 0)
	d.Move(2, 0)
	d.Move(6, 0)

	// Moves are relative to the previous position, not the press.
	if dx, _ := rot.Consume(); dx != 3 {
		t.Errorf("consumed dx = %v, want 3", dx)
	}

	d.Move(8, 0)
	if dx, _ := rot.Pending(); dx != 1 {
		t.Errorf("pending dx after consume = %v, want 1", dx)
	}
}
