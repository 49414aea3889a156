package hologram

import "github.com/Faultbox/hologram/internal/engine/gpu"

// Regions returns the three viewports for a width×height surface, in draw
// order: lower-left, upper-left, right-middle. The third is shifted up by a
// quarter height so its view sits opposite the gap between the first two.
func Regions(width, height int32) [3]gpu.Rect {
	w, h := width/2, height/2
	return [3]gpu.Rect{
		{X: 0, Y: 0, Width: w, Height: h},
		{X: 0, Y: height / 2, Width: w, Height: h},
		{X: width / 2, Y: height / 4, Width: w, Height: h},
	}
}
