// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// touchMouseID marks mouse events SDL synthesizes from touches
// (SDL_TOUCH_MOUSEID).
const touchMouseID = ^uint32(0)

// Event types for viewer use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventDragStart
	EventDragEnd
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Input polls SDL events and forwards pointer drags to a Drag.
type Input struct {
	events []Event
	drag   *Drag

	// Touch coordinates are normalized; these scale them to pixels.
	width, height float32
}

// New creates a new input handler feeding drag.
func New(drag *Drag) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		drag:   drag,
	}
}

// SetSize sets the surface size used to scale touch motion.
func (i *Input) SetSize(width, height int) {
	i.width, i.height = float32(width), float32(height)
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseButtonEvent:
			// Touches arrive again as TouchFingerEvent.
			if e.Which == touchMouseID || e.Button != sdl.BUTTON_LEFT {
				continue
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.drag.Press(float32(e.X), float32(e.Y))
				i.events = append(i.events, Event{Type: EventDragStart})
			} else {
				i.drag.Release()
				i.events = append(i.events, Event{Type: EventDragEnd})
			}

		case *sdl.MouseMotionEvent:
			if e.Which == touchMouseID {
				continue
			}
			i.drag.Move(float32(e.X), float32(e.Y))

		case *sdl.TouchFingerEvent:
			switch e.Type {
			case sdl.FINGERDOWN:
				i.drag.Press(e.X*i.width, e.Y*i.height)
				i.events = append(i.events, Event{Type: EventDragStart})
			case sdl.FINGERMOTION:
				i.drag.Move(e.X*i.width, e.Y*i.height)
			case sdl.FINGERUP:
				i.drag.Release()
				i.events = append(i.events, Event{Type: EventDragEnd})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
