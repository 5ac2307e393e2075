// Package input turns SDL2 events into viewer events and tracks held keys.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseDrag
	EventMouseWheel
)

// Event is one input event of the current frame.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	DX, DY float32 // drag distance in pixels, or wheel steps
}

// Input collects the events of one frame and the keyboard state after them.
type Input struct {
	events   []Event
	keys     []uint8
	mod      sdl.Keymod
	dragging bool
}

// New creates an input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update drains the SDL queue and refreshes the keyboard state. It returns
// true once the user asked to quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := i.translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, e)
		quit = quit || e.Type == EventQuit
	}
	i.keys = sdl.GetKeyboardState()
	i.mod = sdl.GetModState()
	return quit
}

// translate maps an SDL event to an Event. Mouse buttons only update the drag
// state and produce nothing.
func (i *Input) translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize}, true
		}
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}
	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_LEFT || e.Button == sdl.BUTTON_RIGHT {
			i.dragging = e.State == sdl.PRESSED
		}
	case *sdl.MouseMotionEvent:
		if i.dragging {
			return Event{Type: EventMouseDrag, DX: float32(e.XRel), DY: float32(e.YRel)}, true
		}
	case *sdl.MouseWheelEvent:
		return Event{Type: EventMouseWheel, DY: float32(e.Y)}, true
	}
	return Event{}, false
}

// Events returns the events of the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Held reports whether a key is down.
func (i *Input) Held(key sdl.Scancode) bool {
	return int(key) < len(i.keys) && i.keys[key] != 0
}

// Axis is +1 while only pos is held, -1 while only neg is held, 0 otherwise.
func (i *Input) Axis(pos, neg sdl.Scancode) float64 {
	return axis(i.Held(pos), i.Held(neg))
}

func axis(pos, neg bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

// Shift reports whether either shift key is held.
func (i *Input) Shift() bool {
	return i.mod&sdl.KMOD_SHIFT != 0
}

// Ctrl reports whether either control key is held.
func (i *Input) Ctrl() bool {
	return i.mod&sdl.KMOD_CTRL != 0
}
