package window

import "github.com/veandco/go-sdl2/sdl"

// EventType classifies a polled event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventMouseDrag
	EventScroll
)

// Event is the subset of SDL input the viewer reacts to.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	DX, DY int32 // drag delta in pixels, or scroll steps
}

// Events collects SDL events once per frame.
type Events struct {
	events []Event
}

// NewEvents creates an event pump.
func NewEvents() *Events {
	return &Events{events: make([]Event, 0, 16)}
}

// Poll drains the SDL queue and returns this frame's events.
// The returned slice is reused by the next call.
func (e *Events) Poll() []Event {
	e.events = e.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			e.events = append(e.events, Event{Type: EventQuit})

		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				e.events = append(e.events, Event{
					Type:   EventResize,
					Width:  int(ev.Data1),
					Height: int(ev.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Repeat == 0 {
				e.events = append(e.events, Event{Type: EventKeyDown, Key: ev.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			if ev.State&sdl.ButtonLMask() != 0 {
				e.events = append(e.events, Event{Type: EventMouseDrag, DX: ev.XRel, DY: ev.YRel})
			}

		case *sdl.MouseWheelEvent:
			e.events = append(e.events, Event{Type: EventScroll, DY: ev.Y})
		}
	}

	return e.events
}
