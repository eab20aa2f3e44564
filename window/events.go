package window

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EventKind identifies a user input event.
type EventKind int

const (
	// EventQuit is reported when the window is being closed.
	EventQuit EventKind = iota
	// EventKeyDown and EventKeyUp report keyboard transitions.
	EventKeyDown
	EventKeyUp
	// EventMouseButtonDown and EventMouseButtonUp report mouse button
	// transitions at the cursor position.
	EventMouseButtonDown
	EventMouseButtonUp
	// EventMouseMove reports cursor movement.
	EventMouseMove
	// EventMouseWheel reports scroll wheel movement.
	EventMouseWheel
)

// Event is a timestamped user input event. For a single-display
// Window, Point is in display coordinates; for a MultiWindow it is in
// window coordinates (use TranslateMousePosition).
type Event struct {
	Kind   EventKind
	When   time.Time
	Key    ebiten.Key
	Button ebiten.MouseButton
	Point  image.Point
	WheelX float64
	WheelY float64
}

// maxPendingEvents bounds every event queue. When a queue is full the
// oldest event is evicted first.
const maxPendingEvents = 256

type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(ev Event) {
	if len(q.events) == maxPendingEvents {
		copy(q.events, q.events[1:])
		q.events = q.events[:maxPendingEvents-1]
	}
	q.events = append(q.events, ev)
}

// drain returns all queued events and empties the queue.
func (q *eventQueue) drain() []Event {
	evs := q.events
	q.events = nil
	return evs
}

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
}

// inputState translates ebiten's polled input into events. Points are
// in window coordinates; the owner translates them further if needed.
type inputState struct {
	lastCursor image.Point
	keyScratch []ebiten.Key
}

func (in *inputState) poll(emit func(Event)) {
	now := time.Now()
	cursor := image.Pt(ebiten.CursorPosition())

	if ebiten.IsWindowBeingClosed() {
		emit(Event{Kind: EventQuit, When: now})
	}

	in.keyScratch = inpututil.AppendJustPressedKeys(in.keyScratch[:0])
	for _, k := range in.keyScratch {
		emit(Event{Kind: EventKeyDown, When: now, Key: k})
	}
	in.keyScratch = inpututil.AppendJustReleasedKeys(in.keyScratch[:0])
	for _, k := range in.keyScratch {
		emit(Event{Kind: EventKeyUp, When: now, Key: k})
	}

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			emit(Event{Kind: EventMouseButtonDown, When: now, Button: b, Point: cursor})
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			emit(Event{Kind: EventMouseButtonUp, When: now, Button: b, Point: cursor})
		}
	}

	if cursor != in.lastCursor {
		emit(Event{Kind: EventMouseMove, When: now, Point: cursor})
		in.lastCursor = cursor
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		emit(Event{Kind: EventMouseWheel, When: now, Point: cursor, WheelX: wx, WheelY: wy})
	}
}

// eventRouter distributes events to per-display queues. Mouse events
// go to the display under the cursor, everything else is broadcast.
// Each queue is bounded by maxPendingEvents with drop-oldest eviction.
type eventRouter struct {
	queues map[uint32]*eventQueue
}

func newEventRouter() *eventRouter {
	return &eventRouter{queues: make(map[uint32]*eventQueue)}
}

func (r *eventRouter) addQueue(id uint32) {
	if _, ok := r.queues[id]; !ok {
		r.queues[id] = &eventQueue{}
	}
}

// route delivers an event. locate maps a window coordinate to the
// owning display, returning false when no display covers it; events
// over no display are dropped.
func (r *eventRouter) route(ev Event, locate func(image.Point) (uint32, bool)) {
	switch ev.Kind {
	case EventMouseButtonDown, EventMouseButtonUp, EventMouseMove, EventMouseWheel:
		if id, ok := locate(ev.Point); ok {
			r.queues[id].push(ev)
		}
	default:
		for _, q := range r.queues {
			q.push(ev)
		}
	}
}

func (r *eventRouter) drain(id uint32) []Event {
	q, ok := r.queues[id]
	if !ok {
		return nil
	}
	return q.drain()
}
