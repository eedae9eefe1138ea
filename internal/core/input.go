package core

// PointerKind is the kind of pointer event delivered by the input boundary.
type PointerKind int

const (
	PointerPress   PointerKind = iota // Button went down
	PointerDrag                       // Pointer moved while the button is held
	PointerRelease                    // Button went up
)

// String returns a human-readable name for the pointer kind.
func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "Press"
	case PointerDrag:
		return "Drag"
	case PointerRelease:
		return "Release"
	default:
		return "Unknown"
	}
}

// PointerEvent is one pointer event in world space.
// Pos is ignored for releases.
type PointerEvent struct {
	Kind PointerKind
	Pos  Vec2
}

// PointerQueue buffers pointer events between ticks so that at most one
// event is handed to the game per tick. Consecutive drags collapse into
// the most recent one; presses and releases are never dropped.
type PointerQueue struct {
	events []PointerEvent
}

// NewPointerQueue creates an empty queue.
func NewPointerQueue() *PointerQueue {
	return &PointerQueue{}
}

// Push appends an event, replacing a trailing drag with a newer drag.
func (q *PointerQueue) Push(ev PointerEvent) {
	if n := len(q.events); n > 0 && ev.Kind == PointerDrag && q.events[n-1].Kind == PointerDrag {
		q.events[n-1] = ev
		return
	}
	q.events = append(q.events, ev)
}

// Pop removes and returns the oldest event.
// Returns false if the queue is empty.
func (q *PointerQueue) Pop() (PointerEvent, bool) {
	if len(q.events) == 0 {
		return PointerEvent{}, false
	}
	ev := q.events[0]
	q.events[0] = PointerEvent{}
	q.events = q.events[1:]
	return ev, true
}

// Len returns the number of pending events.
func (q *PointerQueue) Len() int {
	return len(q.events)
}

// Clear drops every pending event.
func (q *PointerQueue) Clear() {
	q.events = q.events[:0]
}
