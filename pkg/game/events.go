package game

import "fmt"

// EventKind identifies something that happened between two snapshots.
type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventPitchStarted
	EventSwing
	EventHit
	EventPitchCompleted
	EventSessionEnded
)

var eventNames = map[EventKind]string{
	EventSessionStarted: "session_started",
	EventPitchStarted:   "pitch_started",
	EventSwing:          "swing",
	EventHit:            "hit",
	EventPitchCompleted: "pitch_completed",
	EventSessionEnded:   "session_ended",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one entry of Snapshot.Events.
type Event struct {
	Kind  EventKind
	Pitch int // 1-based pitch number the event belongs to; 0 outside a pitch
}

func (e Event) String() string {
	return fmt.Sprintf("%s#%d", e.Kind, e.Pitch)
}
