package event

import (
	"math/bits"
	"strings"
)

// Event is a discrete occurrence signalled during a simulation step. Base events occupy exactly
// one bit; aggregates are the OR of several base events.
type Event uint32

const (
	Jump Event = 1 << iota
	Land
	Idle
	Move
	StepLeftFoot
	StepRightFoot
	StepLeftHand
	StepRightHand
)

// Step is set whenever any limb steps. It is an aggregate: it never gets its own bit, and is
// never visited by dispatch on its own. Binding Step subscribes to each limb's bit, so the
// callback fires once for every limb that stepped in a tick, not once per tick.
const Step = StepLeftFoot | StepRightFoot | StepLeftHand | StepRightHand

// BaseEvents lists every single-bit event in ascending order. Dispatch visits exactly these.
var BaseEvents = []Event{
	Jump,
	Land,
	Idle,
	Move,
	StepLeftFoot,
	StepRightFoot,
	StepLeftHand,
	StepRightHand,
}

var names = map[Event]string{
	Jump:          "Jump",
	Land:          "Land",
	Idle:          "Idle",
	Move:          "Move",
	StepLeftFoot:  "StepLeftFoot",
	StepRightFoot: "StepRightFoot",
	StepLeftHand:  "StepLeftHand",
	StepRightHand: "StepRightHand",
	Step:          "Step",
}

// IsBase returns true if e is a single-bit event.
func (e Event) IsBase() bool {
	return bits.OnesCount32(uint32(e)) == 1
}

// String ...
func (e Event) String() string {
	if n, ok := names[e]; ok {
		return n
	}

	parts := make([]string, 0, bits.OnesCount32(uint32(e)))
	for _, b := range BaseEvents {
		if e&b != 0 {
			parts = append(parts, names[b])
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// Set is the bitmask of events scheduled during one step.
type Set struct {
	Mask Event
}

// Add ORs evt into the set.
func (s *Set) Add(evt Event) {
	s.Mask |= evt
}

// Contains returns true if any bit of evt is set. For an aggregate this means any constituent.
func (s Set) Contains(evt Event) bool {
	return s.Mask&evt != 0
}

// Clear removes all events.
func (s *Set) Clear() {
	s.Mask = 0
}

// IsEmpty returns true if no events are set.
func (s Set) IsEmpty() bool {
	return s.Mask == 0
}

// Events returns the base events in the set in ascending order.
func (s Set) Events() []Event {
	var evts []Event
	for _, e := range BaseEvents {
		if s.Contains(e) {
			evts = append(evts, e)
		}
	}
	return evts
}

func (s Set) String() string {
	return s.Mask.String()
}
