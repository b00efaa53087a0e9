package simulation

// Phase is a named state of a System: an enter, update, and exit action run against the
// system's container. Any action may be nil. Two phases are the same phase if their names match.
type Phase[C any] struct {
	// Name uniquely identifies the phase within its system.
	Name string

	// Enter is called when the system changes into the phase.
	Enter func(s *System[C], c C)
	// Update is called every tick the phase is active.
	Update func(delta float32, s *System[C], c C)
	// Exit is called when the system changes out of the phase.
	Exit func(s *System[C], c C)
}

// Is returns true if both phases share a name.
func (p Phase[C]) Is(other Phase[C]) bool {
	return p.Name == other.Name
}

func (p Phase[C]) enter(s *System[C], c C) {
	if p.Enter != nil {
		p.Enter(s, c)
	}
}

func (p Phase[C]) update(delta float32, s *System[C], c C) {
	if p.Update != nil {
		p.Update(delta, s, c)
	}
}

func (p Phase[C]) exit(s *System[C], c C) {
	if p.Exit != nil {
		p.Exit(s, c)
	}
}
