package simulation

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/oomph-ac/thirdperson/oerror"
)

// SystemState is the persisted, inspectable state of a system. It is diagnostic only: it can be
// rebuilt from the sequence of phase changes.
type SystemState struct {
	PhaseName    string
	PhaseStart   float32
	PhaseElapsed float32
}

// Options configure a System.
type Options struct {
	// Logger receives phase transition traces and cascade errors. Defaults to slog.Default().
	Logger *slog.Logger
	// Clock returns the current simulation time, recorded as PhaseStart on every phase change.
	// Defaults to a clock that always returns zero.
	Clock func() float32
}

// System is a finite-state machine of phases that all read and write a container of type C. It
// is driven by one Update call per fixed tick and is not safe for concurrent use.
type System[C any] struct {
	name    string
	initial func() Phase[C]

	container   C
	phase       Phase[C]
	initialised bool

	stateFn func(C) *SystemState
	state   SystemState

	log   *slog.Logger
	clock func() float32

	disabled bool
	logging  bool

	// visited holds the phases entered during the current outer Update.
	visited []string
	err     error
}

// NewSystem creates a system named name. initial builds the phase entered by Init. If state is
// non-nil the SystemState is read from and written to the container, for example into the
// in-progress frame; otherwise the system keeps it itself.
func NewSystem[C any](name string, initial func() Phase[C], state func(C) *SystemState, opts Options) *System[C] {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = func() float32 { return 0 }
	}
	return &System[C]{
		name:    name,
		initial: initial,
		stateFn: state,
		log:     opts.Logger,
		clock:   opts.Clock,
		visited: make([]string, 0, 4),
	}
}

// Init stores the container, sets the initial phase and runs its enter action.
func (s *System[C]) Init(container C) {
	s.container = container
	s.initialised = true

	phase := s.initial()
	s.setPhase(phase)
	phase.enter(s, s.container)
}

// Update advances the current phase by delta. It returns ErrNotInitialised if Init was never
// called, and ErrPhaseCycle if a ChangeToImmediate cascade during this call revisited a phase.
func (s *System[C]) Update(delta float32) error {
	if !s.initialised {
		return oerror.New("%s: %w", s.name, oerror.ErrNotInitialised)
	}
	if s.disabled {
		return nil
	}

	s.err = nil
	s.visited = append(s.visited[:0], s.phase.Name)

	s.State().PhaseElapsed += delta
	s.phase.update(delta, s, s.container)

	return s.err
}

// ChangeTo exits the current phase and enters next. Changing to the phase the system is already
// in does nothing: no exit, no enter, and the phase timers keep running.
func (s *System[C]) ChangeTo(next Phase[C]) {
	if s.phase.Is(next) {
		return
	}

	prev := s.phase
	s.visited = append(s.visited, next.Name)

	s.phase.exit(s, s.container)
	s.setPhase(next)
	s.phase.enter(s, s.container)

	if s.logging {
		s.log.Debug("did change phase", "system", s.name, "from", prev.Name, "to", next.Name)
	}
}

// ChangeToImmediate changes to next and runs its update with delta in the same tick, so that a
// chain such as landing straight into a jump resolves within one step. If next was already
// entered during the current outer Update the cascade is aborted and Update reports
// ErrPhaseCycle instead of looping.
func (s *System[C]) ChangeToImmediate(next Phase[C], delta float32) {
	if s.err != nil {
		return
	}

	if slices.Contains(s.visited, next.Name) {
		path := strings.Join(append(slices.Clone(s.visited), next.Name), "->")
		s.err = oerror.New("%s: %w: %s", s.name, oerror.ErrPhaseCycle, path)
		s.log.Error("phase change recursion", "system", s.name, "path", path)
		return
	}

	s.ChangeTo(next)
	s.phase.update(delta, s, s.container)
}

// Restore re-selects the phase named by the persisted SystemState without running any enter or
// exit action, for example after the frame holding the state was overridden. It returns false if
// none of the candidates match.
func (s *System[C]) Restore(candidates ...Phase[C]) bool {
	name := s.State().PhaseName
	for _, p := range candidates {
		if p.Name == name {
			s.phase = p
			return true
		}
	}
	return false
}

// setPhase sets the current phase and resets its timers without calling any action.
func (s *System[C]) setPhase(phase Phase[C]) {
	s.phase = phase

	st := s.State()
	st.PhaseName = phase.Name
	st.PhaseStart = s.clock()
	st.PhaseElapsed = 0
}

// State returns the system's persisted state.
func (s *System[C]) State() *SystemState {
	if s.stateFn != nil && s.initialised {
		return s.stateFn(s.container)
	}
	return &s.state
}

// Name ...
func (s *System[C]) Name() string {
	return s.name
}

// Phase returns the current phase.
func (s *System[C]) Phase() Phase[C] {
	return s.phase
}

// Is returns true if the system is currently in phase p.
func (s *System[C]) Is(p Phase[C]) bool {
	return s.phase.Is(p)
}

// PhaseName returns the name of the current phase, for tooling.
func (s *System[C]) PhaseName() string {
	return s.State().PhaseName
}

// PhaseStart returns the clock time at which the current phase was entered.
func (s *System[C]) PhaseStart() float32 {
	return s.State().PhaseStart
}

// PhaseElapsed returns the time accumulated in the current phase.
func (s *System[C]) PhaseElapsed() float32 {
	return s.State().PhaseElapsed
}

// Container returns the container passed to Init.
func (s *System[C]) Container() C {
	return s.container
}

// SetDisabled turns updates off or back on.
func (s *System[C]) SetDisabled(disabled bool) {
	s.disabled = disabled
}

// UseLogging logs every phase change of this system.
func (s *System[C]) UseLogging(logging bool) {
	s.logging = logging
}
