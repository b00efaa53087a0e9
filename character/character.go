package character

import (
	"log/slog"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/thirdperson/event"
	"github.com/oomph-ac/thirdperson/game"
	"github.com/oomph-ac/thirdperson/oerror"
	"github.com/oomph-ac/thirdperson/settings"
	"github.com/oomph-ac/thirdperson/simulation"
)

// Character is a simulated character: its frame history, its event dispatcher and the systems
// that advance it one fixed tick at a time. It is not safe for concurrent use; distinct
// characters may be stepped in parallel.
type Character struct {
	container *Container
	runner    *simulation.Runner
	log       *slog.Logger

	gravity *GravitySystem
	wall    *WallSystem
	jump    *JumpSystem
	stride  *StrideSystem
	idle    *IdleSystem

	systems []characterSystem
}

// characterSystem is a System whose phase can be restored from the frame.
type characterSystem interface {
	Name() string
	PhaseName() string
	Restore(candidates ...Phase) bool

	phases() []Phase
	savedPhase(f *Frame) string
}

// New creates a character standing at position and facing forward. The collision backend may
// be nil for a character in empty space.
func New(tuning settings.Tuning, backend game.CollisionBackend, position, forward mgl32.Vec3, log *slog.Logger) (*Character, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := tuning.Validate(); err != nil {
		return nil, oerror.New("character: %w", err)
	}

	if forward.LenSqr() == 0 {
		log.Warn("character created without a forward direction, facing +Z")
		forward = mgl32.Vec3{0, 0, 1}
	}

	state, err := NewState(tuning.Simulation.HistorySize, Frame{
		Position:     position,
		Forward:      game.Normalize(forward),
		LeftFootNext: true,
	})
	if err != nil {
		return nil, oerror.New("character: %w", err)
	}

	c := &Character{
		container: &Container{
			Tuning:    tuning,
			State:     state,
			Events:    event.NewDispatcher(),
			Collision: backend,
			Capsule:   game.CapsuleFrom(Up.Mul(tuning.Capsule.Height*0.5), tuning.Capsule.Radius, tuning.Capsule.Height, Up),
		},
		log: log,
	}

	opts := simulation.Options{
		Logger: log,
		Clock:  func() float32 { return state.Next().Time },
	}
	c.gravity = newGravitySystem(opts)
	c.wall = newWallSystem(opts)
	c.jump = newJumpSystem(opts)
	c.stride = newStrideSystem(opts)
	c.idle = newIdleSystem(opts)

	// Later systems read what earlier ones wrote this tick.
	c.runner = simulation.NewRunner(c.gravity, c.wall, c.jump, c.stride, c.idle)
	c.systems = []characterSystem{c.gravity, c.wall, c.jump, c.stride, c.idle}

	c.gravity.Init(c.container)
	c.wall.Init(c.container)
	c.jump.Init(c.container)
	c.stride.Init(c.container)
	c.idle.Init(c.container)
	return c, nil
}

// Step advances the character by one tick of delta seconds: a new frame is started, every
// system is updated in order and the events scheduled during the tick are dispatched once.
func (c *Character) Step(delta float32, input Input) error {
	if delta <= 0 {
		return oerror.New("character: step with non-positive delta %v", delta)
	}

	st := c.container.State
	st.Advance()
	next := st.Next()
	next.Time += delta
	next.Input = input

	err := c.runner.Update(delta)
	c.container.Events.Dispatch(st.Next().Events)

	if err != nil {
		c.log.Error("character step failed", "tick", st.Next().Tick, "err", err)
		return oerror.New("character: tick %d: %w", st.Next().Tick, err)
	}
	return nil
}

// Override replaces the in-progress frame, for example with an authoritative correction, and
// moves every system to the phase stored in it. No enter or exit action runs. A frame naming
// an unknown phase is rejected and leaves the character untouched.
func (c *Character) Override(f Frame) error {
	if err := c.checkPhases(&f); err != nil {
		return err
	}
	c.container.State.Override(f)
	c.restore()
	return nil
}

// Reset replaces the whole frame history with f and moves every system to the phase stored in
// it. Like Override, it changes nothing if f names an unknown phase.
func (c *Character) Reset(f Frame) error {
	if err := c.checkPhases(&f); err != nil {
		return err
	}
	c.container.State.Fill(f)
	c.restore()
	return nil
}

func (c *Character) checkPhases(f *Frame) error {
	for _, s := range c.systems {
		name := s.savedPhase(f)
		if !slices.ContainsFunc(s.phases(), func(p Phase) bool { return p.Name == name }) {
			return oerror.New("character: %s has no phase named %q", s.Name(), name)
		}
	}
	return nil
}

// restore moves every system to the phase named in the in-progress frame. The names must have
// passed checkPhases.
func (c *Character) restore() {
	for _, s := range c.systems {
		s.Restore(s.phases()...)
	}
}

// State returns the frame history.
func (c *Character) State() *State {
	return c.container.State
}

// Events returns the dispatcher that receives the events of every tick.
func (c *Character) Events() *event.Dispatcher {
	return c.container.Events
}

// Container returns what the systems operate on.
func (c *Character) Container() *Container {
	return c.container
}

// Gravity ...
func (c *Character) Gravity() *GravitySystem {
	return c.gravity
}

// Wall ...
func (c *Character) Wall() *WallSystem {
	return c.wall
}

// Jump ...
func (c *Character) Jump() *JumpSystem {
	return c.jump
}

// Stride ...
func (c *Character) Stride() *StrideSystem {
	return c.stride
}

// Idle ...
func (c *Character) Idle() *IdleSystem {
	return c.idle
}

// Phases returns the current phase name of every system, keyed by system name.
func (c *Character) Phases() map[string]string {
	m := make(map[string]string, len(c.systems))
	for _, s := range c.systems {
		m[s.Name()] = s.PhaseName()
	}
	return m
}
