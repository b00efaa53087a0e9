package character

import (
	"github.com/oomph-ac/thirdperson/event"
	"github.com/oomph-ac/thirdperson/simulation"
)

// IdleSystem tracks whether the character stands still without any move input.
type IdleSystem struct {
	*System

	NotIdle Phase
	Idle    Phase
}

func newIdleSystem(opts simulation.Options) *IdleSystem {
	i := &IdleSystem{}
	i.NotIdle = Phase{Name: "NotIdle", Enter: i.enterNotIdle, Update: i.updateNotIdle}
	i.Idle = Phase{Name: "Idle", Enter: i.enterIdle, Update: i.updateIdle, Exit: i.exitIdle}
	i.System = simulation.NewSystem("idle", func() Phase { return i.NotIdle },
		nextState(func(f *Frame) *simulation.SystemState { return &f.IdleState }), opts)
	return i
}

func (i *IdleSystem) phases() []Phase {
	return []Phase{i.NotIdle, i.Idle}
}

func (*IdleSystem) savedPhase(f *Frame) string {
	return f.IdleState.PhaseName
}

func isIdle(c *Container, n *Frame) bool {
	return n.Input.IsIdle() && n.Velocity.LenSqr() <= c.Tuning.Idle.SqrSpeedThreshold
}

func (i *IdleSystem) enterNotIdle(_ *System, c *Container) {
	c.State.Next().IdleTime = 0
}

func (i *IdleSystem) updateNotIdle(_ float32, s *System, c *Container) {
	if isIdle(c, c.State.Next()) {
		s.ChangeTo(i.Idle)
	}
}

func (i *IdleSystem) enterIdle(_ *System, c *Container) {
	c.State.Next().IdleTime = 0
	c.Schedule(event.Idle)
}

func (i *IdleSystem) updateIdle(delta float32, s *System, c *Container) {
	n := c.State.Next()
	if !isIdle(c, n) {
		s.ChangeTo(i.NotIdle)
		return
	}
	n.IdleTime += delta
}

func (i *IdleSystem) exitIdle(_ *System, c *Container) {
	c.Schedule(event.Move)
}
