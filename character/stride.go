package character

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/thirdperson/event"
	"github.com/oomph-ac/thirdperson/game"
	"github.com/oomph-ac/thirdperson/simulation"
)

// StrideSystem emits alternating foot steps while the character walks on the ground.
type StrideSystem struct {
	*System

	Planted  Phase
	Striding Phase
}

func newStrideSystem(opts simulation.Options) *StrideSystem {
	st := &StrideSystem{}
	st.Planted = Phase{Name: "Planted", Update: st.updatePlanted}
	st.Striding = Phase{Name: "Striding", Enter: st.enterStriding, Update: st.updateStriding}
	st.System = simulation.NewSystem("stride", func() Phase { return st.Planted },
		nextState(func(f *Frame) *simulation.SystemState { return &f.StrideState }), opts)
	return st
}

func (st *StrideSystem) phases() []Phase {
	return []Phase{st.Planted, st.Striding}
}

func (*StrideSystem) savedPhase(f *Frame) string {
	return f.StrideState.PhaseName
}

func walking(c *Container, n *Frame) bool {
	return n.Grounded() && game.Vec3HzDistSqr(n.Velocity) > c.Tuning.Idle.SqrSpeedThreshold
}

func (st *StrideSystem) updatePlanted(delta float32, s *System, c *Container) {
	if walking(c, c.State.Next()) {
		s.ChangeToImmediate(st.Striding, delta)
	}
}

func (st *StrideSystem) enterStriding(_ *System, c *Container) {
	c.State.Next().StrideDistance = 0
}

func (st *StrideSystem) updateStriding(delta float32, s *System, c *Container) {
	n := c.State.Next()
	if !walking(c, n) {
		s.ChangeTo(st.Planted)
		return
	}

	n.StrideDistance += math32.Sqrt(game.Vec3HzDistSqr(n.Velocity)) * delta
	for n.StrideDistance >= c.Tuning.Stride.Length {
		n.StrideDistance -= c.Tuning.Stride.Length
		if n.LeftFootNext {
			c.Schedule(event.StepLeftFoot)
		} else {
			c.Schedule(event.StepRightFoot)
		}
		n.LeftFootNext = !n.LeftFootNext
	}
}
