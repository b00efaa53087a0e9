package character

import (
	"github.com/oomph-ac/thirdperson/event"
	"github.com/oomph-ac/thirdperson/simulation"
)

// JumpSystem turns the jump input into an upward launch.
type JumpSystem struct {
	*System

	// Ready waits for the jump input while the character is allowed to jump.
	Ready Phase
	// Squat holds the character crouched for the squat duration before launching it.
	Squat Phase
	// Cooldown blocks jumping for a while after a launch.
	Cooldown Phase
}

func newJumpSystem(opts simulation.Options) *JumpSystem {
	j := &JumpSystem{}
	j.Ready = Phase{Name: "Ready", Update: j.updateReady}
	j.Squat = Phase{Name: "Squat", Enter: j.enterSquat, Update: j.updateSquat, Exit: j.exitSquat}
	j.Cooldown = Phase{Name: "Cooldown", Update: j.updateCooldown}
	j.System = simulation.NewSystem("jump", func() Phase { return j.Ready },
		nextState(func(f *Frame) *simulation.SystemState { return &f.JumpState }), opts)
	return j
}

func (j *JumpSystem) phases() []Phase {
	return []Phase{j.Ready, j.Squat, j.Cooldown}
}

func (*JumpSystem) savedPhase(f *Frame) string {
	return f.JumpState.PhaseName
}

// canJump reports whether a jump may start: the first one from the ground or within coyote
// time, further ones in the air until MaxJumps is reached.
func canJump(c *Container, n *Frame) bool {
	if n.Jumps >= c.Tuning.Jump.MaxJumps {
		return false
	}
	return n.Grounded() || n.CoyoteTime > 0 || n.Jumps > 0
}

func (j *JumpSystem) updateReady(delta float32, s *System, c *Container) {
	n := c.State.Next()
	if n.Grounded() {
		n.Jumps = 0
		n.CoyoteTime = c.Tuning.Jump.CoyoteTime
	} else {
		n.CoyoteTime = max(0, n.CoyoteTime-delta)
	}

	if n.Input.Jump && canJump(c, n) {
		s.ChangeToImmediate(j.Squat, delta)
	}
}

func (j *JumpSystem) enterSquat(_ *System, c *Container) {
	c.State.Next().IsInJumpSquat = true
}

func (j *JumpSystem) updateSquat(_ float32, s *System, c *Container) {
	if s.PhaseElapsed() < c.Tuning.Jump.SquatDuration {
		return
	}

	n := c.State.Next()
	n.Velocity[1] = c.Tuning.Jump.Speed
	n.MainSurface = Surface{}
	n.CoyoteTime = 0
	n.Jumps++
	c.Schedule(event.Jump)

	s.ChangeTo(j.Cooldown)
}

func (j *JumpSystem) exitSquat(_ *System, c *Container) {
	c.State.Next().IsInJumpSquat = false
}

func (j *JumpSystem) updateCooldown(delta float32, s *System, c *Container) {
	if s.PhaseElapsed() >= c.Tuning.Jump.Cooldown {
		s.ChangeToImmediate(j.Ready, delta)
	}
}
