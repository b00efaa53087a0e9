package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/thirdperson/game"
	"github.com/oomph-ac/thirdperson/simulation"
)

// WallSystem lets an airborne character slide along a wall it moved into.
type WallSystem struct {
	*System

	// NotOnWall waits for a move to touch a wall while airborne.
	NotOnWall Phase
	// WallSlide holds the character against the wall and turns speed into the wall into
	// speed up along it.
	WallSlide Phase
}

func newWallSystem(opts simulation.Options) *WallSystem {
	w := &WallSystem{}
	w.NotOnWall = Phase{Name: "NotOnWall", Enter: w.enterNotOnWall, Update: w.updateNotOnWall}
	w.WallSlide = Phase{Name: "WallSlide", Enter: w.enterWallSlide, Update: w.updateWallSlide}
	w.System = simulation.NewSystem("wall", func() Phase { return w.NotOnWall },
		nextState(func(f *Frame) *simulation.SystemState { return &f.WallState }), opts)
	return w
}

func (w *WallSystem) phases() []Phase {
	return []Phase{w.NotOnWall, w.WallSlide}
}

func (*WallSystem) savedPhase(f *Frame) string {
	return f.WallState.PhaseName
}

func onWall(n *Frame) bool {
	return n.Wall.Valid && !n.Grounded()
}

func (w *WallSystem) enterNotOnWall(_ *System, c *Container) {
	c.State.Next().IsOnWall = false
}

func (w *WallSystem) updateNotOnWall(_ float32, s *System, c *Container) {
	if onWall(c.State.Next()) {
		s.ChangeTo(w.WallSlide)
	}
}

func (w *WallSystem) enterWallSlide(_ *System, c *Container) {
	n := c.State.Next()
	n.IsOnWall = true

	// The wall already stopped the move, so the speed into it is taken from the last tick.
	v := c.State.Curr().Velocity
	v[1] = 0
	if into := -v.Dot(n.Wall.Normal); into > 0 {
		n.Velocity = n.Velocity.Add(wallUp(n.Wall.Normal).Mul(into * c.Tuning.Wall.TransferScale))
	}
	n.Velocity = press(n.Velocity, n.Wall.Normal, c.Tuning.Wall.Magnet)
}

func (w *WallSystem) updateWallSlide(delta float32, s *System, c *Container) {
	n := c.State.Next()
	if !onWall(n) {
		s.ChangeTo(w.NotOnWall)
		return
	}

	// Friction slows sliding along the wall either way.
	up := wallUp(n.Wall.Normal)
	friction := c.Tuning.Wall.Friction * delta
	slow := mgl32.Clamp(n.Velocity.Dot(up), -friction, friction)
	n.Velocity = press(n.Velocity.Sub(up.Mul(slow)), n.Wall.Normal, c.Tuning.Wall.Magnet)
}

// press replaces the part of v along normal with speed into the surface.
func press(v, normal mgl32.Vec3, speed float32) mgl32.Vec3 {
	return game.ProjectOnPlane(v, normal).Sub(normal.Mul(speed))
}

// wallUp is the direction up along a wall with the given normal.
func wallUp(normal mgl32.Vec3) mgl32.Vec3 {
	return game.Normalize(game.ProjectOnPlane(Up, normal))
}
