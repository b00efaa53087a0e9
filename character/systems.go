package character

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/thirdperson/game"
	"github.com/oomph-ac/thirdperson/simulation"
)

type (
	// System is a phase machine over a character's Container.
	System = simulation.System[*Container]
	// Phase is a phase of a character System.
	Phase = simulation.Phase[*Container]
)

// skin is how far casts start above the feet, so a character resting exactly on a surface is
// not already touching it.
const skin float32 = 0.01

// findGround looks for a surface below pos within the ground distance. The returned gap is
// how far above the surface the feet are, negative if they sank into it.
func findGround(c *Container, pos mgl32.Vec3) (hit game.Hit, gap float32, ok bool) {
	hit, ok = c.Cast(pos.Add(Up.Mul(skin)), Up.Mul(-1), skin+c.Tuning.Surface.GroundDistance)
	if !ok {
		return game.Hit{}, 0, false
	}
	return hit, hit.Distance - skin, true
}

// slopeAngle returns the angle in degrees between a surface normal and up.
func slopeAngle(normal, up mgl32.Vec3) float32 {
	cos := mgl32.Clamp(normal.Dot(up), -1, 1)
	return mgl32.RadToDeg(math32.Acos(cos))
}

// walkable returns true if the surface is flat enough to stand on.
func walkable(c *Container, s Surface) bool {
	return s.Valid && s.Angle <= c.Tuning.Surface.MaxAngle
}

// isWall returns true if the surface is too steep to stand on but not facing down.
func isWall(c *Container, s Surface) bool {
	return s.Valid && s.Angle >= c.Tuning.Wall.MinAngle && s.Angle <= 180-c.Tuning.Wall.MinAngle
}

func nextState(get func(f *Frame) *simulation.SystemState) func(c *Container) *simulation.SystemState {
	return func(c *Container) *simulation.SystemState {
		return get(c.State.Next())
	}
}
