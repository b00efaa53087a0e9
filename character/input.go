package character

import "github.com/go-gl/mathgl/mgl32"

// Input is the intent fed to a character for one tick.
type Input struct {
	// Move is the desired planar movement, X along world X and Y along world Z. Its length is
	// clamped to 1.
	Move mgl32.Vec2
	// Jump is true while the jump control is held.
	Jump bool
}

// IsIdle returns true if the input asks for no movement.
func (in Input) IsIdle() bool {
	return in.Move.LenSqr() == 0
}

// Direction returns the planar movement as a world-space vector with a length of at most 1.
func (in Input) Direction() mgl32.Vec3 {
	v := mgl32.Vec3{in.Move.X(), 0, in.Move.Y()}
	if l := v.Len(); l > 1 {
		v = v.Mul(1 / l)
	}
	return v
}
