package character

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/thirdperson/event"
	"github.com/oomph-ac/thirdperson/game"
	"github.com/oomph-ac/thirdperson/simulation"
	"github.com/oomph-ac/thirdperson/utils"
	"github.com/zeebo/xxh3"
)

// Surface is the ground a character stands on. The zero value means no ground.
type Surface struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
	// Angle is the slope of the surface in degrees.
	Angle float32
	Valid bool
}

// Frame is the complete state of a character for one tick. It is a plain value: copying it is
// assignment and two frames are equal if == says so.
type Frame struct {
	Tick uint64
	// Time is the simulation time at the end of the tick.
	Time float32

	Input Input

	Position     mgl32.Vec3
	Velocity     mgl32.Vec3
	Acceleration mgl32.Vec3
	// Force is the external force applied during this tick only. It is cleared on Advance.
	Force   mgl32.Vec3
	Forward mgl32.Vec3

	MainSurface Surface
	// Wall is the wall touched while moving during this tick only. It is cleared on Advance.
	Wall     Surface
	IsOnWall bool

	IdleTime float32

	Jumps         uint32
	CoyoteTime    float32
	IsInJumpSquat bool

	StrideDistance float32
	LeftFootNext   bool

	// Events holds what happened during this tick only. It is cleared on Advance.
	Events event.Set

	IdleState    simulation.SystemState
	GravityState simulation.SystemState
	WallState    simulation.SystemState
	JumpState    simulation.SystemState
	StrideState  simulation.SystemState
}

// Grounded returns true if the frame stands on a surface.
func (f Frame) Grounded() bool {
	return f.MainSurface.Valid
}

// Checksum hashes every field of the frame. Two frames with the same checksum are, for all
// practical purposes, the same frame.
func (f Frame) Checksum() uint64 {
	b := utils.GetBytes()
	defer utils.PutBytes(b)

	buf := binary.LittleEndian.AppendUint64(*b, f.Tick)
	buf = appendFloat(buf, f.Time)
	buf = appendFloat(buf, f.Input.Move.X())
	buf = appendFloat(buf, f.Input.Move.Y())
	buf = appendBool(buf, f.Input.Jump)

	for _, v := range [...]mgl32.Vec3{f.Position, f.Velocity, f.Acceleration, f.Force, f.Forward} {
		buf = appendVec3(buf, v)
	}

	buf = appendVec3(buf, f.MainSurface.Point)
	buf = appendVec3(buf, f.MainSurface.Normal)
	buf = appendFloat(buf, f.MainSurface.Angle)
	buf = appendBool(buf, f.MainSurface.Valid)

	buf = appendVec3(buf, f.Wall.Point)
	buf = appendVec3(buf, f.Wall.Normal)
	buf = appendFloat(buf, f.Wall.Angle)
	buf = appendBool(buf, f.Wall.Valid)
	buf = appendBool(buf, f.IsOnWall)

	buf = appendFloat(buf, f.IdleTime)
	buf = binary.LittleEndian.AppendUint32(buf, f.Jumps)
	buf = appendFloat(buf, f.CoyoteTime)
	buf = appendBool(buf, f.IsInJumpSquat)
	buf = appendFloat(buf, f.StrideDistance)
	buf = appendBool(buf, f.LeftFootNext)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(f.Events.Mask))

	for _, st := range [...]simulation.SystemState{f.IdleState, f.GravityState, f.WallState, f.JumpState, f.StrideState} {
		buf = append(buf, st.PhaseName...)
		buf = append(buf, 0)
		buf = appendFloat(buf, st.PhaseStart)
		buf = appendFloat(buf, st.PhaseElapsed)
	}

	*b = buf
	return xxh3.Hash(buf)
}

func appendFloat(b []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
}

func appendVec3(b []byte, v mgl32.Vec3) []byte {
	return appendFloat(appendFloat(appendFloat(b, v[0]), v[1]), v[2])
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}
	return append(b, 0)
}

// surfaceFrom converts a cast hit into a Surface.
func surfaceFrom(hit game.Hit, up mgl32.Vec3) Surface {
	n := game.Normalize(hit.Normal)
	return Surface{
		Point:  hit.Point,
		Normal: n,
		Angle:  slopeAngle(n, up),
		Valid:  true,
	}
}
