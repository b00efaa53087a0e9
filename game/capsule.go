package game

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Capsule is a swept sphere defined by the centers of its two end spheres and a radius. It is
// used to describe the character's collision volume for casts.
type Capsule struct {
	// Point1 is the center of the bottom sphere.
	Point1 mgl32.Vec3
	// Point2 is the center of the top sphere.
	Point2 mgl32.Vec3
	// Radius is the radius of both end spheres.
	Radius float32
}

// CapsuleFrom creates a capsule around center whose total span along up, end caps included, is
// height. The sphere centers are offset from center by height/2 - radius.
func CapsuleFrom(center mgl32.Vec3, radius, height float32, up mgl32.Vec3) Capsule {
	offset := up.Mul(height*0.5 - radius)
	return Capsule{
		Point1: center.Sub(offset),
		Point2: center.Add(offset),
		Radius: radius,
	}
}

// Offset returns the capsule with both endpoints translated by v.
func (c Capsule) Offset(v mgl32.Vec3) Capsule {
	return Capsule{
		Point1: c.Point1.Add(v),
		Point2: c.Point2.Add(v),
		Radius: c.Radius,
	}
}

// Center returns the midpoint between both sphere centers.
func (c Capsule) Center() mgl32.Vec3 {
	return c.Point1.Add(c.Point2).Mul(0.5)
}

// Height returns the total span of the capsule including its end caps.
func (c Capsule) Height() float32 {
	return c.Point2.Sub(c.Point1).Len() + 2*c.Radius
}

// Up returns the direction from Point1 to Point2, or the zero vector for a sphere.
func (c Capsule) Up() mgl32.Vec3 {
	return Normalize(c.Point2.Sub(c.Point1))
}

// BBox returns the axis-aligned bounds of the capsule.
func (c Capsule) BBox() cube.BBox {
	r := mgl32.Vec3{c.Radius, c.Radius, c.Radius}
	lo := minVec3(c.Point1, c.Point2).Sub(r)
	hi := maxVec3(c.Point1, c.Point2).Add(r)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// IntoCast creates a cast of this capsule moved to pos, swept along direction for length.
func (c Capsule) IntoCast(pos, direction mgl32.Vec3, length float32) Cast {
	return Cast{
		Capsule:   c.Offset(pos),
		Direction: direction,
		Length:    length,
	}
}

// Cast describes a capsule sweep query. It holds no result; resolving it against world geometry
// is the job of a CollisionBackend.
type Cast struct {
	Capsule   Capsule
	Direction mgl32.Vec3
	Length    float32
}

// Radius returns the radius of the cast capsule.
func (c Cast) Radius() float32 {
	return c.Capsule.Radius
}

// IntoRay makes a ray from the center of the capsule along the cast direction.
func (c Cast) IntoRay() Ray {
	return Ray{Origin: c.Capsule.Center(), Direction: c.Direction}
}

// End returns the capsule at the end of the sweep.
func (c Cast) End() Capsule {
	return c.Capsule.Offset(Normalize(c.Direction).Mul(c.Length))
}

// BBox returns the bounds of the whole sweep.
func (c Cast) BBox() cube.BBox {
	start, end := c.Capsule.BBox(), c.End().BBox()
	lo := minVec3(start.Min(), end.Min())
	hi := maxVec3(start.Max(), end.Max())
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

func minVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])}
}

func maxVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])}
}
