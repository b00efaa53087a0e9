package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line starting at Origin and extending along Direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is an infinite plane through Point with the given Normal.
type Plane struct {
	Normal mgl32.Vec3
	Point  mgl32.Vec3
}

// Raycast intersects the ray with the plane. It returns the distance along the ray and false if
// the ray is parallel to the plane or the plane is behind the ray's origin.
func (p Plane) Raycast(r Ray) (float32, bool) {
	n := Normalize(p.Normal)
	denom := n.Dot(r.Direction)
	if math32.Abs(denom) < Epsilon {
		return 0, false
	}

	t := n.Dot(p.Point.Sub(r.Origin)) / denom
	if t < 0 {
		return t, false
	}
	return t, true
}

// TryIntersect finds the intersection of the lines through a and b. The lines must be coplanar
// and not parallel; skew or parallel rays return false.
// see: https://stackoverflow.com/questions/59449628/check-when-two-vector3-lines-intersect-unity3d
func TryIntersect(a, b Ray) (mgl32.Vec3, bool) {
	c := b.Origin.Sub(a.Origin)
	axb := a.Direction.Cross(b.Direction)
	cxb := c.Cross(b.Direction)

	sqr := axb.LenSqr()
	if math32.Abs(Normalize(c).Dot(axb)) >= Epsilon || sqr <= Epsilon {
		return mgl32.Vec3{}, false
	}

	s := cxb.Dot(axb) / sqr
	return a.At(s), true
}

// TryIntersectIncidencePlane intersects a with the plane of incidence of b: the plane that
// contains b and is orthogonal to the plane spanned by a and b. It returns false when a does not
// hit that plane, which includes a being parallel to b.
// see: https://en.wikipedia.org/wiki/Plane_of_incidence
func TryIntersectIncidencePlane(a, b Ray) (mgl32.Vec3, bool) {
	t := b.Direction.Cross(a.Direction)
	n := b.Direction.Cross(t)
	if n.LenSqr() <= Epsilon*Epsilon {
		return mgl32.Vec3{}, false
	}

	dist, ok := Plane{Normal: n, Point: b.Origin}.Raycast(a)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return a.At(dist), true
}
