package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used by the ray and plane intersection tests.
const Epsilon float32 = 1e-4

// Integrate advances v0 by dt using Heun's method: an Euler predictor followed by a corrector that
// averages the derivative at both ends of the step. A constant derivative degrades to one Euler step.
func Integrate[T any](
	derivative func(v mgl32.Vec3, args T) mgl32.Vec3,
	v0 mgl32.Vec3,
	dt float32,
	args T,
) mgl32.Vec3 {
	a0 := derivative(v0, args)
	v1 := v0.Add(a0.Mul(dt))

	a1 := derivative(v1, args)
	a := a0.Add(a1).Mul(0.5)

	return v0.Add(a.Mul(dt))
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3ApproxEq compares two vectors component-wise with Float32ApproxEq.
func Vec3ApproxEq(a, b mgl32.Vec3) bool {
	return Float32ApproxEq(a[0], b[0]) && Float32ApproxEq(a[1], b[1]) && Float32ApproxEq(a[2], b[2])
}

// Normalize returns the unit vector of v, or the zero vector if v is too small to normalize.
// mgl32's Normalize divides by zero in that case.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= 1e-5 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// ProjectOnPlane removes the component of v along the plane normal n.
func ProjectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	n = Normalize(n)
	return v.Sub(n.Mul(v.Dot(n)))
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// AbsVec32 will return the given vector, but all the values of it are switched to their absolute values.
func AbsVec32(vec mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Abs(vec.X()), math32.Abs(vec.Y()), math32.Abs(vec.Z())}
}
