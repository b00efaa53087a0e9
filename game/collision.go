package game

import "github.com/go-gl/mathgl/mgl32"

// Hit is the result of resolving a Cast against world geometry.
type Hit struct {
	// Point is the contact point on the surface.
	Point mgl32.Vec3
	// Normal is the surface normal at the contact point.
	Normal mgl32.Vec3
	// Distance is how far along the cast the capsule travelled before touching the surface.
	Distance float32
}

// CollisionBackend resolves capsule casts against world geometry. The core only issues queries;
// the implementation is supplied by the host.
type CollisionBackend interface {
	// CapsuleCast returns the first surface the cast touches, if any.
	CapsuleCast(c Cast) (Hit, bool)
}
