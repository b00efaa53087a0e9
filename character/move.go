package character

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/thirdperson/game"
)

// contact lists the surfaces touched by one move.
type contact struct {
	ground Surface
	wall   Surface
}

// move slides the frame's position along displacement. A cast that hits a surface leaves the
// capsule just off it and the rest of the move continues projected onto that surface, for at
// most MaxSlides casts. Velocity loses its component into every surface touched.
//
// Casts start skin above the feet so that a move along the ground does not touch it. The lift
// is undone at the end unless the move came to rest on the ground.
func move(c *Container, n *Frame, displacement mgl32.Vec3) contact {
	var touched contact

	center := c.Capsule.Center()
	offset := c.Tuning.Surface.ContactOffset
	pos := n.Position.Add(Up.Mul(skin))
	delta := displacement

	for range c.Tuning.Surface.MaxSlides {
		length := delta.Len()
		if game.Float32ApproxEq(length, 0) {
			break
		}
		target := pos.Add(delta)

		cast := c.Capsule.IntoCast(pos, delta.Mul(1/length), length)
		hit, ok := c.Resolve(cast)
		if !ok {
			pos = target
			break
		}
		hit.Normal = game.Normalize(hit.Normal)

		hitCenter, ok := capsuleCenterAt(cast, hit)
		if !ok {
			hitCenter = cast.IntoRay().At(hit.Distance)
		}
		pos = hitCenter.Sub(center).Add(hit.Normal.Mul(offset))
		delta = game.ProjectOnPlane(target.Sub(pos), hit.Normal)

		if d := n.Velocity.Dot(hit.Normal); d < 0 {
			n.Velocity = n.Velocity.Sub(hit.Normal.Mul(d))
		}

		switch surface := surfaceFrom(hit, Up); {
		case walkable(c, surface):
			touched.ground = surface
		case isWall(c, surface):
			touched.wall = surface
		}
	}

	if !touched.ground.Valid {
		pos = pos.Sub(Up.Mul(skin))
	}
	n.Position = pos
	if touched.wall.Valid {
		n.Wall = touched.wall
	}
	return touched
}

// capsuleCenterAt finds the center of the cast capsule at the moment it touched hit. The hit
// normal points at the capsule's axis from a radius away, so the center is where the cast ray
// crosses that axis.
func capsuleCenterAt(cast game.Cast, hit game.Hit) (mgl32.Vec3, bool) {
	capsule := cast.Capsule
	up := capsule.Up()
	axisPoint := hit.Point.Add(hit.Normal.Mul(capsule.Radius))

	if dot := cast.Direction.Dot(up); math32.Abs(dot) > 0.9999 {
		// Moving along the axis only an end sphere can be hit, and axisPoint is its center.
		half := capsule.Height()*0.5 - capsule.Radius
		if dot > 0 {
			return axisPoint.Sub(up.Mul(half)), true
		}
		return axisPoint.Add(up.Mul(half)), true
	}

	ray := cast.IntoRay()
	axis := game.Ray{Origin: axisPoint, Direction: up}
	if p, ok := game.TryIntersect(ray, axis); ok {
		return p, true
	}
	// Rounding can leave the two lines skew: use the point of the ray closest to the axis.
	return game.TryIntersectIncidencePlane(ray, axis)
}
