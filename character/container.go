package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/thirdperson/event"
	"github.com/oomph-ac/thirdperson/game"
	"github.com/oomph-ac/thirdperson/settings"
)

// Up is the world up axis.
var Up = mgl32.Vec3{0, 1, 0}

// Container is what every system of a character reads and writes.
type Container struct {
	Tuning settings.Tuning
	State  *State
	Events *event.Dispatcher
	// Collision resolves capsule casts. It may be nil, in which case nothing is ever hit.
	Collision game.CollisionBackend
	// Capsule is the collision volume relative to the character's feet.
	Capsule game.Capsule
}

// Schedule marks evt as happened during the current tick. It is dispatched after every system
// has been updated.
func (c *Container) Schedule(evt event.Event) {
	c.State.Next().Events.Add(evt)
}

// Cast sweeps the capsule placed at pos along direction. An empty sweep or a missing backend
// never hits.
func (c *Container) Cast(pos, direction mgl32.Vec3, length float32) (game.Hit, bool) {
	direction = game.Normalize(direction)
	if length <= 0 || direction.LenSqr() == 0 {
		return game.Hit{}, false
	}
	return c.Resolve(c.Capsule.IntoCast(pos, direction, length))
}

// Resolve passes cast to the collision backend.
func (c *Container) Resolve(cast game.Cast) (game.Hit, bool) {
	if c.Collision == nil {
		return game.Hit{}, false
	}
	return c.Collision.CapsuleCast(cast)
}
