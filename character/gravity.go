package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/thirdperson/event"
	"github.com/oomph-ac/thirdperson/game"
	"github.com/oomph-ac/thirdperson/simulation"
)

// GravitySystem keeps the character on the ground or lets it fall.
type GravitySystem struct {
	*System

	// Grounded walks along the main surface following the move input.
	Grounded Phase
	// Airborne integrates gravity and drag until a walkable surface is hit.
	Airborne Phase
}

func newGravitySystem(opts simulation.Options) *GravitySystem {
	g := &GravitySystem{}
	g.Grounded = Phase{Name: "Grounded", Update: g.updateGrounded}
	g.Airborne = Phase{Name: "Airborne", Enter: g.enterAirborne, Update: g.updateAirborne}
	g.System = simulation.NewSystem("gravity", func() Phase { return g.Grounded },
		nextState(func(f *Frame) *simulation.SystemState { return &f.GravityState }), opts)
	return g
}

func (g *GravitySystem) phases() []Phase {
	return []Phase{g.Grounded, g.Airborne}
}

func (*GravitySystem) savedPhase(f *Frame) string {
	return f.GravityState.PhaseName
}

func (g *GravitySystem) updateGrounded(delta float32, s *System, c *Container) {
	n := c.State.Next()
	if n.Velocity.Y() > 0 {
		// Launched, most likely by a jump.
		s.ChangeToImmediate(g.Airborne, delta)
		return
	}

	hit, gap, ok := findGround(c, n.Position)
	surface := surfaceFrom(hit, Up)
	if !ok || !walkable(c, surface) {
		s.ChangeToImmediate(g.Airborne, delta)
		return
	}
	n.MainSurface = surface
	n.Position = n.Position.Sub(Up.Mul(gap))

	// Movement on the ground is planar; findGround keeps the feet on the surface.
	v := n.Input.Direction().Mul(c.Tuning.Surface.MoveSpeed).Add(n.Force.Mul(delta))
	v[1] = 0

	n.Acceleration = v.Sub(n.Velocity).Mul(1 / delta)
	n.Velocity = v
	if v.LenSqr() > 0 {
		move(c, n, v.Mul(delta))
		n.Velocity[1] = 0
	}
	if n.Velocity.LenSqr() > 0 && n.Input.Direction().LenSqr() > 0 {
		n.Forward = game.Normalize(mgl32.Vec3{n.Velocity.X(), 0, n.Velocity.Z()})
	}
}

func (g *GravitySystem) enterAirborne(_ *System, c *Container) {
	c.State.Next().MainSurface = Surface{}
}

type airArgs struct {
	gravity float32
	drag    float32
	force   mgl32.Vec3
}

// airDerivative is the acceleration of a falling body: gravity, external force and linear drag.
func airDerivative(v mgl32.Vec3, args airArgs) mgl32.Vec3 {
	return mgl32.Vec3{0, -args.gravity, 0}.Add(args.force).Sub(v.Mul(args.drag))
}

func (g *GravitySystem) updateAirborne(delta float32, s *System, c *Container) {
	n := c.State.Next()
	v := game.Integrate(airDerivative, n.Velocity, delta, airArgs{
		gravity: c.Tuning.Gravity.Acceleration,
		drag:    c.Tuning.Gravity.Drag,
		force:   n.Force,
	})
	if t := c.Tuning.Gravity.TerminalSpeed; t > 0 && v.Y() < -t {
		v[1] = -t
	}

	n.Acceleration = v.Sub(n.Velocity).Mul(1 / delta)
	n.Velocity = v

	falling := v.Y() <= 0
	touched := move(c, n, v.Mul(delta))
	if falling && touched.ground.Valid {
		n.MainSurface = touched.ground
		n.Velocity[1] = 0
		c.Schedule(event.Land)
		s.ChangeTo(g.Grounded)
	}
}
