package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCapsuleFrom(t *testing.T) {
	c := CapsuleFrom(mgl32.Vec3{0, 5, 0}, 1, 4, mgl32.Vec3{0, 1, 0})
	if c.Point1 != (mgl32.Vec3{0, 4, 0}) {
		t.Fatalf("expected point1 (0,4,0), got %v", c.Point1)
	}
	if c.Point2 != (mgl32.Vec3{0, 6, 0}) {
		t.Fatalf("expected point2 (0,6,0), got %v", c.Point2)
	}
	if c.Height() != 4 {
		t.Fatalf("expected total height 4, got %v", c.Height())
	}
	if c.Center() != (mgl32.Vec3{0, 5, 0}) {
		t.Fatalf("expected center (0,5,0), got %v", c.Center())
	}
	if c.Up() != (mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("expected up (0,1,0), got %v", c.Up())
	}
}

func TestCapsuleOffset(t *testing.T) {
	c := CapsuleFrom(mgl32.Vec3{}, 0.5, 2, mgl32.Vec3{0, 1, 0})
	moved := c.Offset(mgl32.Vec3{1, 2, 3})

	if moved.Point1 != c.Point1.Add(mgl32.Vec3{1, 2, 3}) || moved.Point2 != c.Point2.Add(mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("expected both endpoints translated, got %v", moved)
	}
	if moved.Radius != c.Radius {
		t.Fatalf("expected radius to be unchanged, got %v", moved.Radius)
	}
	// value semantics: the original is untouched.
	if c.Center() != (mgl32.Vec3{}) {
		t.Fatalf("expected original capsule unchanged, got %v", c)
	}
}

func TestCapsuleBBox(t *testing.T) {
	c := CapsuleFrom(mgl32.Vec3{0, 1, 0}, 0.5, 2, mgl32.Vec3{0, 1, 0})
	bb := c.BBox()
	if bb.Min() != (mgl32.Vec3{-0.5, 0, -0.5}) || bb.Max() != (mgl32.Vec3{0.5, 2, 0.5}) {
		t.Fatalf("unexpected bounds %v -> %v", bb.Min(), bb.Max())
	}
}

func TestCast(t *testing.T) {
	c := CapsuleFrom(mgl32.Vec3{}, 0.5, 2, mgl32.Vec3{0, 1, 0})
	cast := c.IntoCast(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, -1, 0}, 3)

	if cast.Radius() != 0.5 {
		t.Fatalf("expected radius 0.5, got %v", cast.Radius())
	}
	if cast.Capsule.Center() != (mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("expected cast capsule centered at the cast position, got %v", cast.Capsule.Center())
	}

	ray := cast.IntoRay()
	if ray.Origin != (mgl32.Vec3{0, 1, 0}) || ray.Direction != (mgl32.Vec3{0, -1, 0}) {
		t.Fatalf("unexpected ray %v", ray)
	}
	if cast.End().Center() != (mgl32.Vec3{0, -2, 0}) {
		t.Fatalf("expected sweep end at (0,-2,0), got %v", cast.End().Center())
	}

	bb := cast.BBox()
	if bb.Min().Y() != -3 || bb.Max().Y() != 2 {
		t.Fatalf("expected sweep bounds y in [-3, 2], got %v -> %v", bb.Min(), bb.Max())
	}
}
