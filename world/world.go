package world

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/thirdperson/game"
	"github.com/sasha-s/go-deadlock"
)

// Static is a collision backend made of axis-aligned boxes that never move. Casts may be issued
// from several goroutines at once while boxes are added.
type Static struct {
	boxes []cube.BBox
	log   *slog.Logger

	deadlock.RWMutex
}

// New creates a static world out of boxes.
func New(log *slog.Logger, boxes ...cube.BBox) *Static {
	if log == nil {
		log = slog.Default()
	}
	return &Static{
		boxes: append([]cube.BBox(nil), boxes...),
		log:   log,
	}
}

// Add adds boxes to the world.
func (s *Static) Add(boxes ...cube.BBox) {
	s.Lock()
	defer s.Unlock()

	s.boxes = append(s.boxes, boxes...)
	s.log.Debug("added boxes", "count", len(boxes), "total", len(s.boxes))
}

// Clear removes every box.
func (s *Static) Clear() {
	s.Lock()
	defer s.Unlock()

	s.boxes = s.boxes[:0]
}

// Len returns the number of boxes.
func (s *Static) Len() int {
	s.RLock()
	defer s.RUnlock()

	return len(s.boxes)
}

// CapsuleCast sweeps the capsule through the world and returns the closest box it touches.
// Every box is grown by the capsule's extents and the capsule's center is traced through it, so
// box corners are treated as square. A cast that starts touching a box only hits it when moving
// into it.
func (s *Static) CapsuleCast(c game.Cast) (game.Hit, bool) {
	dir := game.Normalize(c.Direction)
	if dir.LenSqr() == 0 || c.Length <= 0 {
		return game.Hit{}, false
	}

	start := c.Capsule.Center()
	end := start.Add(dir.Mul(c.Length))
	r := c.Radius()
	ext := game.AbsVec32(c.Capsule.Point2.Sub(c.Capsule.Point1)).Mul(0.5).Add(mgl32.Vec3{r, r, r})
	sweep := c.BBox().Grow(game.Epsilon)

	s.RLock()
	defer s.RUnlock()

	var (
		closest game.Hit
		found   bool
	)
	for _, bb := range s.boxes {
		if !bb.IntersectsWith(sweep) {
			continue
		}
		hit, ok := castBox(bb, ext, start, end, dir)
		if ok && (!found || hit.Distance < closest.Distance) {
			closest, found = hit, true
		}
	}
	return closest, found
}

// castBox traces the segment from start to end through bb grown by ext.
func castBox(bb cube.BBox, ext, start, end, dir mgl32.Vec3) (game.Hit, bool) {
	grown := bb.GrowVec3(ext)

	var pos mgl32.Vec3
	if within(grown, start) {
		pos = start
	} else {
		result, ok := trace.BBoxIntercept(grown, start, end)
		if !ok {
			return game.Hit{}, false
		}
		pos = result.Position()
	}

	normal := nearestFace(grown, pos)
	if dir.Dot(normal) >= 0 {
		// Moving away from or along the surface.
		return game.Hit{}, false
	}
	return game.Hit{
		Point:    clampToBox(pos, bb),
		Normal:   normal,
		Distance: pos.Sub(start).Len(),
	}, true
}

// within returns true if p is inside bb or within Epsilon of its surface.
func within(bb cube.BBox, p mgl32.Vec3) bool {
	lo, hi := bb.Min(), bb.Max()
	for i := range 3 {
		if p[i] < lo[i]-game.Epsilon || p[i] > hi[i]+game.Epsilon {
			return false
		}
	}
	return true
}

// nearestFace returns the outward normal of the face of bb closest to p.
func nearestFace(bb cube.BBox, p mgl32.Vec3) mgl32.Vec3 {
	lo, hi := bb.Min(), bb.Max()

	var normal mgl32.Vec3
	best := float32(-1)
	for i := range 3 {
		if d := math32.Abs(p[i] - lo[i]); best < 0 || d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[i] = -1
		}
		if d := math32.Abs(hi[i] - p[i]); d < best {
			best = d
			normal = mgl32.Vec3{}
			normal[i] = 1
		}
	}
	return normal
}

func clampToBox(p mgl32.Vec3, bb cube.BBox) mgl32.Vec3 {
	lo, hi := bb.Min(), bb.Max()
	for i := range 3 {
		p[i] = mgl32.Clamp(p[i], lo[i], hi[i])
	}
	return p
}
