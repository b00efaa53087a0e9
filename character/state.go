package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/thirdperson/oerror"
	"github.com/oomph-ac/thirdperson/utils"
)

// State is the frame history of a character. Next is the frame being written during the
// current tick, Curr the last settled one and Prev the one before it. Systems read Curr and
// write Next; once the tick ends, Next becomes Curr on the following Advance.
type State struct {
	frames *utils.History[Frame]
}

// NewState creates a state with size frames, all set to initial. size must be at least 3 so
// that Next, Curr and Prev always exist.
func NewState(size int, initial Frame) (*State, error) {
	if size < 3 {
		return nil, oerror.New("state: %w: need at least 3 frames, got %d", oerror.ErrCapacity, size)
	}
	frames, err := utils.NewHistory[Frame](size)
	if err != nil {
		return nil, err
	}
	frames.Fill(initial)
	return &State{frames: frames}, nil
}

// Advance starts a new tick. The new Next is a copy of the previous one with the per-tick force,
// wall contact and events cleared and the tick number incremented.
func (s *State) Advance() {
	next := s.frames.At(0)
	next.Tick++
	next.Force = mgl32.Vec3{}
	next.Wall = Surface{}
	next.Events.Clear()
	s.frames.Add(next)
}

// Next returns the frame being written during the current tick.
func (s *State) Next() *Frame {
	return s.frames.Ref(0)
}

// Curr returns the last settled frame.
func (s *State) Curr() Frame {
	return s.frames.At(1)
}

// Prev returns the frame before Curr.
func (s *State) Prev() Frame {
	return s.frames.At(2)
}

// At returns the frame offset ticks back from Next.
func (s *State) At(offset int) (Frame, error) {
	return s.frames.Get(offset)
}

// AtTick looks up the frame recorded for tick, searching from the newest frame backwards.
func (s *State) AtTick(tick uint64) (Frame, bool) {
	for _, f := range s.frames.All() {
		if f.Tick == tick {
			return f, true
		}
		if f.Tick < tick {
			break
		}
	}
	return Frame{}, false
}

// Override replaces Next with f.
func (s *State) Override(f Frame) {
	*s.frames.Ref(0) = f
}

// Fill replaces every stored frame with f, discarding the history.
func (s *State) Fill(f Frame) {
	s.frames.Fill(f)
}

// Len returns the number of frames kept.
func (s *State) Len() int {
	return s.frames.Len()
}

// IsIdle returns true if the settled frame is slower than threshold, compared squared.
func (s *State) IsIdle(sqrThreshold float32) bool {
	return s.Curr().Velocity.LenSqr() <= sqrThreshold
}
