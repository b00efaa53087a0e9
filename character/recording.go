package character

import (
	"iter"

	"github.com/oomph-ac/thirdperson/oerror"
	"github.com/oomph-ac/thirdperson/utils"
)

// Sample is one recorded tick: what was fed to the character and the checksum of the frame it
// produced.
type Sample struct {
	Delta    float32
	Input    Input
	Checksum uint64
}

// Recording captures the inputs given to a character together with the resulting frame
// checksums, so the run can be replayed and checked for determinism.
type Recording struct {
	start   Frame
	samples *utils.Buffer[Sample]
}

// NewRecording creates a recording of at most capacity ticks.
func NewRecording(capacity int) (*Recording, error) {
	samples, err := utils.NewBuffer[Sample](capacity)
	if err != nil {
		return nil, oerror.New("recording: %w", err)
	}
	return &Recording{samples: samples}, nil
}

// Step steps c and records the tick. The first recorded tick also captures the frame the run
// starts from. A full recording returns an error without stepping.
func (r *Recording) Step(c *Character, delta float32, input Input) error {
	if r.samples.IsFull() {
		return oerror.New("recording: %w (%d ticks)", oerror.ErrBufferFull, r.samples.Cap())
	}
	if r.samples.Len() == 0 {
		r.start = *c.State().Next()
	}

	if err := c.Step(delta, input); err != nil {
		return err
	}
	return r.samples.Add(Sample{
		Delta:    delta,
		Input:    input,
		Checksum: c.State().Next().Checksum(),
	})
}

// Start returns the frame the recording starts from, and false if nothing was recorded.
func (r *Recording) Start() (Frame, bool) {
	return r.start, r.samples.Len() > 0
}

// Samples yields every recorded tick in order.
func (r *Recording) Samples() iter.Seq[Sample] {
	return r.samples.All()
}

// Len returns the number of recorded ticks.
func (r *Recording) Len() int {
	return r.samples.Len()
}

// Clear drops every recorded tick.
func (r *Recording) Clear() {
	r.samples.Clear()
	r.start = Frame{}
}

// Replay resets c to the start of the recording and steps it with the recorded inputs. It
// returns ErrDesync for the first tick whose frame checksum differs from the recorded one.
func Replay(c *Character, r *Recording) error {
	start, ok := r.Start()
	if !ok {
		return nil
	}
	if err := c.Reset(start); err != nil {
		return err
	}

	for s := range r.Samples() {
		if err := c.Step(s.Delta, s.Input); err != nil {
			return err
		}
		next := c.State().Next()
		if sum := next.Checksum(); sum != s.Checksum {
			return oerror.New("replay: %w at tick %d: recorded %016x, got %016x", oerror.ErrDesync, next.Tick, s.Checksum, sum)
		}
	}
	return nil
}
