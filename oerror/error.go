package oerror

import "fmt"

var (
	// ErrPhaseCycle is returned when a same-tick phase cascade revisits a phase.
	ErrPhaseCycle = NewOomphError("phase change recursion")
	// ErrNotInitialised is returned when a system is updated before Init.
	ErrNotInitialised = NewOomphError("system must be initialised before update")
	// ErrOutOfRange is returned when reading past the stored range of a history or buffer.
	ErrOutOfRange = NewOomphError("index out of range")
	// ErrBufferFull is returned when appending to a full buffer.
	ErrBufferFull = NewOomphError("buffer is full")
	// ErrCapacity is returned when a history or buffer is created without a positive capacity.
	ErrCapacity = NewOomphError("capacity must be positive")
	// ErrDesync is returned when a replayed frame does not match its recording.
	ErrDesync = NewOomphError("replay desync")
)

type OomphError struct {
	Err string
}

func NewOomphError(err string) *OomphError {
	return &OomphError{Err: err}
}

func (e *OomphError) Error() string {
	return e.Err
}

// New formats an error message. Use %w with one of the sentinels above so callers can match it
// with errors.Is.
func New(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
