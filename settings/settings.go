package settings

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Tuning contains every value the character systems read. None of the defaults are meant as
// real movement tuning; they only give the mechanisms something to run with.
type Tuning struct {
	Simulation struct {
		// HistorySize is the number of frames kept by a character. It has no default: it must
		// be large enough for the deepest same-tick cascade a game uses, and at least 3.
		HistorySize int `toml:"history_size"`
		// RecordingSize is the number of ticks a Recording can hold.
		RecordingSize int `toml:"recording_size"`
	} `toml:"simulation"`

	Capsule struct {
		Radius float32 `toml:"radius"`
		Height float32 `toml:"height"`
	} `toml:"capsule"`

	Surface struct {
		// GroundDistance is how far below the capsule a surface still counts as ground.
		GroundDistance float32 `toml:"ground_distance"`
		// MaxAngle is the steepest slope, in degrees, that counts as ground.
		MaxAngle  float32 `toml:"max_angle"`
		MoveSpeed float32 `toml:"move_speed"`
		// ContactOffset is how far a resolved move keeps the capsule off the surface it hit.
		ContactOffset float32 `toml:"contact_offset"`
		// MaxSlides bounds the casts one move may take while sliding along surfaces.
		MaxSlides int `toml:"max_slides"`
	} `toml:"surface"`

	Wall struct {
		// MinAngle is the shallowest slope, in degrees, that counts as a wall. Anything steeper
		// than 180 - MinAngle is a ceiling.
		MinAngle float32 `toml:"min_angle"`
		// TransferScale scales the speed into a wall that is turned upwards on contact.
		TransferScale float32 `toml:"transfer_scale"`
		// Magnet is the speed pressing a sliding character into the wall, so that every move
		// keeps touching it.
		Magnet float32 `toml:"magnet"`
		// Friction is the deceleration of the speed along the wall while sliding.
		Friction float32 `toml:"friction"`
	} `toml:"wall"`

	Gravity struct {
		Acceleration float32 `toml:"acceleration"`
		// Drag is the linear air drag coefficient applied while airborne.
		Drag float32 `toml:"drag"`
		// TerminalSpeed caps the falling speed; zero disables the cap.
		TerminalSpeed float32 `toml:"terminal_speed"`
	} `toml:"gravity"`

	Jump struct {
		Speed         float32 `toml:"speed"`
		SquatDuration float32 `toml:"squat_duration"`
		Cooldown      float32 `toml:"cooldown"`
		CoyoteTime    float32 `toml:"coyote_time"`
		MaxJumps      uint32  `toml:"max_jumps"`
	} `toml:"jump"`

	Idle struct {
		SqrSpeedThreshold float32 `toml:"sqr_speed_threshold"`
	} `toml:"idle"`

	Stride struct {
		Length float32 `toml:"length"`
	} `toml:"stride"`
}

// DefaultTuning returns example values for every field except Simulation.HistorySize, which the
// caller has to choose.
func DefaultTuning() Tuning {
	t := Tuning{}
	t.Simulation.RecordingSize = 60 * 60

	t.Capsule.Radius = 0.5
	t.Capsule.Height = 2

	t.Surface.GroundDistance = 0.1
	t.Surface.MaxAngle = 50
	t.Surface.MoveSpeed = 6
	t.Surface.ContactOffset = 0.001
	t.Surface.MaxSlides = 4

	t.Wall.MinAngle = 60
	t.Wall.TransferScale = 0.5
	t.Wall.Magnet = 2
	t.Wall.Friction = 2

	t.Gravity.Acceleration = 20
	t.Gravity.Drag = 0.1
	t.Gravity.TerminalSpeed = 50

	t.Jump.Speed = 8
	t.Jump.SquatDuration = 0.05
	t.Jump.Cooldown = 0.2
	t.Jump.CoyoteTime = 0.1
	t.Jump.MaxJumps = 1

	t.Idle.SqrSpeedThreshold = 0.01

	t.Stride.Length = 0.8
	return t
}

// Load reads tuning from a TOML file on top of DefaultTuning and validates it.
func Load(path string) (Tuning, error) {
	t := DefaultTuning()
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return t, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("validate tuning %s: %w", path, err)
	}
	return t, nil
}

// Decode parses tuning from TOML text on top of DefaultTuning and validates it.
func Decode(data string) (Tuning, error) {
	t := DefaultTuning()
	if _, err := toml.Decode(data, &t); err != nil {
		return t, fmt.Errorf("decode tuning: %w", err)
	}
	return t, t.Validate()
}

// Validate reports every invalid field.
func (t Tuning) Validate() error {
	var errs []error
	if t.Simulation.HistorySize < 3 {
		errs = append(errs, fmt.Errorf("simulation.history_size must be at least 3, got %d", t.Simulation.HistorySize))
	}
	if t.Simulation.RecordingSize <= 0 {
		errs = append(errs, fmt.Errorf("simulation.recording_size must be positive, got %d", t.Simulation.RecordingSize))
	}
	if t.Capsule.Radius <= 0 {
		errs = append(errs, fmt.Errorf("capsule.radius must be positive, got %v", t.Capsule.Radius))
	}
	if t.Capsule.Height < 2*t.Capsule.Radius {
		errs = append(errs, fmt.Errorf("capsule.height %v is smaller than its diameter", t.Capsule.Height))
	}
	if t.Surface.GroundDistance < 0 {
		errs = append(errs, fmt.Errorf("surface.ground_distance must not be negative, got %v", t.Surface.GroundDistance))
	}
	if t.Surface.ContactOffset < 0 {
		errs = append(errs, fmt.Errorf("surface.contact_offset must not be negative, got %v", t.Surface.ContactOffset))
	}
	if t.Surface.MaxSlides < 1 {
		errs = append(errs, fmt.Errorf("surface.max_slides must be at least 1, got %d", t.Surface.MaxSlides))
	}
	if t.Wall.MinAngle <= t.Surface.MaxAngle || t.Wall.MinAngle > 90 {
		errs = append(errs, fmt.Errorf("wall.min_angle %v must be above surface.max_angle and at most 90", t.Wall.MinAngle))
	}
	if t.Stride.Length <= 0 {
		errs = append(errs, fmt.Errorf("stride.length must be positive, got %v", t.Stride.Length))
	}
	return errors.Join(errs...)
}
