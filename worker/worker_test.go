package worker

import (
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/thirdperson/character"
	"github.com/oomph-ac/thirdperson/settings"
	"github.com/oomph-ac/thirdperson/world"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunJoinsErrors(t *testing.T) {
	p := New(4, testLogger())
	defer p.Close()

	errA, errB := errors.New("a"), errors.New("b")
	var ran atomic.Int32
	err := p.Run(
		func() error { ran.Add(1); return errA },
		func() error { ran.Add(1); return nil },
		func() error { ran.Add(1); return errB },
	)
	if ran.Load() != 3 {
		t.Fatalf("expected every job to run, ran %d", ran.Load())
	}
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both errors, got %v", err)
	}
}

func TestRunRecoversPanics(t *testing.T) {
	p := New(2, testLogger())
	defer p.Close()

	err := p.Run(func() error { panic("boom") })
	if err == nil {
		t.Fatal("expected the panic to be returned as an error")
	}
	if err := p.Run(func() error { return nil }); err != nil {
		t.Fatalf("expected the pool to keep working, got %v", err)
	}
}

func TestStepMatchesSequential(t *testing.T) {
	tuning := settings.DefaultTuning()
	tuning.Simulation.HistorySize = 4
	floor := world.New(testLogger(), cube.Box(-50, -1, -50, 50, 0, 50))

	spawn := func() []*character.Character {
		chars := make([]*character.Character, 6)
		for i := range chars {
			c, err := character.New(tuning, floor, mgl32.Vec3{float32(i) * 3, float32(i), 0}, mgl32.Vec3{0, 0, 1}, testLogger())
			if err != nil {
				t.Fatal(err)
			}
			chars[i] = c
		}
		return chars
	}
	inputs := []character.Input{
		{},
		{Move: mgl32.Vec2{1, 0}},
		{Jump: true},
		{Move: mgl32.Vec2{0, 1}, Jump: true},
		{Move: mgl32.Vec2{-1, -1}},
		{},
	}

	parallel, sequential := spawn(), spawn()

	p := New(3, testLogger())
	defer p.Close()
	for range 50 {
		if err := p.Step(0.02, parallel, inputs); err != nil {
			t.Fatal(err)
		}
		for i, c := range sequential {
			if err := c.Step(0.02, inputs[i]); err != nil {
				t.Fatal(err)
			}
		}
	}

	for i := range parallel {
		if *parallel[i].State().Next() != *sequential[i].State().Next() {
			t.Fatalf("character %d diverged", i)
		}
	}
}

func TestStepRejectsMismatchedInputs(t *testing.T) {
	p := New(1, testLogger())
	defer p.Close()

	if err := p.Step(0.02, make([]*character.Character, 2), nil); err == nil {
		t.Fatal("expected an error")
	}
}
