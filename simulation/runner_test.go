package simulation

import (
	"errors"
	"slices"
	"testing"

	"github.com/oomph-ac/thirdperson/oerror"
)

type orderedUpdater struct {
	name  string
	order *[]string
	err   error
}

func (u orderedUpdater) Name() string {
	return u.name
}

func (u orderedUpdater) Update(float32) error {
	*u.order = append(*u.order, u.name)
	return u.err
}

func TestRunnerUpdatesInOrder(t *testing.T) {
	var order []string
	r := NewRunner(
		orderedUpdater{name: "movement", order: &order},
		orderedUpdater{name: "gravity", order: &order, err: oerror.ErrPhaseCycle},
	)
	r.Register(orderedUpdater{name: "jump", order: &order})

	err := r.Update(0.02)
	if !slices.Equal(order, []string{"movement", "gravity", "jump"}) {
		t.Fatalf("unexpected order %v", order)
	}
	if !errors.Is(err, oerror.ErrPhaseCycle) {
		t.Fatalf("expected joined error to contain ErrPhaseCycle, got %v", err)
	}
	if len(r.Systems()) != 3 {
		t.Fatalf("expected 3 systems, got %d", len(r.Systems()))
	}
}

func TestRunnerWithUninitialisedSystem(t *testing.T) {
	s := NewSystem("lazy", func() Phase[int] { return Phase[int]{Name: "A"} }, nil, Options{})
	r := NewRunner(s)
	if err := r.Update(0.02); !errors.Is(err, oerror.ErrNotInitialised) {
		t.Fatalf("expected ErrNotInitialised, got %v", err)
	}
}
