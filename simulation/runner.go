package simulation

import "errors"

// Updater is anything the Runner can tick. *System implements it.
type Updater interface {
	Name() string
	Update(delta float32) error
}

// Runner updates a fixed list of systems in declaration order. Later systems may read what
// earlier ones wrote during the same tick, so the order is part of the simulation.
type Runner struct {
	systems []Updater
}

// NewRunner ...
func NewRunner(systems ...Updater) *Runner {
	return &Runner{systems: systems}
}

// Register appends a system to the end of the update order.
func (r *Runner) Register(u Updater) {
	r.systems = append(r.systems, u)
}

// Update ticks every system once. A failing system does not stop the ones after it; all errors
// are joined.
func (r *Runner) Update(delta float32) error {
	var errs []error
	for _, s := range r.systems {
		if err := s.Update(delta); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Systems returns the systems in update order.
func (r *Runner) Systems() []Updater {
	return r.systems
}
