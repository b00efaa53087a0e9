package worker

import (
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/thirdperson/character"
	"github.com/oomph-ac/thirdperson/oerror"
)

// Job is a unit of work run by the pool, typically stepping a single character.
type Job func() error

type task struct {
	job  Job
	done chan<- error
}

// Pool runs jobs on a fixed number of goroutines. Jobs given to one Run call must not share
// state: a character is only ever stepped by one job at a time.
type Pool struct {
	queue chan task
	wg    sync.WaitGroup
	log   *slog.Logger

	closeOnce sync.Once
}

// New starts a pool of workers goroutines. A non-positive count uses one worker per CPU.
func New(workers int, log *slog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = slog.Default()
	}

	p := &Pool{
		queue: make(chan task, workers),
		log:   log,
	}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for t := range p.queue {
		t.done <- p.run(t.job)
	}
}

// run calls job, turning a panic into an error that is also reported to sentry.
func (p *Pool) run(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("job panicked", "panic", r)
			err = oerror.New("worker: job panicked: %v", r)

			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("component", "worker")
			})
			hub.Recover(err)
		}
	}()
	return job()
}

// Run runs every job and waits for all of them. The errors of failing jobs are joined.
func (p *Pool) Run(jobs ...Job) error {
	done := make(chan error, len(jobs))
	for _, job := range jobs {
		p.queue <- task{job: job, done: done}
	}

	var errs []error
	for range jobs {
		if err := <-done; err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Step steps every character by delta with the input at the same index, in parallel.
func (p *Pool) Step(delta float32, chars []*character.Character, inputs []character.Input) error {
	if len(chars) != len(inputs) {
		return oerror.New("worker: %d characters but %d inputs", len(chars), len(inputs))
	}

	jobs := make([]Job, len(chars))
	for i, c := range chars {
		jobs[i] = func() error {
			return c.Step(delta, inputs[i])
		}
	}
	return p.Run(jobs...)
}

// Close stops the workers once queued jobs have finished and flushes pending crash reports.
// Run must not be called afterwards.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.queue)
		p.wg.Wait()
		sentry.Flush(2 * time.Second)
	})
}
