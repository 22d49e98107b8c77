// Package provision runs an ordered list of idempotent provisioning steps.
// Each step pairs a completion probe with an action; completed steps are
// skipped, and a failed action aborts the run. Because every action's
// output is also its completion marker, re-running after an interruption
// resumes from the first incomplete step.
package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/trackprep-io/trackprep/internal/logging"
)

// Step is one unit of provisioning work.
//
// Done must report false before a successful Run and true after it.
// Run must be safe to invoke on an already-complete step, although the
// runner never does so except under races with external writers.
type Step struct {
	Name string
	Done func() bool
	Run  func(ctx context.Context) error
}

// Event describes the progress of a single step during a run.
type Event struct {
	Step     string
	Status   string // "skipped", "started", "completed", "failed"
	Duration time.Duration
	Err      error
}

// Callback receives progress events if set on the Runner.
type Callback func(Event)

// StepError reports which step aborted the run.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner executes steps strictly in declaration order.
type Runner struct {
	Callback Callback
}

// Run executes each step in order, skipping steps whose probe already
// reports completion. The first action failure aborts the whole run;
// steps already completed are left on disk untouched.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("provisioning cancelled: %w", err)
		}

		if step.Done() {
			logging.Debug("step already complete", "step", step.Name)
			r.emit(Event{Step: step.Name, Status: "skipped"})
			continue
		}

		logging.Info("running step", "step", step.Name)
		r.emit(Event{Step: step.Name, Status: "started"})
		start := time.Now()

		if err := step.Run(ctx); err != nil {
			r.emit(Event{Step: step.Name, Status: "failed", Duration: time.Since(start), Err: err})
			return &StepError{Step: step.Name, Err: err}
		}

		r.emit(Event{Step: step.Name, Status: "completed", Duration: time.Since(start)})
	}
	return nil
}

func (r *Runner) emit(event Event) {
	if r.Callback != nil {
		r.Callback(event)
	}
}
