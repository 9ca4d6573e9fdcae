// Package batch runs an ordered list of assignment specs through the
// planner and the form driver, one at a time against the single shared
// browser session. A failing item is recorded and the batch moves on;
// the report always covers every input spec.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/gradebatch/pkg/assignment"
	"github.com/entrhq/gradebatch/pkg/logging"
	"github.com/entrhq/gradebatch/pkg/planner"
)

// Executor runs one plan to completion or failure. *driver.Executor
// satisfies it; tests substitute fakes.
type Executor interface {
	Execute(plan planner.Plan) error
}

// Outcome is the immutable per-assignment result of a run.
type Outcome struct {
	// Name identifies the assignment (its spec name).
	Name string

	// Err is nil on success. On failure it retains the typed cause so
	// callers can classify with errors.As.
	Err error
}

// OK reports whether the assignment was created.
func (o Outcome) OK() bool { return o.Err == nil }

// Cause is the human-readable failure reason, empty on success.
func (o Outcome) Cause() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Options tunes a run.
type Options struct {
	// Pause is an optional delay between assignments, giving the
	// platform time to settle after each creation.
	Pause time.Duration

	// Logger receives per-item progress. May be nil.
	Logger *logging.Logger
}

// Run processes specs strictly in input order and returns one outcome
// per spec, in the same order. Spec-level and form-level failures are
// recorded and do not stop the batch. Cancellation is honored between
// assignments only: an in-flight plan always runs to completion or
// failure so a half-submitted form is never abandoned mid-write, and
// every spec not yet started is recorded as cancelled.
func Run(ctx context.Context, exec Executor, specs []assignment.Spec, opts Options) []Outcome {
	log := opts.Logger
	outcomes := make([]Outcome, 0, len(specs))

	for i, spec := range specs {
		if err := ctx.Err(); err != nil {
			log.Warnf("batch: cancelled with %d of %d assignments remaining", len(specs)-i, len(specs))
			for _, rest := range specs[i:] {
				outcomes = append(outcomes, Outcome{
					Name: rest.Name,
					Err:  fmt.Errorf("run cancelled before this assignment: %w", err),
				})
			}
			return outcomes
		}

		log.Infof("batch: [%d/%d] %s", i+1, len(specs), spec.Name)
		outcomes = append(outcomes, Outcome{Name: spec.Name, Err: createOne(exec, spec)})

		if last := &outcomes[len(outcomes)-1]; last.OK() {
			log.Infof("batch: created %q", spec.Name)
		} else {
			log.Errorf("batch: failed %q: %v", spec.Name, last.Err)
		}

		if opts.Pause > 0 && i < len(specs)-1 {
			pause(ctx, opts.Pause)
		}
	}

	return outcomes
}

// createOne plans and executes a single assignment.
func createOne(exec Executor, spec assignment.Spec) error {
	plan, err := planner.Build(spec)
	if err != nil {
		return err
	}
	return exec.Execute(plan)
}

// pause sleeps for the configured delay, waking early on cancellation.
func pause(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
