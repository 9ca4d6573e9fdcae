// Package driver executes action plans against a live page. Every
// action waits for its target control with a bounded poll, applies the
// click or value, then re-reads the control to confirm the action took
// effect. The first failure aborts the rest of the plan; nothing already
// applied is undone, since an abandoned in-progress form is safe to
// leave behind.
package driver

import (
	"fmt"
	"time"

	"github.com/entrhq/gradebatch/pkg/logging"
	"github.com/entrhq/gradebatch/pkg/planner"
)

// Surface is the slice of page behavior the driver needs. A live
// browser session satisfies it; tests substitute a fake.
type Surface interface {
	// Count reports how many elements currently match the selector.
	Count(selector string) (int, error)

	// IsVisible reports whether the first match is visible.
	IsVisible(selector string) (bool, error)

	// IsEnabled reports whether the first match is enabled.
	IsEnabled(selector string) (bool, error)

	// Click clicks the first match.
	Click(selector string) error

	// Fill replaces the first match's value.
	Fill(selector, value string) error

	// InputValue reads the first match's current value.
	InputValue(selector string) (string, error)

	// IsChecked reports whether the first match is checked.
	IsChecked(selector string) (bool, error)

	// Reset returns the page to the course assignments list, the known
	// starting point for a create-assignment plan.
	Reset() error

	// URL returns the page's current address.
	URL() string
}

// Executor drives plans against one surface.
type Executor struct {
	surface Surface
	timeout time.Duration
	poll    time.Duration
	log     *logging.Logger
}

// Option adjusts an Executor.
type Option func(*Executor)

// WithTimeout bounds every per-control wait.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// WithPollInterval sets the readiness polling cadence.
func WithPollInterval(d time.Duration) Option {
	return func(e *Executor) { e.poll = d }
}

// WithLogger attaches a debug logger.
func WithLogger(log *logging.Logger) Option {
	return func(e *Executor) { e.log = log }
}

const (
	defaultTimeout      = 20 * time.Second
	defaultPollInterval = 100 * time.Millisecond
)

// New creates an executor bound to one page surface.
func New(surface Surface, opts ...Option) *Executor {
	e := &Executor{
		surface: surface,
		timeout: defaultTimeout,
		poll:    defaultPollInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the plan's actions in order, then submits the form and
// confirms the platform accepted it. It returns the first failure; the
// remainder of the plan is not attempted. Whatever happens, the page is
// steered back to the assignments list afterward so one assignment's
// outcome never strands the next plan on a half-filled form or a
// post-create editor page.
func (e *Executor) Execute(plan planner.Plan) error {
	if err := e.run(plan); err != nil {
		e.recover()
		return err
	}
	return nil
}

func (e *Executor) run(plan planner.Plan) error {
	for _, action := range plan.Actions {
		e.log.Debugf("driver: %s %q (%s)", action.Op, action.Label, action.Selector)
		if err := e.apply(action); err != nil {
			return err
		}
	}
	return e.submit(plan.Submit)
}

// recover returns to the assignments list after a failed plan, best
// effort; the plan's own error is what gets reported.
func (e *Executor) recover() {
	if err := e.surface.Reset(); err != nil {
		e.log.Warnf("driver: could not return to assignments list: %v", err)
	}
}

func (e *Executor) apply(action planner.Action) error {
	if action.Reveal != "" {
		if err := e.ensureChecked(action.Label, action.Reveal); err != nil {
			return err
		}
	}

	if err := e.awaitInteractable(action.Label, action.Selector); err != nil {
		return err
	}

	switch action.Op {
	case planner.OpOpenForm:
		if err := e.surface.Click(action.Selector); err != nil {
			return fmt.Errorf("%s: click failed: %w", action.Label, err)
		}
		for _, follow := range action.Follow {
			if err := e.awaitInteractable(action.Label, follow); err != nil {
				return err
			}
			if err := e.surface.Click(follow); err != nil {
				return fmt.Errorf("%s: click failed: %w", action.Label, err)
			}
		}
		return nil

	case planner.OpFill:
		if err := e.surface.Fill(action.Selector, action.Value); err != nil {
			return fmt.Errorf("%s: fill failed: %w", action.Label, err)
		}
		got, err := e.surface.InputValue(action.Selector)
		if err != nil {
			return fmt.Errorf("%s: readback failed: %w", action.Label, err)
		}
		if got != action.Value {
			return &StaleStateError{Label: action.Label, Want: action.Value, Got: got}
		}
		return nil

	case planner.OpFillDate:
		if err := e.surface.Fill(action.Selector, action.Value); err != nil {
			return fmt.Errorf("%s: fill failed: %w", action.Label, err)
		}
		// The datepicker widget reformats what was typed, so only an
		// empty control counts as a failed set.
		got, err := e.surface.InputValue(action.Selector)
		if err != nil {
			return fmt.Errorf("%s: readback failed: %w", action.Label, err)
		}
		if got == "" {
			return &StaleStateError{Label: action.Label, Want: action.Value, Got: ""}
		}
		return nil

	case planner.OpToggle:
		return e.setChecked(action.Label, action.Selector)

	default:
		return fmt.Errorf("%s: unknown action op %q", action.Label, action.Op)
	}
}

// ensureChecked turns on the checkbox that reveals a dependent control.
func (e *Executor) ensureChecked(label, selector string) error {
	return e.setChecked(label+" (enabling option)", selector)
}

func (e *Executor) setChecked(label, selector string) error {
	if err := e.awaitInteractable(label, selector); err != nil {
		return err
	}
	checked, err := e.surface.IsChecked(selector)
	if err != nil {
		return fmt.Errorf("%s: state read failed: %w", label, err)
	}
	if !checked {
		if err := e.surface.Click(selector); err != nil {
			return fmt.Errorf("%s: click failed: %w", label, err)
		}
	}
	checked, err = e.surface.IsChecked(selector)
	if err != nil {
		return fmt.Errorf("%s: readback failed: %w", label, err)
	}
	if !checked {
		return &StaleStateError{Label: label, Want: "checked", Got: "unchecked"}
	}
	return nil
}

// awaitInteractable polls until the control is present, visible and
// enabled, or the wait budget runs out. A control that never appeared
// and one that appeared but stayed inert fail differently, because the
// former points at a changed UI and the latter at timing.
func (e *Executor) awaitInteractable(label, selector string) error {
	deadline := time.Now().Add(e.timeout)
	seen := false

	for {
		count, err := e.surface.Count(selector)
		if err != nil {
			return fmt.Errorf("%s: selector query failed: %w", label, err)
		}
		if count > 0 {
			seen = true
			visible, err := e.surface.IsVisible(selector)
			if err != nil {
				return fmt.Errorf("%s: visibility check failed: %w", label, err)
			}
			if visible {
				enabled, err := e.surface.IsEnabled(selector)
				if err != nil {
					return fmt.Errorf("%s: enabled check failed: %w", label, err)
				}
				if enabled {
					return nil
				}
			}
		}

		if time.Now().After(deadline) {
			if !seen {
				return &ElementNotFoundError{Label: label, Selector: selector, Timeout: e.timeout}
			}
			return &ActionTimeoutError{Label: label, Selector: selector, Timeout: e.timeout}
		}
		time.Sleep(e.poll)
	}
}

// submit clicks through the plan's submit sequence, applies the outline
// actions on the editor page the final click lands on, then returns to
// the assignments list and waits for the confirmation marker there. A
// submission that cannot be confirmed is a failure even if every click
// landed.
func (e *Executor) submit(submit planner.Submit) error {
	for _, selector := range submit.Clicks {
		if err := e.awaitInteractable("submit", selector); err != nil {
			return err
		}
		if err := e.surface.Click(selector); err != nil {
			return fmt.Errorf("submit: click failed: %w", err)
		}
	}

	for _, action := range submit.Outline {
		e.log.Debugf("driver: outline %s %q (%s)", action.Op, action.Label, action.Selector)
		if err := e.apply(action); err != nil {
			return err
		}
	}

	// The create click lands on the new assignment's editor, not back on
	// the list; the list is only reached by navigating there.
	if err := e.surface.Reset(); err != nil {
		return fmt.Errorf("submission confirmation: return to assignments list failed: %w", err)
	}
	if err := e.awaitVisible("submission confirmation", submit.Confirm); err != nil {
		return err
	}
	e.log.Debugf("driver: submission confirmed at %s", e.surface.URL())
	return nil
}

// awaitVisible polls for presence and visibility only; confirmation
// markers need not be enabled controls.
func (e *Executor) awaitVisible(label, selector string) error {
	deadline := time.Now().Add(e.timeout)
	seen := false

	for {
		count, err := e.surface.Count(selector)
		if err != nil {
			return fmt.Errorf("%s: selector query failed: %w", label, err)
		}
		if count > 0 {
			seen = true
			visible, err := e.surface.IsVisible(selector)
			if err != nil {
				return fmt.Errorf("%s: visibility check failed: %w", label, err)
			}
			if visible {
				return nil
			}
		}

		if time.Now().After(deadline) {
			if !seen {
				return &ElementNotFoundError{Label: label, Selector: selector, Timeout: e.timeout}
			}
			return &ActionTimeoutError{Label: label, Selector: selector, Timeout: e.timeout}
		}
		time.Sleep(e.poll)
	}
}
