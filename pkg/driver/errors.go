package driver

import (
	"fmt"
	"time"
)

// ElementNotFoundError means a target control never appeared within the
// wait budget. This usually signals the remote UI's structure changed
// and the planner's selector table needs maintenance.
type ElementNotFoundError struct {
	Label    string
	Selector string
	Timeout  time.Duration
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("%s control not found: %s did not appear within %s", e.Label, e.Selector, e.Timeout)
}

// ActionTimeoutError means the control exists but never became visible
// and enabled within the wait budget.
type ActionTimeoutError struct {
	Label    string
	Selector string
	Timeout  time.Duration
}

func (e *ActionTimeoutError) Error() string {
	return fmt.Sprintf("%s control never became interactable within %s (%s)", e.Label, e.Timeout, e.Selector)
}

// StaleStateError means an action was applied but re-reading the control
// showed a different state, i.e. the page's own scripts raced the
// driver.
type StaleStateError struct {
	Label string
	Want  string
	Got   string
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("%s control ended in unexpected state: want %q, got %q", e.Label, e.Want, e.Got)
}
