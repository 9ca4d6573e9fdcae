package session

import "fmt"

// AuthError means login never completed: the credentials were rejected
// or the post-login landing page did not appear within the wait budget.
// Fatal to the whole run.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// StartupError means the browser stack itself could not come up: the
// playwright driver failed to install or start, or the browser, context
// or page could not be created. Fatal to the whole run and unrelated to
// credentials or course access.
type StartupError struct {
	Stage string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("browser startup failed during %s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }

// NavError means the course page is unreachable or the account has no
// access to it. Fatal to the whole run.
type NavError struct {
	URL    string
	Reason string
	Err    error
}

func (e *NavError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("navigation to %s failed: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("navigation to %s failed: %s", e.URL, e.Reason)
}

func (e *NavError) Unwrap() error { return e.Err }
