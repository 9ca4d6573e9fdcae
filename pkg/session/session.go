// Package session owns the browser session used for one batch run: a
// single authenticated playwright page bound to one course. The session
// is opened once, shared sequentially by every assignment, and torn down
// exactly once at run end regardless of outcome.
package session

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/gradebatch/pkg/logging"
)

// DefaultBaseURL is the platform root.
const DefaultBaseURL = "https://www.gradescope.com"

const (
	loginPath       = "/login"
	assignmentsPath = "/assignments"

	selLoginEmail    = "#session_email"
	selLoginPassword = "#session_password"
	selLoginSubmit   = "input[name='commit']"

	// selCourseMarker must be present on the course assignments page;
	// its absence means the account cannot see the course.
	selCourseMarker = ".js-newAssignment"

	loginPollInterval = 250 * time.Millisecond
)

// Credentials identify the platform account.
type Credentials struct {
	Email    string
	Password string
}

// Options configures session startup.
type Options struct {
	// Headless runs the browser without a window.
	Headless bool

	// BaseURL overrides the platform root, for tests against a local
	// stand-in. Empty means DefaultBaseURL.
	BaseURL string

	// Timeout bounds the login and course-page waits. Zero means 20s.
	Timeout time.Duration

	// Logger receives session lifecycle events. May be nil.
	Logger *logging.Logger
}

// Session is one authenticated browser context bound to one course.
// It satisfies driver.Surface, so the form driver operates directly on
// the live page.
type Session struct {
	pw         *playwright.Playwright
	browser    playwright.Browser
	browserCtx playwright.BrowserContext
	page       playwright.Page

	courseURL string
	timeout   time.Duration
	log       *logging.Logger
	closeOnce sync.Once
}

// Open launches a browser, logs in, and lands on the course's
// assignments page. On any failure everything opened so far is released
// before the error is returned, so a failed Open never leaks a browser
// process.
func Open(creds Credentials, courseURL string, opts Options) (*Session, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, &AuthError{Reason: "email and password are required"}
	}
	courseURL = strings.TrimRight(strings.TrimSpace(courseURL), "/")
	if courseURL == "" {
		return nil, &NavError{URL: courseURL, Reason: "course URL is required"}
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	log := opts.Logger

	// Keep the driver's own install/run chatter out of the program's
	// stdout; progress belongs to the run log.
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return nil, &StartupError{Stage: "playwright install", Err: err}
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, &StartupError{Stage: "playwright start", Err: err}
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, &StartupError{Stage: "browser launch", Err: err}
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, &StartupError{Stage: "context creation", Err: err}
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		browser.Close()
		pw.Stop()
		return nil, &StartupError{Stage: "page creation", Err: err}
	}
	// Per-call waits stay short; the driver and this package do their
	// own bounded polling.
	page.SetDefaultTimeout(5000)

	s := &Session{
		pw:         pw,
		browser:    browser,
		browserCtx: browserCtx,
		page:       page,
		courseURL:  courseURL,
		timeout:    timeout,
		log:        log,
	}

	if err := s.login(baseURL, creds, timeout); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.gotoAssignments(timeout); err != nil {
		s.Close()
		return nil, err
	}

	log.Infof("session: ready on %s", s.page.URL())
	return s, nil
}

// login submits the credential form and waits, with a bounded poll, to
// leave the login page. Staying on it past the deadline means the
// credentials were rejected or the landing page never came up.
func (s *Session) login(baseURL string, creds Credentials, timeout time.Duration) error {
	loginURL := baseURL + loginPath
	s.log.Infof("session: logging in at %s", loginURL)

	if _, err := s.page.Goto(loginURL); err != nil {
		return &AuthError{Reason: "login page unreachable", Err: err}
	}
	if err := s.page.Locator(selLoginEmail).First().Fill(creds.Email); err != nil {
		return &AuthError{Reason: "email field not available", Err: err}
	}
	if err := s.page.Locator(selLoginPassword).First().Fill(creds.Password); err != nil {
		return &AuthError{Reason: "password field not available", Err: err}
	}
	if err := s.page.Locator(selLoginSubmit).First().Click(); err != nil {
		return &AuthError{Reason: "submit button not clickable", Err: err}
	}

	deadline := time.Now().Add(timeout)
	for {
		if !strings.Contains(s.page.URL(), loginPath) {
			s.log.Infof("session: login complete")
			return nil
		}
		if time.Now().After(deadline) {
			return &AuthError{Reason: fmt.Sprintf("still on login page after %s (credentials rejected?)", timeout)}
		}
		time.Sleep(loginPollInterval)
	}
}

// gotoAssignments navigates to the course's assignments page and waits
// for the page's create-assignment control, which only instructors with
// course access can see.
func (s *Session) gotoAssignments(timeout time.Duration) error {
	target := s.courseURL + assignmentsPath
	s.log.Infof("session: opening course page %s", target)

	if _, err := s.page.Goto(target); err != nil {
		return &NavError{URL: target, Reason: "unreachable", Err: err}
	}

	deadline := time.Now().Add(timeout)
	for {
		count, err := s.page.Locator(selCourseMarker).Count()
		if err == nil && count > 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return &NavError{URL: target, Reason: "assignments page did not load (no course access?)"}
		}
		time.Sleep(loginPollInterval)
	}
}

// CourseURL returns the normalized course root this session is bound to.
func (s *Session) CourseURL() string { return s.courseURL }

// Close releases the page, context, browser and playwright driver.
// Idempotent; close failures on individual resources do not stop the
// rest of the teardown.
func (s *Session) Close() error {
	var errs []error
	s.closeOnce.Do(func() {
		s.log.Infof("session: closing")
		if s.page != nil {
			if err := s.page.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if s.browserCtx != nil {
			if err := s.browserCtx.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if s.browser != nil {
			if err := s.browser.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if s.pw != nil {
			if err := s.pw.Stop(); err != nil {
				errs = append(errs, err)
			}
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("errors closing session: %v", errs)
	}
	return nil
}
