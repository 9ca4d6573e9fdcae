// Package assignment defines the declarative description of one
// Gradescope assignment and the validation rules a description must
// satisfy before it can be planned against the creation form.
package assignment

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the canonical timestamp format for assignment dates,
// 24-hour clock.
const TimeLayout = "2006-01-02 15:04"

// acceptedLayouts are the input formats the loader tolerates. Values are
// canonicalized to TimeLayout before they reach the form.
var acceptedLayouts = []string{
	TimeLayout,
	"2006/01/02 15:04",
	"2006-01-02T15:04",
}

// Spec describes one assignment to create. Required fields are Name,
// ReleaseDate, DueDate and TotalPoints; everything else is independently
// optional. A dependent field (TimeLimit, GroupSize) only has meaning
// when its enabling flag is true.
type Spec struct {
	Name        string  `json:"name"`
	ReleaseDate string  `json:"release_date"`
	DueDate     string  `json:"due_date"`
	TotalPoints float64 `json:"total_points"`

	LateDueDate      string `json:"late_due_date,omitempty"`
	EnforceTimeLimit bool   `json:"enforce_time_limit,omitempty"`
	TimeLimit        int    `json:"time_limit,omitempty"`
	GroupSubmission  bool   `json:"group_submission,omitempty"`
	GroupSize        int    `json:"group_size,omitempty"`
	AnonymousGrading bool   `json:"anonymous_grading,omitempty"`

	// QuestionText is the optional title of the single outline question
	// created with the assignment.
	QuestionText string `json:"question_text,omitempty"`
}

// ValidationError reports a Spec that cannot be turned into a plan.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid assignment spec: %s: %s", e.Field, e.Reason)
}

// ParseTime parses an assignment timestamp in any accepted layout.
func ParseTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q (want %s)", value, TimeLayout)
}

// Validate checks the required fields, date ordering, and the pairing
// between option flags and their dependent fields. It returns a
// *ValidationError describing the first problem found.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	release, err := ParseTime(s.ReleaseDate)
	if err != nil {
		return &ValidationError{Field: "release_date", Reason: err.Error()}
	}
	due, err := ParseTime(s.DueDate)
	if err != nil {
		return &ValidationError{Field: "due_date", Reason: err.Error()}
	}
	if due.Before(release) {
		return &ValidationError{Field: "due_date", Reason: "must not be before release_date"}
	}

	if s.TotalPoints <= 0 {
		return &ValidationError{Field: "total_points", Reason: "must be positive"}
	}

	if s.LateDueDate != "" {
		late, err := ParseTime(s.LateDueDate)
		if err != nil {
			return &ValidationError{Field: "late_due_date", Reason: err.Error()}
		}
		if late.Before(due) {
			return &ValidationError{Field: "late_due_date", Reason: "must not be before due_date"}
		}
	}

	if s.EnforceTimeLimit && s.TimeLimit <= 0 {
		return &ValidationError{Field: "time_limit", Reason: "required positive minutes when enforce_time_limit is true"}
	}

	if s.GroupSubmission && s.GroupSize < 2 {
		return &ValidationError{Field: "group_size", Reason: "required and must be at least 2 when group_submission is true"}
	}

	return nil
}

// CanonicalTime reformats an already-validated timestamp into TimeLayout.
// A value that does not parse is returned trimmed and otherwise
// unchanged; callers catch bad values through Validate first.
func CanonicalTime(value string) string {
	t, err := ParseTime(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return t.Format(TimeLayout)
}
