// Package planner translates one assignment spec into the ordered list
// of control-level actions that reproduce it in the Gradescope creation
// form. Planning is pure: it never touches the page, and two calls on
// the same spec yield identical plans.
//
// The planner is the single owner of form selectors and of the decision
// which optional controls are applicable. A dependent control is only
// ever targeted after the action that toggles its enabling option, since
// the toggle is what makes the control visible.
package planner

import (
	"fmt"
	"strconv"

	"github.com/entrhq/gradebatch/pkg/assignment"
)

// Op is the kind of a single plan action.
type Op string

const (
	// OpOpenForm drives the platform to a fresh assignment-creation form.
	OpOpenForm Op = "open_form"

	// OpFill sets a text or numeric control and verifies the exact value
	// round-trips.
	OpFill Op = "fill"

	// OpFillDate sets a date control. The datepicker rewrites the typed
	// value, so verification only requires the control to be non-empty.
	OpFillDate Op = "fill_date"

	// OpToggle checks an option checkbox, revealing its dependent
	// controls.
	OpToggle Op = "toggle"
)

// Action is one control-level operation. Label names the control in
// human terms and is carried into failure causes.
type Action struct {
	Op       Op
	Label    string
	Selector string

	// Value is the text to apply for fill ops.
	Value string

	// Reveal, when set, is a checkbox that must be checked before
	// Selector exists in the form (the allow-late checkbox ahead of the
	// late due date field).
	Reveal string

	// Follow are selectors clicked in order after Selector, for actions
	// that span several wizard controls (the type picker and Next button
	// behind OpOpenForm).
	Follow []string
}

// Submit is the plan's closing sequence: the clicks that submit the
// form, the actions to apply on the outline editor page the final click
// lands on, then the marker whose appearance back on the assignments
// list confirms the platform accepted the assignment.
type Submit struct {
	Clicks  []string
	Outline []Action
	Confirm string
}

// Plan is the full ordered recipe for one assignment. Plans are
// disposable values with no state beyond their actions.
type Plan struct {
	Assignment string
	Actions    []Action
	Submit     Submit
}

// Form selectors, matching the platform's assignment-creation UI. The
// remote UI is an unversioned contract; when it changes, this table is
// the maintenance point.
const (
	selNewAssignment = ".js-newAssignment"
	selOnlineType    = `.treeSelectorNode:has-text("Online Assignment")`
	selNextButton    = `button:has-text("Next"):not(.disabled)`
	selSubmitButton  = `button:has-text("Create Assignment")`

	selTitle     = `input[name='assignment[title]']`
	selRelease   = `input[name='assignment[release_date_string]']`
	selDue       = `input[name='assignment[due_date_string]']`
	selAllowLate = `input[name='assignment[allow_late_submissions]']`
	selLateDue   = `input[name='assignment[hard_due_date_string]']`
	selPoints    = `input[name='assignment[total_points]']`

	selEnforceTime = `input[name='assignment[enforce_time_limit]'][type='checkbox']`
	selTimeLimit   = `input[name='assignment[time_limit_in_minutes]']`
	selAnonymous   = `input[name='assignment[submissions_anonymized]'][type='checkbox']`
	selGroup       = `input[name='assignment[group_submission]'][type='checkbox']`
	selGroupSize   = `input[name='assignment[group_size]']`

	selQuestionTitle = `input[placeholder='Title']`
)

// Build validates the spec and produces its plan. It fails with a
// *assignment.ValidationError and emits nothing when the spec is
// unusable, so no UI action is ever attempted for a bad spec.
func Build(spec assignment.Spec) (Plan, error) {
	if err := spec.Validate(); err != nil {
		return Plan{}, err
	}

	actions := []Action{
		{
			Op:       OpOpenForm,
			Label:    "create assignment",
			Selector: selNewAssignment,
			Follow:   []string{selOnlineType, selNextButton},
		},
		{
			Op:       OpFill,
			Label:    "name",
			Selector: selTitle,
			Value:    spec.Name,
		},
		{
			Op:       OpFillDate,
			Label:    "release date",
			Selector: selRelease,
			Value:    assignment.CanonicalTime(spec.ReleaseDate),
		},
		{
			Op:       OpFillDate,
			Label:    "due date",
			Selector: selDue,
			Value:    assignment.CanonicalTime(spec.DueDate),
		},
	}

	if spec.LateDueDate != "" {
		actions = append(actions, Action{
			Op:       OpFillDate,
			Label:    "late due date",
			Selector: selLateDue,
			Value:    assignment.CanonicalTime(spec.LateDueDate),
			Reveal:   selAllowLate,
		})
	}

	actions = append(actions, Action{
		Op:       OpFill,
		Label:    "points",
		Selector: selPoints,
		Value:    formatPoints(spec.TotalPoints),
	})

	if spec.EnforceTimeLimit {
		actions = append(actions,
			Action{
				Op:       OpToggle,
				Label:    "enforce time limit",
				Selector: selEnforceTime,
			},
			Action{
				Op:       OpFill,
				Label:    "time limit",
				Selector: selTimeLimit,
				Value:    strconv.Itoa(spec.TimeLimit),
			},
		)
	}

	if spec.AnonymousGrading {
		actions = append(actions, Action{
			Op:       OpToggle,
			Label:    "anonymous grading",
			Selector: selAnonymous,
		})
	}

	if spec.GroupSubmission {
		actions = append(actions,
			Action{
				Op:       OpToggle,
				Label:    "group submission",
				Selector: selGroup,
			},
			Action{
				Op:       OpFill,
				Label:    "group size",
				Selector: selGroupSize,
				Value:    strconv.Itoa(spec.GroupSize),
			},
		)
	}

	// The question title control lives on the outline editor the create
	// click lands on, not on the creation form itself.
	var outline []Action
	if spec.QuestionText != "" {
		outline = append(outline, Action{
			Op:       OpFill,
			Label:    "question title",
			Selector: selQuestionTitle,
			Value:    spec.QuestionText,
		})
	}

	return Plan{
		Assignment: spec.Name,
		Actions:    actions,
		Submit: Submit{
			Clicks:  []string{selNextButton, selSubmitButton},
			Outline: outline,
			Confirm: selNewAssignment,
		},
	}, nil
}

func formatPoints(points float64) string {
	if points == float64(int64(points)) {
		return strconv.FormatInt(int64(points), 10)
	}
	return strconv.FormatFloat(points, 'f', -1, 64)
}

// String renders a short human summary, used in logs.
func (p Plan) String() string {
	return fmt.Sprintf("plan for %q (%d actions)", p.Assignment, len(p.Actions))
}
