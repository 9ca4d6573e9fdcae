package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() Spec {
	return Spec{
		Name:        "HW1",
		ReleaseDate: "2025-09-01 09:00",
		DueDate:     "2025-09-08 23:59",
		TotalPoints: 100,
	}
}

func TestValidate_AcceptsMinimalSpec(t *testing.T) {
	require.NoError(t, validSpec().Validate())
}

func TestValidate_AcceptsAllOptions(t *testing.T) {
	spec := validSpec()
	spec.LateDueDate = "2025-09-10 23:59"
	spec.EnforceTimeLimit = true
	spec.TimeLimit = 90
	spec.GroupSubmission = true
	spec.GroupSize = 3
	spec.AnonymousGrading = true
	require.NoError(t, spec.Validate())
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
		field  string
	}{
		{
			name:   "empty name",
			mutate: func(s *Spec) { s.Name = "  " },
			field:  "name",
		},
		{
			name:   "missing release date",
			mutate: func(s *Spec) { s.ReleaseDate = "" },
			field:  "release_date",
		},
		{
			name:   "malformed due date",
			mutate: func(s *Spec) { s.DueDate = "next tuesday" },
			field:  "due_date",
		},
		{
			name: "due before release",
			mutate: func(s *Spec) {
				s.ReleaseDate = "2025-09-08 23:59"
				s.DueDate = "2025-09-01 09:00"
			},
			field: "due_date",
		},
		{
			name:   "missing points",
			mutate: func(s *Spec) { s.TotalPoints = 0 },
			field:  "total_points",
		},
		{
			name:   "negative points",
			mutate: func(s *Spec) { s.TotalPoints = -5 },
			field:  "total_points",
		},
		{
			name:   "late due before due",
			mutate: func(s *Spec) { s.LateDueDate = "2025-09-02 09:00" },
			field:  "late_due_date",
		},
		{
			name:   "time limit flag without minutes",
			mutate: func(s *Spec) { s.EnforceTimeLimit = true },
			field:  "time_limit",
		},
		{
			name: "group flag without size",
			mutate: func(s *Spec) {
				s.GroupSubmission = true
				s.GroupSize = 0
			},
			field: "group_size",
		},
		{
			name: "group size of one",
			mutate: func(s *Spec) {
				s.GroupSubmission = true
				s.GroupSize = 1
			},
			field: "group_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec()
			tt.mutate(&spec)

			err := spec.Validate()
			require.Error(t, err)

			verr, ok := err.(*ValidationError)
			require.True(t, ok, "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidate_DependentFieldsIgnoredWhenFlagOff(t *testing.T) {
	// A stray time_limit or group_size without its flag is meaningless
	// but not an error.
	spec := validSpec()
	spec.TimeLimit = 45
	spec.GroupSize = 4
	require.NoError(t, spec.Validate())
}

func TestParseTime_AcceptedLayouts(t *testing.T) {
	for _, value := range []string{
		"2025-09-01 09:00",
		"2025/09/01 09:00",
		"2025-09-01T09:00",
		"  2025-09-01 09:00 ",
	} {
		_, err := ParseTime(value)
		assert.NoError(t, err, "value %q", value)
	}
}

func TestCanonicalTime(t *testing.T) {
	assert.Equal(t, "2025-09-01 09:00", CanonicalTime("2025/09/01 09:00"))
	assert.Equal(t, "2025-09-01 09:00", CanonicalTime("2025-09-01T09:00"))

	// Unparseable input passes through trimmed rather than failing.
	assert.Equal(t, "garbage", CanonicalTime("  garbage "))
}
