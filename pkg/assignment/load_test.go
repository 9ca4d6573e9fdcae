package assignment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBatch(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeBatch(t, `[
		{
			"name": "HW1",
			"release_date": "2025-09-01 09:00",
			"due_date": "2025-09-08 23:59",
			"total_points": 100,
			"late_due_date": "2025-09-10 23:59"
		},
		{
			"name": "Quiz 1",
			"release_date": "2025-09-05 09:00",
			"due_date": "2025-09-05 10:00",
			"total_points": 20,
			"enforce_time_limit": true,
			"time_limit": 30,
			"assignment_details": {"question": "Chapter 1 review"}
		}
	]`)

	specs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "HW1", specs[0].Name)
	assert.Equal(t, "2025-09-10 23:59", specs[0].LateDueDate)
	assert.Empty(t, specs[0].QuestionText)

	assert.Equal(t, "Quiz 1", specs[1].Name)
	assert.True(t, specs[1].EnforceTimeLimit)
	assert.Equal(t, 30, specs[1].TimeLimit)
	assert.Equal(t, "Chapter 1 review", specs[1].QuestionText)
}

func TestLoadFile_PreservesOrder(t *testing.T) {
	path := writeBatch(t, `[
		{"name": "c"}, {"name": "a"}, {"name": "b"}
	]`)

	specs, err := LoadFile(path)
	require.NoError(t, err)

	var names []string
	for _, s := range specs {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestLoadFile_TopLevelQuestionTextWins(t *testing.T) {
	path := writeBatch(t, `[
		{"name": "HW", "question_text": "outer", "assignment_details": {"question": "nested"}}
	]`)

	specs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "outer", specs[0].QuestionText)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadFile(writeBatch(t, `{"not": "an array"}`))
	assert.Error(t, err)
}
