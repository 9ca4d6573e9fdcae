package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrhq/gradebatch/pkg/batch"
	"github.com/entrhq/gradebatch/pkg/driver"
)

func TestRenderReport_AllCreated(t *testing.T) {
	out := renderReport([]batch.Outcome{
		{Name: "HW1"},
		{Name: "HW2"},
	})

	assert.Contains(t, out, "HW1")
	assert.Contains(t, out, "HW2")
	assert.Contains(t, out, "2 created, 0 failed")
}

func TestRenderReport_FailuresCarryCause(t *testing.T) {
	out := renderReport([]batch.Outcome{
		{Name: "HW1"},
		{Name: "HW2", Err: &driver.ElementNotFoundError{Label: "points", Selector: "x"}},
		{Name: "HW3", Err: errors.New("run cancelled before this assignment: context canceled")},
	})

	assert.Contains(t, out, "points control not found")
	assert.Contains(t, out, "cancelled")
	assert.Contains(t, out, "1 created, 2 failed")
}

func TestRenderReport_PreservesInputOrder(t *testing.T) {
	out := renderReport([]batch.Outcome{
		{Name: "zeta"},
		{Name: "alpha"},
	})

	assert.Less(t, indexOf(out, "zeta"), indexOf(out, "alpha"))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestCountFailed(t *testing.T) {
	outcomes := []batch.Outcome{
		{Name: "a"},
		{Name: "b", Err: errors.New("boom")},
		{Name: "c", Err: errors.New("boom")},
	}
	assert.Equal(t, 2, countFailed(outcomes))
}
