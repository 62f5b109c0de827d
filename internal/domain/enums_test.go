package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReleaseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want ReleaseStatus
	}{
		{"done", StatusDone},
		{"DONE", StatusDone},
		{"In Progress", StatusInProgress},
		{"in_progress", StatusInProgress},
		{"inprogress", StatusInProgress},
		{"To Do", StatusTodo},
		{"Cancelled", StatusCancelled},
		{"canceled", StatusCancelled},
		{"Postponed", StatusPostponed},
		{"REPLANNED", StatusReplanned},
		{"blocked", StatusUnknown},
		{"", StatusUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseReleaseStatus(tc.in), "input=%q", tc.in)
	}
}

func TestParseCycleState(t *testing.T) {
	assert.Equal(t, CycleActive, ParseCycleState(" Active "))
	assert.Equal(t, CycleState("archived"), ParseCycleState("ARCHIVED"))
}
