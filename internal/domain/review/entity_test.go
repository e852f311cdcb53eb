package review

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tasksWith(statuses ...TaskStatus) []Task {
	tasks := make([]Task, 0, len(statuses))
	for _, s := range statuses {
		tasks = append(tasks, Task{Status: s})
	}
	return tasks
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tasks    []Task
		expected TaskStatus
	}{
		{"no tasks", nil, TaskPending},
		{"single pending", tasksWith(TaskPending), TaskPending},
		{"single approved", tasksWith(TaskApproved), TaskApproved},
		{"single rejected", tasksWith(TaskRejected), TaskRejected},
		{"all approved", tasksWith(TaskApproved, TaskApproved, TaskApproved), TaskApproved},
		{"one still pending", tasksWith(TaskApproved, TaskPending, TaskApproved), TaskPending},
		{"rejection wins over approvals", tasksWith(TaskApproved, TaskRejected, TaskApproved), TaskRejected},
		{"rejection wins over pending", tasksWith(TaskPending, TaskRejected), TaskRejected},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Aggregate(tt.tasks))
		})
	}
}

func TestValidTaskStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidTaskStatus(TaskPending))
	assert.True(t, ValidTaskStatus(TaskApproved))
	assert.True(t, ValidTaskStatus(TaskRejected))
	assert.False(t, ValidTaskStatus("DEFERRED"))
	assert.False(t, ValidTaskStatus(""))
}

func TestBuildTasks(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	seq := 0
	newID := func() string {
		seq++
		return fmt.Sprintf("task-%d", seq)
	}

	reviewers := []Reviewer{
		{ID: "rev-a", UserID: "user-a", Level: 1},
		{ID: "rev-b", UserID: "user-b", Level: 2},
	}
	lineItems := []string{"li-1", "li-2", "li-3"}

	tasks := BuildTasks("run-1", "company-1", lineItems, reviewers, newID, now)
	require.Len(t, tasks, 6)

	// Line item major, reviewer minor.
	assert.Equal(t, "li-1", tasks[0].LineItemID)
	assert.Equal(t, "rev-a", tasks[0].ReviewerID)
	assert.Equal(t, "li-1", tasks[1].LineItemID)
	assert.Equal(t, "rev-b", tasks[1].ReviewerID)
	assert.Equal(t, "li-2", tasks[2].LineItemID)
	assert.Equal(t, "rev-a", tasks[2].ReviewerID)
	assert.Equal(t, "li-3", tasks[5].LineItemID)
	assert.Equal(t, "rev-b", tasks[5].ReviewerID)

	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		assert.Equal(t, TaskPending, task.Status)
		assert.Equal(t, "run-1", task.RunID)
		assert.Equal(t, "company-1", task.CompanyID)
		assert.Equal(t, now, task.CreatedAt)
		assert.Nil(t, task.ReviewedAt)
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}

	assert.Empty(t, BuildTasks("run-1", "company-1", nil, reviewers, newID, now))
	assert.Empty(t, BuildTasks("run-1", "company-1", lineItems, nil, newID, now))
}
