package review

import "time"

// TaskStatus enum
type TaskStatus string

const (
	TaskPending  TaskStatus = "PENDING"
	TaskApproved TaskStatus = "APPROVED"
	TaskRejected TaskStatus = "REJECTED"
)

func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskPending, TaskApproved, TaskRejected:
		return true
	}
	return false
}

// Reviewer - one entry in a company's ordered reviewer list
type Reviewer struct {
	ID        string
	CompanyID string
	UserID    string
	Level     int
	CreatedAt time.Time
}

// Task - one review decision per (line item, reviewer). Recreated in
// bulk whenever the run's line items are recomputed.
type Task struct {
	ID         string
	RunID      string
	LineItemID string
	CompanyID  string
	ReviewerID string
	Status     TaskStatus
	ReviewedAt *time.Time
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	ReviewerUserID *string
	ReviewerLevel  *int
	EmployeeName   *string
}

// Aggregate folds one line item's tasks into a single status: REJECTED
// if any reviewer rejected, APPROVED only when every task is approved,
// otherwise PENDING. An empty task list is PENDING.
func Aggregate(tasks []Task) TaskStatus {
	if len(tasks) == 0 {
		return TaskPending
	}
	allApproved := true
	for _, t := range tasks {
		switch t.Status {
		case TaskRejected:
			return TaskRejected
		case TaskApproved:
		default:
			allApproved = false
		}
	}
	if allApproved {
		return TaskApproved
	}
	return TaskPending
}

// BuildTasks expands the cross product of line item ids and reviewers
// into fresh PENDING tasks. Deterministic: output order is line item
// major, reviewer minor.
func BuildTasks(runID, companyID string, lineItemIDs []string, reviewers []Reviewer, newID func() string, now time.Time) []Task {
	tasks := make([]Task, 0, len(lineItemIDs)*len(reviewers))
	for _, liID := range lineItemIDs {
		for _, rv := range reviewers {
			tasks = append(tasks, Task{
				ID:         newID(),
				RunID:      runID,
				LineItemID: liID,
				CompanyID:  companyID,
				ReviewerID: rv.ID,
				Status:     TaskPending,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
	}
	return tasks
}
