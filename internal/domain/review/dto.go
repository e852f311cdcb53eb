package review

import (
	"time"

	"github.com/wagestack/payroll-backend-go/internal/pkg/validator"
)

type UpdateTaskRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if !ValidTaskStatus(TaskStatus(r.Status)) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be PENDING, APPROVED or REJECTED"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkUpdateRequest struct {
	TaskIDs []string `json:"task_ids"`
	Status  string   `json:"status"`
	Notes   *string  `json:"notes,omitempty"`
}

func (r *BulkUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.TaskIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "task_ids", Message: "must not be empty"})
	}
	if !ValidTaskStatus(TaskStatus(r.Status)) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be PENDING, APPROVED or REJECTED"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaskResponse struct {
	ID           string     `json:"id"`
	LineItemID   string     `json:"line_item_id"`
	ReviewerID   string     `json:"reviewer_id"`
	Status       string     `json:"status"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	EmployeeName string     `json:"employee_name,omitempty"`
}

// ReviewerProgress - per-reviewer completion counts for one run
type ReviewerProgress struct {
	ReviewerID string `json:"reviewer_id"`
	UserID     string `json:"user_id"`
	Level      int    `json:"level"`
	Total      int    `json:"total"`
	Approved   int    `json:"approved"`
	Rejected   int    `json:"rejected"`
	Pending    int    `json:"pending"`
	// Percent of tasks reviewed (approved or rejected), 0-100.
	Percent float64 `json:"percent"`
}

type RunReviewStatusResponse struct {
	RunID     string             `json:"run_id"`
	Aggregate string             `json:"aggregate"`
	Reviewers []ReviewerProgress `json:"reviewers"`
}
