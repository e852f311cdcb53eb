package review

import "context"

type ReviewService interface {
	// GetRunReviewStatus reports per-reviewer completion counts and the
	// run-wide aggregate status.
	GetRunReviewStatus(ctx context.Context, runID string) (*RunReviewStatusResponse, error)

	GetRunTasks(ctx context.Context, runID string) ([]TaskResponse, error)

	UpdateTask(ctx context.Context, taskID string, req *UpdateTaskRequest) (*TaskResponse, error)

	// BulkUpdateTasks verifies every task belongs to the caller's company
	// before applying any change.
	BulkUpdateTasks(ctx context.Context, req *BulkUpdateRequest) ([]TaskResponse, error)
}
