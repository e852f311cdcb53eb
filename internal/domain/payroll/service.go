package payroll

import "context"

type PayrollService interface {
	// Sync computes (or recomputes) the run for the caller's company and
	// the given period. Idempotent: prior line items and review tasks are
	// replaced wholesale inside one transaction.
	Sync(ctx context.Context, req *SyncRequest) (*SyncResponse, error)

	GetRuns(ctx context.Context, year *int) ([]RunResponse, error)
	GetRunByID(ctx context.Context, runID string) (*RunDetailResponse, error)
	GetRunItems(ctx context.Context, runID string) ([]LineItemResponse, error)
	GetRunYears(ctx context.Context) ([]int, error)

	// Transition moves a run through the workflow state machine. Entering
	// LOCKED or PAID records the acting user and timestamp; leaving LOCKED
	// clears them.
	Transition(ctx context.Context, runID string, req *TransitionRequest) (*RunResponse, error)

	// DeleteRun removes a run and its line items. Only permitted while the
	// run is DRAFT or CANCELLED.
	DeleteRun(ctx context.Context, runID string) error
}
