package review

import "context"

type ReviewerRepository interface {
	ListByCompanyID(ctx context.Context, companyID string) ([]Reviewer, error)
	Create(ctx context.Context, r *Reviewer) error
	Delete(ctx context.Context, id, companyID string) error
}

type TaskRepository interface {
	CreateBatch(ctx context.Context, tasks []Task) error
	GetByID(ctx context.Context, id string) (Task, error)
	// GetByIDs returns every requested task; used by bulk update to verify
	// company ownership before any write.
	GetByIDs(ctx context.Context, ids []string) ([]Task, error)
	ListByRunID(ctx context.Context, runID, companyID string) ([]Task, error)
	ListByLineItemID(ctx context.Context, lineItemID string) ([]Task, error)
	UpdateStatus(ctx context.Context, t *Task) error
	UpdateStatusBatch(ctx context.Context, ids []string, status TaskStatus, notes *string) error
	DeleteByRunID(ctx context.Context, runID string) error
}
