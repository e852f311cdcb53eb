package payroll

import (
	"context"

	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

type RunRepository interface {
	Create(ctx context.Context, r *Run) error
	GetByID(ctx context.Context, id, companyID string) (Run, error)
	// GetByPeriodForUpdate acquires a row lock on the run so concurrent
	// recomputes for the same period serialize.
	GetByPeriodForUpdate(ctx context.Context, companyID string, p period.Month) (Run, error)
	ListByCompanyID(ctx context.Context, companyID string, year *int) ([]Run, error)
	// ListYears returns the distinct years the company has runs for,
	// newest first.
	ListYears(ctx context.Context, companyID string) ([]int, error)
	UpdateTotals(ctx context.Context, r *Run) error
	UpdateStatus(ctx context.Context, r *Run) error
	Delete(ctx context.Context, id, companyID string) error
	// NextSequence returns the next per-period counter used to derive
	// the human-readable payroll number.
	NextSequence(ctx context.Context, companyID string, p period.Month) (int, error)
}

type LineItemRepository interface {
	CreateBatch(ctx context.Context, items []LineItem) error
	ListByRunID(ctx context.Context, runID, companyID string) ([]LineItem, error)
	DeleteByRunID(ctx context.Context, runID string) error
	CountByRunID(ctx context.Context, runID string) (int, error)
}
