package loan

import "context"

type Repository interface {
	Upsert(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id, companyID string) (Account, error)
	GetByEmployeeID(ctx context.Context, employeeID, companyID string) (Account, error)
	ListActiveByCompanyID(ctx context.Context, companyID string) ([]Account, error)
	Update(ctx context.Context, a *Account) error

	// ApplyRunDeductions decrements every active account's balance by the
	// loan amount recorded on the run's line items. Called once when a run
	// transitions to COMPLETED; clamped so no balance goes below zero.
	ApplyRunDeductions(ctx context.Context, runID, companyID string) error
}
