package loan

import "context"

type LoanService interface {
	Upsert(ctx context.Context, req *UpsertRequest) (*AccountResponse, error)
	GetAccounts(ctx context.Context) ([]AccountResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (*AccountResponse, error)
	Deactivate(ctx context.Context, accountID string) error
}
