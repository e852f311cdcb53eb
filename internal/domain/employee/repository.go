package employee

import "context"

// EmployeeRepository is a read-only view: employees are owned by the
// employee-management service and this core only consumes them.
type EmployeeRepository interface {
	// GetActiveContractedByCompanyID returns every employee of the company
	// holding an ACTIVE contract, with contract and payment detail joined.
	GetActiveContractedByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
}
