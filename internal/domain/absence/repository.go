package absence

import (
	"context"

	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

type Repository interface {
	Upsert(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id, companyID string) (Record, error)
	ListByCompanyAndPeriod(ctx context.Context, companyID string, p period.Month) ([]Record, error)
	Delete(ctx context.Context, id, companyID string) error
}
