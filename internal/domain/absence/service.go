package absence

import "context"

type AbsenceService interface {
	Upsert(ctx context.Context, req *UpsertRequest) (*RecordResponse, error)
	GetByPeriod(ctx context.Context, month, year int) ([]RecordResponse, error)
	Delete(ctx context.Context, recordID string) error
}
