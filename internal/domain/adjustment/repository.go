package adjustment

import "context"

type TypeRepository interface {
	Create(ctx context.Context, t *Type) error
	GetByID(ctx context.Context, id, companyID string) (Type, error)
	GetByCode(ctx context.Context, companyID string, kind Kind, code string) (Type, error)
	ListByCompanyID(ctx context.Context, companyID string, kind Kind) ([]Type, error)
	Update(ctx context.Context, t *Type) error
	Delete(ctx context.Context, id, companyID string) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, a *Assignment) error
	CreateBatch(ctx context.Context, as []Assignment) error
	GetByID(ctx context.Context, id, companyID string) (Assignment, error)
	ListByCompanyID(ctx context.Context, companyID string, kind Kind) ([]Assignment, error)
	Update(ctx context.Context, a *Assignment) error
	Delete(ctx context.Context, id, companyID string) error
}
