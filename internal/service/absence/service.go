package absence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/wagestack/payroll-backend-go/internal/domain/absence"
	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/pkg/authz"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
	"github.com/wagestack/payroll-backend-go/internal/pkg/validator"
)

type AbsenceServiceImpl struct {
	db           *database.DB
	absenceRepo  absence.Repository
	employeeRepo employee.EmployeeRepository
	authz        authz.Service
}

func NewAbsenceService(
	db *database.DB,
	absenceRepo absence.Repository,
	employeeRepo employee.EmployeeRepository,
	authzService authz.Service,
) absence.AbsenceService {
	return &AbsenceServiceImpl{
		db:           db,
		absenceRepo:  absenceRepo,
		employeeRepo: employeeRepo,
		authz:        authzService,
	}
}

func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func (s *AbsenceServiceImpl) requireWrite(ctx context.Context) (companyID string, err error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	allowed, err := s.authz.IsAllowed(ctx, userID, companyID, authz.ModulePayroll, authz.ActionWrite)
	if err != nil {
		return "", fmt.Errorf("authorization check failed: %w", err)
	}
	if !allowed {
		return "", authz.ErrForbidden
	}
	return companyID, nil
}

func (s *AbsenceServiceImpl) Upsert(ctx context.Context, req *absence.UpsertRequest) (*absence.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, err := s.requireWrite(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return nil, err
	}

	p, err := period.New(req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rec := absence.Record{
		ID:              uuid.NewString(),
		CompanyID:       companyID,
		EmployeeID:      req.EmployeeID,
		Period:          p,
		DaysAbsent:      req.DaysAbsent,
		DeductionAmount: req.DeductionAmount,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.absenceRepo.Upsert(ctx, &rec); err != nil {
		return nil, err
	}

	resp := toRecordResponse(rec)
	return &resp, nil
}

func toRecordResponse(r absence.Record) absence.RecordResponse {
	return absence.RecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		Period:          r.Period.String(),
		DaysAbsent:      r.DaysAbsent,
		DeductionAmount: r.DeductionAmount,
		Notes:           r.Notes,
	}
}

func (s *AbsenceServiceImpl) GetByPeriod(ctx context.Context, month, year int) ([]absence.RecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p, err := period.New(year, month)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: "month", Message: "invalid month or year"}}
	}

	records, err := s.absenceRepo.ListByCompanyAndPeriod(ctx, companyID, p)
	if err != nil {
		return nil, err
	}

	resp := make([]absence.RecordResponse, len(records))
	for i, r := range records {
		resp[i] = toRecordResponse(r)
	}
	return resp, nil
}

func (s *AbsenceServiceImpl) Delete(ctx context.Context, recordID string) error {
	companyID, err := s.requireWrite(ctx)
	if err != nil {
		return err
	}

	if _, err := s.absenceRepo.GetByID(ctx, recordID, companyID); err != nil {
		return err
	}
	return s.absenceRepo.Delete(ctx, recordID, companyID)
}
