package adjustment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/wagestack/payroll-backend-go/internal/domain/adjustment"
	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/pkg/authz"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
	"github.com/wagestack/payroll-backend-go/internal/pkg/validator"
)

type AdjustmentServiceImpl struct {
	db             *database.DB
	typeRepo       adjustment.TypeRepository
	assignmentRepo adjustment.AssignmentRepository
	employeeRepo   employee.EmployeeRepository
	authz          authz.Service
}

func NewAdjustmentService(
	db *database.DB,
	typeRepo adjustment.TypeRepository,
	assignmentRepo adjustment.AssignmentRepository,
	employeeRepo employee.EmployeeRepository,
	authzService authz.Service,
) adjustment.AdjustmentService {
	return &AdjustmentServiceImpl{
		db:             db,
		typeRepo:       typeRepo,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
		authz:          authzService,
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

func (s *AdjustmentServiceImpl) requireWrite(ctx context.Context) (companyID string, err error) {
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

func (s *AdjustmentServiceImpl) CreateType(ctx context.Context, kind adjustment.Kind, req *adjustment.CreateTypeRequest) (*adjustment.TypeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, err := s.requireWrite(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.typeRepo.GetByCode(ctx, companyID, kind, req.Code); err == nil {
		return nil, adjustment.ErrTypeCodeExists
	}

	now := time.Now()
	t := adjustment.Type{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Kind:      kind,
		Code:      req.Code,
		Name:      req.Name,
		IsCash:    true,
		IsTaxable: true,
		IsPreTax:  false,
		MaxValue:  req.MaxValue,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.IsCash != nil {
		t.IsCash = *req.IsCash
	}
	if req.IsTaxable != nil {
		t.IsTaxable = *req.IsTaxable
	}
	if req.IsPreTax != nil {
		t.IsPreTax = *req.IsPreTax
	}

	if err := s.typeRepo.Create(ctx, &t); err != nil {
		return nil, err
	}

	resp := toTypeResponse(t)
	return &resp, nil
}

func toTypeResponse(t adjustment.Type) adjustment.TypeResponse {
	return adjustment.TypeResponse{
		ID:        t.ID,
		CompanyID: t.CompanyID,
		Kind:      string(t.Kind),
		Code:      t.Code,
		Name:      t.Name,
		IsCash:    t.IsCash,
		IsTaxable: t.IsTaxable,
		IsPreTax:  t.IsPreTax,
		MaxValue:  t.MaxValue,
	}
}

func (s *AdjustmentServiceImpl) GetTypes(ctx context.Context, kind adjustment.Kind) ([]adjustment.TypeResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	types, err := s.typeRepo.ListByCompanyID(ctx, companyID, kind)
	if err != nil {
		return nil, err
	}

	resp := make([]adjustment.TypeResponse, len(types))
	for i, t := range types {
		resp[i] = toTypeResponse(t)
	}
	return resp, nil
}

func (s *AdjustmentServiceImpl) DeleteType(ctx context.Context, kind adjustment.Kind, typeID string) error {
	companyID, err := s.requireWrite(ctx)
	if err != nil {
		return err
	}

	t, err := s.typeRepo.GetByID(ctx, typeID, companyID)
	if err != nil {
		return err
	}
	if t.Kind != kind {
		return adjustment.ErrTypeNotFound
	}
	return s.typeRepo.Delete(ctx, typeID, companyID)
}

func (s *AdjustmentServiceImpl) Assign(ctx context.Context, kind adjustment.Kind, req *adjustment.AssignRequest) (*adjustment.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, err := s.requireWrite(ctx)
	if err != nil {
		return nil, err
	}

	t, err := s.typeRepo.GetByID(ctx, req.TypeID, companyID)
	if err != nil {
		return nil, err
	}
	if t.Kind != kind {
		return nil, adjustment.ErrTypeNotFound
	}

	start, err := period.New(req.StartYear, req.StartMonth)
	if err != nil {
		return nil, err
	}

	a, err := newAssignment(companyID, kind, t, req, start)
	if err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Create(ctx, &a); err != nil {
		return nil, err
	}

	resp := toAssignmentResponse(a)
	return &resp, nil
}

// newAssignment builds an assignment from a validated request. One-shot
// assignments default to a single-month window; an explicit month count
// closes the window that many months after the start.
func newAssignment(companyID string, kind adjustment.Kind, t adjustment.Type, req *adjustment.AssignRequest, start period.Month) (adjustment.Assignment, error) {
	recurring := true
	if req.IsRecurring != nil {
		recurring = *req.IsRecurring
	}

	var end *period.Month
	switch {
	case req.NumberOfMonths != nil:
		e := start.AddMonths(*req.NumberOfMonths - 1)
		end = &e
	case !recurring:
		e := start
		end = &e
	}
	if end != nil && end.Before(start) {
		return adjustment.Assignment{}, adjustment.ErrInvalidWindow
	}

	now := time.Now()
	return adjustment.Assignment{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		TypeID:    t.ID,
		Kind:      kind,
		Target: adjustment.Target{
			Kind:  adjustment.TargetKind(req.AppliesTo),
			RefID: req.TargetID,
		},
		Value:           req.Value,
		CalculationType: adjustment.CalculationType(req.CalculationType),
		IsRecurring:     recurring,
		Start:           start,
		End:             end,
		NumberOfMonths:  req.NumberOfMonths,
		CreatedAt:       now,
		UpdatedAt:       now,
		Type:            &t,
	}, nil
}

func toAssignmentResponse(a adjustment.Assignment) adjustment.AssignmentResponse {
	resp := adjustment.AssignmentResponse{
		ID:              a.ID,
		CompanyID:       a.CompanyID,
		TypeID:          a.TypeID,
		Kind:            string(a.Kind),
		AppliesTo:       string(a.Target.Kind),
		TargetID:        a.Target.RefID,
		Value:           a.Value,
		CalculationType: string(a.CalculationType),
		IsRecurring:     a.IsRecurring,
		StartPeriod:     a.Start.String(),
		NumberOfMonths:  a.NumberOfMonths,
	}
	if a.End != nil {
		e := a.End.String()
		resp.EndPeriod = &e
	}
	if a.Type != nil {
		resp.TypeCode = a.Type.Code
		resp.TypeName = a.Type.Name
		resp.MaxValue = a.Type.MaxValue
	}
	return resp
}

func (s *AdjustmentServiceImpl) GetAssignments(ctx context.Context, kind adjustment.Kind) ([]adjustment.AssignmentResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListByCompanyID(ctx, companyID, kind)
	if err != nil {
		return nil, err
	}

	resp := make([]adjustment.AssignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = toAssignmentResponse(a)
	}
	return resp, nil
}

func (s *AdjustmentServiceImpl) UpdateAssignment(ctx context.Context, kind adjustment.Kind, req *adjustment.UpdateAssignmentRequest) (*adjustment.AssignmentResponse, error) {
	companyID, err := s.requireWrite(ctx)
	if err != nil {
		return nil, err
	}

	a, err := s.assignmentRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return nil, err
	}
	if a.Kind != kind {
		return nil, adjustment.ErrAssignmentNotFound
	}

	if req.Value != nil {
		if req.Value.IsNegative() {
			return nil, validator.ValidationErrors{{Field: "value", Message: "must be non-negative"}}
		}
		a.Value = *req.Value
	}
	if req.IsRecurring != nil {
		a.IsRecurring = *req.IsRecurring
	}
	if req.NumberOfMonths != nil {
		if *req.NumberOfMonths < 1 {
			return nil, validator.ValidationErrors{{Field: "number_of_months", Message: "must be at least 1"}}
		}
		a.NumberOfMonths = req.NumberOfMonths
		e := a.Start.AddMonths(*req.NumberOfMonths - 1)
		a.End = &e
	}
	a.UpdatedAt = time.Now()

	if err := s.assignmentRepo.Update(ctx, &a); err != nil {
		return nil, err
	}

	resp := toAssignmentResponse(a)
	return &resp, nil
}

func (s *AdjustmentServiceImpl) DeleteAssignment(ctx context.Context, kind adjustment.Kind, assignmentID string) error {
	companyID, err := s.requireWrite(ctx)
	if err != nil {
		return err
	}

	a, err := s.assignmentRepo.GetByID(ctx, assignmentID, companyID)
	if err != nil {
		return err
	}
	if a.Kind != kind {
		return adjustment.ErrAssignmentNotFound
	}
	return s.assignmentRepo.Delete(ctx, assignmentID, companyID)
}
