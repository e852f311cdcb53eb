package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/domain/loan"
	"github.com/wagestack/payroll-backend-go/internal/pkg/authz"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
)

type LoanServiceImpl struct {
	db           *database.DB
	loanRepo     loan.Repository
	employeeRepo employee.EmployeeRepository
	authz        authz.Service
}

func NewLoanService(
	db *database.DB,
	loanRepo loan.Repository,
	employeeRepo employee.EmployeeRepository,
	authzService authz.Service,
) loan.LoanService {
	return &LoanServiceImpl{
		db:           db,
		loanRepo:     loanRepo,
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

func (s *LoanServiceImpl) requireWrite(ctx context.Context) (companyID string, err error) {
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

func (s *LoanServiceImpl) Upsert(ctx context.Context, req *loan.UpsertRequest) (*loan.AccountResponse, error) {
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

	now := time.Now()
	acct, err := s.loanRepo.GetByEmployeeID(ctx, req.EmployeeID, companyID)
	switch {
	case err == nil:
		acct.AccountNumber = req.AccountNumber
		acct.MonthlyDeduction = req.MonthlyDeduction
		acct.CurrentBalance = req.CurrentBalance
		if req.Status != nil {
			acct.Status = loan.AccountStatus(*req.Status)
		}
		acct.UpdatedAt = now
	case errors.Is(err, loan.ErrAccountNotFound):
		acct = loan.Account{
			ID:               uuid.NewString(),
			CompanyID:        companyID,
			EmployeeID:       req.EmployeeID,
			AccountNumber:    req.AccountNumber,
			MonthlyDeduction: req.MonthlyDeduction,
			CurrentBalance:   req.CurrentBalance,
			Status:           loan.AccountActive,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if req.Status != nil {
			acct.Status = loan.AccountStatus(*req.Status)
		}
	default:
		return nil, err
	}

	if err := s.loanRepo.Upsert(ctx, &acct); err != nil {
		return nil, err
	}

	resp := toAccountResponse(acct)
	return &resp, nil
}

func toAccountResponse(a loan.Account) loan.AccountResponse {
	return loan.AccountResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		AccountNumber:    a.AccountNumber,
		MonthlyDeduction: a.MonthlyDeduction,
		CurrentBalance:   a.CurrentBalance,
		Status:           string(a.Status),
	}
}

func (s *LoanServiceImpl) GetAccounts(ctx context.Context) ([]loan.AccountResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := s.loanRepo.ListActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]loan.AccountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toAccountResponse(a)
	}
	return resp, nil
}

func (s *LoanServiceImpl) GetByEmployee(ctx context.Context, employeeID string) (*loan.AccountResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	acct, err := s.loanRepo.GetByEmployeeID(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	resp := toAccountResponse(acct)
	return &resp, nil
}

func (s *LoanServiceImpl) Deactivate(ctx context.Context, accountID string) error {
	companyID, err := s.requireWrite(ctx)
	if err != nil {
		return err
	}

	acct, err := s.loanRepo.GetByID(ctx, accountID, companyID)
	if err != nil {
		return err
	}
	acct.Status = loan.AccountInactive
	acct.UpdatedAt = time.Now()
	return s.loanRepo.Update(ctx, &acct)
}
