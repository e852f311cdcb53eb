package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wagestack/payroll-backend-go/internal/domain/absence"
	"github.com/wagestack/payroll-backend-go/internal/domain/adjustment"
	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/domain/loan"
	"github.com/wagestack/payroll-backend-go/internal/domain/payroll"
	"github.com/wagestack/payroll-backend-go/internal/domain/review"
	"github.com/wagestack/payroll-backend-go/internal/pkg/authz"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
	"github.com/wagestack/payroll-backend-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	db             database.TxBeginner
	runRepo        payroll.RunRepository
	lineItemRepo   payroll.LineItemRepository
	employeeRepo   employee.EmployeeRepository
	assignmentRepo adjustment.AssignmentRepository
	absenceRepo    absence.Repository
	loanRepo       loan.Repository
	reviewerRepo   review.ReviewerRepository
	taskRepo       review.TaskRepository
	authz          authz.Service
}

func NewPayrollService(
	db database.TxBeginner,
	runRepo payroll.RunRepository,
	lineItemRepo payroll.LineItemRepository,
	employeeRepo employee.EmployeeRepository,
	assignmentRepo adjustment.AssignmentRepository,
	absenceRepo absence.Repository,
	loanRepo loan.Repository,
	reviewerRepo review.ReviewerRepository,
	taskRepo review.TaskRepository,
	authzService authz.Service,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:             db,
		runRepo:        runRepo,
		lineItemRepo:   lineItemRepo,
		employeeRepo:   employeeRepo,
		assignmentRepo: assignmentRepo,
		absenceRepo:    absenceRepo,
		loanRepo:       loanRepo,
		reviewerRepo:   reviewerRepo,
		taskRepo:       taskRepo,
		authz:          authzService,
	}
}

// Helper to get company_id and user_id from JWT context
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

func (s *PayrollServiceImpl) requireAllowed(ctx context.Context, userID, companyID, module, action string) error {
	allowed, err := s.authz.IsAllowed(ctx, userID, companyID, module, action)
	if err != nil {
		return fmt.Errorf("authorization check failed: %w", err)
	}
	if !allowed {
		return authz.ErrForbidden
	}
	return nil
}

func (s *PayrollServiceImpl) Sync(ctx context.Context, req *payroll.SyncRequest) (*payroll.SyncResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireAllowed(ctx, userID, companyID, authz.ModulePayroll, authz.ActionWrite); err != nil {
		return nil, err
	}

	p, err := period.New(req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	var run payroll.Run
	var created bool
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		run, created, err = s.lockOrCreateRun(txCtx, companyID, p)
		if err != nil {
			return err
		}

		// Review tasks reference line items, so they go first.
		if err := s.taskRepo.DeleteByRunID(txCtx, run.ID); err != nil {
			return err
		}
		if err := s.lineItemRepo.DeleteByRunID(txCtx, run.ID); err != nil {
			return err
		}

		employees, err := s.employeeRepo.GetActiveContractedByCompanyID(txCtx, companyID)
		if err != nil {
			return err
		}
		eligible := EligibleEmployees(employees, p)
		if len(eligible) == 0 {
			return payroll.ErrNoEligibleEmployees
		}

		assignments, err := s.loadAssignments(txCtx, companyID)
		if err != nil {
			return err
		}
		absences, err := s.loadAbsences(txCtx, companyID, p)
		if err != nil {
			return err
		}
		loans, err := s.loadLoans(txCtx, companyID)
		if err != nil {
			return err
		}

		now := time.Now()
		items := make([]payroll.LineItem, 0, len(eligible))
		for _, emp := range eligible {
			item := s.buildLineItem(run, emp, p, assignments, absences[emp.ID], loans[emp.ID], now)
			items = append(items, item)
		}

		if err := s.lineItemRepo.CreateBatch(txCtx, items); err != nil {
			return err
		}

		run.TotalGross = decimal.Zero
		run.TotalDeductions = decimal.Zero
		run.TotalNet = decimal.Zero
		for _, it := range items {
			run.TotalGross = run.TotalGross.Add(it.GrossPay)
			run.TotalDeductions = run.TotalDeductions.Add(it.TotalDeductions)
			run.TotalNet = run.TotalNet.Add(it.NetPay)
		}
		run.EmployeeCount = len(items)
		if err := s.runRepo.UpdateTotals(txCtx, &run); err != nil {
			return err
		}

		reviewers, err := s.reviewerRepo.ListByCompanyID(txCtx, companyID)
		if err != nil {
			return err
		}
		if len(reviewers) > 0 {
			itemIDs := make([]string, len(items))
			for i, it := range items {
				itemIDs[i] = it.ID
			}
			tasks := review.BuildTasks(run.ID, companyID, itemIDs, reviewers, uuid.NewString, now)
			if err := s.taskRepo.CreateBatch(txCtx, tasks); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &payroll.SyncResponse{
		RunID:           run.ID,
		IsNewRun:        created,
		PayrollNumber:   run.PayrollNumber,
		Period:          p.String(),
		Status:          string(run.Status),
		EmployeeCount:   run.EmployeeCount,
		TotalGross:      run.TotalGross,
		TotalDeductions: run.TotalDeductions,
		TotalNet:        run.TotalNet,
	}, nil
}

// lockOrCreateRun acquires the run row for the period, creating it with a
// fresh sequence number on first sync. The row lock serializes concurrent
// recomputes of the same period. An existing run keeps its status.
func (s *PayrollServiceImpl) lockOrCreateRun(ctx context.Context, companyID string, p period.Month) (payroll.Run, bool, error) {
	run, err := s.runRepo.GetByPeriodForUpdate(ctx, companyID, p)
	if err == nil {
		return run, false, nil
	}
	if !errors.Is(err, payroll.ErrRunNotFound) {
		return payroll.Run{}, false, err
	}

	seq, err := s.runRepo.NextSequence(ctx, companyID, p)
	if err != nil {
		return payroll.Run{}, false, err
	}

	now := time.Now()
	run = payroll.Run{
		ID:              uuid.NewString(),
		CompanyID:       companyID,
		PayrollNumber:   fmt.Sprintf("PR-%04d%02d-%03d", p.Year, int(p.Month), seq),
		Period:          p,
		Status:          payroll.StatusDraft,
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.runRepo.Create(ctx, &run); err != nil {
		return payroll.Run{}, false, err
	}
	return run, true, nil
}

func (s *PayrollServiceImpl) loadAssignments(ctx context.Context, companyID string) ([]adjustment.Assignment, error) {
	allowances, err := s.assignmentRepo.ListByCompanyID(ctx, companyID, adjustment.KindAllowance)
	if err != nil {
		return nil, err
	}
	deductions, err := s.assignmentRepo.ListByCompanyID(ctx, companyID, adjustment.KindDeduction)
	if err != nil {
		return nil, err
	}
	return append(allowances, deductions...), nil
}

func (s *PayrollServiceImpl) loadAbsences(ctx context.Context, companyID string, p period.Month) (map[string]absence.Record, error) {
	records, err := s.absenceRepo.ListByCompanyAndPeriod(ctx, companyID, p)
	if err != nil {
		return nil, err
	}
	byEmployee := make(map[string]absence.Record, len(records))
	for _, r := range records {
		byEmployee[r.EmployeeID] = r
	}
	return byEmployee, nil
}

func (s *PayrollServiceImpl) loadLoans(ctx context.Context, companyID string) (map[string]loan.Account, error) {
	accounts, err := s.loanRepo.ListActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	byEmployee := make(map[string]loan.Account, len(accounts))
	for _, a := range accounts {
		byEmployee[a.EmployeeID] = a
	}
	return byEmployee, nil
}

// buildLineItem computes one employee's figures for the period. Housing
// benefits are valued after statutory-base gross is known, and every
// statutory amount honors the employee's participation flags.
func (s *PayrollServiceImpl) buildLineItem(
	run payroll.Run,
	emp employee.Employee,
	p period.Month,
	assignments []adjustment.Assignment,
	absenceRec absence.Record,
	loanAcct loan.Account,
	now time.Time,
) payroll.LineItem {
	absenceDeduction := absenceRec.DeductionAmount
	basePay := emp.Salary.Sub(absenceDeduction)
	if basePay.IsNegative() {
		basePay = decimal.Zero
	}

	res := ResolveAdjustments(assignments, emp, p, basePay)

	statutoryGross := basePay.Add(res.CashTotal)
	res.ValueHousing(statutoryGross)
	grossPay := statutoryGross.Add(res.NonCashTaxable)

	var nssf NSSFResult
	if emp.PaysNSSF {
		nssf = CalculateNSSF(statutoryGross, emp.Type(), p)
	}

	var shif, levy decimal.Decimal
	if emp.PaysSHIF {
		shif = CalculateSHIF(statutoryGross, p)
	}
	if emp.PaysHousingLevy {
		levy = CalculateHousingLevy(statutoryGross, p)
	}

	// SHIF and the housing levy are tax-deductible, so they come out of
	// the taxable base alongside NSSF and pre-tax deductions.
	cashTaxable := decimal.Zero
	for _, line := range res.CashAllowances {
		cashTaxable = cashTaxable.Add(line.TaxableAmount)
	}
	taxablePay := basePay.
		Add(cashTaxable).
		Add(res.NonCashTaxable).
		Sub(nssf.Total()).
		Sub(shif).
		Sub(levy).
		Sub(res.PreTaxDeductions)

	var paye decimal.Decimal
	if emp.PaysPAYE {
		relief := InsuranceRelief(res.InsurancePremiums)
		paye = CalculatePAYE(taxablePay, emp.HasDisability, relief)
	}

	var loanDeduction decimal.Decimal
	if emp.PaysHELB {
		loanDeduction = loanAcct.MonthAmount()
	}

	otherDeductions := res.PreTaxDeductions.Add(res.PostTaxDeductions)
	totalDeductions := paye.
		Add(nssf.Total()).
		Add(shif).
		Add(levy).
		Add(loanDeduction).
		Add(otherDeductions)

	// Net is the cash actually payable, so non-cash benefit value is not
	// part of it even though it was taxed.
	netPay := statutoryGross.Sub(totalDeductions)

	item := payroll.LineItem{
		ID:         uuid.NewString(),
		RunID:      run.ID,
		CompanyID:  run.CompanyID,
		EmployeeID: emp.ID,

		BasePay:          basePay,
		AbsenceDeduction: absenceDeduction,
		CashAllowances:   res.CashTotal,
		NonCashTaxable:   res.NonCashTaxable,
		StatutoryGross:   statutoryGross,
		GrossPay:         grossPay,
		TaxablePay:       taxablePay,

		PAYE:            paye,
		NSSFTier1:       nssf.Tier1,
		NSSFTier2:       nssf.Tier2,
		SHIF:            shif,
		HousingLevy:     levy,
		InsuranceRelief: InsuranceRelief(res.InsurancePremiums),
		LoanDeduction:   loanDeduction,
		OtherDeductions: otherDeductions,

		TotalDeductions: totalDeductions,
		NetPay:          netPay,

		Allowances: res.AllowanceLines(),
		Deductions: res.Deductions,

		CreatedAt: now,
	}
	if pd := emp.PaymentDetail; pd != nil {
		if pd.Method != nil {
			method := string(*pd.Method)
			item.PaymentMethod = &method
		}
		item.BankName = pd.BankName
		item.BranchName = pd.BranchName
		item.AccountNumber = pd.AccountNumber
		item.PhoneNumber = pd.PhoneNumber
	}
	return item
}

func (s *PayrollServiceImpl) GetRuns(ctx context.Context, year *int) ([]payroll.RunResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	runs, err := s.runRepo.ListByCompanyID(ctx, companyID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]payroll.RunResponse, len(runs))
	for i, r := range runs {
		resp[i] = payroll.ToRunResponse(r)
	}
	return resp, nil
}

func (s *PayrollServiceImpl) GetRunByID(ctx context.Context, runID string) (*payroll.RunDetailResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	run, err := s.runRepo.GetByID(ctx, runID, companyID)
	if err != nil {
		return nil, err
	}
	items, err := s.lineItemRepo.ListByRunID(ctx, runID, companyID)
	if err != nil {
		return nil, err
	}

	detail := &payroll.RunDetailResponse{
		Run:       payroll.ToRunResponse(run),
		LineItems: make([]payroll.LineItemResponse, len(items)),
	}
	for i, it := range items {
		detail.LineItems[i] = payroll.ToLineItemResponse(it)
	}
	return detail, nil
}

func (s *PayrollServiceImpl) GetRunItems(ctx context.Context, runID string) ([]payroll.LineItemResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.runRepo.GetByID(ctx, runID, companyID); err != nil {
		return nil, err
	}
	items, err := s.lineItemRepo.ListByRunID(ctx, runID, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]payroll.LineItemResponse, len(items))
	for i, it := range items {
		resp[i] = payroll.ToLineItemResponse(it)
	}
	return resp, nil
}

func (s *PayrollServiceImpl) GetRunYears(ctx context.Context) ([]int, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.runRepo.ListYears(ctx, companyID)
}

// transitionAction maps a target status to the permission it requires.
// Moving money-adjacent states needs approve rights; everything else is
// an ordinary write.
func transitionAction(to payroll.RunStatus) string {
	switch to {
	case payroll.StatusApproved, payroll.StatusRejected, payroll.StatusLocked,
		payroll.StatusUnlocked, payroll.StatusPaid, payroll.StatusCompleted:
		return authz.ActionApprove
	default:
		return authz.ActionWrite
	}
}

func (s *PayrollServiceImpl) Transition(ctx context.Context, runID string, req *payroll.TransitionRequest) (*payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	target := payroll.RunStatus(req.Status)
	if err := s.requireAllowed(ctx, userID, companyID, authz.ModulePayroll, transitionAction(target)); err != nil {
		return nil, err
	}

	var run payroll.Run
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		run, err = s.runRepo.GetByID(txCtx, runID, companyID)
		if err != nil {
			return err
		}

		next, err := payroll.Transition(run.Status, target)
		if err != nil {
			return err
		}
		run.Status = next

		now := time.Now()
		switch next {
		case payroll.StatusLocked:
			run.LockedBy = &userID
			run.LockedAt = &now
		case payroll.StatusUnlocked:
			run.LockedBy = nil
			run.LockedAt = nil
		case payroll.StatusPaid:
			run.PaidBy = &userID
			run.PaidAt = &now
		case payroll.StatusCompleted:
			// Loan balances only move once the run is final.
			if err := s.loanRepo.ApplyRunDeductions(txCtx, run.ID, companyID); err != nil {
				return err
			}
		}
		if req.Notes != nil {
			run.Notes = req.Notes
		}

		return s.runRepo.UpdateStatus(txCtx, &run)
	})
	if err != nil {
		return nil, err
	}

	resp := payroll.ToRunResponse(run)
	return &resp, nil
}

func (s *PayrollServiceImpl) DeleteRun(ctx context.Context, runID string) error {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.requireAllowed(ctx, userID, companyID, authz.ModulePayroll, authz.ActionDelete); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		run, err := s.runRepo.GetByID(txCtx, runID, companyID)
		if err != nil {
			return err
		}
		if !run.Deletable() {
			return payroll.ErrRunNotDeletable
		}

		if err := s.taskRepo.DeleteByRunID(txCtx, run.ID); err != nil {
			return err
		}
		if err := s.lineItemRepo.DeleteByRunID(txCtx, run.ID); err != nil {
			return err
		}
		return s.runRepo.Delete(txCtx, run.ID, companyID)
	})
}
