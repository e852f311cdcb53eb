package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagestack/payroll-backend-go/internal/pkg/validator"
)

type SyncRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *SyncRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 1900 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SyncResponse struct {
	RunID           string          `json:"run_id"`
	IsNewRun        bool            `json:"is_new_run"`
	PayrollNumber   string          `json:"payroll_number"`
	Period          string          `json:"period"`
	Status          string          `json:"status"`
	EmployeeCount   int             `json:"employee_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
}

type TransitionRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *TransitionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is required"})
	} else if !ValidStatus(RunStatus(r.Status)) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a recognized payroll status"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunResponse struct {
	ID              string          `json:"id"`
	PayrollNumber   string          `json:"payroll_number"`
	Period          string          `json:"period"`
	Status          string          `json:"status"`
	EmployeeCount   int             `json:"employee_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
	LockedBy        *string         `json:"locked_by,omitempty"`
	LockedAt        *time.Time      `json:"locked_at,omitempty"`
	PaidBy          *string         `json:"paid_by,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type LineItemResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name,omitempty"`
	EmployeeNumber string `json:"employee_number,omitempty"`
	PaymentMethod  string `json:"payment_method,omitempty"`
	BankName       string `json:"bank_name,omitempty"`
	BranchName     string `json:"branch_name,omitempty"`
	AccountNumber  string `json:"account_number,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty"`

	BasePay          decimal.Decimal `json:"base_pay"`
	AbsenceDeduction decimal.Decimal `json:"absence_deduction"`
	CashAllowances   decimal.Decimal `json:"cash_allowances"`
	NonCashTaxable   decimal.Decimal `json:"non_cash_taxable"`
	GrossPay         decimal.Decimal `json:"gross_pay"`
	TaxablePay       decimal.Decimal `json:"taxable_pay"`

	PAYE            decimal.Decimal `json:"paye"`
	NSSF            decimal.Decimal `json:"nssf"`
	SHIF            decimal.Decimal `json:"shif"`
	HousingLevy     decimal.Decimal `json:"housing_levy"`
	LoanDeduction   decimal.Decimal `json:"loan_deduction"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`

	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`

	Allowances []AllowanceLine `json:"allowances"`
	Deductions []DeductionLine `json:"deductions"`
}

type RunDetailResponse struct {
	Run       RunResponse        `json:"run"`
	LineItems []LineItemResponse `json:"line_items"`
}

func ToRunResponse(r Run) RunResponse {
	return RunResponse{
		ID:              r.ID,
		PayrollNumber:   r.PayrollNumber,
		Period:          r.Period.String(),
		Status:          string(r.Status),
		EmployeeCount:   r.EmployeeCount,
		TotalGross:      r.TotalGross,
		TotalDeductions: r.TotalDeductions,
		TotalNet:        r.TotalNet,
		LockedBy:        r.LockedBy,
		LockedAt:        r.LockedAt,
		PaidBy:          r.PaidBy,
		PaidAt:          r.PaidAt,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
	}
}

func ToLineItemResponse(li LineItem) LineItemResponse {
	resp := LineItemResponse{
		ID:               li.ID,
		EmployeeID:       li.EmployeeID,
		BasePay:          li.BasePay,
		AbsenceDeduction: li.AbsenceDeduction,
		CashAllowances:   li.CashAllowances,
		NonCashTaxable:   li.NonCashTaxable,
		GrossPay:         li.GrossPay,
		TaxablePay:       li.TaxablePay,
		PAYE:             li.PAYE,
		NSSF:             li.NSSFTier1.Add(li.NSSFTier2),
		SHIF:             li.SHIF,
		HousingLevy:      li.HousingLevy,
		LoanDeduction:    li.LoanDeduction,
		OtherDeductions:  li.OtherDeductions,
		TotalDeductions:  li.TotalDeductions,
		NetPay:           li.NetPay,
		Allowances:       li.Allowances,
		Deductions:       li.Deductions,
	}
	if li.EmployeeName != nil {
		resp.EmployeeName = *li.EmployeeName
	}
	if li.EmployeeNumber != nil {
		resp.EmployeeNumber = *li.EmployeeNumber
	}
	if li.PaymentMethod != nil {
		resp.PaymentMethod = *li.PaymentMethod
	}
	if li.BankName != nil {
		resp.BankName = *li.BankName
	}
	if li.BranchName != nil {
		resp.BranchName = *li.BranchName
	}
	if li.AccountNumber != nil {
		resp.AccountNumber = *li.AccountNumber
	}
	if li.PhoneNumber != nil {
		resp.PhoneNumber = *li.PhoneNumber
	}
	return resp
}
