package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

// RunStatus enum
type RunStatus string

const (
	StatusDraft       RunStatus = "DRAFT"
	StatusPrepared    RunStatus = "PREPARED"
	StatusUnderReview RunStatus = "UNDER_REVIEW"
	StatusApproved    RunStatus = "APPROVED"
	StatusRejected    RunStatus = "REJECTED"
	StatusLocked      RunStatus = "LOCKED"
	StatusUnlocked    RunStatus = "UNLOCKED"
	StatusPaid        RunStatus = "PAID"
	StatusCompleted   RunStatus = "COMPLETED"
	StatusCancelled   RunStatus = "CANCELLED"
)

// Run - one payroll computation per (company, month, year)
type Run struct {
	ID            string
	CompanyID     string
	PayrollNumber string
	Period        period.Month
	Status        RunStatus

	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
	EmployeeCount   int

	LockedBy *string
	LockedAt *time.Time
	PaidBy   *string
	PaidAt   *time.Time

	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Deletable reports whether the run may be removed entirely.
func (r Run) Deletable() bool {
	return r.Status == StatusDraft || r.Status == StatusCancelled
}

// AllowanceLine - one applied allowance inside a line item breakdown
type AllowanceLine struct {
	TypeID    string          `json:"type_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	IsCash    bool            `json:"is_cash"`
	IsTaxable bool            `json:"is_taxable"`
	Amount    decimal.Decimal `json:"amount"`
	// TaxableAmount differs from Amount for non-cash benefits where a
	// valuation rule (vehicle rate, meal exemption, housing floor) applies.
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
}

// DeductionLine - one applied deduction inside a line item breakdown
type DeductionLine struct {
	TypeID   string          `json:"type_id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	IsPreTax bool            `json:"is_pre_tax"`
	Amount   decimal.Decimal `json:"amount"`
}

// LineItem - per-employee computed payroll record for one run.
// Replaced wholesale on every recompute, never patched in place.
type LineItem struct {
	ID         string
	RunID      string
	CompanyID  string
	EmployeeID string

	BasePay          decimal.Decimal
	AbsenceDeduction decimal.Decimal
	CashAllowances   decimal.Decimal
	NonCashTaxable   decimal.Decimal
	StatutoryGross   decimal.Decimal
	GrossPay         decimal.Decimal
	TaxablePay       decimal.Decimal

	PAYE            decimal.Decimal
	NSSFTier1       decimal.Decimal
	NSSFTier2       decimal.Decimal
	SHIF            decimal.Decimal
	HousingLevy     decimal.Decimal
	InsuranceRelief decimal.Decimal
	LoanDeduction   decimal.Decimal
	OtherDeductions decimal.Decimal

	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal

	Allowances []AllowanceLine
	Deductions []DeductionLine

	// Payment routing snapshot taken when the item is computed, so a
	// later change to the employee's details never rewrites a run.
	PaymentMethod *string
	BankName      *string
	BranchName    *string
	AccountNumber *string
	PhoneNumber   *string

	CreatedAt time.Time

	// Joined fields
	EmployeeName   *string
	EmployeeNumber *string
}
