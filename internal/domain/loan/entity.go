package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagestack/payroll-backend-go/internal/pkg/validator"
)

type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Account is a statutory education loan repayment account. The monthly
// deduction is a flat post-tax amount; the balance is only decremented
// when the payroll run it was deducted in completes.
type Account struct {
	ID               string
	CompanyID        string
	EmployeeID       string
	AccountNumber    string
	MonthlyDeduction decimal.Decimal
	CurrentBalance   decimal.Decimal
	Status           AccountStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Deductible reports whether the account should produce a deduction line.
// A zero or settled balance stops deductions even while the account is ACTIVE.
func (a Account) Deductible() bool {
	if a.Status != AccountActive {
		return false
	}
	return a.CurrentBalance.IsPositive() && a.MonthlyDeduction.IsPositive()
}

// MonthAmount is the amount to deduct this month, clamped to the
// remaining balance so the account never goes negative.
func (a Account) MonthAmount() decimal.Decimal {
	if !a.Deductible() {
		return decimal.Zero
	}
	if a.MonthlyDeduction.GreaterThan(a.CurrentBalance) {
		return a.CurrentBalance
	}
	return a.MonthlyDeduction
}

type UpsertRequest struct {
	EmployeeID       string          `json:"employee_id"`
	AccountNumber    string          `json:"account_number"`
	MonthlyDeduction decimal.Decimal `json:"monthly_deduction"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	Status           *string         `json:"status,omitempty"`
}

func (r *UpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.AccountNumber) {
		errs = append(errs, validator.ValidationError{Field: "account_number", Message: "is required"})
	}
	if r.MonthlyDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_deduction", Message: "must be non-negative"})
	}
	if r.CurrentBalance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "current_balance", Message: "must be non-negative"})
	}
	if r.Status != nil && *r.Status != string(AccountActive) && *r.Status != string(AccountInactive) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be ACTIVE or INACTIVE"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AccountResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	AccountNumber    string          `json:"account_number"`
	MonthlyDeduction decimal.Decimal `json:"monthly_deduction"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	Status           string          `json:"status"`
}
