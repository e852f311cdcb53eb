package absence

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
	"github.com/wagestack/payroll-backend-go/internal/pkg/validator"
)

// Record captures unpaid absence for one employee in one payroll month.
// DeductionAmount is entered by the clerk, not derived from DaysAbsent.
type Record struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	Period          period.Month
	DaysAbsent      decimal.Decimal
	DeductionAmount decimal.Decimal
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type UpsertRequest struct {
	EmployeeID      string          `json:"employee_id"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	DaysAbsent      decimal.Decimal `json:"days_absent"`
	DeductionAmount decimal.Decimal `json:"deduction_amount"`
	Notes           *string         `json:"notes,omitempty"`
}

func (r *UpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 1900 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}
	if r.DaysAbsent.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "days_absent", Message: "must be non-negative"})
	}
	if r.DeductionAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deduction_amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	Period          string          `json:"period"`
	DaysAbsent      decimal.Decimal `json:"days_absent"`
	DeductionAmount decimal.Decimal `json:"deduction_amount"`
	Notes           *string         `json:"notes,omitempty"`
}
