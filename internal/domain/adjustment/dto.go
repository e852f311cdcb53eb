package adjustment

import (
	"github.com/shopspring/decimal"

	"github.com/wagestack/payroll-backend-go/internal/pkg/validator"
)

// ========== TYPE DTOs ==========

type CreateTypeRequest struct {
	Kind      string           `json:"-"`
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	IsCash    *bool            `json:"is_cash,omitempty"`
	IsTaxable *bool            `json:"is_taxable,omitempty"`
	IsPreTax  *bool            `json:"is_pre_tax,omitempty"`
	MaxValue  *decimal.Decimal `json:"max_value,omitempty"`
}

func (r *CreateTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.MaxValue != nil && r.MaxValue.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "max_value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TypeResponse struct {
	ID        string           `json:"id"`
	CompanyID string           `json:"company_id"`
	Kind      string           `json:"kind"`
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	IsCash    bool             `json:"is_cash"`
	IsTaxable bool             `json:"is_taxable"`
	IsPreTax  bool             `json:"is_pre_tax"`
	MaxValue  *decimal.Decimal `json:"max_value,omitempty"`
}

// ========== ASSIGNMENT DTOs ==========

type AssignRequest struct {
	Kind            string          `json:"-"`
	TypeID          string          `json:"type_id"`
	AppliesTo       string          `json:"applies_to"`
	TargetID        string          `json:"target_id,omitempty"`
	Value           decimal.Decimal `json:"value"`
	CalculationType string          `json:"calculation_type"`
	IsRecurring     *bool           `json:"is_recurring,omitempty"`
	StartMonth      int             `json:"start_month"`
	StartYear       int             `json:"start_year"`
	NumberOfMonths  *int            `json:"number_of_months,omitempty"`
}

func (r *AssignRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TypeID) {
		errs = append(errs, validator.ValidationError{Field: "type_id", Message: "is required"})
	}
	kindOK := false
	for _, k := range TargetKinds {
		if string(k) == r.AppliesTo {
			kindOK = true
			break
		}
	}
	if !kindOK {
		errs = append(errs, validator.ValidationError{Field: "applies_to", Message: "must be INDIVIDUAL, DEPARTMENT, SUB_DEPARTMENT, JOB_TITLE or COMPANY"})
	}
	if r.AppliesTo != string(TargetCompany) && validator.IsEmpty(r.TargetID) {
		errs = append(errs, validator.ValidationError{Field: "target_id", Message: "is required for this scope"})
	}
	if r.AppliesTo == string(TargetCompany) && !validator.IsEmpty(r.TargetID) {
		errs = append(errs, validator.ValidationError{Field: "target_id", Message: "must be empty for company-wide scope"})
	}
	if r.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "value", Message: "must be non-negative"})
	}
	if r.CalculationType != string(CalculationFixed) && r.CalculationType != string(CalculationPercentage) {
		errs = append(errs, validator.ValidationError{Field: "calculation_type", Message: "must be FIXED or PERCENTAGE"})
	}
	if r.StartMonth < 1 || r.StartMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "start_month", Message: "must be between 1 and 12"})
	}
	if r.StartYear < 1900 || r.StartYear > 2100 {
		errs = append(errs, validator.ValidationError{Field: "start_year", Message: "must be a valid year"})
	}
	if r.NumberOfMonths != nil && *r.NumberOfMonths < 1 {
		errs = append(errs, validator.ValidationError{Field: "number_of_months", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAssignmentRequest struct {
	ID             string
	Value          *decimal.Decimal `json:"value,omitempty"`
	IsRecurring    *bool            `json:"is_recurring,omitempty"`
	NumberOfMonths *int             `json:"number_of_months,omitempty"`
}

type AssignmentResponse struct {
	ID              string           `json:"id"`
	CompanyID       string           `json:"company_id"`
	TypeID          string           `json:"type_id"`
	TypeCode        string           `json:"type_code,omitempty"`
	TypeName        string           `json:"type_name,omitempty"`
	Kind            string           `json:"kind"`
	AppliesTo       string           `json:"applies_to"`
	TargetID        string           `json:"target_id,omitempty"`
	Value           decimal.Decimal  `json:"value"`
	CalculationType string           `json:"calculation_type"`
	IsRecurring     bool             `json:"is_recurring"`
	StartPeriod     string           `json:"start_period"`
	EndPeriod       *string          `json:"end_period,omitempty"`
	NumberOfMonths  *int             `json:"number_of_months,omitempty"`
	MaxValue        *decimal.Decimal `json:"max_value,omitempty"`
}

// ImportResult reports a bulk spreadsheet import. RowErrors carries every
// failed row; nothing is inserted when it is non-empty.
type ImportResult struct {
	Imported  int      `json:"imported"`
	RowErrors []string `json:"row_errors,omitempty"`
}
