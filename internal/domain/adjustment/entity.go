package adjustment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

// Kind separates the two catalog families sharing this model.
type Kind string

const (
	KindAllowance Kind = "allowance"
	KindDeduction Kind = "deduction"
)

// TargetKind enumerates the scopes an assignment can be pinned to.
type TargetKind string

const (
	TargetIndividual    TargetKind = "INDIVIDUAL"
	TargetDepartment    TargetKind = "DEPARTMENT"
	TargetSubDepartment TargetKind = "SUB_DEPARTMENT"
	TargetJobTitle      TargetKind = "JOB_TITLE"
	TargetCompany       TargetKind = "COMPANY"
)

var TargetKinds = []TargetKind{
	TargetIndividual, TargetDepartment, TargetSubDepartment, TargetJobTitle, TargetCompany,
}

// Target is a closed variant: exactly one reference id per kind, none for
// company-wide scope.
type Target struct {
	Kind  TargetKind
	RefID string
}

// AppliesTo reports whether the target selects the given employee.
func (t Target) AppliesTo(emp employee.Employee) bool {
	switch t.Kind {
	case TargetIndividual:
		return t.RefID == emp.ID
	case TargetDepartment:
		return emp.DepartmentID != nil && t.RefID == *emp.DepartmentID
	case TargetSubDepartment:
		return emp.SubDepartmentID != nil && t.RefID == *emp.SubDepartmentID
	case TargetJobTitle:
		return emp.JobTitleID != nil && t.RefID == *emp.JobTitleID
	case TargetCompany:
		return true
	default:
		return false
	}
}

type CalculationType string

const (
	CalculationFixed      CalculationType = "FIXED"
	CalculationPercentage CalculationType = "PERCENTAGE"
)

// Type is a tenant-scoped catalog entry. Code selects specialized
// valuation logic for non-cash allowances (vehicle, meal, housing).
type Type struct {
	ID        string
	CompanyID string
	Kind      Kind
	Code      string
	Name      string
	IsCash    bool
	IsTaxable bool
	IsPreTax  bool
	MaxValue  *decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assignment attaches a typed allowance or deduction to a target scope
// for a month-year window.
type Assignment struct {
	ID              string
	CompanyID       string
	TypeID          string
	Kind            Kind
	Target          Target
	Value           decimal.Decimal
	CalculationType CalculationType
	IsRecurring     bool
	Start           period.Month
	End             *period.Month
	NumberOfMonths  *int
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined catalog entry
	Type *Type
}

// InPeriod applies the single window test: the assignment is in force
// when the period is at or after the start month and, if an end month is
// set, at or before it. Recurring and one-shot assignments follow the
// same rule; one-shots always carry an end month derived from their
// duration.
func (a Assignment) InPeriod(p period.Month) bool {
	if p.Index() < a.Start.Index() {
		return false
	}
	if a.End != nil && p.Index() > a.End.Index() {
		return false
	}
	return true
}

// Amount resolves the assignment's monetary value against the
// employee's base pay for the period, clamped to the type's cap.
func (a Assignment) Amount(basePay decimal.Decimal) decimal.Decimal {
	var value decimal.Decimal
	switch a.CalculationType {
	case CalculationPercentage:
		value = basePay.Mul(a.Value).Div(decimal.NewFromInt(100))
	default:
		value = a.Value
	}
	if a.Type != nil && a.Type.MaxValue != nil && value.GreaterThan(*a.Type.MaxValue) {
		value = *a.Type.MaxValue
	}
	return value
}
