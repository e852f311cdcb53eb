package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                  string
	CompanyID           string
	EmployeeNumber      string
	FirstName           string
	MiddleName          *string
	LastName            string
	Email               string
	DepartmentID        *string
	SubDepartmentID     *string
	JobTitleID          *string
	Salary              decimal.Decimal
	HasDisability       bool
	PaysPAYE            bool
	PaysNSSF            bool
	PaysSHIF            bool
	PaysHousingLevy     bool
	PaysHELB            bool
	HireDate            *time.Time
	Status              Status
	StatusEffectiveDate *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined fields
	Contract      *Contract
	PaymentDetail *PaymentDetail
}

// FullName joins the name parts, skipping an absent middle name.
func (e Employee) FullName() string {
	if e.MiddleName != nil && *e.MiddleName != "" {
		return e.FirstName + " " + *e.MiddleName + " " + e.LastName
	}
	return e.FirstName + " " + e.LastName
}

// Type returns the employment classification carried on the active
// contract, defaulting to primary when no contract is attached.
func (e Employee) Type() ContractType {
	if e.Contract == nil {
		return ContractTypePrimary
	}
	return e.Contract.Type
}

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusOnLeave    Status = "ON_LEAVE"
	StatusSuspended  Status = "SUSPENDED"
	StatusTerminated Status = "TERMINATED"
	StatusRetired    Status = "RETIRED"
)

// ContractType doubles as the employment classification used by the
// statutory calculators.
type ContractType string

const (
	ContractTypePrimary    ContractType = "PRIMARY"
	ContractTypeSecondary  ContractType = "SECONDARY"
	ContractTypeConsultant ContractType = "CONSULTANT"
)

type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "ACTIVE"
	ContractStatusExpired    ContractStatus = "EXPIRED"
	ContractStatusTerminated ContractStatus = "TERMINATED"
)

type Contract struct {
	ID        string
	Type      ContractType
	StartDate time.Time
	EndDate   *time.Time
	Status    ContractStatus
}

type PaymentMethod string

const (
	PaymentMethodBank   PaymentMethod = "BANK"
	PaymentMethodMobile PaymentMethod = "MOBILE"
	PaymentMethodCash   PaymentMethod = "CASH"
)

// PaymentDetail carries routing data consumed only by downstream
// renderers; the computation itself never reads it.
type PaymentDetail struct {
	Method        *PaymentMethod
	BankName      *string
	BankCode      *string
	BranchName    *string
	BranchCode    *string
	AccountName   *string
	AccountNumber *string
	MobileType    *string
	PhoneNumber   *string
}
