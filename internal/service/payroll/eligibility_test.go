package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
)

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func activeEmployee() employee.Employee {
	return employee.Employee{
		ID:       "emp-1",
		HireDate: date(2023, time.January, 10),
		Status:   employee.StatusActive,
		Contract: &employee.Contract{
			ID:     "ct-1",
			Type:   employee.ContractTypePrimary,
			Status: employee.ContractStatusActive,
		},
	}
}

func TestIsEligible(t *testing.T) {
	t.Parallel()

	p := month(t, 2025, 3)

	t.Run("active hired employee is eligible", func(t *testing.T) {
		assert.True(t, IsEligible(activeEmployee(), p))
	})

	t.Run("missing hire date is ineligible", func(t *testing.T) {
		emp := activeEmployee()
		emp.HireDate = nil
		assert.False(t, IsEligible(emp, p))
	})

	t.Run("hired after the period is ineligible", func(t *testing.T) {
		emp := activeEmployee()
		emp.HireDate = date(2025, time.April, 1)
		assert.False(t, IsEligible(emp, p))
	})

	t.Run("hired mid-period is eligible", func(t *testing.T) {
		emp := activeEmployee()
		emp.HireDate = date(2025, time.March, 20)
		assert.True(t, IsEligible(emp, p))
	})

	t.Run("contract ended before period end is ineligible", func(t *testing.T) {
		emp := activeEmployee()
		emp.Contract.EndDate = date(2025, time.February, 28)
		assert.False(t, IsEligible(emp, p))
	})

	t.Run("terminated with past effective date is ineligible", func(t *testing.T) {
		emp := activeEmployee()
		emp.Status = employee.StatusTerminated
		emp.StatusEffectiveDate = date(2025, time.January, 15)
		assert.False(t, IsEligible(emp, p))
	})

	t.Run("terminated with future effective date stays eligible", func(t *testing.T) {
		emp := activeEmployee()
		emp.Status = employee.StatusTerminated
		emp.StatusEffectiveDate = date(2025, time.June, 1)
		assert.True(t, IsEligible(emp, p))
	})

	t.Run("suspended without effective date stays eligible", func(t *testing.T) {
		emp := activeEmployee()
		emp.Status = employee.StatusSuspended
		assert.True(t, IsEligible(emp, p))
	})

	t.Run("on leave stays eligible", func(t *testing.T) {
		emp := activeEmployee()
		emp.Status = employee.StatusOnLeave
		assert.True(t, IsEligible(emp, p))
	})
}

func TestEligibleEmployees(t *testing.T) {
	t.Parallel()

	p := month(t, 2025, 3)
	fired := activeEmployee()
	fired.ID = "emp-2"
	fired.Status = employee.StatusRetired
	fired.StatusEffectiveDate = date(2024, time.December, 31)

	out := EligibleEmployees([]employee.Employee{activeEmployee(), fired}, p)
	assert.Len(t, out, 1)
	assert.Equal(t, "emp-1", out[0].ID)
}
