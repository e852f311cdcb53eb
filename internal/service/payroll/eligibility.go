package payroll

import (
	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

// IsEligible reports whether an employee should appear on the run for the
// period. Pure predicate over the employee record:
//   - hired on or before the last day of the period (no hire date means
//     ineligible),
//   - active contract not ended before that day,
//   - not terminated, suspended or retired with an effective date on or
//     before that day; a missing effective date means the status change
//     has not taken effect yet.
func IsEligible(emp employee.Employee, p period.Month) bool {
	periodEnd := p.EndOfMonth()

	if emp.HireDate == nil || emp.HireDate.After(periodEnd) {
		return false
	}

	if emp.Contract != nil && emp.Contract.EndDate != nil && emp.Contract.EndDate.Before(periodEnd) {
		return false
	}

	switch emp.Status {
	case employee.StatusTerminated, employee.StatusSuspended, employee.StatusRetired:
		if emp.StatusEffectiveDate != nil && !emp.StatusEffectiveDate.After(periodEnd) {
			return false
		}
	}

	return true
}

// EligibleEmployees filters the company roster down to the run's
// population for the period.
func EligibleEmployees(emps []employee.Employee, p period.Month) []employee.Employee {
	out := make([]employee.Employee, 0, len(emps))
	for _, e := range emps {
		if IsEligible(e, p) {
			out = append(out, e)
		}
	}
	return out
}
