package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wagestack/payroll-backend-go/internal/domain/adjustment"
	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

func strPtr(s string) *string { return &s }

func resolverEmployee() employee.Employee {
	return employee.Employee{
		ID:              "emp-1",
		DepartmentID:    strPtr("dept-1"),
		SubDepartmentID: strPtr("sub-1"),
		JobTitleID:      strPtr("title-1"),
	}
}

func cashType(code string) *adjustment.Type {
	return &adjustment.Type{
		ID:        "type-" + code,
		Kind:      adjustment.KindAllowance,
		Code:      code,
		Name:      code,
		IsCash:    true,
		IsTaxable: true,
	}
}

func nonCashType(code string) *adjustment.Type {
	return &adjustment.Type{
		ID:        "type-" + code,
		Kind:      adjustment.KindAllowance,
		Code:      code,
		Name:      code,
		IsCash:    false,
		IsTaxable: true,
	}
}

func assignmentFor(t *adjustment.Type, kind adjustment.Kind, target adjustment.Target, value int64, start period.Month) adjustment.Assignment {
	return adjustment.Assignment{
		ID:              "assign-" + t.Code,
		TypeID:          t.ID,
		Kind:            kind,
		Target:          target,
		Value:           decimal.NewFromInt(value),
		CalculationType: adjustment.CalculationFixed,
		IsRecurring:     true,
		Start:           start,
		Type:            t,
	}
}

func TestResolveAdjustmentsScopes(t *testing.T) {
	t.Parallel()

	p := month(t, 2025, 3)
	emp := resolverEmployee()
	basePay := decimal.NewFromInt(50000)

	individual := adjustment.Target{Kind: adjustment.TargetIndividual, RefID: "emp-1"}
	otherPerson := adjustment.Target{Kind: adjustment.TargetIndividual, RefID: "emp-2"}
	dept := adjustment.Target{Kind: adjustment.TargetDepartment, RefID: "dept-1"}
	otherDept := adjustment.Target{Kind: adjustment.TargetDepartment, RefID: "dept-9"}
	sub := adjustment.Target{Kind: adjustment.TargetSubDepartment, RefID: "sub-1"}
	title := adjustment.Target{Kind: adjustment.TargetJobTitle, RefID: "title-1"}
	company := adjustment.Target{Kind: adjustment.TargetCompany}

	assignments := []adjustment.Assignment{
		assignmentFor(cashType("transport"), adjustment.KindAllowance, individual, 3000, p),
		assignmentFor(cashType("skip-me"), adjustment.KindAllowance, otherPerson, 9999, p),
		assignmentFor(cashType("dept-bonus"), adjustment.KindAllowance, dept, 1000, p),
		assignmentFor(cashType("skip-too"), adjustment.KindAllowance, otherDept, 9999, p),
		assignmentFor(cashType("sub-bonus"), adjustment.KindAllowance, sub, 500, p),
		assignmentFor(cashType("title-bonus"), adjustment.KindAllowance, title, 250, p),
		assignmentFor(cashType("companywide"), adjustment.KindAllowance, company, 100, p),
	}

	res := ResolveAdjustments(assignments, emp, p, basePay)

	assert.Len(t, res.CashAllowances, 5)
	assertDecimalEqual(t, "4850", res.CashTotal)
}

func TestResolveAdjustmentsWindows(t *testing.T) {
	t.Parallel()

	emp := resolverEmployee()
	basePay := decimal.NewFromInt(50000)
	target := adjustment.Target{Kind: adjustment.TargetIndividual, RefID: "emp-1"}

	t.Run("recurring applies to every period on or after start", func(t *testing.T) {
		a := assignmentFor(cashType("housing-cash"), adjustment.KindAllowance, target, 2000, month(t, 2024, 6))

		before := ResolveAdjustments([]adjustment.Assignment{a}, emp, month(t, 2024, 5), basePay)
		after := ResolveAdjustments([]adjustment.Assignment{a}, emp, month(t, 2026, 1), basePay)

		assert.Empty(t, before.CashAllowances)
		assert.Len(t, after.CashAllowances, 1)
	})

	t.Run("one-shot window does not leak into later periods", func(t *testing.T) {
		a := assignmentFor(cashType("bonus"), adjustment.KindAllowance, target, 10000, month(t, 2025, 1))
		a.IsRecurring = false
		end := month(t, 2025, 1)
		a.End = &end

		inside := ResolveAdjustments([]adjustment.Assignment{a}, emp, month(t, 2025, 1), basePay)
		outside := ResolveAdjustments([]adjustment.Assignment{a}, emp, month(t, 2025, 2), basePay)

		assert.Len(t, inside.CashAllowances, 1)
		assert.Empty(t, outside.CashAllowances)
	})

	t.Run("bounded window across a year boundary", func(t *testing.T) {
		a := assignmentFor(cashType("project"), adjustment.KindAllowance, target, 1500, month(t, 2024, 11))
		end := month(t, 2025, 2)
		a.End = &end

		assert.Len(t, ResolveAdjustments([]adjustment.Assignment{a}, emp, month(t, 2025, 1), basePay).CashAllowances, 1)
		assert.Empty(t, ResolveAdjustments([]adjustment.Assignment{a}, emp, month(t, 2025, 3), basePay).CashAllowances)
	})
}

func TestResolveAdjustmentsValues(t *testing.T) {
	t.Parallel()

	p := month(t, 2025, 3)
	emp := resolverEmployee()
	target := adjustment.Target{Kind: adjustment.TargetIndividual, RefID: "emp-1"}

	t.Run("percentage of base pay", func(t *testing.T) {
		a := assignmentFor(cashType("commission"), adjustment.KindAllowance, target, 10, p)
		a.CalculationType = adjustment.CalculationPercentage

		res := ResolveAdjustments([]adjustment.Assignment{a}, emp, p, decimal.NewFromInt(48000))
		assertDecimalEqual(t, "4800", res.CashTotal)
	})

	t.Run("type cap clamps the resolved value", func(t *testing.T) {
		capped := cashType("capped")
		max := decimal.NewFromInt(2500)
		capped.MaxValue = &max
		a := assignmentFor(capped, adjustment.KindAllowance, target, 10000, p)

		res := ResolveAdjustments([]adjustment.Assignment{a}, emp, p, decimal.NewFromInt(50000))
		assertDecimalEqual(t, "2500", res.CashTotal)
	})

	t.Run("deductions split pre and post tax", func(t *testing.T) {
		pre := &adjustment.Type{ID: "t-pension", Kind: adjustment.KindDeduction, Code: "pension", Name: "Pension", IsPreTax: true}
		post := &adjustment.Type{ID: "t-welfare", Kind: adjustment.KindDeduction, Code: "welfare", Name: "Welfare"}
		insurance := &adjustment.Type{ID: "t-ins", Kind: adjustment.KindDeduction, Code: DeductionCodeInsurance, Name: "Insurance"}

		assignments := []adjustment.Assignment{
			assignmentFor(pre, adjustment.KindDeduction, target, 2000, p),
			assignmentFor(post, adjustment.KindDeduction, target, 500, p),
			assignmentFor(insurance, adjustment.KindDeduction, target, 3000, p),
		}
		res := ResolveAdjustments(assignments, emp, p, decimal.NewFromInt(50000))

		assertDecimalEqual(t, "2000", res.PreTaxDeductions)
		assertDecimalEqual(t, "3500", res.PostTaxDeductions)
		assertDecimalEqual(t, "3000", res.InsurancePremiums)
		assert.Len(t, res.Deductions, 3)
	})
}

func TestResolveAdjustmentsHousingSecondPass(t *testing.T) {
	t.Parallel()

	p := month(t, 2025, 3)
	emp := resolverEmployee()
	target := adjustment.Target{Kind: adjustment.TargetIndividual, RefID: "emp-1"}

	housing := assignmentFor(nonCashType(BenefitCodeHousing), adjustment.KindAllowance, target, 10000, p)
	meal := assignmentFor(nonCashType(BenefitCodeMeal), adjustment.KindAllowance, target, 8000, p)

	res := ResolveAdjustments([]adjustment.Assignment{housing, meal}, emp, p, decimal.NewFromInt(80000))

	// Housing is deferred until statutory gross is known.
	assert.Len(t, res.HousingRaw, 1)
	assertDecimalEqual(t, "3000", res.NonCashTaxable)

	res.ValueHousing(decimal.NewFromInt(80000))

	assert.Empty(t, res.HousingRaw)
	// max(15% x 80,000, 10,000) = 12,000 housing plus 3,000 meal.
	assertDecimalEqual(t, "15000", res.NonCashTaxable)
	assert.Len(t, res.AllowanceLines(), 2)
}
