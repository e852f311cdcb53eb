package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/wagestack/payroll-backend-go/internal/domain/adjustment"
	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/domain/payroll"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

// Deduction type code that qualifies its premiums for insurance relief.
const DeductionCodeInsurance = "insurance"

// ResolvedAdjustments is the outcome of matching a company's assignments
// against one employee for one period. Housing benefits are carried raw;
// they are valued in a second pass once statutory-base gross is known.
type ResolvedAdjustments struct {
	CashAllowances []payroll.AllowanceLine
	NonCash        []payroll.AllowanceLine
	HousingRaw     []payroll.AllowanceLine
	Deductions     []payroll.DeductionLine

	CashTotal         decimal.Decimal
	NonCashTaxable    decimal.Decimal
	PreTaxDeductions  decimal.Decimal
	PostTaxDeductions decimal.Decimal
	InsurancePremiums decimal.Decimal
}

// ResolveAdjustments walks every assignment for the company and keeps the
// ones whose target matches the employee and whose window contains the
// period. basePay is the employee's pay after the absence deduction, which
// is the base for percentage-mode values.
func ResolveAdjustments(assignments []adjustment.Assignment, emp employee.Employee, p period.Month, basePay decimal.Decimal) ResolvedAdjustments {
	res := ResolvedAdjustments{
		CashTotal:         decimal.Zero,
		NonCashTaxable:    decimal.Zero,
		PreTaxDeductions:  decimal.Zero,
		PostTaxDeductions: decimal.Zero,
		InsurancePremiums: decimal.Zero,
	}

	for _, a := range assignments {
		if a.Type == nil {
			continue
		}
		if !a.Target.AppliesTo(emp) || !a.InPeriod(p) {
			continue
		}

		amount := a.Amount(basePay)
		if !amount.IsPositive() {
			continue
		}

		switch a.Kind {
		case adjustment.KindAllowance:
			line := payroll.AllowanceLine{
				TypeID:        a.TypeID,
				Code:          a.Type.Code,
				Name:          a.Type.Name,
				IsCash:        a.Type.IsCash,
				IsTaxable:     a.Type.IsTaxable,
				Amount:        amount,
				TaxableAmount: decimal.Zero,
			}
			switch {
			case a.Type.IsCash:
				if a.Type.IsTaxable {
					line.TaxableAmount = amount
				}
				res.CashAllowances = append(res.CashAllowances, line)
				res.CashTotal = res.CashTotal.Add(amount)
			case a.Type.Code == BenefitCodeHousing:
				res.HousingRaw = append(res.HousingRaw, line)
			default:
				line.TaxableAmount = NonCashTaxableValue(a.Type.Code, amount)
				res.NonCash = append(res.NonCash, line)
				res.NonCashTaxable = res.NonCashTaxable.Add(line.TaxableAmount)
			}

		case adjustment.KindDeduction:
			line := payroll.DeductionLine{
				TypeID:   a.TypeID,
				Code:     a.Type.Code,
				Name:     a.Type.Name,
				IsPreTax: a.Type.IsPreTax,
				Amount:   amount,
			}
			res.Deductions = append(res.Deductions, line)
			if a.Type.IsPreTax {
				res.PreTaxDeductions = res.PreTaxDeductions.Add(amount)
			} else {
				res.PostTaxDeductions = res.PostTaxDeductions.Add(amount)
			}
			if a.Type.Code == DeductionCodeInsurance {
				res.InsurancePremiums = res.InsurancePremiums.Add(amount)
			}
		}
	}

	return res
}

// ValueHousing runs the deferred second pass: each raw housing benefit is
// floored at 15% of statutory-base gross, then folded into the non-cash
// taxable total.
func (r *ResolvedAdjustments) ValueHousing(statutoryGross decimal.Decimal) {
	for _, line := range r.HousingRaw {
		line.TaxableAmount = HousingBenefit(line.Amount, statutoryGross)
		r.NonCash = append(r.NonCash, line)
		r.NonCashTaxable = r.NonCashTaxable.Add(line.TaxableAmount)
	}
	r.HousingRaw = nil
}

// AllowanceLines returns the combined cash and non-cash breakdown for the
// line item. ValueHousing must run first.
func (r *ResolvedAdjustments) AllowanceLines() []payroll.AllowanceLine {
	out := make([]payroll.AllowanceLine, 0, len(r.CashAllowances)+len(r.NonCash))
	out = append(out, r.CashAllowances...)
	out = append(out, r.NonCash...)
	return out
}
