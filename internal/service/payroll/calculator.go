package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

// Pure statutory calculation functions. Every input is passed explicitly;
// nothing here reads configuration or clocks.

var twelve = decimal.NewFromInt(12)

// CalculatePAYE computes monthly income tax on monthly taxable pay.
// The figure is annualized, reduced by the disability exemption when
// flagged, pushed through the progressive bands, de-annualized, reduced
// by personal relief and insurance relief, floored at zero and rounded
// up to the next whole shilling.
func CalculatePAYE(monthlyTaxable decimal.Decimal, hasDisability bool, insuranceRelief decimal.Decimal) decimal.Decimal {
	annual := monthlyTaxable.Mul(twelve)
	if hasDisability {
		annual = annual.Sub(disabilityExemptionAnnual)
	}
	if !annual.IsPositive() {
		return decimal.Zero
	}

	var annualTax decimal.Decimal
	for i := len(payeBands) - 1; i >= 0; i-- {
		b := payeBands[i]
		if annual.GreaterThan(b.Lower) {
			annualTax = b.CumulativeTax.Add(annual.Sub(b.Lower).Mul(b.Rate))
			break
		}
	}

	monthly := annualTax.Div(twelve).Sub(personalReliefMonthly).Sub(insuranceRelief)
	if monthly.IsNegative() {
		return decimal.Zero
	}
	return monthly.Ceil()
}

// InsuranceRelief is 15% of qualifying monthly insurance premiums,
// capped at the statutory monthly maximum.
func InsuranceRelief(monthlyPremiums decimal.Decimal) decimal.Decimal {
	if !monthlyPremiums.IsPositive() {
		return decimal.Zero
	}
	relief := monthlyPremiums.Mul(insuranceReliefRate)
	if relief.GreaterThan(insuranceReliefCapMonthly) {
		return insuranceReliefCapMonthly
	}
	return relief
}

// NSSFResult carries the two-tier contribution split.
type NSSFResult struct {
	Tier1 decimal.Decimal
	Tier2 decimal.Decimal
}

func (r NSSFResult) Total() decimal.Decimal {
	return r.Tier1.Add(r.Tier2)
}

// CalculateNSSF computes the employee contribution for the period.
// Consultants are exempt; secondary contracts contribute against
// reduced ceilings.
func CalculateNSSF(pensionable decimal.Decimal, contractType employee.ContractType, p period.Month) NSSFResult {
	if contractType == employee.ContractTypeConsultant {
		return NSSFResult{Tier1: decimal.Zero, Tier2: decimal.Zero}
	}
	if !pensionable.IsPositive() {
		return NSSFResult{Tier1: decimal.Zero, Tier2: decimal.Zero}
	}

	caps := nssfCapsFor(p)
	tier1Cap := caps.Tier1Cap
	tier2Cap := caps.Tier2Cap
	if contractType == employee.ContractTypeSecondary {
		tier1Cap = decimal.Min(tier1Cap, nssfSecondaryTier1Cap)
		tier2Cap = decimal.Min(tier2Cap, nssfSecondaryTier2Cap)
	}

	tier1Base := decimal.Min(pensionable, tier1Cap)
	tier2Base := decimal.Min(
		decimal.Max(decimal.Zero, pensionable.Sub(tier1Cap)),
		tier2Cap.Sub(tier1Cap),
	)

	return NSSFResult{
		Tier1: tier1Base.Mul(nssfRate),
		Tier2: tier2Base.Mul(nssfRate),
	}
}

// CalculateSHIF is the flat health levy on statutory-base gross,
// zero for periods before the scheme came into force.
func CalculateSHIF(statutoryGross decimal.Decimal, p period.Month) decimal.Decimal {
	if !shifActive(p) || !statutoryGross.IsPositive() {
		return decimal.Zero
	}
	return statutoryGross.Mul(shifRate).Round(0)
}

// CalculateHousingLevy is the flat affordable-housing levy on
// statutory-base gross, zero before its introduction.
func CalculateHousingLevy(statutoryGross decimal.Decimal, p period.Month) decimal.Decimal {
	if !housingLevyActive(p) || !statutoryGross.IsPositive() {
		return decimal.Zero
	}
	return statutoryGross.Mul(housingLevyRate).Round(0)
}
