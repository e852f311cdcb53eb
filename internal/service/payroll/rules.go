package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

// Statutory parameters for Kenyan payroll. Each effective-dated rule is
// selected by the payroll period being computed, never by wall-clock time,
// so historical periods keep their historical figures.

// payeBand - one annual PAYE band. CumulativeTax is the tax on all income
// below Lower, so band tax = CumulativeTax + (income - Lower) * Rate.
type payeBand struct {
	Lower         decimal.Decimal
	Upper         decimal.Decimal // zero means unbounded
	Rate          decimal.Decimal
	CumulativeTax decimal.Decimal
}

var payeBands = []payeBand{
	{decimal.Zero, d(288000), rate("0.10"), decimal.Zero},
	{d(288000), d(388000), rate("0.25"), d(28800)},
	{d(388000), d(6000000), rate("0.30"), d(53800)},
	{d(6000000), d(9600000), rate("0.325"), d(1737400)},
	{d(9600000), decimal.Zero, rate("0.35"), d(2907400)},
}

var (
	personalReliefMonthly     = d(2400)
	disabilityExemptionAnnual = d(150000)

	insuranceReliefRate       = rate("0.15")
	insuranceReliefCapMonthly = d(5000)
)

// nssfTier holds the pensionable-earnings ceilings for the two NSSF tiers.
type nssfTier struct {
	Tier1Cap decimal.Decimal
	Tier2Cap decimal.Decimal
}

var (
	nssfRate = rate("0.06")

	// Caps stepped up in February 2025 under the NSSF Act 2013 phase-in.
	nssfCapsBefore2025 = nssfTier{Tier1Cap: d(7000), Tier2Cap: d(36000)}
	nssfCapsFrom2025   = nssfTier{Tier1Cap: d(8000), Tier2Cap: d(72000)}
	nssfCapsEffective  = mustMonth(2025, 2)

	// Secondary-employment contracts contribute against reduced ceilings.
	nssfSecondaryTier1Cap = d(4500)
	nssfSecondaryTier2Cap = d(45000)
)

var (
	shifRate      = rate("0.0275")
	shifEffective = mustMonth(2024, 10)

	housingLevyRate      = rate("0.015")
	housingLevyEffective = mustMonth(2023, 7)
)

var (
	vehicleBenefitMonthlyRate = rate("0.02")
	mealBenefitExemption      = d(5000)
	housingBenefitFloorRate   = rate("0.15")
	otherBenefitExemption     = d(3000)
)

// nssfCapsFor returns the tier ceilings in force for the period.
func nssfCapsFor(p period.Month) nssfTier {
	if p.Before(nssfCapsEffective) {
		return nssfCapsBefore2025
	}
	return nssfCapsFrom2025
}

func shifActive(p period.Month) bool {
	return !p.Before(shifEffective)
}

func housingLevyActive(p period.Month) bool {
	return !p.Before(housingLevyEffective)
}

func d(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustMonth(year, month int) period.Month {
	m, err := period.New(year, month)
	if err != nil {
		panic(err)
	}
	return m
}
