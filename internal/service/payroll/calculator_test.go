package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

func month(t *testing.T, year, m int) period.Month {
	t.Helper()
	p, err := period.New(year, m)
	require.NoError(t, err)
	return p
}

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	assert.True(t, want.Equal(actual), "expected %s, got %s", want, actual)
}

func TestCalculatePAYE(t *testing.T) {
	t.Parallel()

	t.Run("zero for non-positive taxable income", func(t *testing.T) {
		assertDecimalEqual(t, "0", CalculatePAYE(decimal.Zero, false, decimal.Zero))
		assertDecimalEqual(t, "0", CalculatePAYE(decimal.NewFromInt(-5000), false, decimal.Zero))
	})

	t.Run("personal relief floors low incomes at zero", func(t *testing.T) {
		// 20,000/month annualizes to 240,000: 10% band gives 2,000/month,
		// fully absorbed by the 2,400 relief.
		assertDecimalEqual(t, "0", CalculatePAYE(decimal.NewFromInt(20000), false, decimal.Zero))
	})

	t.Run("mid band with rounding up", func(t *testing.T) {
		// 47,000/month -> 564,000/year -> 53,800 + 30% of 176,000 = 106,600
		// -> 8,883.33/month - 2,400 relief = 6,483.33 -> 6,484
		assertDecimalEqual(t, "6484", CalculatePAYE(decimal.NewFromInt(47000), false, decimal.Zero))
	})

	t.Run("disability exemption reduces tax", func(t *testing.T) {
		taxable := decimal.NewFromInt(50000)
		regular := CalculatePAYE(taxable, false, decimal.Zero)
		exempt := CalculatePAYE(taxable, true, decimal.Zero)

		assertDecimalEqual(t, "7384", regular)
		assertDecimalEqual(t, "3634", exempt)
		assert.True(t, exempt.LessThanOrEqual(regular))
	})

	t.Run("insurance relief subtracts from tax and floors at zero", func(t *testing.T) {
		taxable := decimal.NewFromInt(47000)
		withRelief := CalculatePAYE(taxable, false, decimal.NewFromInt(3000))
		assertDecimalEqual(t, "3484", withRelief)

		huge := CalculatePAYE(decimal.NewFromInt(21000), false, decimal.NewFromInt(5000))
		assertDecimalEqual(t, "0", huge)
	})

	t.Run("non-decreasing in taxable income", func(t *testing.T) {
		prev := decimal.Zero
		for _, income := range []int64{0, 10000, 24000, 32333, 50000, 100000, 500000, 800000, 2000000} {
			tax := CalculatePAYE(decimal.NewFromInt(income), false, decimal.Zero)
			assert.True(t, tax.GreaterThanOrEqual(prev), "tax decreased at income %d", income)
			prev = tax
		}
	})
}

func TestInsuranceRelief(t *testing.T) {
	t.Parallel()

	assertDecimalEqual(t, "0", InsuranceRelief(decimal.Zero))
	assertDecimalEqual(t, "300", InsuranceRelief(decimal.NewFromInt(2000)))
	assertDecimalEqual(t, "5000", InsuranceRelief(decimal.NewFromInt(40000)))
}

func TestCalculateNSSF(t *testing.T) {
	t.Parallel()

	t.Run("tiers sum to total", func(t *testing.T) {
		res := CalculateNSSF(decimal.NewFromInt(50000), employee.ContractTypePrimary, month(t, 2025, 3))
		assertDecimalEqual(t, "480", res.Tier1)
		assertDecimalEqual(t, "2520", res.Tier2)
		assertDecimalEqual(t, "3000", res.Total())
	})

	t.Run("caps before the 2025 step-up", func(t *testing.T) {
		res := CalculateNSSF(decimal.NewFromInt(50000), employee.ContractTypePrimary, month(t, 2024, 12))
		assertDecimalEqual(t, "420", res.Tier1)
		assertDecimalEqual(t, "1740", res.Tier2)
	})

	t.Run("flattens above the tier-2 cap", func(t *testing.T) {
		p := month(t, 2025, 6)
		at := CalculateNSSF(decimal.NewFromInt(80000), employee.ContractTypePrimary, p)
		above := CalculateNSSF(decimal.NewFromInt(200000), employee.ContractTypePrimary, p)
		assert.True(t, at.Total().Equal(above.Total()))
	})

	t.Run("non-decreasing in base pay", func(t *testing.T) {
		p := month(t, 2025, 6)
		prev := decimal.Zero
		for _, base := range []int64{0, 3000, 8000, 20000, 50000, 72000, 100000} {
			total := CalculateNSSF(decimal.NewFromInt(base), employee.ContractTypePrimary, p).Total()
			assert.True(t, total.GreaterThanOrEqual(prev), "contribution decreased at base %d", base)
			prev = total
		}
	})

	t.Run("secondary contracts use reduced ceilings", func(t *testing.T) {
		p := month(t, 2025, 6)
		res := CalculateNSSF(decimal.NewFromInt(50000), employee.ContractTypeSecondary, p)
		// 4,500 tier-1 ceiling and 45,000 tier-2 ceiling.
		assertDecimalEqual(t, "270", res.Tier1)
		assertDecimalEqual(t, "2430", res.Tier2)
	})

	t.Run("consultants are exempt", func(t *testing.T) {
		res := CalculateNSSF(decimal.NewFromInt(100000), employee.ContractTypeConsultant, month(t, 2025, 6))
		assertDecimalEqual(t, "0", res.Total())
	})
}

func TestLevyGating(t *testing.T) {
	t.Parallel()

	gross := decimal.NewFromInt(50000)

	t.Run("health levy zero before October 2024", func(t *testing.T) {
		assertDecimalEqual(t, "0", CalculateSHIF(gross, month(t, 2024, 9)))
		assertDecimalEqual(t, "1375", CalculateSHIF(gross, month(t, 2024, 10)))
	})

	t.Run("housing levy zero before July 2023", func(t *testing.T) {
		assertDecimalEqual(t, "0", CalculateHousingLevy(gross, month(t, 2023, 6)))
		assertDecimalEqual(t, "750", CalculateHousingLevy(gross, month(t, 2023, 7)))
	})

	t.Run("rounds to whole shillings", func(t *testing.T) {
		// 49,000 x 2.75% = 1,347.5, rounded half away from zero.
		assertDecimalEqual(t, "1348", CalculateSHIF(decimal.NewFromInt(49000), month(t, 2025, 1)))
		assertDecimalEqual(t, "735", CalculateHousingLevy(decimal.NewFromInt(49000), month(t, 2025, 1)))
	})
}

// Worked example: base 50,000, no adjustments, all statutory flags on,
// primary contract, 2025 caps, non-disabled.
func TestStatutoryWorkedExample(t *testing.T) {
	t.Parallel()

	p := month(t, 2025, 3)
	gross := decimal.NewFromInt(50000)

	nssf := CalculateNSSF(gross, employee.ContractTypePrimary, p)
	assertDecimalEqual(t, "3000", nssf.Total())

	shif := CalculateSHIF(gross, p)
	assertDecimalEqual(t, "1375", shif)

	levy := CalculateHousingLevy(gross, p)
	assertDecimalEqual(t, "750", levy)

	// NSSF, SHIF and the housing levy all reduce the taxable base.
	taxable := gross.Sub(nssf.Total()).Sub(shif).Sub(levy)
	assertDecimalEqual(t, "44875", taxable)
	paye := CalculatePAYE(taxable, false, decimal.Zero)
	assertDecimalEqual(t, "5846", paye)

	total := paye.Add(nssf.Total()).Add(shif).Add(levy)
	assertDecimalEqual(t, "10971", total)
	assertDecimalEqual(t, "39029", gross.Sub(total))
}
