package payroll

import (
	"github.com/shopspring/decimal"
)

// Semantic codes an adjustment type may carry to select a specialized
// non-cash valuation rule. Anything else falls through to the generic
// small-exemption rule.
const (
	BenefitCodeVehicle = "vehicle"
	BenefitCodeMeal    = "meal"
	BenefitCodeHousing = "housing"
)

// VehicleBenefit values a company car at the fixed monthly rate of the
// vehicle's raw value.
func VehicleBenefit(rawValue decimal.Decimal) decimal.Decimal {
	if !rawValue.IsPositive() {
		return decimal.Zero
	}
	return rawValue.Mul(vehicleBenefitMonthlyRate)
}

// MealBenefit taxes only the portion above the monthly exemption.
func MealBenefit(rawValue decimal.Decimal) decimal.Decimal {
	taxable := rawValue.Sub(mealBenefitExemption)
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}

// HousingBenefit is the higher of the raw housing value and 15% of the
// employee's statutory-base gross. Needs statutory gross, so housing
// assignments are valued in a second pass after cash adjustments.
func HousingBenefit(rawValue, statutoryGross decimal.Decimal) decimal.Decimal {
	floor := statutoryGross.Mul(housingBenefitFloorRate)
	return decimal.Max(floor, rawValue)
}

// OtherNonCashBenefit taxes unrecognized non-cash codes in full once
// they exceed the small flat exemption.
func OtherNonCashBenefit(rawValue decimal.Decimal) decimal.Decimal {
	if rawValue.GreaterThan(otherBenefitExemption) {
		return rawValue
	}
	return decimal.Zero
}

// NonCashTaxableValue dispatches a non-cash adjustment to its valuation
// rule by semantic code. Housing is excluded here; it is deferred to the
// second pass where statutory gross is known.
func NonCashTaxableValue(code string, rawValue decimal.Decimal) decimal.Decimal {
	switch code {
	case BenefitCodeVehicle:
		return VehicleBenefit(rawValue)
	case BenefitCodeMeal:
		return MealBenefit(rawValue)
	default:
		return OtherNonCashBenefit(rawValue)
	}
}
