package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestVehicleBenefit(t *testing.T) {
	t.Parallel()

	assertDecimalEqual(t, "10000", VehicleBenefit(decimal.NewFromInt(500000)))
	assertDecimalEqual(t, "0", VehicleBenefit(decimal.Zero))
}

func TestMealBenefit(t *testing.T) {
	t.Parallel()

	assertDecimalEqual(t, "0", MealBenefit(decimal.NewFromInt(4000)))
	assertDecimalEqual(t, "0", MealBenefit(decimal.NewFromInt(5000)))
	assertDecimalEqual(t, "3000", MealBenefit(decimal.NewFromInt(8000)))
}

func TestHousingBenefit(t *testing.T) {
	t.Parallel()

	// 15% of 80,000 gross beats the 10,000 raw value.
	assertDecimalEqual(t, "12000", HousingBenefit(decimal.NewFromInt(10000), decimal.NewFromInt(80000)))

	// Raw value wins when it exceeds the floor.
	assertDecimalEqual(t, "20000", HousingBenefit(decimal.NewFromInt(20000), decimal.NewFromInt(80000)))
}

func TestOtherNonCashBenefit(t *testing.T) {
	t.Parallel()

	assertDecimalEqual(t, "0", OtherNonCashBenefit(decimal.NewFromInt(3000)))
	assertDecimalEqual(t, "3500", OtherNonCashBenefit(decimal.NewFromInt(3500)))
}

func TestNonCashTaxableValueDispatch(t *testing.T) {
	t.Parallel()

	assertDecimalEqual(t, "2000", NonCashTaxableValue(BenefitCodeVehicle, decimal.NewFromInt(100000)))
	assertDecimalEqual(t, "1000", NonCashTaxableValue(BenefitCodeMeal, decimal.NewFromInt(6000)))
	assertDecimalEqual(t, "7500", NonCashTaxableValue("gym", decimal.NewFromInt(7500)))
}
