package adjustment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

func ptr[T any](v T) *T { return &v }

func mustMonth(t *testing.T, year, m int) period.Month {
	t.Helper()
	p, err := period.New(year, m)
	require.NoError(t, err)
	return p
}

func TestTargetAppliesTo(t *testing.T) {
	t.Parallel()

	emp := employee.Employee{
		ID:              "emp-1",
		DepartmentID:    ptr("dept-1"),
		SubDepartmentID: ptr("sub-1"),
		JobTitleID:      ptr("title-1"),
	}
	bare := employee.Employee{ID: "emp-2"}

	tests := []struct {
		name     string
		target   Target
		emp      employee.Employee
		expected bool
	}{
		{"individual match", Target{Kind: TargetIndividual, RefID: "emp-1"}, emp, true},
		{"individual mismatch", Target{Kind: TargetIndividual, RefID: "emp-9"}, emp, false},
		{"department match", Target{Kind: TargetDepartment, RefID: "dept-1"}, emp, true},
		{"department mismatch", Target{Kind: TargetDepartment, RefID: "dept-9"}, emp, false},
		{"department with no assignment", Target{Kind: TargetDepartment, RefID: "dept-1"}, bare, false},
		{"sub department match", Target{Kind: TargetSubDepartment, RefID: "sub-1"}, emp, true},
		{"sub department with no assignment", Target{Kind: TargetSubDepartment, RefID: "sub-1"}, bare, false},
		{"job title match", Target{Kind: TargetJobTitle, RefID: "title-1"}, emp, true},
		{"job title with no assignment", Target{Kind: TargetJobTitle, RefID: "title-1"}, bare, false},
		{"company matches everyone", Target{Kind: TargetCompany}, bare, true},
		{"unknown kind matches nobody", Target{Kind: "REGION", RefID: "r-1"}, emp, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.target.AppliesTo(tt.emp))
		})
	}
}

func TestAssignmentInPeriod(t *testing.T) {
	t.Parallel()

	t.Run("open ended from start month", func(t *testing.T) {
		t.Parallel()

		a := Assignment{Start: mustMonth(t, 2024, 6)}

		assert.False(t, a.InPeriod(mustMonth(t, 2024, 5)))
		assert.True(t, a.InPeriod(mustMonth(t, 2024, 6)))
		assert.True(t, a.InPeriod(mustMonth(t, 2024, 12)))
		assert.True(t, a.InPeriod(mustMonth(t, 2027, 1)))
	})

	t.Run("bounded window is inclusive on both ends", func(t *testing.T) {
		t.Parallel()

		a := Assignment{
			Start: mustMonth(t, 2024, 11),
			End:   ptr(mustMonth(t, 2025, 2)),
		}

		assert.False(t, a.InPeriod(mustMonth(t, 2024, 10)))
		assert.True(t, a.InPeriod(mustMonth(t, 2024, 11)))
		assert.True(t, a.InPeriod(mustMonth(t, 2025, 1)))
		assert.True(t, a.InPeriod(mustMonth(t, 2025, 2)))
		assert.False(t, a.InPeriod(mustMonth(t, 2025, 3)))
	})

	t.Run("single month window", func(t *testing.T) {
		t.Parallel()

		a := Assignment{
			Start: mustMonth(t, 2025, 4),
			End:   ptr(mustMonth(t, 2025, 4)),
		}

		assert.False(t, a.InPeriod(mustMonth(t, 2025, 3)))
		assert.True(t, a.InPeriod(mustMonth(t, 2025, 4)))
		assert.False(t, a.InPeriod(mustMonth(t, 2025, 5)))
	})
}

func TestAssignmentAmount(t *testing.T) {
	t.Parallel()

	basePay := decimal.NewFromInt(50000)

	t.Run("fixed ignores base pay", func(t *testing.T) {
		t.Parallel()

		a := Assignment{Value: decimal.NewFromInt(3000), CalculationType: CalculationFixed}
		assert.True(t, a.Amount(basePay).Equal(decimal.NewFromInt(3000)))
	})

	t.Run("percentage of base pay", func(t *testing.T) {
		t.Parallel()

		a := Assignment{Value: decimal.NewFromInt(15), CalculationType: CalculationPercentage}
		assert.True(t, a.Amount(basePay).Equal(decimal.NewFromInt(7500)))
	})

	t.Run("type cap clamps both modes", func(t *testing.T) {
		t.Parallel()

		capped := &Type{MaxValue: ptr(decimal.NewFromInt(5000))}

		fixed := Assignment{Value: decimal.NewFromInt(8000), CalculationType: CalculationFixed, Type: capped}
		assert.True(t, fixed.Amount(basePay).Equal(decimal.NewFromInt(5000)))

		pct := Assignment{Value: decimal.NewFromInt(20), CalculationType: CalculationPercentage, Type: capped}
		assert.True(t, pct.Amount(basePay).Equal(decimal.NewFromInt(5000)))
	})

	t.Run("value under the cap passes through", func(t *testing.T) {
		t.Parallel()

		capped := &Type{MaxValue: ptr(decimal.NewFromInt(5000))}
		a := Assignment{Value: decimal.NewFromInt(4000), CalculationType: CalculationFixed, Type: capped}
		assert.True(t, a.Amount(basePay).Equal(decimal.NewFromInt(4000)))
	})
}
