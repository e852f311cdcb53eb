package adjustment

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/wagestack/payroll-backend-go/internal/domain/adjustment"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

// Expected workbook columns, first sheet, one header row:
// employee_number | type_code | value | calculation_type | start_month | start_year | months
const importColumns = 7

// ImportAssignments parses a workbook of individual assignments. Every row
// error is collected; rows are only inserted when the whole file is clean.
func (s *AdjustmentServiceImpl) ImportAssignments(ctx context.Context, kind adjustment.Kind, file io.Reader) (*adjustment.ImportResult, error) {
	companyID, err := s.requireWrite(ctx)
	if err != nil {
		return nil, err
	}

	wb, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return &adjustment.ImportResult{}, nil
	}

	types, err := s.typeRepo.ListByCompanyID(ctx, companyID, kind)
	if err != nil {
		return nil, err
	}
	typesByCode := make(map[string]adjustment.Type, len(types))
	for _, t := range types {
		typesByCode[strings.ToLower(t.Code)] = t
	}

	employees, err := s.employeeRepo.GetActiveContractedByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	employeeByNumber := make(map[string]string, len(employees))
	for _, e := range employees {
		employeeByNumber[strings.ToLower(e.EmployeeNumber)] = e.ID
	}

	result := &adjustment.ImportResult{}
	var assignments []adjustment.Assignment
	now := time.Now()

	for i, row := range rows[1:] {
		rowNum := i + 2
		a, rowErr := parseImportRow(row, kind, companyID, typesByCode, employeeByNumber, now)
		if rowErr != nil {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("row %d: %v", rowNum, rowErr))
			continue
		}
		assignments = append(assignments, a)
	}

	if len(result.RowErrors) > 0 {
		return result, nil
	}

	if err := s.assignmentRepo.CreateBatch(ctx, assignments); err != nil {
		return nil, err
	}
	result.Imported = len(assignments)
	return result, nil
}

func parseImportRow(
	row []string,
	kind adjustment.Kind,
	companyID string,
	typesByCode map[string]adjustment.Type,
	employeeByNumber map[string]string,
	now time.Time,
) (adjustment.Assignment, error) {
	if len(row) < importColumns-1 {
		return adjustment.Assignment{}, fmt.Errorf("expected at least %d columns, got %d", importColumns-1, len(row))
	}
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	employeeID, ok := employeeByNumber[strings.ToLower(cell(0))]
	if !ok {
		return adjustment.Assignment{}, fmt.Errorf("unknown employee number %q", cell(0))
	}

	t, ok := typesByCode[strings.ToLower(cell(1))]
	if !ok {
		return adjustment.Assignment{}, fmt.Errorf("unknown %s type code %q", kind, cell(1))
	}

	value, err := decimal.NewFromString(cell(2))
	if err != nil || value.IsNegative() {
		return adjustment.Assignment{}, fmt.Errorf("invalid value %q", cell(2))
	}

	calcType := adjustment.CalculationType(strings.ToUpper(cell(3)))
	if calcType != adjustment.CalculationFixed && calcType != adjustment.CalculationPercentage {
		return adjustment.Assignment{}, fmt.Errorf("invalid calculation type %q", cell(3))
	}

	month, err := period.ParseMonthName(cell(4))
	if err != nil {
		return adjustment.Assignment{}, fmt.Errorf("invalid start month %q", cell(4))
	}
	year, err := strconv.Atoi(cell(5))
	if err != nil {
		return adjustment.Assignment{}, fmt.Errorf("invalid start year %q", cell(5))
	}
	start, err := period.New(year, int(month))
	if err != nil {
		return adjustment.Assignment{}, err
	}

	recurring := true
	var end *period.Month
	var numberOfMonths *int
	if monthsCell := cell(6); monthsCell != "" {
		n, err := strconv.Atoi(monthsCell)
		if err != nil || n < 1 {
			return adjustment.Assignment{}, fmt.Errorf("invalid months %q", monthsCell)
		}
		recurring = false
		numberOfMonths = &n
		e := start.AddMonths(n - 1)
		end = &e
	}

	return adjustment.Assignment{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		TypeID:    t.ID,
		Kind:      kind,
		Target: adjustment.Target{
			Kind:  adjustment.TargetIndividual,
			RefID: employeeID,
		},
		Value:           value,
		CalculationType: calcType,
		IsRecurring:     recurring,
		Start:           start,
		End:             end,
		NumberOfMonths:  numberOfMonths,
		CreatedAt:       now,
		UpdatedAt:       now,
		Type:            &t,
	}, nil
}
