package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	e.id, e.company_id, e.employee_number, e.first_name, e.middle_name, e.last_name,
	e.email, e.department_id, e.sub_department_id, e.job_title_id, e.salary,
	e.has_disability, e.pays_paye, e.pays_nssf, e.pays_shif, e.pays_housing_levy, e.pays_helb,
	e.hire_date, e.status, e.status_effective_date, e.created_at, e.updated_at,
	c.id, c.contract_type, c.start_date, c.end_date, c.status,
	pd.payment_method, pd.bank_name, pd.bank_code, pd.branch_name, pd.branch_code,
	pd.account_name, pd.account_number, pd.mobile_type, pd.phone_number
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var contractID, contractType, contractStatus *string
	var contractStart, contractEnd *time.Time
	var pd employee.PaymentDetail
	var pdMethod *string

	err := row.Scan(
		&e.ID, &e.CompanyID, &e.EmployeeNumber, &e.FirstName, &e.MiddleName, &e.LastName,
		&e.Email, &e.DepartmentID, &e.SubDepartmentID, &e.JobTitleID, &e.Salary,
		&e.HasDisability, &e.PaysPAYE, &e.PaysNSSF, &e.PaysSHIF, &e.PaysHousingLevy, &e.PaysHELB,
		&e.HireDate, &e.Status, &e.StatusEffectiveDate, &e.CreatedAt, &e.UpdatedAt,
		&contractID, &contractType, &contractStart, &contractEnd, &contractStatus,
		&pdMethod, &pd.BankName, &pd.BankCode, &pd.BranchName, &pd.BranchCode,
		&pd.AccountName, &pd.AccountNumber, &pd.MobileType, &pd.PhoneNumber,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if contractID != nil {
		contract := employee.Contract{ID: *contractID, EndDate: contractEnd}
		if contractType != nil {
			contract.Type = employee.ContractType(*contractType)
		}
		if contractStart != nil {
			contract.StartDate = *contractStart
		}
		if contractStatus != nil {
			contract.Status = employee.ContractStatus(*contractStatus)
		}
		e.Contract = &contract
	}
	if pdMethod != nil {
		method := employee.PaymentMethod(*pdMethod)
		pd.Method = &method
		e.PaymentDetail = &pd
	}

	return e, nil
}

func (r *employeeRepository) GetActiveContractedByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN employment_contracts c
			ON c.employee_id = e.id AND c.status = 'ACTIVE'
		LEFT JOIN payment_details pd
			ON pd.employee_id = e.id
		WHERE e.company_id = $1 AND c.id IS NOT NULL
		ORDER BY e.employee_number
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN employment_contracts c
			ON c.employee_id = e.id AND c.status = 'ACTIVE'
		LEFT JOIN payment_details pd
			ON pd.employee_id = e.id
		WHERE e.id = $1 AND e.company_id = $2
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}
