package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wagestack/payroll-backend-go/internal/domain/payroll"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

type payrollRunRepository struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.RunRepository {
	return &payrollRunRepository{db: db}
}

func (r *payrollRunRepository) Create(ctx context.Context, run *payroll.Run) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (
			id, company_id, payroll_number, year, month, status,
			total_gross, total_deductions, total_net, employee_count,
			notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := q.Exec(ctx, query,
		run.ID, run.CompanyID, run.PayrollNumber, run.Period.Year, int(run.Period.Month), run.Status,
		run.TotalGross, run.TotalDeductions, run.TotalNet, run.EmployeeCount,
		run.Notes, run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		// A period-unique clash means another sync created the run between
		// our lock lookup and this insert; the caller retries.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.ErrRunAlreadySyncing
		}
		return fmt.Errorf("failed to create payroll run: %w", err)
	}
	return nil
}

const runColumns = `
	id, company_id, payroll_number, year, month, status,
	total_gross, total_deductions, total_net, employee_count,
	locked_by, locked_at, paid_by, paid_at, notes, created_at, updated_at
`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	var year, month int

	err := row.Scan(
		&run.ID, &run.CompanyID, &run.PayrollNumber, &year, &month, &run.Status,
		&run.TotalGross, &run.TotalDeductions, &run.TotalNet, &run.EmployeeCount,
		&run.LockedBy, &run.LockedAt, &run.PaidBy, &run.PaidAt, &run.Notes, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return payroll.Run{}, err
	}

	p, err := period.New(year, month)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("invalid stored period: %w", err)
	}
	run.Period = p
	return run, nil
}

func (r *payrollRunRepository) GetByID(ctx context.Context, id, companyID string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1 AND company_id = $2`
	run, err := scanRun(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return run, nil
}

func (r *payrollRunRepository) GetByPeriodForUpdate(ctx context.Context, companyID string, p period.Month) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE company_id = $1 AND year = $2 AND month = $3
		FOR UPDATE
	`
	run, err := scanRun(q.QueryRow(ctx, query, companyID, p.Year, int(p.Month)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to lock payroll run: %w", err)
	}
	return run, nil
}

func (r *payrollRunRepository) ListByCompanyID(ctx context.Context, companyID string, year *int) ([]payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE company_id = $1 AND ($2::int IS NULL OR year = $2)
		ORDER BY year DESC, month DESC
	`
	rows, err := q.Query(ctx, query, companyID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *payrollRunRepository) ListYears(ctx context.Context, companyID string) ([]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT year
		FROM payroll_runs
		WHERE company_id = $1
		ORDER BY year DESC
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan payroll year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (r *payrollRunRepository) UpdateTotals(ctx context.Context, run *payroll.Run) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET total_gross = $1, total_deductions = $2, total_net = $3,
			employee_count = $4, updated_at = $5
		WHERE id = $6 AND company_id = $7
	`
	tag, err := q.Exec(ctx, query,
		run.TotalGross, run.TotalDeductions, run.TotalNet,
		run.EmployeeCount, time.Now(),
		run.ID, run.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll run totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

func (r *payrollRunRepository) UpdateStatus(ctx context.Context, run *payroll.Run) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $1, locked_by = $2, locked_at = $3,
			paid_by = $4, paid_at = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND company_id = $9
	`
	tag, err := q.Exec(ctx, query,
		run.Status, run.LockedBy, run.LockedAt,
		run.PaidBy, run.PaidAt, run.Notes, time.Now(),
		run.ID, run.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll run status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

func (r *payrollRunRepository) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_runs WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}
	return nil
}

func (r *payrollRunRepository) NextSequence(ctx context.Context, companyID string, p period.Month) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_run_sequences (company_id, year, month, seq)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, year, month) DO UPDATE SET seq = payroll_run_sequences.seq + 1
		RETURNING seq
	`
	var seq int
	if err := q.QueryRow(ctx, query, companyID, p.Year, int(p.Month)).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to advance payroll sequence: %w", err)
	}
	return seq, nil
}

type payrollLineItemRepository struct {
	db *database.DB
}

func NewPayrollLineItemRepository(db *database.DB) payroll.LineItemRepository {
	return &payrollLineItemRepository{db: db}
}

func (r *payrollLineItemRepository) CreateBatch(ctx context.Context, items []payroll.LineItem) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_line_items (
			id, run_id, company_id, employee_id,
			base_pay, absence_deduction, cash_allowances, non_cash_taxable,
			statutory_gross, gross_pay, taxable_pay,
			paye, nssf_tier1, nssf_tier2, shif, housing_levy,
			insurance_relief, loan_deduction, other_deductions,
			total_deductions, net_pay,
			allowances, deductions,
			payment_method, bank_name, branch_name, account_number, phone_number,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24,
			$25, $26, $27, $28, $29)
	`
	for i := range items {
		it := &items[i]
		allowances, err := json.Marshal(it.Allowances)
		if err != nil {
			return fmt.Errorf("failed to encode allowance breakdown: %w", err)
		}
		deductions, err := json.Marshal(it.Deductions)
		if err != nil {
			return fmt.Errorf("failed to encode deduction breakdown: %w", err)
		}

		_, err = q.Exec(ctx, query,
			it.ID, it.RunID, it.CompanyID, it.EmployeeID,
			it.BasePay, it.AbsenceDeduction, it.CashAllowances, it.NonCashTaxable,
			it.StatutoryGross, it.GrossPay, it.TaxablePay,
			it.PAYE, it.NSSFTier1, it.NSSFTier2, it.SHIF, it.HousingLevy,
			it.InsuranceRelief, it.LoanDeduction, it.OtherDeductions,
			it.TotalDeductions, it.NetPay,
			allowances, deductions,
			it.PaymentMethod, it.BankName, it.BranchName, it.AccountNumber, it.PhoneNumber,
			it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create line item: %w", err)
		}
	}
	return nil
}

func (r *payrollLineItemRepository) ListByRunID(ctx context.Context, runID, companyID string) ([]payroll.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT li.id, li.run_id, li.company_id, li.employee_id,
			li.base_pay, li.absence_deduction, li.cash_allowances, li.non_cash_taxable,
			li.statutory_gross, li.gross_pay, li.taxable_pay,
			li.paye, li.nssf_tier1, li.nssf_tier2, li.shif, li.housing_levy,
			li.insurance_relief, li.loan_deduction, li.other_deductions,
			li.total_deductions, li.net_pay,
			li.allowances, li.deductions,
			li.payment_method, li.bank_name, li.branch_name, li.account_number, li.phone_number,
			li.created_at,
			CONCAT(e.first_name, ' ', e.last_name), e.employee_number
		FROM payroll_line_items li
		JOIN employees e ON e.id = li.employee_id
		WHERE li.run_id = $1 AND li.company_id = $2
		ORDER BY e.employee_number
	`
	rows, err := q.Query(ctx, query, runID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var items []payroll.LineItem
	for rows.Next() {
		var it payroll.LineItem
		var allowances, deductions []byte

		err := rows.Scan(
			&it.ID, &it.RunID, &it.CompanyID, &it.EmployeeID,
			&it.BasePay, &it.AbsenceDeduction, &it.CashAllowances, &it.NonCashTaxable,
			&it.StatutoryGross, &it.GrossPay, &it.TaxablePay,
			&it.PAYE, &it.NSSFTier1, &it.NSSFTier2, &it.SHIF, &it.HousingLevy,
			&it.InsuranceRelief, &it.LoanDeduction, &it.OtherDeductions,
			&it.TotalDeductions, &it.NetPay,
			&allowances, &deductions,
			&it.PaymentMethod, &it.BankName, &it.BranchName, &it.AccountNumber, &it.PhoneNumber,
			&it.CreatedAt,
			&it.EmployeeName, &it.EmployeeNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}

		if len(allowances) > 0 {
			if err := json.Unmarshal(allowances, &it.Allowances); err != nil {
				return nil, fmt.Errorf("failed to decode allowance breakdown: %w", err)
			}
		}
		if len(deductions) > 0 {
			if err := json.Unmarshal(deductions, &it.Deductions); err != nil {
				return nil, fmt.Errorf("failed to decode deduction breakdown: %w", err)
			}
		}

		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *payrollLineItemRepository) DeleteByRunID(ctx context.Context, runID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_line_items WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to delete line items: %w", err)
	}
	return nil
}

func (r *payrollLineItemRepository) CountByRunID(ctx context.Context, runID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_line_items WHERE run_id = $1`, runID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count line items: %w", err)
	}
	return count, nil
}
