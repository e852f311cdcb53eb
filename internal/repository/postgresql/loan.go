package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wagestack/payroll-backend-go/internal/domain/loan"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
)

type loanRepository struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) loan.Repository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Upsert(ctx context.Context, a *loan.Account) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO loan_accounts (
			id, company_id, employee_id, account_number,
			monthly_deduction, current_balance, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id, employee_id) DO UPDATE SET
			account_number = EXCLUDED.account_number,
			monthly_deduction = EXCLUDED.monthly_deduction,
			current_balance = EXCLUDED.current_balance,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	err := q.QueryRow(ctx, query,
		a.ID, a.CompanyID, a.EmployeeID, a.AccountNumber,
		a.MonthlyDeduction, a.CurrentBalance, a.Status, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert loan account: %w", err)
	}
	return nil
}

const loanColumns = `
	id, company_id, employee_id, account_number,
	monthly_deduction, current_balance, status, created_at, updated_at
`

func scanLoan(row pgx.Row) (loan.Account, error) {
	var a loan.Account
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.AccountNumber,
		&a.MonthlyDeduction, &a.CurrentBalance, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *loanRepository) GetByID(ctx context.Context, id, companyID string) (loan.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + loanColumns + ` FROM loan_accounts WHERE id = $1 AND company_id = $2`
	a, err := scanLoan(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.Account{}, loan.ErrAccountNotFound
		}
		return loan.Account{}, fmt.Errorf("failed to get loan account: %w", err)
	}
	return a, nil
}

func (r *loanRepository) GetByEmployeeID(ctx context.Context, employeeID, companyID string) (loan.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + loanColumns + ` FROM loan_accounts WHERE employee_id = $1 AND company_id = $2`
	a, err := scanLoan(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.Account{}, loan.ErrAccountNotFound
		}
		return loan.Account{}, fmt.Errorf("failed to get loan account by employee: %w", err)
	}
	return a, nil
}

func (r *loanRepository) ListActiveByCompanyID(ctx context.Context, companyID string) ([]loan.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + loanColumns + `
		FROM loan_accounts
		WHERE company_id = $1 AND status = 'ACTIVE'
		ORDER BY created_at
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan accounts: %w", err)
	}
	defer rows.Close()

	var accounts []loan.Account
	for rows.Next() {
		a, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *loanRepository) Update(ctx context.Context, a *loan.Account) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loan_accounts
		SET account_number = $1, monthly_deduction = $2, current_balance = $3,
			status = $4, updated_at = $5
		WHERE id = $6 AND company_id = $7
	`
	tag, err := q.Exec(ctx, query,
		a.AccountNumber, a.MonthlyDeduction, a.CurrentBalance,
		a.Status, a.UpdatedAt,
		a.ID, a.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return loan.ErrAccountNotFound
	}
	return nil
}

func (r *loanRepository) ApplyRunDeductions(ctx context.Context, runID, companyID string) error {
	q := GetQuerier(ctx, r.db)

	// The balance moves by what the run actually deducted, clamped so it
	// never goes negative.
	query := `
		UPDATE loan_accounts la
		SET current_balance = GREATEST(la.current_balance - li.loan_deduction, 0),
			updated_at = $1
		FROM payroll_line_items li
		WHERE li.run_id = $2
			AND li.company_id = $3
			AND li.employee_id = la.employee_id
			AND la.company_id = $3
			AND li.loan_deduction > 0
	`
	if _, err := q.Exec(ctx, query, time.Now(), runID, companyID); err != nil {
		return fmt.Errorf("failed to apply loan deductions: %w", err)
	}
	return nil
}
