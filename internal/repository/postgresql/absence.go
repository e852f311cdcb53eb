package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wagestack/payroll-backend-go/internal/domain/absence"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

type absenceRepository struct {
	db *database.DB
}

func NewAbsenceRepository(db *database.DB) absence.Repository {
	return &absenceRepository{db: db}
}

func (r *absenceRepository) Upsert(ctx context.Context, rec *absence.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_records (
			id, company_id, employee_id, year, month,
			days_absent, deduction_amount, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_id, employee_id, year, month) DO UPDATE SET
			days_absent = EXCLUDED.days_absent,
			deduction_amount = EXCLUDED.deduction_amount,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	err := q.QueryRow(ctx, query,
		rec.ID, rec.CompanyID, rec.EmployeeID, rec.Period.Year, int(rec.Period.Month),
		rec.DaysAbsent, rec.DeductionAmount, rec.Notes, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert absence record: %w", err)
	}
	return nil
}

func scanAbsence(row pgx.Row) (absence.Record, error) {
	var rec absence.Record
	var year, month int

	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &year, &month,
		&rec.DaysAbsent, &rec.DeductionAmount, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return absence.Record{}, err
	}

	p, err := period.New(year, month)
	if err != nil {
		return absence.Record{}, fmt.Errorf("invalid stored period: %w", err)
	}
	rec.Period = p
	return rec, nil
}

const absenceColumns = `
	id, company_id, employee_id, year, month,
	days_absent, deduction_amount, notes, created_at, updated_at
`

func (r *absenceRepository) GetByID(ctx context.Context, id, companyID string) (absence.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + absenceColumns + ` FROM absence_records WHERE id = $1 AND company_id = $2`
	rec, err := scanAbsence(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return absence.Record{}, absence.ErrRecordNotFound
		}
		return absence.Record{}, fmt.Errorf("failed to get absence record: %w", err)
	}
	return rec, nil
}

func (r *absenceRepository) ListByCompanyAndPeriod(ctx context.Context, companyID string, p period.Month) ([]absence.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + absenceColumns + `
		FROM absence_records
		WHERE company_id = $1 AND year = $2 AND month = $3
		ORDER BY created_at
	`
	rows, err := q.Query(ctx, query, companyID, p.Year, int(p.Month))
	if err != nil {
		return nil, fmt.Errorf("failed to list absence records: %w", err)
	}
	defer rows.Close()

	var records []absence.Record
	for rows.Next() {
		rec, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *absenceRepository) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM absence_records WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete absence record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return absence.ErrRecordNotFound
	}
	return nil
}
