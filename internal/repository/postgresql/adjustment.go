package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wagestack/payroll-backend-go/internal/domain/adjustment"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
	"github.com/wagestack/payroll-backend-go/internal/pkg/period"
)

type adjustmentTypeRepository struct {
	db *database.DB
}

func NewAdjustmentTypeRepository(db *database.DB) adjustment.TypeRepository {
	return &adjustmentTypeRepository{db: db}
}

func (r *adjustmentTypeRepository) Create(ctx context.Context, t *adjustment.Type) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO adjustment_types (
			id, company_id, kind, code, name, is_cash, is_taxable, is_pre_tax,
			max_value, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := q.Exec(ctx, query,
		t.ID, t.CompanyID, t.Kind, t.Code, t.Name, t.IsCash, t.IsTaxable, t.IsPreTax,
		t.MaxValue, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create adjustment type: %w", err)
	}
	return nil
}

const adjustmentTypeColumns = `
	id, company_id, kind, code, name, is_cash, is_taxable, is_pre_tax,
	max_value, created_at, updated_at
`

func scanAdjustmentType(row pgx.Row) (adjustment.Type, error) {
	var t adjustment.Type
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Kind, &t.Code, &t.Name, &t.IsCash, &t.IsTaxable, &t.IsPreTax,
		&t.MaxValue, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *adjustmentTypeRepository) GetByID(ctx context.Context, id, companyID string) (adjustment.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + adjustmentTypeColumns + ` FROM adjustment_types WHERE id = $1 AND company_id = $2`
	t, err := scanAdjustmentType(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return adjustment.Type{}, adjustment.ErrTypeNotFound
		}
		return adjustment.Type{}, fmt.Errorf("failed to get adjustment type: %w", err)
	}
	return t, nil
}

func (r *adjustmentTypeRepository) GetByCode(ctx context.Context, companyID string, kind adjustment.Kind, code string) (adjustment.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + adjustmentTypeColumns + ` FROM adjustment_types WHERE company_id = $1 AND kind = $2 AND code = $3`
	t, err := scanAdjustmentType(q.QueryRow(ctx, query, companyID, kind, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return adjustment.Type{}, adjustment.ErrTypeNotFound
		}
		return adjustment.Type{}, fmt.Errorf("failed to get adjustment type by code: %w", err)
	}
	return t, nil
}

func (r *adjustmentTypeRepository) ListByCompanyID(ctx context.Context, companyID string, kind adjustment.Kind) ([]adjustment.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + adjustmentTypeColumns + `
		FROM adjustment_types
		WHERE company_id = $1 AND kind = $2
		ORDER BY code
	`
	rows, err := q.Query(ctx, query, companyID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustment types: %w", err)
	}
	defer rows.Close()

	var types []adjustment.Type
	for rows.Next() {
		t, err := scanAdjustmentType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *adjustmentTypeRepository) Update(ctx context.Context, t *adjustment.Type) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE adjustment_types
		SET name = $1, is_cash = $2, is_taxable = $3, is_pre_tax = $4, max_value = $5, updated_at = $6
		WHERE id = $7 AND company_id = $8
	`
	tag, err := q.Exec(ctx, query,
		t.Name, t.IsCash, t.IsTaxable, t.IsPreTax, t.MaxValue, time.Now(),
		t.ID, t.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update adjustment type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return adjustment.ErrTypeNotFound
	}
	return nil
}

func (r *adjustmentTypeRepository) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM adjustment_types WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return adjustment.ErrTypeNotFound
	}
	return nil
}

type adjustmentAssignmentRepository struct {
	db *database.DB
}

func NewAdjustmentAssignmentRepository(db *database.DB) adjustment.AssignmentRepository {
	return &adjustmentAssignmentRepository{db: db}
}

const assignmentInsert = `
	INSERT INTO adjustment_assignments (
		id, company_id, type_id, kind, target_kind, target_ref_id,
		value, calculation_type, is_recurring,
		start_year, start_month, end_year, end_month, number_of_months,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

func assignmentArgs(a *adjustment.Assignment) []interface{} {
	var endYear, endMonth *int
	if a.End != nil {
		y, m := a.End.Year, int(a.End.Month)
		endYear, endMonth = &y, &m
	}
	return []interface{}{
		a.ID, a.CompanyID, a.TypeID, a.Kind, a.Target.Kind, nullableString(a.Target.RefID),
		a.Value, a.CalculationType, a.IsRecurring,
		a.Start.Year, int(a.Start.Month), endYear, endMonth, a.NumberOfMonths,
		a.CreatedAt, a.UpdatedAt,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *adjustmentAssignmentRepository) Create(ctx context.Context, a *adjustment.Assignment) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, assignmentInsert, assignmentArgs(a)...); err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (r *adjustmentAssignmentRepository) CreateBatch(ctx context.Context, as []adjustment.Assignment) error {
	q := GetQuerier(ctx, r.db)

	for i := range as {
		if _, err := q.Exec(ctx, assignmentInsert, assignmentArgs(&as[i])...); err != nil {
			return fmt.Errorf("failed to create assignment batch: %w", err)
		}
	}
	return nil
}

const assignmentColumns = `
	a.id, a.company_id, a.type_id, a.kind, a.target_kind, a.target_ref_id,
	a.value, a.calculation_type, a.is_recurring,
	a.start_year, a.start_month, a.end_year, a.end_month, a.number_of_months,
	a.created_at, a.updated_at,
	t.id, t.company_id, t.kind, t.code, t.name, t.is_cash, t.is_taxable, t.is_pre_tax,
	t.max_value, t.created_at, t.updated_at
`

func scanAssignment(row pgx.Row) (adjustment.Assignment, error) {
	var a adjustment.Assignment
	var t adjustment.Type
	var targetRef *string
	var startYear, startMonth int
	var endYear, endMonth *int

	err := row.Scan(
		&a.ID, &a.CompanyID, &a.TypeID, &a.Kind, &a.Target.Kind, &targetRef,
		&a.Value, &a.CalculationType, &a.IsRecurring,
		&startYear, &startMonth, &endYear, &endMonth, &a.NumberOfMonths,
		&a.CreatedAt, &a.UpdatedAt,
		&t.ID, &t.CompanyID, &t.Kind, &t.Code, &t.Name, &t.IsCash, &t.IsTaxable, &t.IsPreTax,
		&t.MaxValue, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return adjustment.Assignment{}, err
	}

	if targetRef != nil {
		a.Target.RefID = *targetRef
	}
	start, err := period.New(startYear, startMonth)
	if err != nil {
		return adjustment.Assignment{}, fmt.Errorf("invalid stored start window: %w", err)
	}
	a.Start = start
	if endYear != nil && endMonth != nil {
		end, err := period.New(*endYear, *endMonth)
		if err != nil {
			return adjustment.Assignment{}, fmt.Errorf("invalid stored end window: %w", err)
		}
		a.End = &end
	}
	a.Type = &t

	return a, nil
}

func (r *adjustmentAssignmentRepository) GetByID(ctx context.Context, id, companyID string) (adjustment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM adjustment_assignments a
		JOIN adjustment_types t ON t.id = a.type_id
		WHERE a.id = $1 AND a.company_id = $2
	`
	a, err := scanAssignment(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return adjustment.Assignment{}, adjustment.ErrAssignmentNotFound
		}
		return adjustment.Assignment{}, fmt.Errorf("failed to get assignment: %w", err)
	}
	return a, nil
}

func (r *adjustmentAssignmentRepository) ListByCompanyID(ctx context.Context, companyID string, kind adjustment.Kind) ([]adjustment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM adjustment_assignments a
		JOIN adjustment_types t ON t.id = a.type_id
		WHERE a.company_id = $1 AND a.kind = $2
		ORDER BY a.created_at
	`
	rows, err := q.Query(ctx, query, companyID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []adjustment.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *adjustmentAssignmentRepository) Update(ctx context.Context, a *adjustment.Assignment) error {
	q := GetQuerier(ctx, r.db)

	var endYear, endMonth *int
	if a.End != nil {
		y, m := a.End.Year, int(a.End.Month)
		endYear, endMonth = &y, &m
	}

	query := `
		UPDATE adjustment_assignments
		SET value = $1, is_recurring = $2, end_year = $3, end_month = $4,
			number_of_months = $5, updated_at = $6
		WHERE id = $7 AND company_id = $8
	`
	tag, err := q.Exec(ctx, query,
		a.Value, a.IsRecurring, endYear, endMonth,
		a.NumberOfMonths, a.UpdatedAt,
		a.ID, a.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return adjustment.ErrAssignmentNotFound
	}
	return nil
}

func (r *adjustmentAssignmentRepository) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM adjustment_assignments WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return adjustment.ErrAssignmentNotFound
	}
	return nil
}
