package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wagestack/payroll-backend-go/internal/domain/review"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
)

type reviewerRepository struct {
	db *database.DB
}

func NewReviewerRepository(db *database.DB) review.ReviewerRepository {
	return &reviewerRepository{db: db}
}

func (r *reviewerRepository) ListByCompanyID(ctx context.Context, companyID string) ([]review.Reviewer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, user_id, level, created_at
		FROM payroll_reviewers
		WHERE company_id = $1
		ORDER BY level
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewers: %w", err)
	}
	defer rows.Close()

	var reviewers []review.Reviewer
	for rows.Next() {
		var rv review.Reviewer
		if err := rows.Scan(&rv.ID, &rv.CompanyID, &rv.UserID, &rv.Level, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reviewer: %w", err)
		}
		reviewers = append(reviewers, rv)
	}
	return reviewers, rows.Err()
}

func (r *reviewerRepository) Create(ctx context.Context, rv *review.Reviewer) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_reviewers (id, company_id, user_id, level, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := q.Exec(ctx, query, rv.ID, rv.CompanyID, rv.UserID, rv.Level, rv.CreatedAt); err != nil {
		return fmt.Errorf("failed to create reviewer: %w", err)
	}
	return nil
}

func (r *reviewerRepository) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_reviewers WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete reviewer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return review.ErrReviewerNotFound
	}
	return nil
}

type reviewTaskRepository struct {
	db *database.DB
}

func NewReviewTaskRepository(db *database.DB) review.TaskRepository {
	return &reviewTaskRepository{db: db}
}

func (r *reviewTaskRepository) CreateBatch(ctx context.Context, tasks []review.Task) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_review_tasks (
			id, run_id, line_item_id, company_id, reviewer_id,
			status, reviewed_at, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for i := range tasks {
		t := &tasks[i]
		_, err := q.Exec(ctx, query,
			t.ID, t.RunID, t.LineItemID, t.CompanyID, t.ReviewerID,
			t.Status, t.ReviewedAt, t.Notes, t.CreatedAt, t.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create review task: %w", err)
		}
	}
	return nil
}

const taskColumns = `
	t.id, t.run_id, t.line_item_id, t.company_id, t.reviewer_id,
	t.status, t.reviewed_at, t.notes, t.created_at, t.updated_at
`

func scanTask(row pgx.Row) (review.Task, error) {
	var t review.Task
	err := row.Scan(
		&t.ID, &t.RunID, &t.LineItemID, &t.CompanyID, &t.ReviewerID,
		&t.Status, &t.ReviewedAt, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *reviewTaskRepository) GetByID(ctx context.Context, id string) (review.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM payroll_review_tasks t WHERE t.id = $1`
	t, err := scanTask(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return review.Task{}, review.ErrTaskNotFound
		}
		return review.Task{}, fmt.Errorf("failed to get review task: %w", err)
	}
	return t, nil
}

func (r *reviewTaskRepository) GetByIDs(ctx context.Context, ids []string) ([]review.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM payroll_review_tasks t WHERE t.id = ANY($1)`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get review tasks: %w", err)
	}
	defer rows.Close()

	var tasks []review.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *reviewTaskRepository) ListByRunID(ctx context.Context, runID, companyID string) ([]review.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + taskColumns + `,
			rv.user_id, rv.level, CONCAT(e.first_name, ' ', e.last_name)
		FROM payroll_review_tasks t
		JOIN payroll_reviewers rv ON rv.id = t.reviewer_id
		JOIN payroll_line_items li ON li.id = t.line_item_id
		JOIN employees e ON e.id = li.employee_id
		WHERE t.run_id = $1 AND t.company_id = $2
		ORDER BY e.employee_number, rv.level
	`
	rows, err := q.Query(ctx, query, runID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review tasks: %w", err)
	}
	defer rows.Close()

	var tasks []review.Task
	for rows.Next() {
		var t review.Task
		err := rows.Scan(
			&t.ID, &t.RunID, &t.LineItemID, &t.CompanyID, &t.ReviewerID,
			&t.Status, &t.ReviewedAt, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
			&t.ReviewerUserID, &t.ReviewerLevel, &t.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *reviewTaskRepository) ListByLineItemID(ctx context.Context, lineItemID string) ([]review.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM payroll_review_tasks t WHERE t.line_item_id = $1`
	rows, err := q.Query(ctx, query, lineItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review tasks for line item: %w", err)
	}
	defer rows.Close()

	var tasks []review.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *reviewTaskRepository) UpdateStatus(ctx context.Context, t *review.Task) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_review_tasks
		SET status = $1, reviewed_at = $2, notes = $3, updated_at = $4
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, t.Status, t.ReviewedAt, t.Notes, time.Now(), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update review task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return review.ErrTaskNotFound
	}
	return nil
}

func (r *reviewTaskRepository) UpdateStatusBatch(ctx context.Context, ids []string, status review.TaskStatus, notes *string) error {
	q := GetQuerier(ctx, r.db)

	// Reverting to PENDING clears the review timestamp.
	var reviewedAt *time.Time
	now := time.Now()
	if status != review.TaskPending {
		reviewedAt = &now
	}

	query := `
		UPDATE payroll_review_tasks
		SET status = $1, reviewed_at = $2, notes = COALESCE($3, notes), updated_at = $4
		WHERE id = ANY($5)
	`
	if _, err := q.Exec(ctx, query, status, reviewedAt, notes, now, ids); err != nil {
		return fmt.Errorf("failed to bulk update review tasks: %w", err)
	}
	return nil
}

func (r *reviewTaskRepository) DeleteByRunID(ctx context.Context, runID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_review_tasks WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to delete review tasks: %w", err)
	}
	return nil
}
