package review

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/wagestack/payroll-backend-go/internal/domain/payroll"
	"github.com/wagestack/payroll-backend-go/internal/domain/review"
	"github.com/wagestack/payroll-backend-go/internal/pkg/authz"
	"github.com/wagestack/payroll-backend-go/internal/pkg/database"
	"github.com/wagestack/payroll-backend-go/internal/repository/postgresql"
)

type ReviewServiceImpl struct {
	db           database.TxBeginner
	taskRepo     review.TaskRepository
	reviewerRepo review.ReviewerRepository
	runRepo      payroll.RunRepository
	authz        authz.Service
}

func NewReviewService(
	db database.TxBeginner,
	taskRepo review.TaskRepository,
	reviewerRepo review.ReviewerRepository,
	runRepo payroll.RunRepository,
	authzService authz.Service,
) review.ReviewService {
	return &ReviewServiceImpl{
		db:           db,
		taskRepo:     taskRepo,
		reviewerRepo: reviewerRepo,
		runRepo:      runRepo,
		authz:        authzService,
	}
}

func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func (s *ReviewServiceImpl) requireAllowed(ctx context.Context, userID, companyID, action string) error {
	allowed, err := s.authz.IsAllowed(ctx, userID, companyID, authz.ModulePayroll, action)
	if err != nil {
		return fmt.Errorf("authorization check failed: %w", err)
	}
	if !allowed {
		return authz.ErrForbidden
	}
	return nil
}

func (s *ReviewServiceImpl) GetRunReviewStatus(ctx context.Context, runID string) (*review.RunReviewStatusResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Confirms the run belongs to the caller before exposing task data.
	if _, err := s.runRepo.GetByID(ctx, runID, companyID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByRunID(ctx, runID, companyID)
	if err != nil {
		return nil, err
	}
	reviewers, err := s.reviewerRepo.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	progress := make([]review.ReviewerProgress, len(reviewers))
	byReviewer := make(map[string]*review.ReviewerProgress, len(reviewers))
	for i, rv := range reviewers {
		progress[i] = review.ReviewerProgress{
			ReviewerID: rv.ID,
			UserID:     rv.UserID,
			Level:      rv.Level,
		}
		byReviewer[rv.ID] = &progress[i]
	}
	for _, t := range tasks {
		p, ok := byReviewer[t.ReviewerID]
		if !ok {
			continue
		}
		p.Total++
		switch t.Status {
		case review.TaskApproved:
			p.Approved++
		case review.TaskRejected:
			p.Rejected++
		default:
			p.Pending++
		}
	}

	for i := range progress {
		if progress[i].Total > 0 {
			reviewed := progress[i].Approved + progress[i].Rejected
			progress[i].Percent = float64(reviewed) / float64(progress[i].Total) * 100
		}
	}

	return &review.RunReviewStatusResponse{
		RunID:     runID,
		Aggregate: string(aggregateByLineItem(tasks)),
		Reviewers: progress,
	}, nil
}

// aggregateByLineItem folds tasks per line item first, then combines the
// per-item results: any rejected item rejects the run, and the run is
// approved only when every item is approved.
func aggregateByLineItem(tasks []review.Task) review.TaskStatus {
	if len(tasks) == 0 {
		return review.TaskPending
	}
	byItem := make(map[string][]review.Task)
	for _, t := range tasks {
		byItem[t.LineItemID] = append(byItem[t.LineItemID], t)
	}
	allApproved := true
	for _, group := range byItem {
		switch review.Aggregate(group) {
		case review.TaskRejected:
			return review.TaskRejected
		case review.TaskApproved:
		default:
			allApproved = false
		}
	}
	if allApproved {
		return review.TaskApproved
	}
	return review.TaskPending
}

func (s *ReviewServiceImpl) GetRunTasks(ctx context.Context, runID string) ([]review.TaskResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByRunID(ctx, runID, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]review.TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toTaskResponse(t)
	}
	return resp, nil
}

func toTaskResponse(t review.Task) review.TaskResponse {
	resp := review.TaskResponse{
		ID:         t.ID,
		LineItemID: t.LineItemID,
		ReviewerID: t.ReviewerID,
		Status:     string(t.Status),
		ReviewedAt: t.ReviewedAt,
		Notes:      t.Notes,
	}
	if t.EmployeeName != nil {
		resp.EmployeeName = *t.EmployeeName
	}
	return resp
}

func (s *ReviewServiceImpl) UpdateTask(ctx context.Context, taskID string, req *review.UpdateTaskRequest) (*review.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireAllowed(ctx, userID, companyID, authz.ActionApprove); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CompanyID != companyID {
		return nil, review.ErrTaskNotOwned
	}

	task.Status = review.TaskStatus(req.Status)
	if task.Status == review.TaskPending {
		task.ReviewedAt = nil
	} else {
		now := time.Now()
		task.ReviewedAt = &now
	}
	task.Notes = req.Notes
	if err := s.taskRepo.UpdateStatus(ctx, &task); err != nil {
		return nil, err
	}

	resp := toTaskResponse(task)
	return &resp, nil
}

func (s *ReviewServiceImpl) BulkUpdateTasks(ctx context.Context, req *review.BulkUpdateRequest) ([]review.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireAllowed(ctx, userID, companyID, authz.ActionApprove); err != nil {
		return nil, err
	}

	var updated []review.Task
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		tasks, err := s.taskRepo.GetByIDs(txCtx, req.TaskIDs)
		if err != nil {
			return err
		}
		if len(tasks) != len(req.TaskIDs) {
			return review.ErrTaskNotFound
		}
		// Every task must belong to the caller before anything is written.
		for _, t := range tasks {
			if t.CompanyID != companyID {
				return review.ErrTaskNotOwned
			}
		}

		status := review.TaskStatus(req.Status)
		if err := s.taskRepo.UpdateStatusBatch(txCtx, req.TaskIDs, status, req.Notes); err != nil {
			return err
		}

		var reviewedAt *time.Time
		if status != review.TaskPending {
			now := time.Now()
			reviewedAt = &now
		}
		for i := range tasks {
			tasks[i].Status = status
			tasks[i].ReviewedAt = reviewedAt
			// Absent notes leave the stored ones untouched.
			if req.Notes != nil {
				tasks[i].Notes = req.Notes
			}
		}
		updated = tasks
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := make([]review.TaskResponse, len(updated))
	for i, t := range updated {
		resp[i] = toTaskResponse(t)
	}
	return resp, nil
}
