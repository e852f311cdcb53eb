package review

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagestack/payroll-backend-go/internal/domain/review"
)

func authedContext(t *testing.T) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("company_id", "company-1"))
	require.NoError(t, tok.Set("user_id", "user-1"))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeDB struct{}

func (fakeDB) BeginTx(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

type fakeAuthz struct{ allowed bool }

func (f fakeAuthz) IsAllowed(ctx context.Context, userID, tenantID, module, action string) (bool, error) {
	return f.allowed, nil
}

// fakeTaskRepo mirrors the SQL semantics of the real repository, in
// particular that a batch update with absent notes keeps the stored ones.
type fakeTaskRepo struct {
	tasks map[string]review.Task
}

func (r *fakeTaskRepo) CreateBatch(ctx context.Context, tasks []review.Task) error {
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (review.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return review.Task{}, review.ErrTaskNotFound
	}
	return t, nil
}

func (r *fakeTaskRepo) GetByIDs(ctx context.Context, ids []string) ([]review.Task, error) {
	var out []review.Task
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListByRunID(ctx context.Context, runID, companyID string) ([]review.Task, error) {
	return nil, nil
}

func (r *fakeTaskRepo) ListByLineItemID(ctx context.Context, lineItemID string) ([]review.Task, error) {
	return nil, nil
}

func (r *fakeTaskRepo) UpdateStatus(ctx context.Context, t *review.Task) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return review.ErrTaskNotFound
	}
	r.tasks[t.ID] = *t
	return nil
}

func (r *fakeTaskRepo) UpdateStatusBatch(ctx context.Context, ids []string, status review.TaskStatus, notes *string) error {
	var reviewedAt *time.Time
	if status != review.TaskPending {
		now := time.Now()
		reviewedAt = &now
	}
	for _, id := range ids {
		t, ok := r.tasks[id]
		if !ok {
			return review.ErrTaskNotFound
		}
		t.Status = status
		t.ReviewedAt = reviewedAt
		if notes != nil {
			t.Notes = notes
		}
		r.tasks[id] = t
	}
	return nil
}

func (r *fakeTaskRepo) DeleteByRunID(ctx context.Context, runID string) error { return nil }

func seedTask(id string, status review.TaskStatus, notes *string) review.Task {
	reviewed := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	t := review.Task{
		ID:         id,
		RunID:      "run-1",
		LineItemID: "li-" + id,
		CompanyID:  "company-1",
		ReviewerID: "rev-1",
		Status:     status,
		Notes:      notes,
	}
	if status != review.TaskPending {
		t.ReviewedAt = &reviewed
	}
	return t
}

func bulkHarness(tasks ...review.Task) (*ReviewServiceImpl, *fakeTaskRepo) {
	repo := &fakeTaskRepo{tasks: map[string]review.Task{}}
	for _, t := range tasks {
		repo.tasks[t.ID] = t
	}
	svc := &ReviewServiceImpl{
		db:       fakeDB{},
		taskRepo: repo,
		authz:    fakeAuthz{allowed: true},
	}
	return svc, repo
}

func TestBulkUpdateTasks(t *testing.T) {
	t.Parallel()

	ctx := authedContext(t)
	notes := func(s string) *string { return &s }

	t.Run("absent notes keep the stored ones", func(t *testing.T) {
		svc, repo := bulkHarness(
			seedTask("task-1", review.TaskApproved, notes("first pass")),
			seedTask("task-2", review.TaskApproved, nil),
		)

		resp, err := svc.BulkUpdateTasks(ctx, &review.BulkUpdateRequest{
			TaskIDs: []string{"task-1", "task-2"},
			Status:  string(review.TaskRejected),
		})
		require.NoError(t, err)
		require.Len(t, resp, 2)

		byID := map[string]review.TaskResponse{}
		for _, r := range resp {
			byID[r.ID] = r
		}
		require.NotNil(t, byID["task-1"].Notes)
		assert.Equal(t, "first pass", *byID["task-1"].Notes)
		assert.Nil(t, byID["task-2"].Notes)

		stored, _ := repo.GetByID(ctx, "task-1")
		require.NotNil(t, stored.Notes)
		assert.Equal(t, "first pass", *stored.Notes)
	})

	t.Run("provided notes replace the stored ones", func(t *testing.T) {
		svc, repo := bulkHarness(seedTask("task-1", review.TaskApproved, notes("first pass")))

		resp, err := svc.BulkUpdateTasks(ctx, &review.BulkUpdateRequest{
			TaskIDs: []string{"task-1"},
			Status:  string(review.TaskRejected),
			Notes:   notes("needs rework"),
		})
		require.NoError(t, err)
		require.Len(t, resp, 1)
		require.NotNil(t, resp[0].Notes)
		assert.Equal(t, "needs rework", *resp[0].Notes)

		stored, _ := repo.GetByID(ctx, "task-1")
		require.NotNil(t, stored.Notes)
		assert.Equal(t, "needs rework", *stored.Notes)
	})

	t.Run("reverting to pending clears the review timestamp", func(t *testing.T) {
		svc, repo := bulkHarness(seedTask("task-1", review.TaskApproved, nil))

		resp, err := svc.BulkUpdateTasks(ctx, &review.BulkUpdateRequest{
			TaskIDs: []string{"task-1"},
			Status:  string(review.TaskPending),
		})
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Nil(t, resp[0].ReviewedAt)

		stored, _ := repo.GetByID(ctx, "task-1")
		assert.Nil(t, stored.ReviewedAt)
	})

	t.Run("unknown task aborts the batch", func(t *testing.T) {
		svc, _ := bulkHarness(seedTask("task-1", review.TaskApproved, nil))

		_, err := svc.BulkUpdateTasks(ctx, &review.BulkUpdateRequest{
			TaskIDs: []string{"task-1", "task-missing"},
			Status:  string(review.TaskApproved),
		})
		require.ErrorIs(t, err, review.ErrTaskNotFound)
	})
}
