package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []RunStatus{
		StatusDraft, StatusPrepared, StatusUnderReview, StatusApproved,
		StatusRejected, StatusLocked, StatusUnlocked, StatusPaid,
		StatusCompleted, StatusCancelled,
	} {
		assert.True(t, ValidStatus(s), string(s))
	}

	assert.False(t, ValidStatus("ARCHIVED"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("draft"))
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := map[RunStatus][]RunStatus{
		StatusDraft:       {StatusPrepared, StatusUnderReview, StatusCancelled},
		StatusPrepared:    {StatusUnderReview, StatusDraft, StatusCancelled},
		StatusUnderReview: {StatusApproved, StatusRejected, StatusDraft},
		StatusApproved:    {StatusLocked, StatusPaid, StatusDraft},
		StatusLocked:      {StatusPaid, StatusUnlocked},
		StatusUnlocked:    {StatusDraft, StatusLocked},
		StatusPaid:        {StatusCompleted},
		StatusCompleted:   {},
		StatusCancelled:   {StatusDraft},
		StatusRejected:    {StatusDraft},
	}

	all := []RunStatus{
		StatusDraft, StatusPrepared, StatusUnderReview, StatusApproved,
		StatusRejected, StatusLocked, StatusUnlocked, StatusPaid,
		StatusCompleted, StatusCancelled,
	}

	for from, tos := range allowed {
		permitted := make(map[RunStatus]bool, len(tos))
		for _, to := range tos {
			permitted[to] = true
		}
		for _, to := range all {
			assert.Equal(t, permitted[to], CanTransition(from, to),
				"%s -> %s", from, to)
		}
	}
}

func TestTransition(t *testing.T) {
	t.Parallel()

	t.Run("allowed move returns the new status", func(t *testing.T) {
		t.Parallel()

		got, err := Transition(StatusUnderReview, StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, got)
	})

	t.Run("locked run must be unlocked before editing", func(t *testing.T) {
		t.Parallel()

		got, err := Transition(StatusLocked, StatusDraft)
		assert.Equal(t, StatusLocked, got)

		var invalid *InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, StatusLocked, invalid.From)
		assert.Equal(t, StatusDraft, invalid.To)
	})

	t.Run("review cannot skip straight to locked", func(t *testing.T) {
		t.Parallel()

		_, err := Transition(StatusUnderReview, StatusLocked)
		require.Error(t, err)
		assert.Contains(t, err.Error(), string(StatusUnderReview))
		assert.Contains(t, err.Error(), string(StatusLocked))
	})

	t.Run("completed is terminal", func(t *testing.T) {
		t.Parallel()

		for _, to := range []RunStatus{
			StatusDraft, StatusPaid, StatusLocked, StatusCancelled,
		} {
			_, err := Transition(StatusCompleted, to)
			assert.Error(t, err, string(to))
		}
	})
}

func TestRunDeletable(t *testing.T) {
	t.Parallel()

	assert.True(t, Run{Status: StatusDraft}.Deletable())
	assert.True(t, Run{Status: StatusCancelled}.Deletable())

	for _, s := range []RunStatus{
		StatusPrepared, StatusUnderReview, StatusApproved, StatusRejected,
		StatusLocked, StatusUnlocked, StatusPaid, StatusCompleted,
	} {
		assert.False(t, Run{Status: s}.Deletable(), string(s))
	}
}
