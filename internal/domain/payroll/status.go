package payroll

// transitions is the exhaustive allow-list of status moves. Anything
// absent here is rejected with an InvalidTransitionError.
var transitions = map[RunStatus][]RunStatus{
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

// ValidStatus reports whether s names a known run status.
func ValidStatus(s RunStatus) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the move from one status to another is allowed.
func CanTransition(from, to RunStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition validates a status move and returns the new status, or an
// InvalidTransitionError naming both states.
func Transition(from, to RunStatus) (RunStatus, error) {
	if !CanTransition(from, to) {
		return from, &InvalidTransitionError{From: from, To: to}
	}
	return to, nil
}
