package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrRunNotFound         = errors.New("payroll run not found")
	ErrLineItemNotFound    = errors.New("payroll line item not found")
	ErrNoEligibleEmployees = errors.New("no eligible employees for period")
	ErrRunNotDeletable     = errors.New("payroll run can only be deleted while DRAFT or CANCELLED")
	ErrRunAlreadySyncing   = errors.New("a recompute for this run is already in progress")
)

// InvalidTransitionError names both the current and the requested state.
type InvalidTransitionError struct {
	From RunStatus
	To   RunStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid payroll status transition from %s to %s", e.From, e.To)
}
