package response

import (
	"errors"
	"net/http"

	"github.com/wagestack/payroll-backend-go/internal/domain/absence"
	"github.com/wagestack/payroll-backend-go/internal/domain/adjustment"
	"github.com/wagestack/payroll-backend-go/internal/domain/employee"
	"github.com/wagestack/payroll-backend-go/internal/domain/loan"
	"github.com/wagestack/payroll-backend-go/internal/domain/payroll"
	"github.com/wagestack/payroll-backend-go/internal/domain/review"
	"github.com/wagestack/payroll-backend-go/internal/pkg/authz"
	"github.com/wagestack/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Invalid status moves name both states in the message.
	var transitionErr *payroll.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		BadRequest(w, transitionErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, authz.ErrForbidden):
		Forbidden(w, "You do not have permission to perform this action")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrLineItemNotFound):
		NotFound(w, "Payroll line item not found")
	case errors.Is(err, payroll.ErrNoEligibleEmployees):
		NotFound(w, "No eligible employees for this period")
	case errors.Is(err, payroll.ErrRunNotDeletable):
		Conflict(w, "Payroll run can only be deleted while DRAFT or CANCELLED")
	case errors.Is(err, payroll.ErrRunAlreadySyncing):
		Conflict(w, "A recompute for this run is already in progress")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Adjustment domain errors
	case errors.Is(err, adjustment.ErrTypeNotFound):
		NotFound(w, "Adjustment type not found")
	case errors.Is(err, adjustment.ErrTypeCodeExists):
		Conflict(w, "Adjustment type code already exists")
	case errors.Is(err, adjustment.ErrAssignmentNotFound):
		NotFound(w, "Adjustment assignment not found")
	case errors.Is(err, adjustment.ErrTargetNotFound):
		NotFound(w, "Adjustment target not found")
	case errors.Is(err, adjustment.ErrInvalidTargetKind):
		BadRequest(w, "Unrecognized adjustment target scope", nil)
	case errors.Is(err, adjustment.ErrInvalidWindow):
		BadRequest(w, "Assignment end window precedes its start", nil)

	// Absence and loan domain errors
	case errors.Is(err, absence.ErrRecordNotFound):
		NotFound(w, "Absence record not found")
	case errors.Is(err, loan.ErrAccountNotFound):
		NotFound(w, "Loan account not found")
	case errors.Is(err, loan.ErrAccountExists):
		Conflict(w, "Employee already has a loan account")

	// Review domain errors
	case errors.Is(err, review.ErrTaskNotFound):
		NotFound(w, "Review task not found")
	case errors.Is(err, review.ErrTaskNotOwned):
		Forbidden(w, "Review task does not belong to your company")
	case errors.Is(err, review.ErrNoReviewers):
		BadRequest(w, "No reviewers configured for this company", nil)
	case errors.Is(err, review.ErrReviewerNotFound):
		NotFound(w, "Reviewer not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
