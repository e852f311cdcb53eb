package review

import "errors"

var (
	ErrTaskNotFound     = errors.New("review task not found")
	ErrTaskNotOwned     = errors.New("review task does not belong to this company")
	ErrNoReviewers      = errors.New("company has no configured reviewers")
	ErrReviewerNotFound = errors.New("reviewer not found")
)
