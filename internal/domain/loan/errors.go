package loan

import "errors"

var (
	ErrAccountNotFound = errors.New("loan account not found")
	ErrAccountExists   = errors.New("employee already has a loan account")
)
