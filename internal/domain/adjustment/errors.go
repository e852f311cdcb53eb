package adjustment

import "errors"

var (
	ErrTypeNotFound       = errors.New("adjustment type not found")
	ErrTypeCodeExists     = errors.New("adjustment type code already exists")
	ErrAssignmentNotFound = errors.New("adjustment assignment not found")
	ErrTargetNotFound     = errors.New("assignment target not found")
	ErrInvalidTargetKind  = errors.New("invalid assignment target kind")
	ErrInvalidWindow      = errors.New("assignment end month precedes start month")
)
