package adjustment

import (
	"context"
	"io"
)

type AdjustmentService interface {
	CreateType(ctx context.Context, kind Kind, req *CreateTypeRequest) (*TypeResponse, error)
	GetTypes(ctx context.Context, kind Kind) ([]TypeResponse, error)
	DeleteType(ctx context.Context, kind Kind, typeID string) error

	Assign(ctx context.Context, kind Kind, req *AssignRequest) (*AssignmentResponse, error)
	GetAssignments(ctx context.Context, kind Kind) ([]AssignmentResponse, error)
	UpdateAssignment(ctx context.Context, kind Kind, req *UpdateAssignmentRequest) (*AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, kind Kind, assignmentID string) error

	// ImportAssignments reads an xlsx workbook of deduction or allowance
	// assignments. All row errors are collected and reported together;
	// nothing is inserted unless every row is valid.
	ImportAssignments(ctx context.Context, kind Kind, file io.Reader) (*ImportResult, error)
}
