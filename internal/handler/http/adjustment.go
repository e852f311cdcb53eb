package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wagestack/payroll-backend-go/internal/domain/adjustment"
	"github.com/wagestack/payroll-backend-go/internal/handler/http/response"
)

// maxImportSize caps uploaded workbooks at 8 MiB.
const maxImportSize = 8 << 20

type AdjustmentHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	Assign(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	UpdateAssignment(w http.ResponseWriter, r *http.Request)
	DeleteAssignment(w http.ResponseWriter, r *http.Request)
	ImportAssignments(w http.ResponseWriter, r *http.Request)
}

type adjustmentHandlerImpl struct {
	adjustmentService adjustment.AdjustmentService
	kind              adjustment.Kind
}

// NewAdjustmentHandler serves one adjustment family; the router mounts one
// instance for allowances and one for deductions.
func NewAdjustmentHandler(adjustmentService adjustment.AdjustmentService, kind adjustment.Kind) AdjustmentHandler {
	return &adjustmentHandlerImpl{adjustmentService: adjustmentService, kind: kind}
}

func (h *adjustmentHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req adjustment.CreateTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.adjustmentService.CreateType(r.Context(), h.kind, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment type created", result)
}

func (h *adjustmentHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	result, err := h.adjustmentService.GetTypes(r.Context(), h.kind)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *adjustmentHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Type ID is required", nil)
		return
	}

	if err := h.adjustmentService.DeleteType(r.Context(), h.kind, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment type deleted", nil)
}

func (h *adjustmentHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req adjustment.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.adjustmentService.Assign(r.Context(), h.kind, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Assignment created", result)
}

func (h *adjustmentHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	result, err := h.adjustmentService.GetAssignments(r.Context(), h.kind)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *adjustmentHandlerImpl) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	var req adjustment.UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.adjustmentService.UpdateAssignment(r.Context(), h.kind, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment updated", result)
}

func (h *adjustmentHandlerImpl) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	if err := h.adjustmentService.DeleteAssignment(r.Context(), h.kind, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment deleted", nil)
}

func (h *adjustmentHandlerImpl) ImportAssignments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "A workbook file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.adjustmentService.ImportAssignments(r.Context(), h.kind, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if len(result.RowErrors) > 0 {
		response.BadRequest(w, "Import rejected, fix the reported rows", rowErrorDetails(result.RowErrors))
		return
	}
	response.SuccessWithMessage(w, "Assignments imported", result)
}

func rowErrorDetails(rowErrors []string) map[string]string {
	details := make(map[string]string, len(rowErrors))
	for i, msg := range rowErrors {
		details[fmt.Sprintf("error_%d", i+1)] = msg
	}
	return details
}
