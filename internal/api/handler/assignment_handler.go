package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nurse103/QLNS-B11-sub000/internal/dto"
	"github.com/nurse103/QLNS-B11-sub000/internal/service"
	pkgerrors "github.com/nurse103/QLNS-B11-sub000/pkg/errors"
	"github.com/nurse103/QLNS-B11-sub000/pkg/response"
)

// AssignmentHandler serves the daily assignment form.
type AssignmentHandler struct {
	assignSvc service.AssignmentService
	availSvc  service.AvailabilityService
}

// NewAssignmentHandler creates an AssignmentHandler.
func NewAssignmentHandler(assignSvc service.AssignmentService, availSvc service.AvailabilityService) *AssignmentHandler {
	return &AssignmentHandler{assignSvc: assignSvc, availSvc: availSvc}
}

// GetDraft loads the editing starting point for a date.
// GET /api/v1/assignments?date=
func (h *AssignmentHandler) GetDraft(c *gin.Context) {
	var req dto.GetAssignmentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "date must be YYYY-MM-DD")
		return
	}

	draft, err := h.assignSvc.LoadDraft(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, draft)
}

// Submit persists the draft assignment record.
// POST /api/v1/assignments
func (h *AssignmentHandler) Submit(c *gin.Context) {
	var req dto.SubmitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	record, err := h.assignSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	if req.AssignmentID == "" {
		response.Created(c, record)
		return
	}
	response.OK(c, record)
}

// handleAssignmentError maps assignment business errors. The duplicate-date
// conflict gets its own actionable message, distinct from generic failures.
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 20001, "date must be a valid calendar date (YYYY-MM-DD)")
	case errors.Is(err, service.ErrDraftNotSubmittable):
		response.BadRequest(c, 21001, "assignment draft needs a date before submit")
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 21002, "assignment record not found")
	case errors.Is(err, service.ErrAssignmentDateTaken):
		response.Conflict(c, 21003, "an assignment record already exists for this date, edit the existing record instead")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 21004, "record was modified by another operation, refresh and retry")
	case errors.Is(err, service.ErrSubmitInFlight):
		response.TooManyRequests(c, 21005, "a submit is already in progress")
	default:
		response.InternalError(c)
	}
}
