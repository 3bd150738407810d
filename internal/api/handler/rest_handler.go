package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nurse103/QLNS-B11-sub000/internal/dto"
	"github.com/nurse103/QLNS-B11-sub000/internal/service"
	pkgerrors "github.com/nurse103/QLNS-B11-sub000/pkg/errors"
	"github.com/nurse103/QLNS-B11-sub000/pkg/response"
)

// RestHandler serves rest/absence records.
type RestHandler struct {
	restSvc service.RestService
}

// NewRestHandler creates a RestHandler.
func NewRestHandler(restSvc service.RestService) *RestHandler {
	return &RestHandler{restSvc: restSvc}
}

// AutoGenerate bulk-creates duty-rest records from the prior day's roster.
// POST /api/v1/rest-records/auto-generate
func (h *RestHandler) AutoGenerate(c *gin.Context) {
	var req dto.AutoGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.restSvc.AutoGenerate(c.Request.Context(), &req)
	if err != nil {
		h.handleRestError(c, err)
		return
	}

	response.OK(c, result)
}

// ListRecords returns the rest records of one date.
// GET /api/v1/rest-records?date=
func (h *RestHandler) ListRecords(c *gin.Context) {
	var req dto.RestRecordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "date must be YYYY-MM-DD")
		return
	}

	records, err := h.restSvc.ListByDate(c.Request.Context(), &req)
	if err != nil {
		h.handleRestError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// handleRestError maps rest business errors.
func (h *RestHandler) handleRestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 20001, "date must be a valid calendar date (YYYY-MM-DD)")
	case errors.Is(err, service.ErrGenerateInFlight):
		response.TooManyRequests(c, 22001, "rest-record generation is already in progress")
	case pkgerrors.IsUniqueViolation(err):
		response.Conflict(c, 22002, "a rest record for this staff and date already exists, batch rolled back")
	default:
		response.InternalError(c)
	}
}
