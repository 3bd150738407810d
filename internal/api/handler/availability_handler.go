package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nurse103/QLNS-B11-sub000/internal/dto"
	"github.com/nurse103/QLNS-B11-sub000/internal/service"
	"github.com/nurse103/QLNS-B11-sub000/pkg/response"
)

// AvailabilityHandler serves duty rosters and slot eligibility pools.
type AvailabilityHandler struct {
	availSvc service.AvailabilityService
}

// NewAvailabilityHandler creates an AvailabilityHandler.
func NewAvailabilityHandler(availSvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availSvc: availSvc}
}

// ListRosters returns the duty roster entries of one month.
// GET /api/v1/duty-rosters?year=&month=
func (h *AvailabilityHandler) ListRosters(c *gin.Context) {
	var req dto.DutyRosterListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid year/month parameters")
		return
	}

	rosters, err := h.availSvc.ListRosterMonth(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rosters})
}

// PriorRoster returns the duty roster entry for the day before the given
// date. A missing entry responds 200 with found=false, not 404.
// GET /api/v1/duty-rosters/prior?date=
func (h *AvailabilityHandler) PriorRoster(c *gin.Context) {
	var req dto.PriorRosterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "date must be YYYY-MM-DD")
		return
	}

	prior, err := h.availSvc.PriorRoster(c.Request.Context(), &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, prior)
}

// SlotOptions computes the eligible pool for one slot of the assignment
// form, given the current draft state.
// POST /api/v1/assignments/slot-options
func (h *AvailabilityHandler) SlotOptions(c *gin.Context) {
	var req dto.SlotOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	options, err := h.availSvc.SlotOptions(c.Request.Context(), &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, options)
}

// FormOptions recomputes the eligible pools of all seven slots.
// POST /api/v1/assignments/options
func (h *AvailabilityHandler) FormOptions(c *gin.Context) {
	var req dto.FormOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	options, err := h.availSvc.FormOptions(c.Request.Context(), &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, options)
}

// handleAvailabilityError maps availability business errors.
func (h *AvailabilityHandler) handleAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 20001, "date must be a valid calendar date (YYYY-MM-DD)")
	case errors.Is(err, service.ErrUnknownSlot):
		response.BadRequest(c, 20002, "unknown assignment slot")
	default:
		response.InternalError(c)
	}
}
