package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nurse103/QLNS-B11-sub000/internal/service"
	"github.com/nurse103/QLNS-B11-sub000/pkg/response"
)

// StaffHandler serves the staff directory.
type StaffHandler struct {
	staffSvc service.StaffService
}

// NewStaffHandler creates a StaffHandler.
func NewStaffHandler(staffSvc service.StaffService) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc}
}

// ListStaff returns the active staff directory.
// GET /api/v1/staff
func (h *StaffHandler) ListStaff(c *gin.Context) {
	staff, err := h.staffSvc.ListActive(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": staff})
}
