package handler

import "github.com/nurse103/QLNS-B11-sub000/internal/service"

// Handler aggregates all handlers.
type Handler struct {
	Staff        *StaffHandler
	Availability *AvailabilityHandler
	Assignment   *AssignmentHandler
	Rest         *RestHandler
}

// NewHandler builds the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Staff:        NewStaffHandler(svc.Staff),
		Availability: NewAvailabilityHandler(svc.Availability),
		Assignment:   NewAssignmentHandler(svc.Assignment, svc.Availability),
		Rest:         NewRestHandler(svc.Rest),
	}
}
