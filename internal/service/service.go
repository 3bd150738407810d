package service

import (
	"go.uber.org/zap"

	"github.com/nurse103/QLNS-B11-sub000/internal/repository"
	"github.com/nurse103/QLNS-B11-sub000/pkg/redis"
)

// Service aggregates all services.
type Service struct {
	Staff        StaffService
	Availability AvailabilityService
	Assignment   AssignmentService
	Rest         RestService
}

// NewService builds the Service aggregate. cache may be nil.
func NewService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Staff:        NewStaffService(repo, cache, logger),
		Availability: NewAvailabilityService(repo, logger),
		Assignment:   NewAssignmentService(repo, logger),
		Rest:         NewRestService(repo, logger),
	}
}
