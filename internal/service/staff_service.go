package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/nurse103/QLNS-B11-sub000/internal/dto"
	"github.com/nurse103/QLNS-B11-sub000/internal/model"
	"github.com/nurse103/QLNS-B11-sub000/internal/repository"
	"github.com/nurse103/QLNS-B11-sub000/pkg/redis"
)

const staffCacheTTL = 5 * time.Minute

// StaffService serves the active-staff directory.
type StaffService interface {
	ListActive(ctx context.Context) ([]dto.StaffResponse, error)
}

type staffService struct {
	repo   *repository.Repository
	cache  *redis.Client // nil when redis is unavailable
	logger *zap.Logger
}

// NewStaffService creates a StaffService instance. cache may be nil; the
// service then always reads the database.
func NewStaffService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) StaffService {
	return &staffService{repo: repo, cache: cache, logger: logger}
}

func (s *staffService) ListActive(ctx context.Context) ([]dto.StaffResponse, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	staff, err := s.repo.Staff.ListActive(ctx)
	if err != nil {
		s.logger.Error("list active staff failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StaffResponse, 0, len(staff))
	for i := range staff {
		result = append(result, toStaffResponse(&staff[i]))
	}

	s.toCache(ctx, result)
	return result, nil
}

// ── cache, best effort: failures are logged and ignored ──

func (s *staffService) fromCache(ctx context.Context) []dto.StaffResponse {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.GetActiveStaff(ctx)
	if err != nil {
		s.logger.Warn("staff cache read failed", zap.Error(err))
		return nil
	}
	if payload == nil {
		return nil
	}
	var result []dto.StaffResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		s.logger.Warn("staff cache payload invalid", zap.Error(err))
		return nil
	}
	return result
}

func (s *staffService) toCache(ctx context.Context, result []dto.StaffResponse) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.SetActiveStaff(ctx, payload, staffCacheTTL); err != nil {
		s.logger.Warn("staff cache write failed", zap.Error(err))
	}
}

func toStaffResponse(m *model.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{
		ID:        m.StaffID,
		FullName:  m.FullName,
		Category:  m.Category,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
