package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurse103/QLNS-B11-sub000/internal/model"
)

// StaffRepository is the staff-directory access interface. The directory is
// reference data owned elsewhere; this service only reads it.
type StaffRepository interface {
	ListActive(ctx context.Context) ([]model.StaffMember, error)
	GetByID(ctx context.Context, id string) (*model.StaffMember, error)
}

type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepo creates a StaffRepository instance.
func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

// ListActive returns active staff ordered by full name. This ordering is
// the directory's natural ordering; eligibility pools preserve it.
func (r *staffRepo) ListActive(ctx context.Context) ([]model.StaffMember, error) {
	var staff []model.StaffMember
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("full_name ASC").
		Find(&staff).Error
	return staff, err
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (*model.StaffMember, error) {
	var member model.StaffMember
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}
