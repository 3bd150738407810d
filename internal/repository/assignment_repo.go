package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nurse103/QLNS-B11-sub000/internal/model"
	pkgerrors "github.com/nurse103/QLNS-B11-sub000/pkg/errors"
)

// AssignmentRepository is the daily-assignment access interface.
// The unique index on assignment_date enforces one record per day; Create
// surfaces a violation unchanged so the service layer can classify it.
type AssignmentRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*model.AssignmentRecord, error)
	GetByID(ctx context.Context, id string) (*model.AssignmentRecord, error)
	Create(ctx context.Context, record *model.AssignmentRecord) error
	Update(ctx context.Context, record *model.AssignmentRecord) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates an AssignmentRepository instance.
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) GetByDate(ctx context.Context, date time.Time) (*model.AssignmentRecord, error) {
	var record model.AssignmentRecord
	err := r.db.WithContext(ctx).
		Where("assignment_date = ?", date.Format(model.DateOnly)).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.AssignmentRecord, error) {
	var record model.AssignmentRecord
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *assignmentRepo) Create(ctx context.Context, record *model.AssignmentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *assignmentRepo) Update(ctx context.Context, record *model.AssignmentRecord) error {
	oldVersion := record.Version
	result := r.db.WithContext(ctx).
		Model(record).
		Where("assignment_id = ? AND version = ?", record.AssignmentID, oldVersion).
		Updates(map[string]interface{}{
			"assignment_date": record.AssignmentDate,
			"room_1":          record.Room1,
			"room_2":          record.Room2,
			"room_3":          record.Room3,
			"room_4":          record.Room4,
			"outside_run":     record.OutsideRun,
			"imaging":         record.Imaging,
			"data_entry":      record.DataEntry,
			"updated_by":      record.UpdatedBy,
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	record.Version = oldVersion + 1
	return nil
}
