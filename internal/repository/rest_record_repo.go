package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nurse103/QLNS-B11-sub000/internal/model"
)

// RestRecordRepository is the rest/absence record access interface.
type RestRecordRepository interface {
	Exists(ctx context.Context, staffID string, date time.Time) (bool, error)
	Create(ctx context.Context, record *model.RestRecord) error
	// CreateBatch inserts all records in one transaction: a failure on any
	// record rolls back the whole batch.
	CreateBatch(ctx context.Context, records []model.RestRecord) error
	ListByDate(ctx context.Context, date time.Time) ([]model.RestRecord, error)
	Delete(ctx context.Context, id string) error
}

type restRecordRepo struct {
	db *gorm.DB
}

// NewRestRecordRepo creates a RestRecordRepository instance.
func NewRestRecordRepo(db *gorm.DB) RestRecordRepository {
	return &restRecordRepo{db: db}
}

func (r *restRecordRepo) Exists(ctx context.Context, staffID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RestRecord{}).
		Where("staff_id = ? AND rest_date = ?", staffID, date.Format(model.DateOnly)).
		Count(&count).Error
	return count > 0, err
}

func (r *restRecordRepo) Create(ctx context.Context, record *model.RestRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *restRecordRepo) CreateBatch(ctx context.Context, records []model.RestRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *restRecordRepo) ListByDate(ctx context.Context, date time.Time) ([]model.RestRecord, error) {
	var records []model.RestRecord
	err := r.db.WithContext(ctx).
		Preload("Staff").
		Where("rest_date = ?", date.Format(model.DateOnly)).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *restRecordRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("rest_record_id = ?", id).
		Delete(&model.RestRecord{}).Error
}
