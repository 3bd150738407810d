package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nurse103/QLNS-B11-sub000/internal/model"
)

// DutyRosterRepository is the duty-roster access interface. Entries are
// created by duty scheduling outside this service; reads only here, except
// Create which exists for seeding and integration tests.
type DutyRosterRepository interface {
	ListByMonth(ctx context.Context, year int, month time.Month) ([]model.DutyRosterEntry, error)
	GetByDate(ctx context.Context, date time.Time) (*model.DutyRosterEntry, error)
	Create(ctx context.Context, entry *model.DutyRosterEntry) error
}

type dutyRosterRepo struct {
	db *gorm.DB
}

// NewDutyRosterRepo creates a DutyRosterRepository instance.
func NewDutyRosterRepo(db *gorm.DB) DutyRosterRepository {
	return &dutyRosterRepo{db: db}
}

func (r *dutyRosterRepo) ListByMonth(ctx context.Context, year int, month time.Month) ([]model.DutyRosterEntry, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var entries []model.DutyRosterEntry
	err := r.db.WithContext(ctx).
		Where("roster_date >= ? AND roster_date < ?", start, end).
		Order("roster_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *dutyRosterRepo) GetByDate(ctx context.Context, date time.Time) (*model.DutyRosterEntry, error) {
	var entry model.DutyRosterEntry
	err := r.db.WithContext(ctx).
		Where("roster_date = ?", date.Format(model.DateOnly)).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *dutyRosterRepo) Create(ctx context.Context, entry *model.DutyRosterEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
