package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/nurse103/QLNS-B11-sub000/internal/model"
	pkgerrors "github.com/nurse103/QLNS-B11-sub000/pkg/errors"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateOnly, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// ── Mock StaffRepository ──

// mockStaffRepo keeps members in a slice so directory order is preserved.
type mockStaffRepo struct {
	staff []model.StaffMember
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{}
}

func (m *mockStaffRepo) add(name, category string, active bool) {
	m.staff = append(m.staff, model.StaffMember{
		StaffID:  fmt.Sprintf("staff-%03d", len(m.staff)+1),
		FullName: name,
		Category: category,
		IsActive: active,
	})
}

func (m *mockStaffRepo) ListActive(_ context.Context) ([]model.StaffMember, error) {
	var result []model.StaffMember
	for _, s := range m.staff {
		if s.IsActive {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id string) (*model.StaffMember, error) {
	for i := range m.staff {
		if m.staff[i].StaffID == id {
			return &m.staff[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock DutyRosterRepository ──

type mockDutyRosterRepo struct {
	entries map[string]*model.DutyRosterEntry // key: YYYY-MM-DD
}

func newMockDutyRosterRepo() *mockDutyRosterRepo {
	return &mockDutyRosterRepo{entries: make(map[string]*model.DutyRosterEntry)}
}

func (m *mockDutyRosterRepo) ListByMonth(_ context.Context, year int, month time.Month) ([]model.DutyRosterEntry, error) {
	var result []model.DutyRosterEntry
	for _, e := range m.entries {
		if e.RosterDate.Year() == year && e.RosterDate.Month() == month {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockDutyRosterRepo) GetByDate(_ context.Context, date time.Time) (*model.DutyRosterEntry, error) {
	if e, ok := m.entries[date.Format(model.DateOnly)]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDutyRosterRepo) Create(_ context.Context, entry *model.DutyRosterEntry) error {
	if entry.DutyRosterID == "" {
		entry.DutyRosterID = "roster-" + entry.RosterDate.Format(model.DateOnly)
	}
	m.entries[entry.RosterDate.Format(model.DateOnly)] = entry
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	records map[string]*model.AssignmentRecord // key: assignment_id
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{records: make(map[string]*model.AssignmentRecord)}
}

// uniqueViolation mimics the driver error Postgres raises on the
// assignment_date unique index.
func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "assignment_records_assignment_date_key"}
}

func (m *mockAssignmentRepo) GetByDate(_ context.Context, date time.Time) (*model.AssignmentRecord, error) {
	for _, r := range m.records {
		if r.AssignmentDate.Format(model.DateOnly) == date.Format(model.DateOnly) {
			found := *r
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.AssignmentRecord, error) {
	if r, ok := m.records[id]; ok {
		found := *r
		return &found, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Create(_ context.Context, record *model.AssignmentRecord) error {
	for _, r := range m.records {
		if r.AssignmentDate.Format(model.DateOnly) == record.AssignmentDate.Format(model.DateOnly) {
			return uniqueViolation()
		}
	}
	if record.AssignmentID == "" {
		record.AssignmentID = fmt.Sprintf("assign-%03d", len(m.records)+1)
	}
	if record.Version == 0 {
		record.Version = 1
	}
	stored := *record
	m.records[record.AssignmentID] = &stored
	return nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, record *model.AssignmentRecord) error {
	stored, ok := m.records[record.AssignmentID]
	if !ok || stored.Version != record.Version {
		return pkgerrors.ErrOptimisticLock
	}
	updated := *record
	updated.Version = record.Version + 1
	m.records[record.AssignmentID] = &updated
	record.Version = updated.Version
	return nil
}

// ── Mock RestRecordRepository ──

type mockRestRecordRepo struct {
	records []model.RestRecord
	// failOnName makes CreateBatch fail when it reaches this staff name,
	// storing nothing (the transaction rolls back).
	failOnName string
}

func newMockRestRecordRepo() *mockRestRecordRepo {
	return &mockRestRecordRepo{}
}

func (m *mockRestRecordRepo) Exists(_ context.Context, staffID string, date time.Time) (bool, error) {
	for _, r := range m.records {
		if r.StaffID != nil && *r.StaffID == staffID &&
			r.RestDate.Format(model.DateOnly) == date.Format(model.DateOnly) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRestRecordRepo) Create(_ context.Context, record *model.RestRecord) error {
	if record.RestRecordID == "" {
		record.RestRecordID = fmt.Sprintf("rest-%03d", len(m.records)+1)
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockRestRecordRepo) CreateBatch(_ context.Context, records []model.RestRecord) error {
	if m.failOnName != "" {
		for _, r := range records {
			if r.StaffName == m.failOnName {
				return errors.New("storage failure, batch rolled back")
			}
		}
	}
	for i := range records {
		if records[i].RestRecordID == "" {
			records[i].RestRecordID = fmt.Sprintf("rest-%03d", len(m.records)+i+1)
		}
		m.records = append(m.records, records[i])
	}
	return nil
}

func (m *mockRestRecordRepo) ListByDate(_ context.Context, date time.Time) ([]model.RestRecord, error) {
	var result []model.RestRecord
	for _, r := range m.records {
		if r.RestDate.Format(model.DateOnly) == date.Format(model.DateOnly) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockRestRecordRepo) Delete(_ context.Context, id string) error {
	for i, r := range m.records {
		if r.RestRecordID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return nil
}
