package repository

import "gorm.io/gorm"

// Repository aggregates all repositories.
type Repository struct {
	Staff      StaffRepository
	DutyRoster DutyRosterRepository
	Assignment AssignmentRepository
	RestRecord RestRecordRepository
}

// NewRepository builds the Repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Staff:      NewStaffRepo(db),
		DutyRoster: NewDutyRosterRepo(db),
		Assignment: NewAssignmentRepo(db),
		RestRecord: NewRestRecordRepo(db),
	}
}
