package model

// Employment categories. Only career-military and contract-labor staff
// take part in room and task assignment.
const (
	CategoryOfficer        = "officer"
	CategoryCareerMilitary = "career_military"
	CategoryContractLabor  = "contract_labor"
	CategoryOther          = "other"
)

// StaffMember maps to staff_members. The full name is the matching key the
// duty roster and assignment slots reference, as free text.
type StaffMember struct {
	StaffID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_id"`
	FullName string `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Category string `gorm:"type:varchar(20);not null;default:'other'"      json:"category"` // officer | career_military | contract_labor | other
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName sets the table name.
func (StaffMember) TableName() string { return "staff_members" }

// Assignable reports whether the member's category participates in
// room/task assignment at all, independent of exclusion rules.
func (s *StaffMember) Assignable() bool {
	return s.Category == CategoryCareerMilitary || s.Category == CategoryContractLabor
}
