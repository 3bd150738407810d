package model

import "time"

// DutyRosterEntry maps to duty_rosters: one entry per calendar day.
// The five role fields hold zero or more staff names as raw
// comma/newline-delimited text, owned by duty scheduling elsewhere;
// this service only reads them.
type DutyRosterEntry struct {
	DutyRosterID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"duty_roster_id"`
	RosterDate     time.Time `gorm:"type:date;not null;uniqueIndex"                 json:"roster_date"`
	Doctor         string    `gorm:"type:text;not null;default:''"                  json:"doctor"`
	Resident       string    `gorm:"type:text;not null;default:''"                  json:"resident"`
	Postgraduate   string    `gorm:"type:text;not null;default:''"                  json:"postgraduate"`
	Nurse          string    `gorm:"type:text;not null;default:''"                  json:"nurse"`
	AssistantNurse string    `gorm:"type:text;not null;default:''"                  json:"assistant_nurse"`
	VersionedModel
}

// TableName sets the table name.
func (DutyRosterEntry) TableName() string { return "duty_rosters" }

// RoleFields returns the raw text of all five duty-role fields.
// Every name in any of them worked the on-call night and is excluded
// from every slot on the following day's assignment form.
func (e *DutyRosterEntry) RoleFields() []string {
	return []string{e.Doctor, e.Resident, e.Postgraduate, e.Nurse, e.AssistantNurse}
}
