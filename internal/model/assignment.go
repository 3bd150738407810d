package model

import "time"

// AssignmentRecord maps to assignment_records: one record per day, seven
// ordered slot fields holding raw delimited staff names. The storage layer
// enforces at most one record per date.
type AssignmentRecord struct {
	AssignmentID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	AssignmentDate time.Time `gorm:"type:date;not null;uniqueIndex"                 json:"assignment_date"`
	Room1          string    `gorm:"column:room_1;type:text;not null;default:''"    json:"room_1"`
	Room2          string    `gorm:"column:room_2;type:text;not null;default:''"    json:"room_2"`
	Room3          string    `gorm:"column:room_3;type:text;not null;default:''"    json:"room_3"`
	Room4          string    `gorm:"column:room_4;type:text;not null;default:''"    json:"room_4"`
	OutsideRun     string    `gorm:"type:text;not null;default:''"                  json:"outside_run"`
	Imaging        string    `gorm:"type:text;not null;default:''"                  json:"imaging"`
	DataEntry      string    `gorm:"type:text;not null;default:''"                  json:"data_entry"`
	VersionedModel
}

// TableName sets the table name.
func (AssignmentRecord) TableName() string { return "assignment_records" }
