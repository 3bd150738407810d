package model

import "time"

// Rest-record categories.
const (
	RestCategoryDutyRest     = "duty_rest"
	RestCategoryBusinessTrip = "business_trip"
	RestCategoryTraining     = "training"
	RestCategoryOther        = "other"
)

// RestRecord maps to rest_records. StaffID is nullable: when a roster name
// has no directory match the record keeps only the raw name, flagged in the
// note, rather than dropping the data. Duplicate protection (one record per
// staff and date) only applies when StaffID is set.
type RestRecord struct {
	RestRecordID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rest_record_id"`
	StaffID      *string   `gorm:"type:uuid"                                      json:"staff_id,omitempty"`
	StaffName    string    `gorm:"type:varchar(100);not null"                     json:"staff_name"`
	Category     string    `gorm:"type:varchar(20);not null;default:'duty_rest'"  json:"category"` // duty_rest | business_trip | training | other
	RestDate     time.Time `gorm:"type:date;not null"                             json:"rest_date"`
	Note         string    `gorm:"type:varchar(500);not null;default:''"          json:"note"`
	BaseModel

	Staff *StaffMember `gorm:"foreignKey:StaffID;references:StaffID" json:"staff,omitempty"`
}

// TableName sets the table name.
func (RestRecord) TableName() string { return "rest_records" }
