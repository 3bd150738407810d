package dto

// ── rest record DTOs ──

// AutoGenerateRequest triggers rest-record generation for the nurses on the
// duty roster of the day before Date.
type AutoGenerateRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

// AutoGenerateResponse reports the batch outcome. Unmatched lists roster
// names that had no directory match; records were still created for them
// (free-text only) and they count toward Created.
type AutoGenerateResponse struct {
	Created     int      `json:"created"`
	Skipped     int      `json:"skipped"`
	RosterFound bool     `json:"roster_found"`
	RosterDate  string   `json:"roster_date,omitempty"`
	Unmatched   []string `json:"unmatched,omitempty"`
	Message     string   `json:"message,omitempty"`
}

// RestRecordListRequest queries rest records for one date.
type RestRecordListRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// RestRecordResponse is one rest record. Resolved is false for
// free-text-only records that reference no directory entry.
type RestRecordResponse struct {
	ID        string `json:"id"`
	StaffID   string `json:"staff_id,omitempty"`
	StaffName string `json:"staff_name"`
	Resolved  bool   `json:"resolved"`
	Category  string `json:"category"`
	RestDate  string `json:"rest_date"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"created_at"`
}
