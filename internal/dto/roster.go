package dto

// ── duty roster DTOs ──

// DutyRosterListRequest queries one month of roster entries.
type DutyRosterListRequest struct {
	Year  int `form:"year"  binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// PriorRosterRequest asks for the roster entry of the day before Date.
type PriorRosterRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// DutyRosterResponse carries one roster entry. The role fields are the raw
// delimited text; Team is the tokenized union of all five roles.
type DutyRosterResponse struct {
	ID             string   `json:"id"`
	RosterDate     string   `json:"roster_date"`
	Doctor         string   `json:"doctor"`
	Resident       string   `json:"resident"`
	Postgraduate   string   `json:"postgraduate"`
	Nurse          string   `json:"nurse"`
	AssistantNurse string   `json:"assistant_nurse"`
	Team           []string `json:"team"`
}

// PriorRosterResponse reports the prior-day lookup outcome. A missing entry
// is a normal outcome, not an error: Found is false and Entry is nil.
type PriorRosterResponse struct {
	Found      bool                `json:"found"`
	RosterDate string              `json:"roster_date"`
	Entry      *DutyRosterResponse `json:"entry,omitempty"`
}
