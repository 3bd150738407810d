package dto

// ── assignment form DTOs ──

// AssignmentFormState is the client's current draft form content: the raw
// delimited text of each of the seven slots. It rides on every eligibility
// request because the draft lives in the editing session, not on the server.
type AssignmentFormState struct {
	Room1      string `json:"room_1"`
	Room2      string `json:"room_2"`
	Room3      string `json:"room_3"`
	Room4      string `json:"room_4"`
	OutsideRun string `json:"outside_run"`
	Imaging    string `json:"imaging"`
	DataEntry  string `json:"data_entry"`
}

// SlotOptionsRequest asks for the eligible pool of a single slot.
type SlotOptionsRequest struct {
	Date string              `json:"date" binding:"required,datetime=2006-01-02"`
	Slot string              `json:"slot" binding:"required"`
	Form AssignmentFormState `json:"form"`
}

// FormOptionsRequest asks for the eligible pools of all seven slots at once,
// typically after an edit to an earlier slot or a date change.
type FormOptionsRequest struct {
	Date string              `json:"date" binding:"required,datetime=2006-01-02"`
	Form AssignmentFormState `json:"form"`
}

// SlotOptionsResponse is the eligible pool for one slot. NoEligible makes an
// empty pool explicit so the form can render a distinct state instead of an
// ambiguous empty list.
type SlotOptionsResponse struct {
	Slot       string       `json:"slot"`
	Options    []StaffBrief `json:"options"`
	NoEligible bool         `json:"no_eligible"`
}

// FormOptionsResponse is the orchestrator's full recomputation result.
type FormOptionsResponse struct {
	Date      string                `json:"date"`
	PriorDuty *PriorRosterResponse  `json:"prior_duty"`
	Slots     []SlotOptionsResponse `json:"slots"`
}

// GetAssignmentRequest loads the persisted record for a date, if any.
type GetAssignmentRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// SubmitAssignmentRequest persists the draft. AssignmentID empty means
// create; set means update of an existing record at the carried version.
type SubmitAssignmentRequest struct {
	AssignmentID string              `json:"assignment_id" binding:"omitempty,uuid"`
	Date         string              `json:"date"          binding:"required,datetime=2006-01-02"`
	Version      int                 `json:"version"`
	Form         AssignmentFormState `json:"form"`
}

// AssignmentResponse is the persisted record.
type AssignmentResponse struct {
	ID        string              `json:"id"`
	Date      string              `json:"date"`
	Form      AssignmentFormState `json:"form"`
	Version   int                 `json:"version"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

// DraftResponse is the editing-session starting point for a date: the
// existing record when one is persisted, otherwise an empty draft.
type DraftResponse struct {
	State  string              `json:"state"` // editing | ready
	Exists bool                `json:"exists"`
	Record *AssignmentResponse `json:"record,omitempty"`
}
