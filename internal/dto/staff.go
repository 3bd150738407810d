package dto

// StaffBrief is the directory entry shape used inside option lists.
type StaffBrief struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Category string `json:"category"`
}

// StaffResponse is the full directory entry.
type StaffResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Category  string `json:"category"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
