package timesheet

import "time"

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type TimesheetResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	WeekStart       string     `json:"week_start"`
	WeekEnd         string     `json:"week_end"`
	Status          string     `json:"status"`
	TotalHours      float64    `json:"total_hours"`
	RegularHours    float64    `json:"regular_hours"`
	OvertimeHours   float64    `json:"overtime_hours"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
}

type EntryResponse struct {
	ID        string  `json:"id"`
	EntryDate string  `json:"entry_date"`
	ProjectID *string `json:"project_id,omitempty"`
	Hours     float64 `json:"hours"`
	Type      string  `json:"type"`
	Source    string  `json:"source"`
	Notes     *string `json:"notes,omitempty"`
}

type TimesheetWithEntriesResponse struct {
	TimesheetResponse
	Entries []EntryResponse `json:"entries"`
}
