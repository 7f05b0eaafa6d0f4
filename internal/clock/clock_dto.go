package clock

import "time"

type ClockInRequest struct {
	At *time.Time `json:"at"`
}

type ClockOutRequest struct {
	SessionID string     `json:"session_id" binding:"required,uuid"`
	At        *time.Time `json:"at"`
	Notes     *string    `json:"notes"`
}

type AmendNotesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

type SessionResponse struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	ClockIn     time.Time  `json:"clock_in"`
	ClockOut    *time.Time `json:"clock_out,omitempty"`
	TotalHours  float64    `json:"total_hours"`
	Notes       *string    `json:"notes,omitempty"`
	TimeEntryID *string    `json:"time_entry_id,omitempty"`
}
