package timeentry

type UpsertEntryRequest struct {
	EntryDate string  `json:"entry_date" binding:"required"`
	ProjectID *string `json:"project_id" binding:"omitempty,uuid"`
	Hours     float64 `json:"hours"`
	Type      string  `json:"type" binding:"omitempty,oneof=REGULAR OVERTIME PTO"`
	Notes     *string `json:"notes"`
}

type BulkUpsertRequest struct {
	Entries []UpsertEntryRequest `json:"entries" binding:"required"`
}

// BulkItemError pinpoints one offending entry in a bulk request.
type BulkItemError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type EntryResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	EntryDate  string  `json:"entry_date"`
	ProjectID  *string `json:"project_id,omitempty"`
	Hours      float64 `json:"hours"`
	Type       string  `json:"type"`
	Source     string  `json:"source"`
	Notes      *string `json:"notes,omitempty"`
}

type BulkUpsertResponse struct {
	Entries []EntryResponse `json:"entries"`
}
