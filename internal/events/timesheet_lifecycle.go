package events

import "time"

const TimesheetLifecycleTopic = "hr.timesheet.lifecycle.v1"

const (
	TimesheetSubmittedEventType = "timesheet.submitted"
	TimesheetApprovedEventType  = "timesheet.approved"
	TimesheetRejectedEventType  = "timesheet.rejected"
)

type TimesheetLifecycleEvent struct {
	EventType   string    `json:"event_type"`
	TimesheetID string    `json:"timesheet_id"`
	EmployeeID  string    `json:"employee_id"`
	WeekStart   string    `json:"week_start"`
	Status      string    `json:"status"`
	ActorID     string    `json:"actor_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}
