package events

import "time"

const PayrollRunCompletedTopic = "hr.payroll.run.v1"

const PayrollRunCompletedEventType = "payroll.run.completed"

type PayrollRunCompletedEvent struct {
	EventType    string    `json:"event_type"`
	PeriodID     string    `json:"period_id"`
	ProcessedBy  string    `json:"processed_by"`
	StubsCreated int       `json:"stubs_created"`
	Skipped      int       `json:"skipped"`
	OccurredAt   time.Time `json:"occurred_at"`
}
