package events

import "time"

const PayStubCreatedTopic = "hr.payroll.paystub.v1"

const PayStubCreatedEventType = "paystub.created"

// PayStubCreatedEvent triggers the consumer that renders the stub PDF.
type PayStubCreatedEvent struct {
	EventType  string    `json:"event_type"`
	PayStubID  string    `json:"pay_stub_id"`
	EmployeeID string    `json:"employee_id"`
	PeriodID   string    `json:"period_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
