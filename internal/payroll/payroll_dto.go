package payroll

import "time"

type CreatePeriodRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	PayDate   string `json:"pay_date" binding:"required"`
}

type PeriodResponse struct {
	ID          string     `json:"id"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	PayDate     string     `json:"pay_date"`
	Status      string     `json:"status"`
	ProcessedBy *string    `json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// RunWarning records why one employee produced no stub without failing the
// whole run.
type RunWarning struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type RunResultResponse struct {
	PeriodID string       `json:"period_id"`
	Created  int          `json:"created"`
	Skipped  []string     `json:"skipped"`
	Warnings []RunWarning `json:"warnings"`
}

type ReverseStubRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type StubResponse struct {
	ID                      string     `json:"id"`
	EmployeeID              string     `json:"employee_id"`
	PayrollPeriodID         string     `json:"payroll_period_id"`
	GrossPayCents           int64      `json:"gross_pay_cents"`
	FederalTaxCents         int64      `json:"federal_tax_cents"`
	StateTaxCents           int64      `json:"state_tax_cents"`
	SocialSecurityCents     int64      `json:"social_security_cents"`
	MedicareCents           int64      `json:"medicare_cents"`
	BenefitsDeductionsCents int64      `json:"benefits_deductions_cents"`
	OtherDeductionsCents    int64      `json:"other_deductions_cents"`
	NetPayCents             int64      `json:"net_pay_cents"`
	HoursWorked             float64    `json:"hours_worked"`
	OvertimeHours           float64    `json:"overtime_hours"`
	HourlyRateCents         int64      `json:"hourly_rate_cents"`
	ReversedAt              *time.Time `json:"reversed_at,omitempty"`
	ReversalReason          *string    `json:"reversal_reason,omitempty"`
}
