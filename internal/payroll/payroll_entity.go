package payroll

import (
	"time"

	"github.com/google/uuid"
)

const (
	PeriodStatusOpen       = "OPEN"
	PeriodStatusProcessing = "PROCESSING"
	PeriodStatusClosed     = "CLOSED"
)

type PayrollPeriod struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartDate   time.Time  `gorm:"type:date;not null"`
	EndDate     time.Time  `gorm:"type:date;not null"`
	PayDate     time.Time  `gorm:"type:date;not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	ProcessedBy *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PayrollPeriod) TableName() string {
	return "payroll_periods"
}

// PayStub is immutable once written. Corrections reverse the stub and cut a
// new one; the (employee, period) uniqueness only counts non-reversed rows.
type PayStub struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID              uuid.UUID `gorm:"type:uuid;not null;index"`
	PayrollPeriodID         uuid.UUID `gorm:"type:uuid;not null;index"`
	GrossPayCents           int64     `gorm:"type:bigint;not null"`
	FederalTaxCents         int64     `gorm:"type:bigint;not null"`
	StateTaxCents           int64     `gorm:"type:bigint;not null"`
	SocialSecurityCents     int64     `gorm:"type:bigint;not null"`
	MedicareCents           int64     `gorm:"type:bigint;not null"`
	BenefitsDeductionsCents int64     `gorm:"type:bigint;not null;default:0"`
	OtherDeductionsCents    int64     `gorm:"type:bigint;not null;default:0"`
	NetPayCents             int64     `gorm:"type:bigint;not null"`
	HoursWorked             float64   `gorm:"type:numeric(6,2);not null;default:0"`
	OvertimeHours           float64   `gorm:"type:numeric(6,2);not null;default:0"`
	HourlyRateCents         int64     `gorm:"type:bigint;not null;default:0"`
	ReversedAt              *time.Time
	ReversedBy              *uuid.UUID `gorm:"type:uuid"`
	ReversalReason          *string    `gorm:"type:text"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (PayStub) TableName() string {
	return "pay_stubs"
}
