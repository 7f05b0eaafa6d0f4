package compensation

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeHourly = "HOURLY"
	TypeSalary = "SALARY"
)

const (
	FrequencyWeekly      = "WEEKLY"
	FrequencyBiweekly    = "BIWEEKLY"
	FrequencySemimonthly = "SEMIMONTHLY"
	FrequencyMonthly     = "MONTHLY"
)

// CompensationPlan rows are append-only: a raise or type change is a new
// row with a later effective date, never an update of the old one.
// Amounts are integer cents to avoid floating point drift.
type CompensationPlan struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID        uuid.UUID `gorm:"type:uuid;not null;index:idx_comp_employee_effective"`
	Type              string    `gorm:"type:varchar(20);not null"`
	HourlyRateCents   int64     `gorm:"type:bigint;not null;default:0"`
	AnnualSalaryCents int64     `gorm:"type:bigint;not null;default:0"`
	PayFrequency      string    `gorm:"type:varchar(20);not null;default:'BIWEEKLY'"`
	EffectiveDate     time.Time `gorm:"type:date;not null;index:idx_comp_employee_effective"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (CompensationPlan) TableName() string {
	return "compensation_plans"
}

// PayPeriodsPerYear maps a pay frequency to its period count.
func PayPeriodsPerYear(frequency string) int64 {
	switch frequency {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencySemimonthly:
		return 24
	case FrequencyMonthly:
		return 12
	default:
		return 26
	}
}
