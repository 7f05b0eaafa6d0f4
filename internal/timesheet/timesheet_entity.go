package timesheet

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

type Timesheet struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_timesheet_employee_week"`
	WeekStart       time.Time  `gorm:"type:date;not null;uniqueIndex:uq_timesheet_employee_week"`
	WeekEnd         time.Time  `gorm:"type:date;not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	TotalHours      float64    `gorm:"type:numeric(6,2);not null;default:0"`
	RegularHours    float64    `gorm:"type:numeric(6,2);not null;default:0"`
	OvertimeHours   float64    `gorm:"type:numeric(6,2);not null;default:0"`
	SubmittedAt     *time.Time
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Timesheet) TableName() string {
	return "timesheets"
}

// IsLocked reports whether the week's entries may no longer change.
func (t *Timesheet) IsLocked() bool {
	return t.Status == StatusSubmitted || t.Status == StatusApproved
}

func isAllowedStatusTransition(current, target string) bool {
	switch current {
	case StatusDraft:
		return target == StatusSubmitted
	case StatusSubmitted:
		return target == StatusApproved || target == StatusRejected
	case StatusRejected:
		return target == StatusSubmitted
	default:
		// APPROVED is terminal.
		return false
	}
}

// WeekStartOf normalizes a date to the Monday of its week, at midnight UTC.
func WeekStartOf(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// WeekEndOf is the Sunday closing the week started by weekStart.
func WeekEndOf(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 6)
}
