package timeentry

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeRegular  = "REGULAR"
	TypeOvertime = "OVERTIME"
	TypePTO      = "PTO"
)

const (
	SourceManual = "MANUAL"
	SourceClock  = "CLOCK"
)

// TimeEntry is a single day's worth of hours. Manual entries are unique per
// (employee, date, project); clock-derived entries carry their session id.
type TimeEntry struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	EntryDate  time.Time  `gorm:"type:date;not null"`
	ProjectID  *uuid.UUID `gorm:"type:uuid"`
	Hours      float64    `gorm:"type:numeric(4,2);not null"`
	Type       string     `gorm:"type:varchar(20);not null;default:'REGULAR'"`
	Source     string     `gorm:"type:varchar(20);not null;default:'MANUAL'"`
	SessionID  *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_time_entries_session"`
	Notes      *string    `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

func isValidType(t string) bool {
	switch t {
	case TypeRegular, TypeOvertime, TypePTO:
		return true
	}
	return false
}

// isValidHours accepts values in [0, 24] that land on the quarter-hour grid.
func isValidHours(hours float64) bool {
	if hours < 0 || hours > 24 {
		return false
	}
	quarters := hours * 4
	return quarters == float64(int64(quarters))
}
