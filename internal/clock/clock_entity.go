package clock

import (
	"time"

	"github.com/google/uuid"
)

// ClockSession is an append-only record of a worked interval. Sessions are
// closed, never deleted; only the notes may be amended afterwards.
type ClockSession struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ClockIn     time.Time `gorm:"not null"`
	ClockOut    *time.Time
	TotalHours  float64    `gorm:"type:numeric(5,2);not null;default:0"`
	Notes       *string    `gorm:"type:text"`
	TimeEntryID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ClockSession) TableName() string {
	return "clock_sessions"
}
