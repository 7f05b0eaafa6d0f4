package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Employee struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ManagerID *uuid.UUID `gorm:"type:uuid;index"`
	FullName  string     `gorm:"column:full_name;type:varchar(120);not null"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"`
	Status    string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
