package benefits

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BenefitEnrollment struct {
	ID                        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID                uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanName                  string    `gorm:"type:varchar(120);not null"`
	EmployeeContributionCents int64     `gorm:"type:bigint;not null;default:0"`
	Active                    bool      `gorm:"not null;default:true;index"`
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
	DeletedAt                 gorm.DeletedAt `gorm:"index"`
}

func (BenefitEnrollment) TableName() string {
	return "benefit_enrollments"
}
