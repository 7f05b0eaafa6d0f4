package compensation

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=compensation_repo.go -destination=mock/compensation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *CompensationPlan) error
	FindActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) (*CompensationPlan, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]CompensationPlan, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, p *CompensationPlan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindActiveByEmployee returns the plan with the latest effective date not
// after asOf. Later-dated plans are pending and do not count.
func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) (*CompensationPlan, error) {
	var p CompensationPlan
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("effective_date <= ?", asOf.Format("2006-01-02")).
		Order("effective_date DESC").
		First(&p).Error
	return &p, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]CompensationPlan, error) {
	var rows []CompensationPlan
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC").
		Find(&rows).Error
	return rows, err
}
