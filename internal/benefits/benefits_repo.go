package benefits

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=benefits_repo.go -destination=mock/benefits_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *BenefitEnrollment) error
	FindByID(ctx context.Context, id string) (*BenefitEnrollment, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]BenefitEnrollment, error)
	SumActiveContributions(ctx context.Context, employeeID string) (int64, error)
	Update(ctx context.Context, b *BenefitEnrollment) error
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

func (r *repository) Create(ctx context.Context, b *BenefitEnrollment) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*BenefitEnrollment, error) {
	var b BenefitEnrollment
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]BenefitEnrollment, error) {
	var rows []BenefitEnrollment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) SumActiveContributions(ctx context.Context, employeeID string) (int64, error) {
	var total sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&BenefitEnrollment{}).
		Select("SUM(employee_contribution_cents)").
		Where("employee_id = ?", employeeID).
		Where("active = ?", true).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

func (r *repository) Update(ctx context.Context, b *BenefitEnrollment) error {
	return r.db.WithContext(ctx).Save(b).Error
}
