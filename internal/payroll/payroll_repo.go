package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimesheetRef is a read-only projection of the timesheets table; payroll
// only needs status and hour totals.
type TimesheetRef struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid"`
	WeekStart     time.Time `gorm:"type:date"`
	WeekEnd       time.Time `gorm:"type:date"`
	Status        string
	TotalHours    float64
	RegularHours  float64
	OvertimeHours float64
}

func (TimesheetRef) TableName() string {
	return "timesheets"
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreatePeriod(ctx context.Context, p *PayrollPeriod) error
	FindPeriodByID(ctx context.Context, id string) (*PayrollPeriod, error)
	ListPeriods(ctx context.Context) ([]PayrollPeriod, error)
	MarkPeriodProcessing(ctx context.Context, id string) (int64, error)
	MarkPeriodClosed(ctx context.Context, id, processedBy string) (int64, error)
	ReopenPeriod(ctx context.Context, id string) error

	HasActiveStub(ctx context.Context, employeeID, periodID string) (bool, error)
	CreateStub(ctx context.Context, stub *PayStub) error
	FindStubByID(ctx context.Context, id string) (*PayStub, error)
	ListStubsByEmployee(ctx context.Context, employeeID string) ([]PayStub, error)
	ListStubsByPeriod(ctx context.Context, periodID string) ([]PayStub, error)
	ReverseStub(ctx context.Context, id, reversedBy, reason string) (int64, error)

	ListTimesheetsOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]TimesheetRef, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *repository) execer() dbtx {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

func (r *repository) CreatePeriod(ctx context.Context, p *PayrollPeriod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPeriodByID(ctx context.Context, id string) (*PayrollPeriod, error) {
	var p PayrollPeriod
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) ListPeriods(ctx context.Context) ([]PayrollPeriod, error) {
	var rows []PayrollPeriod
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&rows).Error
	return rows, err
}

// MarkPeriodProcessing claims the period. Zero rows means another run won
// the race or the period is not OPEN.
func (r *repository) MarkPeriodProcessing(ctx context.Context, id string) (int64, error) {
	query := `
UPDATE payroll_periods
SET status = $1, updated_at = NOW()
WHERE id = $2 AND status = $3
`
	res, err := r.execer().ExecContext(ctx, query, PeriodStatusProcessing, id, PeriodStatusOpen)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) MarkPeriodClosed(ctx context.Context, id, processedBy string) (int64, error) {
	query := `
UPDATE payroll_periods
SET status = $1, processed_by = $2, processed_at = NOW(), updated_at = NOW()
WHERE id = $3 AND status = $4
`
	res, err := r.execer().ExecContext(ctx, query,
		PeriodStatusClosed, processedBy, id, PeriodStatusProcessing)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) ReopenPeriod(ctx context.Context, id string) error {
	query := `
UPDATE payroll_periods
SET status = $1, updated_at = NOW()
WHERE id = $2 AND status = $3
`
	_, err := r.execer().ExecContext(ctx, query, PeriodStatusOpen, id, PeriodStatusProcessing)
	return err
}

func (r *repository) HasActiveStub(ctx context.Context, employeeID, periodID string) (bool, error) {
	query := `
SELECT EXISTS (
	SELECT 1 FROM pay_stubs
	WHERE employee_id = $1 AND payroll_period_id = $2 AND reversed_at IS NULL
)
`
	var exists bool
	err := r.execer().QueryRowContext(ctx, query, employeeID, periodID).Scan(&exists)
	return exists, err
}

func (r *repository) CreateStub(ctx context.Context, stub *PayStub) error {
	query := `
INSERT INTO pay_stubs (
	id, employee_id, payroll_period_id,
	gross_pay_cents, federal_tax_cents, state_tax_cents,
	social_security_cents, medicare_cents, benefits_deductions_cents,
	other_deductions_cents, net_pay_cents,
	hours_worked, overtime_hours, hourly_rate_cents,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
`
	_, err := r.execer().ExecContext(ctx, query,
		stub.ID, stub.EmployeeID, stub.PayrollPeriodID,
		stub.GrossPayCents, stub.FederalTaxCents, stub.StateTaxCents,
		stub.SocialSecurityCents, stub.MedicareCents, stub.BenefitsDeductionsCents,
		stub.OtherDeductionsCents, stub.NetPayCents,
		stub.HoursWorked, stub.OvertimeHours, stub.HourlyRateCents,
	)
	return err
}

func (r *repository) FindStubByID(ctx context.Context, id string) (*PayStub, error) {
	var stub PayStub
	err := r.db.WithContext(ctx).First(&stub, "id = ?", id).Error
	return &stub, err
}

func (r *repository) ListStubsByEmployee(ctx context.Context, employeeID string) ([]PayStub, error) {
	var rows []PayStub
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListStubsByPeriod(ctx context.Context, periodID string) ([]PayStub, error) {
	var rows []PayStub
	err := r.db.WithContext(ctx).
		Where("payroll_period_id = ?", periodID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// ReverseStub only lands on a non-reversed row, freeing the
// (employee, period) slot for a corrected stub.
func (r *repository) ReverseStub(ctx context.Context, id, reversedBy, reason string) (int64, error) {
	query := `
UPDATE pay_stubs
SET reversed_at = NOW(), reversed_by = $1, reversal_reason = $2, updated_at = NOW()
WHERE id = $3 AND reversed_at IS NULL
`
	res, err := r.execer().ExecContext(ctx, query, reversedBy, reason, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) ListTimesheetsOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]TimesheetRef, error) {
	var rows []TimesheetRef
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("week_start <= ? AND week_end >= ?", end, start).
		Order("week_start ASC").
		Find(&rows).Error
	return rows, err
}
