package timesheet

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryRef is a read-only projection of the time_entries table for display.
type EntryRef struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EntryDate time.Time  `gorm:"type:date"`
	ProjectID *uuid.UUID `gorm:"type:uuid"`
	Hours     float64
	Type      string
	Source    string
	Notes     *string
}

func (EntryRef) TableName() string {
	return "time_entries"
}

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Timesheet) error
	FindByID(ctx context.Context, id string) (*Timesheet, error)
	FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart time.Time) (*Timesheet, error)
	SaveTotals(ctx context.Context, id uuid.UUID, totals Totals) error
	MarkSubmitted(ctx context.Context, id string) (int64, error)
	MarkApproved(ctx context.Context, id, reviewerID string) (int64, error)
	MarkRejected(ctx context.Context, id, reviewerID, reason string) (int64, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Timesheet, error)
	ListPendingForManager(ctx context.Context, managerID string) ([]Timesheet, error)
	ListAllSubmitted(ctx context.Context) ([]Timesheet, error)
	ListEntryLines(ctx context.Context, employeeID string, weekStart time.Time) ([]EntryLine, error)
	ListEntriesForWeek(ctx context.Context, employeeID string, weekStart time.Time) ([]EntryRef, error)
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
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// execer routes reads and writes through the open transaction when one is
// attached, so uncommitted entry writes are visible to the recompute.
func (r *repository) execer() dbtx {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

func (r *repository) Create(ctx context.Context, t *Timesheet) error {
	query := `
        INSERT INTO timesheets (
            id, employee_id, week_start, week_end, status,
            total_hours, regular_hours, overtime_hours, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		t.ID, t.EmployeeID, t.WeekStart, t.WeekEnd, t.Status,
		t.TotalHours, t.RegularHours, t.OvertimeHours,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Timesheet, error) {
	var t Timesheet
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart time.Time) (*Timesheet, error) {
	query := `
SELECT
	id, employee_id, week_start, week_end, status,
	total_hours, regular_hours, overtime_hours,
	submitted_at, reviewed_by, reviewed_at, rejection_reason
FROM timesheets
WHERE employee_id = $1 AND week_start = $2
`
	var t Timesheet
	err := r.execer().QueryRowContext(ctx, query, employeeID, weekStart).Scan(
		&t.ID, &t.EmployeeID, &t.WeekStart, &t.WeekEnd, &t.Status,
		&t.TotalHours, &t.RegularHours, &t.OvertimeHours,
		&t.SubmittedAt, &t.ReviewedBy, &t.ReviewedAt, &t.RejectionReason,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) SaveTotals(ctx context.Context, id uuid.UUID, totals Totals) error {
	query := `
UPDATE timesheets
SET total_hours = $1, regular_hours = $2, overtime_hours = $3, updated_at = NOW()
WHERE id = $4
`
	_, err := r.execer().ExecContext(ctx, query,
		totals.TotalHours, totals.RegularHours, totals.OvertimeHours, id)
	return err
}

func (r *repository) MarkSubmitted(ctx context.Context, id string) (int64, error) {
	query := `
UPDATE timesheets
SET status = $1, submitted_at = NOW(), rejection_reason = NULL,
	reviewed_by = NULL, reviewed_at = NULL, updated_at = NOW()
WHERE id = $2 AND status IN ($3, $4)
`
	res, err := r.execer().ExecContext(ctx, query,
		StatusSubmitted, id, StatusDraft, StatusRejected)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) MarkApproved(ctx context.Context, id, reviewerID string) (int64, error) {
	query := `
UPDATE timesheets
SET status = $1, reviewed_by = $2, reviewed_at = NOW(), updated_at = NOW()
WHERE id = $3 AND status = $4
`
	res, err := r.execer().ExecContext(ctx, query,
		StatusApproved, reviewerID, id, StatusSubmitted)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) MarkRejected(ctx context.Context, id, reviewerID, reason string) (int64, error) {
	query := `
UPDATE timesheets
SET status = $1, reviewed_by = $2, reviewed_at = NOW(),
	rejection_reason = $3, updated_at = NOW()
WHERE id = $4 AND status = $5
`
	res, err := r.execer().ExecContext(ctx, query,
		StatusRejected, reviewerID, reason, id, StatusSubmitted)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("week_start DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListPendingForManager(ctx context.Context, managerID string) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = timesheets.employee_id").
		Where("employees.manager_id = ?", managerID).
		Where("timesheets.status = ?", StatusSubmitted).
		Order("timesheets.submitted_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListAllSubmitted(ctx context.Context) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusSubmitted).
		Order("submitted_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListEntryLines(ctx context.Context, employeeID string, weekStart time.Time) ([]EntryLine, error) {
	query := `
SELECT hours, type
FROM time_entries
WHERE employee_id = $1
	AND entry_date >= $2
	AND entry_date < $2::date + INTERVAL '7 days'
`
	rows, err := r.execer().QueryContext(ctx, query, employeeID, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []EntryLine
	for rows.Next() {
		var l EntryLine
		if err := rows.Scan(&l.Hours, &l.Type); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *repository) ListEntriesForWeek(ctx context.Context, employeeID string, weekStart time.Time) ([]EntryRef, error) {
	var rows []EntryRef
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("entry_date >= ? AND entry_date < ?", weekStart, weekStart.AddDate(0, 0, 7)).
		Order("entry_date ASC").
		Find(&rows).Error
	return rows, err
}
