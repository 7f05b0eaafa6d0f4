package timeentry

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// zeroUUID stands in for a NULL project in the manual-entry uniqueness
// index, so "general" entries collide with each other.
const zeroUUID = "00000000-0000-0000-0000-000000000000"

//go:generate mockgen -source=timeentry_repo.go -destination=mock/timeentry_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	UpsertManual(ctx context.Context, e *TimeEntry) error
	CreateClockEntry(ctx context.Context, e *TimeEntry) error
	FindByID(ctx context.Context, id string) (*TimeEntry, error)
	Delete(ctx context.Context, id string) error
	ListWeek(ctx context.Context, employeeID string, weekStart time.Time) ([]TimeEntry, error)
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

// UpsertManual inserts or replaces the manual entry occupying the
// (employee, date, project) slot. The conflict target mirrors the partial
// unique index on manual entries.
func (r *repository) UpsertManual(ctx context.Context, e *TimeEntry) error {
	query := `
INSERT INTO time_entries (
	id, employee_id, entry_date, project_id, hours, type, source, notes,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, 'MANUAL', $7, NOW(), NOW())
ON CONFLICT (employee_id, entry_date, COALESCE(project_id, '` + zeroUUID + `'::uuid))
	WHERE source = 'MANUAL'
DO UPDATE SET
	hours = EXCLUDED.hours,
	type = EXCLUDED.type,
	notes = EXCLUDED.notes,
	updated_at = NOW()
RETURNING id
`
	return r.execer().QueryRowContext(ctx, query,
		e.ID, e.EmployeeID, e.EntryDate, e.ProjectID, e.Hours, e.Type, e.Notes,
	).Scan(&e.ID)
}

func (r *repository) CreateClockEntry(ctx context.Context, e *TimeEntry) error {
	query := `
INSERT INTO time_entries (
	id, employee_id, entry_date, project_id, hours, type, source, session_id,
	notes, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, 'CLOCK', $7, $8, NOW(), NOW())
`
	_, err := r.execer().ExecContext(ctx, query,
		e.ID, e.EmployeeID, e.EntryDate, e.ProjectID, e.Hours, e.Type,
		e.SessionID, e.Notes,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeEntry, error) {
	query := `
SELECT id, employee_id, entry_date, project_id, hours, type, source,
	session_id, notes
FROM time_entries
WHERE id = $1
`
	var e TimeEntry
	err := r.execer().QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.EmployeeID, &e.EntryDate, &e.ProjectID, &e.Hours,
		&e.Type, &e.Source, &e.SessionID, &e.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	_, err := r.execer().ExecContext(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	return err
}

func (r *repository) ListWeek(ctx context.Context, employeeID string, weekStart time.Time) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("entry_date >= ? AND entry_date < ?", weekStart, weekStart.AddDate(0, 0, 7)).
		Order("entry_date ASC").
		Find(&rows).Error
	return rows, err
}
