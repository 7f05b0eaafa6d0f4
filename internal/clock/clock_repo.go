package clock

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=clock_repo.go -destination=mock/clock_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *ClockSession) error
	FindByID(ctx context.Context, id string) (*ClockSession, error)
	FindOpenByEmployee(ctx context.Context, employeeID string) (*ClockSession, error)
	Close(ctx context.Context, s *ClockSession) error
	UpdateNotes(ctx context.Context, id string, notes string) error
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]ClockSession, error)
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

// Create relies on the partial unique index over open sessions to reject a
// second clock-in; the 23505 is mapped by the service.
func (r *repository) Create(ctx context.Context, s *ClockSession) error {
	query := `
INSERT INTO clock_sessions (
	id, employee_id, clock_in, notes, created_at, updated_at
) VALUES ($1, $2, $3, $4, NOW(), NOW())
`
	_, err := r.execer().ExecContext(ctx, query, s.ID, s.EmployeeID, s.ClockIn, s.Notes)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ClockSession, error) {
	query := `
SELECT id, employee_id, clock_in, clock_out, total_hours, notes, time_entry_id
FROM clock_sessions
WHERE id = $1
`
	var s ClockSession
	err := r.execer().QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.EmployeeID, &s.ClockIn, &s.ClockOut,
		&s.TotalHours, &s.Notes, &s.TimeEntryID,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindOpenByEmployee(ctx context.Context, employeeID string) (*ClockSession, error) {
	query := `
SELECT id, employee_id, clock_in, clock_out, total_hours, notes, time_entry_id
FROM clock_sessions
WHERE employee_id = $1 AND clock_out IS NULL
`
	var s ClockSession
	err := r.execer().QueryRowContext(ctx, query, employeeID).Scan(
		&s.ID, &s.EmployeeID, &s.ClockIn, &s.ClockOut,
		&s.TotalHours, &s.Notes, &s.TimeEntryID,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Close only lands on a still-open row so concurrent clock-outs cannot both
// succeed.
func (r *repository) Close(ctx context.Context, s *ClockSession) error {
	query := `
UPDATE clock_sessions
SET clock_out = $1, total_hours = $2, notes = $3, time_entry_id = $4,
	updated_at = NOW()
WHERE id = $5 AND clock_out IS NULL
`
	res, err := r.execer().ExecContext(ctx, query,
		s.ClockOut, s.TotalHours, s.Notes, s.TimeEntryID, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) UpdateNotes(ctx context.Context, id string, notes string) error {
	query := `
UPDATE clock_sessions
SET notes = $1, updated_at = NOW()
WHERE id = $2
`
	_, err := r.execer().ExecContext(ctx, query, notes, id)
	return err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]ClockSession, error) {
	var rows []ClockSession
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("clock_in DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
