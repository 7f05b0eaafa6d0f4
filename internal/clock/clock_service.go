package clock

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	clockerrors "github.com/cocomgroup/hub-hrms-sub002/internal/clock/errors"
	"github.com/cocomgroup/hub-hrms-sub002/internal/timeentry"
	"github.com/cocomgroup/hub-hrms-sub002/internal/timesheet"
	timesheeterrors "github.com/cocomgroup/hub-hrms-sub002/internal/timesheet/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

//go:generate mockgen -source=clock_service.go -destination=mock/clock_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (SessionResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (SessionResponse, error)
	AmendNotes(ctx context.Context, sessionID, employeeID, notes string) (SessionResponse, error)
	GetOpen(ctx context.Context, employeeID string) (SessionResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SessionResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	entryRepo    timeentry.Repository
	timesheetSvc timesheet.Service
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, entryRepo timeentry.Repository, timesheetSvc timesheet.Service) Service {
	return &service{
		db:           db,
		repo:         repo,
		entryRepo:    entryRepo,
		timesheetSvc: timesheetSvc,
		logger:       zap.L().Named("clock.service"),
	}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (SessionResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return SessionResponse{}, clockerrors.ErrNotOwner
	}

	at := time.Now().UTC()
	if req.At != nil {
		at = req.At.UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SessionResponse{}, err
	}
	defer tx.Rollback()

	session := &ClockSession{
		ID:         uuid.New(),
		EmployeeID: empID,
		ClockIn:    at,
	}
	if err := s.repo.WithTx(tx).Create(ctx, session); err != nil {
		return SessionResponse{}, mapOpenSessionConflict(err)
	}

	if err := tx.Commit(); err != nil {
		return SessionResponse{}, err
	}

	s.logger.Info("clocked in",
		zap.String("employee_id", employeeID),
		zap.String("session_id", session.ID.String()))

	return mapToResponse(session), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (SessionResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return SessionResponse{}, clockerrors.ErrNotOwner
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SessionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	session, err := qtx.FindByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionResponse{}, clockerrors.ErrNoOpenSession
		}
		return SessionResponse{}, err
	}
	if session.EmployeeID != empID {
		return SessionResponse{}, clockerrors.ErrNotOwner
	}
	if session.ClockOut != nil {
		return SessionResponse{}, clockerrors.ErrNoOpenSession
	}

	at := time.Now().UTC()
	if req.At != nil {
		at = req.At.UTC()
	}
	if at.Before(session.ClockIn) {
		return SessionResponse{}, clockerrors.ErrInvalidOrder
	}

	// A session spanning midnight is attributed wholly to the clock-in day.
	entryDate := time.Date(
		session.ClockIn.Year(), session.ClockIn.Month(), session.ClockIn.Day(),
		0, 0, 0, 0, time.UTC)
	weekStart := timesheet.WeekStartOf(entryDate)

	locked, err := s.timesheetSvc.LockedForWeek(ctx, tx, empID, weekStart)
	if err != nil {
		return SessionResponse{}, err
	}
	if locked {
		return SessionResponse{}, timesheeterrors.ErrTimesheetLocked
	}

	if _, err := s.timesheetSvc.EnsureDraft(ctx, tx, empID, weekStart); err != nil {
		return SessionResponse{}, err
	}

	hours := math.Round(at.Sub(session.ClockIn).Hours()*100) / 100

	entry := &timeentry.TimeEntry{
		ID:         uuid.New(),
		EmployeeID: empID,
		EntryDate:  entryDate,
		Hours:      hours,
		Type:       timeentry.TypeRegular,
		Source:     timeentry.SourceClock,
		SessionID:  &session.ID,
		Notes:      req.Notes,
	}
	if err := s.entryRepo.WithTx(tx).CreateClockEntry(ctx, entry); err != nil {
		return SessionResponse{}, err
	}

	session.ClockOut = &at
	session.TotalHours = hours
	if req.Notes != nil {
		session.Notes = req.Notes
	}
	session.TimeEntryID = &entry.ID

	if err := qtx.Close(ctx, session); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionResponse{}, clockerrors.ErrNoOpenSession
		}
		return SessionResponse{}, err
	}

	if err := s.timesheetSvc.RecomputeWeek(ctx, tx, empID, weekStart); err != nil {
		return SessionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SessionResponse{}, err
	}

	s.logger.Info("clocked out",
		zap.String("employee_id", employeeID),
		zap.String("session_id", session.ID.String()),
		zap.Float64("total_hours", hours))

	return mapToResponse(session), nil
}

func (s *service) AmendNotes(ctx context.Context, sessionID, employeeID, notes string) (SessionResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return SessionResponse{}, clockerrors.ErrNotOwner
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return SessionResponse{}, clockerrors.ErrInvalidSessionID
	}

	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionResponse{}, clockerrors.ErrSessionNotFound
		}
		return SessionResponse{}, err
	}
	if session.EmployeeID != empID {
		return SessionResponse{}, clockerrors.ErrNotOwner
	}
	if session.ClockOut == nil {
		return SessionResponse{}, clockerrors.ErrSessionStillOpen
	}

	weekStart := timesheet.WeekStartOf(session.ClockIn)
	locked, err := s.timesheetSvc.LockedForWeek(ctx, nil, empID, weekStart)
	if err != nil {
		return SessionResponse{}, err
	}
	if locked {
		return SessionResponse{}, timesheeterrors.ErrTimesheetLocked
	}

	if err := s.repo.UpdateNotes(ctx, sessionID, notes); err != nil {
		return SessionResponse{}, err
	}

	session.Notes = &notes
	return mapToResponse(session), nil
}

func (s *service) GetOpen(ctx context.Context, employeeID string) (SessionResponse, error) {
	session, err := s.repo.FindOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionResponse{}, clockerrors.ErrNoOpenSession
		}
		return SessionResponse{}, err
	}
	return mapToResponse(session), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]SessionResponse, error) {
	rows, err := s.repo.ListByEmployee(ctx, employeeID, 100)
	if err != nil {
		return nil, err
	}
	resp := make([]SessionResponse, len(rows))
	for i := range rows {
		resp[i] = mapToResponse(&rows[i])
	}
	return resp, nil
}

func mapOpenSessionConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_clock_sessions_open" {
			return clockerrors.ErrAlreadyClockedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_clock_sessions_open") {
		return clockerrors.ErrAlreadyClockedIn
	}

	return err
}

func mapToResponse(s *ClockSession) SessionResponse {
	resp := SessionResponse{
		ID:         s.ID.String(),
		EmployeeID: s.EmployeeID.String(),
		ClockIn:    s.ClockIn,
		ClockOut:   s.ClockOut,
		TotalHours: s.TotalHours,
		Notes:      s.Notes,
	}
	if s.TimeEntryID != nil {
		tid := s.TimeEntryID.String()
		resp.TimeEntryID = &tid
	}
	return resp
}
