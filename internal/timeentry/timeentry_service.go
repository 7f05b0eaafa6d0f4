package timeentry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	timeentryerrors "github.com/cocomgroup/hub-hrms-sub002/internal/timeentry/errors"
	"github.com/cocomgroup/hub-hrms-sub002/internal/timesheet"
	timesheeterrors "github.com/cocomgroup/hub-hrms-sub002/internal/timesheet/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=timeentry_service.go -destination=mock/timeentry_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, employeeID string, req UpsertEntryRequest) (EntryResponse, error)
	BulkUpsert(ctx context.Context, employeeID string, req BulkUpsertRequest) (BulkUpsertResponse, error)
	Delete(ctx context.Context, entryID, employeeID string) error
	ListWeek(ctx context.Context, employeeID, weekStart string) ([]EntryResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	timesheetSvc timesheet.Service
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, timesheetSvc timesheet.Service) Service {
	return &service{
		db:           db,
		repo:         repo,
		timesheetSvc: timesheetSvc,
		logger:       zap.L().Named("timeentry.service"),
	}
}

// validated is an UpsertEntryRequest after parsing and normalization.
type validated struct {
	entryDate time.Time
	projectID *uuid.UUID
	hours     float64
	entryType string
	notes     *string
}

func validateEntry(req UpsertEntryRequest) (validated, error) {
	v := validated{hours: req.Hours, notes: req.Notes}

	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		return v, timeentryerrors.ErrInvalidDateFormat
	}
	v.entryDate = entryDate

	if req.ProjectID != nil && *req.ProjectID != "" {
		pid, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return v, timeentryerrors.ErrInvalidProjectID
		}
		v.projectID = &pid
	}

	if !isValidHours(req.Hours) {
		return v, timeentryerrors.ErrInvalidHours
	}

	v.entryType = req.Type
	if v.entryType == "" {
		v.entryType = TypeRegular
	}
	if !isValidType(v.entryType) {
		return v, timeentryerrors.ErrInvalidEntryType
	}

	return v, nil
}

func (s *service) Upsert(ctx context.Context, employeeID string, req UpsertEntryRequest) (EntryResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return EntryResponse{}, timeentryerrors.ErrNotOwner
	}

	v, err := validateEntry(req)
	if err != nil {
		return EntryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	weekStart := timesheet.WeekStartOf(v.entryDate)

	locked, err := s.timesheetSvc.LockedForWeek(ctx, tx, empID, weekStart)
	if err != nil {
		return EntryResponse{}, err
	}
	if locked {
		return EntryResponse{}, timesheeterrors.ErrTimesheetLocked
	}

	if _, err := s.timesheetSvc.EnsureDraft(ctx, tx, empID, weekStart); err != nil {
		return EntryResponse{}, err
	}

	entry := &TimeEntry{
		ID:         uuid.New(),
		EmployeeID: empID,
		EntryDate:  v.entryDate,
		ProjectID:  v.projectID,
		Hours:      v.hours,
		Type:       v.entryType,
		Source:     SourceManual,
		Notes:      v.notes,
	}
	if err := s.repo.WithTx(tx).UpsertManual(ctx, entry); err != nil {
		return EntryResponse{}, err
	}

	if err := s.timesheetSvc.RecomputeWeek(ctx, tx, empID, weekStart); err != nil {
		return EntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EntryResponse{}, err
	}

	s.logger.Debug("time entry upserted",
		zap.String("employee_id", employeeID),
		zap.String("entry_date", req.EntryDate))

	return mapToResponse(entry), nil
}

func (s *service) BulkUpsert(ctx context.Context, employeeID string, req BulkUpsertRequest) (BulkUpsertResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return BulkUpsertResponse{}, timeentryerrors.ErrNotOwner
	}
	if len(req.Entries) == 0 {
		return BulkUpsertResponse{}, timeentryerrors.ErrEmptyBulkRequest
	}

	// Validate everything up front: one bad entry fails the whole batch.
	parsed := make([]validated, len(req.Entries))
	var itemErrors []BulkItemError
	for i, item := range req.Entries {
		v, err := validateEntry(item)
		if err != nil {
			itemErrors = append(itemErrors, BulkItemError{Index: i, Reason: err.Error()})
			continue
		}
		parsed[i] = v
	}
	if len(itemErrors) > 0 {
		return BulkUpsertResponse{}, timeentryerrors.ErrBulkValidationFailed.WithDetails(itemErrors)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BulkUpsertResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Lock-check each distinct week once before any write.
	weeks := make(map[time.Time]struct{})
	for _, v := range parsed {
		weeks[timesheet.WeekStartOf(v.entryDate)] = struct{}{}
	}
	for weekStart := range weeks {
		locked, err := s.timesheetSvc.LockedForWeek(ctx, tx, empID, weekStart)
		if err != nil {
			return BulkUpsertResponse{}, err
		}
		if locked {
			return BulkUpsertResponse{}, timesheeterrors.ErrTimesheetLocked.WithDetails(
				fmt.Sprintf("week of %s is locked", weekStart.Format("2006-01-02")))
		}
		if _, err := s.timesheetSvc.EnsureDraft(ctx, tx, empID, weekStart); err != nil {
			return BulkUpsertResponse{}, err
		}
	}

	resp := BulkUpsertResponse{Entries: make([]EntryResponse, len(parsed))}
	for i, v := range parsed {
		entry := &TimeEntry{
			ID:         uuid.New(),
			EmployeeID: empID,
			EntryDate:  v.entryDate,
			ProjectID:  v.projectID,
			Hours:      v.hours,
			Type:       v.entryType,
			Source:     SourceManual,
			Notes:      v.notes,
		}
		if err := qtx.UpsertManual(ctx, entry); err != nil {
			return BulkUpsertResponse{}, err
		}
		resp.Entries[i] = mapToResponse(entry)
	}

	// One recompute per touched week, after all writes.
	for weekStart := range weeks {
		if err := s.timesheetSvc.RecomputeWeek(ctx, tx, empID, weekStart); err != nil {
			return BulkUpsertResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return BulkUpsertResponse{}, err
	}

	s.logger.Info("bulk time entries upserted",
		zap.String("employee_id", employeeID),
		zap.Int("count", len(parsed)))

	return resp, nil
}

func (s *service) Delete(ctx context.Context, entryID, employeeID string) error {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return timeentryerrors.ErrNotOwner
	}
	if _, err := uuid.Parse(entryID); err != nil {
		return timeentryerrors.ErrInvalidEntryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := qtx.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return timeentryerrors.ErrEntryNotFound
		}
		return err
	}

	if entry.EmployeeID != empID {
		return timeentryerrors.ErrNotOwner
	}
	if entry.Source == SourceClock {
		return timeentryerrors.ErrClockEntryImmutable
	}

	weekStart := timesheet.WeekStartOf(entry.EntryDate)

	locked, err := s.timesheetSvc.LockedForWeek(ctx, tx, empID, weekStart)
	if err != nil {
		return err
	}
	if locked {
		return timesheeterrors.ErrTimesheetLocked
	}

	if err := qtx.Delete(ctx, entryID); err != nil {
		return err
	}
	if err := s.timesheetSvc.RecomputeWeek(ctx, tx, empID, weekStart); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Debug("time entry deleted",
		zap.String("entry_id", entryID),
		zap.String("employee_id", employeeID))

	return nil
}

func (s *service) ListWeek(ctx context.Context, employeeID, weekStart string) ([]EntryResponse, error) {
	day, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return nil, timesheeterrors.ErrInvalidWeekStart
	}

	rows, err := s.repo.ListWeek(ctx, employeeID, timesheet.WeekStartOf(day))
	if err != nil {
		return nil, err
	}

	resp := make([]EntryResponse, len(rows))
	for i := range rows {
		resp[i] = mapToResponse(&rows[i])
	}
	return resp, nil
}

func mapToResponse(e *TimeEntry) EntryResponse {
	resp := EntryResponse{
		ID:         e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		EntryDate:  e.EntryDate.Format("2006-01-02"),
		Hours:      e.Hours,
		Type:       e.Type,
		Source:     e.Source,
		Notes:      e.Notes,
	}
	if e.ProjectID != nil {
		pid := e.ProjectID.String()
		resp.ProjectID = &pid
	}
	return resp
}
