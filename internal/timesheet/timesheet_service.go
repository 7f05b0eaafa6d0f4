package timesheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/cocomgroup/hub-hrms-sub002/internal/employee"
	"github.com/cocomgroup/hub-hrms-sub002/internal/events"
	"github.com/cocomgroup/hub-hrms-sub002/internal/messaging/kafka"
	"github.com/cocomgroup/hub-hrms-sub002/internal/rbac"
	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/contextutil"
	timesheeterrors "github.com/cocomgroup/hub-hrms-sub002/internal/timesheet/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	// EnsureDraft returns the week's timesheet, creating a DRAFT row when
	// none exists yet. Runs inside the caller's transaction.
	EnsureDraft(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, weekStart time.Time) (*Timesheet, error)

	// RecomputeWeek re-derives the week's totals from the full entry set.
	// Runs inside the caller's transaction.
	RecomputeWeek(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, weekStart time.Time) error

	// LockedForWeek reports whether the week's timesheet refuses entry
	// changes. A missing timesheet is not locked.
	LockedForWeek(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, weekStart time.Time) (bool, error)

	Submit(ctx context.Context, id, actorEmployeeID string) (TimesheetResponse, error)
	Approve(ctx context.Context, id, actorEmployeeID, actorRole string) (TimesheetResponse, error)
	Reject(ctx context.Context, id, actorEmployeeID, actorRole, reason string) (TimesheetResponse, error)

	GetWithEntries(ctx context.Context, id, actorEmployeeID, actorRole string) (TimesheetWithEntriesResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]TimesheetResponse, error)
	ListPending(ctx context.Context, actorEmployeeID, actorRole string) ([]TimesheetResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	outboxRepo   kafka.OutboxRepository
	policy       Policy
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employeeRepo employee.Repository, outboxRepo kafka.OutboxRepository, policy Policy) Service {
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		outboxRepo:   outboxRepo,
		policy:       policy,
		logger:       zap.L().Named("timesheet.service"),
	}
}

func (s *service) EnsureDraft(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, weekStart time.Time) (*Timesheet, error) {
	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByEmployeeAndWeek(ctx, employeeID.String(), weekStart)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	t = &Timesheet{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		WeekStart:  weekStart,
		WeekEnd:    WeekEndOf(weekStart),
		Status:     StatusDraft,
	}
	if err := qtx.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) RecomputeWeek(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, weekStart time.Time) error {
	qtx := s.repo.WithTx(tx)

	t, err := s.EnsureDraft(ctx, tx, employeeID, weekStart)
	if err != nil {
		return err
	}

	lines, err := qtx.ListEntryLines(ctx, employeeID.String(), weekStart)
	if err != nil {
		return err
	}

	return qtx.SaveTotals(ctx, t.ID, ComputeTotals(lines, s.policy))
}

func (s *service) LockedForWeek(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, weekStart time.Time) (bool, error) {
	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByEmployeeAndWeek(ctx, employeeID.String(), weekStart)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return t.IsLocked(), nil
}

func (s *service) Submit(ctx context.Context, id, actorEmployeeID string) (TimesheetResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimesheetID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := s.findForUpdate(ctx, qtx, id)
	if err != nil {
		return TimesheetResponse{}, err
	}

	if t.EmployeeID.String() != actorEmployeeID {
		return TimesheetResponse{}, timesheeterrors.ErrNotOwner
	}
	if !isAllowedStatusTransition(t.Status, StatusSubmitted) {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTransition
	}
	if t.TotalHours <= 0 {
		return TimesheetResponse{}, timesheeterrors.ErrEmptyTimesheet
	}

	affected, err := qtx.MarkSubmitted(ctx, id)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if affected == 0 {
		// Lost the race against a concurrent transition.
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTransition
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, t, events.TimesheetSubmittedEventType, StatusSubmitted, actorEmployeeID); err != nil {
		return TimesheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TimesheetResponse{}, err
	}

	s.logger.Info("timesheet submitted",
		zap.String("timesheet_id", id),
		zap.String("employee_id", actorEmployeeID))

	return s.freshResponse(ctx, id)
}

func (s *service) Approve(ctx context.Context, id, actorEmployeeID, actorRole string) (TimesheetResponse, error) {
	return s.review(ctx, id, actorEmployeeID, actorRole, StatusApproved, "")
}

func (s *service) Reject(ctx context.Context, id, actorEmployeeID, actorRole, reason string) (TimesheetResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return TimesheetResponse{}, timesheeterrors.ErrRejectionReasonRequired
	}
	return s.review(ctx, id, actorEmployeeID, actorRole, StatusRejected, reason)
}

func (s *service) review(ctx context.Context, id, actorEmployeeID, actorRole, target, reason string) (TimesheetResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimesheetID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := s.findForUpdate(ctx, qtx, id)
	if err != nil {
		return TimesheetResponse{}, err
	}

	if err := s.authorizeReviewer(ctx, actorEmployeeID, actorRole, t); err != nil {
		return TimesheetResponse{}, err
	}
	if !isAllowedStatusTransition(t.Status, target) {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTransition
	}

	var affected int64
	eventType := events.TimesheetApprovedEventType
	if target == StatusApproved {
		affected, err = qtx.MarkApproved(ctx, id, actorEmployeeID)
	} else {
		eventType = events.TimesheetRejectedEventType
		affected, err = qtx.MarkRejected(ctx, id, actorEmployeeID, reason)
	}
	if err != nil {
		return TimesheetResponse{}, err
	}
	if affected == 0 {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTransition
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, t, eventType, target, actorEmployeeID); err != nil {
		return TimesheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TimesheetResponse{}, err
	}

	s.logger.Info("timesheet reviewed",
		zap.String("timesheet_id", id),
		zap.String("reviewer_id", actorEmployeeID),
		zap.String("status", target))

	return s.freshResponse(ctx, id)
}

func (s *service) GetWithEntries(ctx context.Context, id, actorEmployeeID, actorRole string) (TimesheetWithEntriesResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimesheetWithEntriesResponse{}, timesheeterrors.ErrInvalidTimesheetID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimesheetWithEntriesResponse{}, timesheeterrors.ErrTimesheetNotFound
		}
		return TimesheetWithEntriesResponse{}, err
	}

	if t.EmployeeID.String() != actorEmployeeID {
		if err := s.authorizeReviewer(ctx, actorEmployeeID, actorRole, t); err != nil {
			return TimesheetWithEntriesResponse{}, err
		}
	}

	entries, err := s.repo.ListEntriesForWeek(ctx, t.EmployeeID.String(), t.WeekStart)
	if err != nil {
		return TimesheetWithEntriesResponse{}, err
	}

	resp := TimesheetWithEntriesResponse{
		TimesheetResponse: mapToResponse(t),
		Entries:           make([]EntryResponse, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = mapEntryToResponse(e)
	}
	return resp, nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]TimesheetResponse, error) {
	rows, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapAllToResponse(rows), nil
}

func (s *service) ListPending(ctx context.Context, actorEmployeeID, actorRole string) ([]TimesheetResponse, error) {
	var (
		rows []Timesheet
		err  error
	)
	if actorRole == rbac.RoleHR || actorRole == rbac.RoleAdmin {
		rows, err = s.repo.ListAllSubmitted(ctx)
	} else {
		rows, err = s.repo.ListPendingForManager(ctx, actorEmployeeID)
	}
	if err != nil {
		return nil, err
	}
	return mapAllToResponse(rows), nil
}

func (s *service) findForUpdate(ctx context.Context, qtx Repository, id string) (*Timesheet, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheeterrors.ErrTimesheetNotFound
		}
		return nil, err
	}

	// Re-read through the transaction so the status check and the CAS
	// update see the same row.
	fresh, err := qtx.FindByEmployeeAndWeek(ctx, t.EmployeeID.String(), t.WeekStart)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, timesheeterrors.ErrTimesheetNotFound
		}
		return nil, err
	}
	return fresh, nil
}

func (s *service) authorizeReviewer(ctx context.Context, actorEmployeeID, actorRole string, t *Timesheet) error {
	if actorRole == rbac.RoleHR || actorRole == rbac.RoleAdmin {
		return nil
	}
	ok, err := s.employeeRepo.IsManagerOf(ctx, actorEmployeeID, t.EmployeeID.String())
	if err != nil {
		return err
	}
	if !ok {
		return timesheeterrors.ErrNotAuthorized
	}
	return nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *sql.Tx, t *Timesheet, eventType, status, actorID string) error {
	payload, err := json.Marshal(events.TimesheetLifecycleEvent{
		EventType:   eventType,
		TimesheetID: t.ID.String(),
		EmployeeID:  t.EmployeeID.String(),
		WeekStart:   t.WeekStart.Format("2006-01-02"),
		Status:      status,
		ActorID:     actorID,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "timesheet",
		AggregateID:   t.ID.String(),
		EventType:     eventType,
		Topic:         events.TimesheetLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) freshResponse(ctx context.Context, id string) (TimesheetResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TimesheetResponse{}, err
	}
	return mapToResponse(t), nil
}

func mapToResponse(t *Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:              t.ID.String(),
		EmployeeID:      t.EmployeeID.String(),
		WeekStart:       t.WeekStart.Format("2006-01-02"),
		WeekEnd:         t.WeekEnd.Format("2006-01-02"),
		Status:          t.Status,
		TotalHours:      t.TotalHours,
		RegularHours:    t.RegularHours,
		OvertimeHours:   t.OvertimeHours,
		SubmittedAt:     t.SubmittedAt,
		ReviewedAt:      t.ReviewedAt,
		RejectionReason: t.RejectionReason,
	}
	if t.ReviewedBy != nil {
		rid := t.ReviewedBy.String()
		resp.ReviewedBy = &rid
	}
	return resp
}

func mapAllToResponse(rows []Timesheet) []TimesheetResponse {
	resp := make([]TimesheetResponse, len(rows))
	for i := range rows {
		resp[i] = mapToResponse(&rows[i])
	}
	return resp
}

func mapEntryToResponse(e EntryRef) EntryResponse {
	resp := EntryResponse{
		ID:        e.ID.String(),
		EntryDate: e.EntryDate.Format("2006-01-02"),
		Hours:     e.Hours,
		Type:      e.Type,
		Source:    e.Source,
		Notes:     e.Notes,
	}
	if e.ProjectID != nil {
		pid := e.ProjectID.String()
		resp.ProjectID = &pid
	}
	return resp
}
