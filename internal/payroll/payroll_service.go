package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cocomgroup/hub-hrms-sub002/internal/benefits"
	"github.com/cocomgroup/hub-hrms-sub002/internal/compensation"
	compensationerrors "github.com/cocomgroup/hub-hrms-sub002/internal/compensation/errors"
	"github.com/cocomgroup/hub-hrms-sub002/internal/employee"
	"github.com/cocomgroup/hub-hrms-sub002/internal/events"
	"github.com/cocomgroup/hub-hrms-sub002/internal/messaging/kafka"
	payrollerrors "github.com/cocomgroup/hub-hrms-sub002/internal/payroll/errors"
	"github.com/cocomgroup/hub-hrms-sub002/internal/rbac"
	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/contextutil"
	"github.com/cocomgroup/hub-hrms-sub002/internal/timesheet"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	GetPeriod(ctx context.Context, id string) (PeriodResponse, error)
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)

	RunPayroll(ctx context.Context, periodID, actorID string) (RunResultResponse, error)

	GetStub(ctx context.Context, id, actorEmployeeID, actorRole string) (StubResponse, error)
	ListStubsByEmployee(ctx context.Context, employeeID string) ([]StubResponse, error)
	ListStubsByPeriod(ctx context.Context, periodID string) ([]StubResponse, error)
	ReverseStub(ctx context.Context, id, actorID, reason string) (StubResponse, error)

	GenerateStubPDF(ctx context.Context, stubID string) ([]byte, error)
}

type service struct {
	db              *sql.DB
	repo            Repository
	employeeRepo    employee.Repository
	compensationSvc compensation.Service
	benefitsSvc     benefits.Service
	outboxRepo      kafka.OutboxRepository
	policy          timesheet.Policy
	rates           DeductionRates
	logger          *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	compensationSvc compensation.Service,
	benefitsSvc benefits.Service,
	outboxRepo kafka.OutboxRepository,
	policy timesheet.Policy,
	rates DeductionRates,
) Service {
	return &service{
		db:              db,
		repo:            repo,
		employeeRepo:    employeeRepo,
		compensationSvc: compensationSvc,
		benefitsSvc:     benefitsSvc,
		outboxRepo:      outboxRepo,
		policy:          policy,
		rates:           rates,
		logger:          zap.L().Named("payroll.service"),
	}
}

func (s *service) CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return PeriodResponse{}, payrollerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return PeriodResponse{}, payrollerrors.ErrInvalidDateFormat
	}
	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		return PeriodResponse{}, payrollerrors.ErrInvalidDateFormat
	}
	if !end.After(start) {
		return PeriodResponse{}, payrollerrors.ErrInvalidDateRange
	}

	p := &PayrollPeriod{
		ID:        uuid.New(),
		StartDate: start,
		EndDate:   end,
		PayDate:   payDate,
		Status:    PeriodStatusOpen,
	}
	if err := s.repo.CreatePeriod(ctx, p); err != nil {
		return PeriodResponse{}, err
	}

	s.logger.Info("payroll period created",
		zap.String("period_id", p.ID.String()),
		zap.String("start", req.StartDate),
		zap.String("end", req.EndDate))

	return mapPeriodToResponse(p), nil
}

func (s *service) GetPeriod(ctx context.Context, id string) (PeriodResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PeriodResponse{}, payrollerrors.ErrInvalidPeriodID
	}
	p, err := s.repo.FindPeriodByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PeriodResponse{}, payrollerrors.ErrPeriodNotFound
		}
		return PeriodResponse{}, err
	}
	return mapPeriodToResponse(p), nil
}

func (s *service) ListPeriods(ctx context.Context) ([]PeriodResponse, error) {
	rows, err := s.repo.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]PeriodResponse, len(rows))
	for i := range rows {
		resp[i] = mapPeriodToResponse(&rows[i])
	}
	return resp, nil
}

func (s *service) RunPayroll(ctx context.Context, periodID, actorID string) (RunResultResponse, error) {
	if _, err := uuid.Parse(periodID); err != nil {
		return RunResultResponse{}, payrollerrors.ErrInvalidPeriodID
	}

	period, err := s.repo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunResultResponse{}, payrollerrors.ErrPeriodNotFound
		}
		return RunResultResponse{}, err
	}

	affected, err := s.repo.MarkPeriodProcessing(ctx, periodID)
	if err != nil {
		return RunResultResponse{}, err
	}
	if affected == 0 {
		// Re-read to tell a concurrent run apart from a closed period.
		fresh, err := s.repo.FindPeriodByID(ctx, periodID)
		if err == nil && fresh.Status == PeriodStatusProcessing {
			return RunResultResponse{}, payrollerrors.ErrAlreadyProcessing
		}
		return RunResultResponse{}, payrollerrors.ErrPeriodNotOpen
	}

	s.logger.Info("payroll run started",
		zap.String("period_id", periodID),
		zap.String("actor_id", actorID))

	result, runErr := s.processEmployees(ctx, period)
	if runErr != nil {
		// Committed stubs stand; the period goes back to OPEN so the run
		// can be retried and skip them.
		if reopenErr := s.repo.ReopenPeriod(ctx, periodID); reopenErr != nil {
			s.logger.Error("failed to reopen period after run error",
				zap.String("period_id", periodID), zap.Error(reopenErr))
		}
		return RunResultResponse{}, runErr
	}

	if _, err := s.repo.MarkPeriodClosed(ctx, periodID, actorID); err != nil {
		return RunResultResponse{}, err
	}

	s.enqueueRunCompleted(ctx, periodID, actorID, result)

	s.logger.Info("payroll run completed",
		zap.String("period_id", periodID),
		zap.Int("created", result.Created),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("warnings", len(result.Warnings)))

	result.PeriodID = periodID
	return result, nil
}

func (s *service) processEmployees(ctx context.Context, period *PayrollPeriod) (RunResultResponse, error) {
	result := RunResultResponse{
		Skipped:  []string{},
		Warnings: []RunWarning{},
	}

	employees, err := s.employeeRepo.FindAllActive(ctx)
	if err != nil {
		return result, err
	}

	for i := range employees {
		emp := &employees[i]
		created, skipped, warning, err := s.processOne(ctx, period, emp.ID)
		if err != nil {
			return result, fmt.Errorf("payroll for employee %s: %w", emp.ID, err)
		}
		switch {
		case created:
			result.Created++
		case skipped:
			result.Skipped = append(result.Skipped, emp.ID.String())
		case warning != "":
			result.Warnings = append(result.Warnings, RunWarning{
				EmployeeID: emp.ID.String(),
				Reason:     warning,
			})
		}
	}

	return result, nil
}

// processOne computes and commits a single employee's stub in its own
// transaction, so one bad employee never rolls back the others.
func (s *service) processOne(ctx context.Context, period *PayrollPeriod, employeeID uuid.UUID) (created, skipped bool, warning string, err error) {
	comp, err := s.compensationSvc.GetActiveCompensation(ctx, employeeID.String(), period.EndDate)
	if err != nil {
		if errors.Is(err, compensationerrors.ErrNoActiveCompensation) {
			// No plan means the employee is out of scope for this run.
			return false, false, "", nil
		}
		return false, false, "", err
	}

	stub := &PayStub{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		PayrollPeriodID: period.ID,
	}

	switch comp.Type {
	case compensation.TypeHourly:
		warning, err = s.priceHourly(ctx, period, employeeID, comp, stub)
		if err != nil || warning != "" {
			return false, false, warning, err
		}
	case compensation.TypeSalary:
		periods := compensation.PayPeriodsPerYear(comp.PayFrequency)
		stub.GrossPayCents = comp.AnnualSalaryCents / periods
	default:
		return false, false, fmt.Sprintf("unknown compensation type %q", comp.Type), nil
	}

	benefitsCents, err := s.benefitsSvc.GetActiveDeductions(ctx, employeeID.String())
	if err != nil {
		return false, false, "", err
	}

	stub.FederalTaxCents = pctOf(stub.GrossPayCents, s.rates.FederalPct)
	stub.StateTaxCents = pctOf(stub.GrossPayCents, s.rates.StatePct)
	stub.SocialSecurityCents = pctOf(stub.GrossPayCents, s.rates.SocialSecurityPct)
	stub.MedicareCents = pctOf(stub.GrossPayCents, s.rates.MedicarePct)
	stub.BenefitsDeductionsCents = benefitsCents
	stub.NetPayCents = stub.GrossPayCents -
		stub.FederalTaxCents - stub.StateTaxCents -
		stub.SocialSecurityCents - stub.MedicareCents -
		stub.BenefitsDeductionsCents - stub.OtherDeductionsCents

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, false, "", err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.HasActiveStub(ctx, employeeID.String(), period.ID.String())
	if err != nil {
		return false, false, "", err
	}
	if exists {
		return false, true, "", nil
	}

	if err := qtx.CreateStub(ctx, stub); err != nil {
		// A concurrent writer beat us to the (employee, period) slot.
		if isStubConflict(err) {
			return false, true, "", nil
		}
		return false, false, "", err
	}

	if err := s.enqueueStubCreated(ctx, tx, stub); err != nil {
		return false, false, "", err
	}

	if err := tx.Commit(); err != nil {
		return false, false, "", err
	}

	return true, false, "", nil
}

// priceHourly fills gross pay from approved timesheets. A non-empty warning
// means the employee is skipped this run without failing it.
func (s *service) priceHourly(ctx context.Context, period *PayrollPeriod, employeeID uuid.UUID, comp compensation.ActiveCompensation, stub *PayStub) (string, error) {
	sheets, err := s.repo.ListTimesheetsOverlapping(ctx, employeeID.String(), period.StartDate, period.EndDate)
	if err != nil {
		return "", err
	}
	if len(sheets) == 0 {
		return "no timesheets for period", nil
	}

	var regular, overtime float64
	for _, ts := range sheets {
		if ts.Status != timesheet.StatusApproved {
			return fmt.Sprintf("timesheet for week of %s is %s, not approved",
				ts.WeekStart.Format("2006-01-02"), strings.ToLower(ts.Status)), nil
		}
		regular += ts.RegularHours
		overtime += ts.OvertimeHours
	}

	rate := float64(comp.HourlyRateCents)
	gross := regular*rate + overtime*rate*s.policy.OvertimeMultiplier

	stub.GrossPayCents = int64(math.Round(gross))
	stub.HoursWorked = regular + overtime
	stub.OvertimeHours = overtime
	stub.HourlyRateCents = comp.HourlyRateCents
	return "", nil
}

func (s *service) GetStub(ctx context.Context, id, actorEmployeeID, actorRole string) (StubResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StubResponse{}, payrollerrors.ErrInvalidStubID
	}

	stub, err := s.repo.FindStubByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StubResponse{}, payrollerrors.ErrStubNotFound
		}
		return StubResponse{}, err
	}

	if stub.EmployeeID.String() != actorEmployeeID &&
		actorRole != rbac.RoleHR && actorRole != rbac.RoleAdmin {
		return StubResponse{}, payrollerrors.ErrNotOwner
	}

	return mapStubToResponse(stub), nil
}

func (s *service) ListStubsByEmployee(ctx context.Context, employeeID string) ([]StubResponse, error) {
	rows, err := s.repo.ListStubsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapStubsToResponse(rows), nil
}

func (s *service) ListStubsByPeriod(ctx context.Context, periodID string) ([]StubResponse, error) {
	if _, err := uuid.Parse(periodID); err != nil {
		return nil, payrollerrors.ErrInvalidPeriodID
	}
	rows, err := s.repo.ListStubsByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return mapStubsToResponse(rows), nil
}

func (s *service) ReverseStub(ctx context.Context, id, actorID, reason string) (StubResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StubResponse{}, payrollerrors.ErrInvalidStubID
	}
	if strings.TrimSpace(reason) == "" {
		return StubResponse{}, payrollerrors.ErrReversalReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StubResponse{}, err
	}
	defer tx.Rollback()

	affected, err := s.repo.WithTx(tx).ReverseStub(ctx, id, actorID, reason)
	if err != nil {
		return StubResponse{}, err
	}
	if affected == 0 {
		if _, err := s.repo.FindStubByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
			return StubResponse{}, payrollerrors.ErrStubNotFound
		}
		return StubResponse{}, payrollerrors.ErrStubAlreadyReversed
	}

	if err := tx.Commit(); err != nil {
		return StubResponse{}, err
	}

	s.logger.Info("pay stub reversed",
		zap.String("stub_id", id),
		zap.String("actor_id", actorID))

	stub, err := s.repo.FindStubByID(ctx, id)
	if err != nil {
		return StubResponse{}, err
	}
	return mapStubToResponse(stub), nil
}

func (s *service) enqueueStubCreated(ctx context.Context, tx *sql.Tx, stub *PayStub) error {
	payload, err := json.Marshal(events.PayStubCreatedEvent{
		EventType:  events.PayStubCreatedEventType,
		PayStubID:  stub.ID.String(),
		EmployeeID: stub.EmployeeID.String(),
		PeriodID:   stub.PayrollPeriodID.String(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "pay_stub",
		AggregateID:   stub.ID.String(),
		EventType:     events.PayStubCreatedEventType,
		Topic:         events.PayStubCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueRunCompleted(ctx context.Context, periodID, actorID string, result RunResultResponse) {
	payload, err := json.Marshal(events.PayrollRunCompletedEvent{
		EventType:    events.PayrollRunCompletedEventType,
		PeriodID:     periodID,
		ProcessedBy:  actorID,
		StubsCreated: result.Created,
		Skipped:      len(result.Skipped),
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to marshal run completed event", zap.Error(err))
		return
	}

	err = s.outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_period",
		AggregateID:   periodID,
		EventType:     events.PayrollRunCompletedEventType,
		Topic:         events.PayrollRunCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("failed to enqueue run completed event", zap.Error(err))
	}
}

func (s *service) GenerateStubPDF(ctx context.Context, stubID string) ([]byte, error) {
	if _, err := uuid.Parse(stubID); err != nil {
		return nil, payrollerrors.ErrInvalidStubID
	}

	stub, err := s.repo.FindStubByID(ctx, stubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrStubNotFound
		}
		return nil, err
	}

	period, err := s.repo.FindPeriodByID(ctx, stub.PayrollPeriodID.String())
	if err != nil {
		return nil, err
	}

	return buildPayStubPDF(stub, period)
}

func isStubConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_pay_stubs_active"
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_pay_stubs_active")
}

func mapPeriodToResponse(p *PayrollPeriod) PeriodResponse {
	resp := PeriodResponse{
		ID:          p.ID.String(),
		StartDate:   p.StartDate.Format("2006-01-02"),
		EndDate:     p.EndDate.Format("2006-01-02"),
		PayDate:     p.PayDate.Format("2006-01-02"),
		Status:      p.Status,
		ProcessedAt: p.ProcessedAt,
	}
	if p.ProcessedBy != nil {
		pb := p.ProcessedBy.String()
		resp.ProcessedBy = &pb
	}
	return resp
}

func mapStubToResponse(s *PayStub) StubResponse {
	return StubResponse{
		ID:                      s.ID.String(),
		EmployeeID:              s.EmployeeID.String(),
		PayrollPeriodID:         s.PayrollPeriodID.String(),
		GrossPayCents:           s.GrossPayCents,
		FederalTaxCents:         s.FederalTaxCents,
		StateTaxCents:           s.StateTaxCents,
		SocialSecurityCents:     s.SocialSecurityCents,
		MedicareCents:           s.MedicareCents,
		BenefitsDeductionsCents: s.BenefitsDeductionsCents,
		OtherDeductionsCents:    s.OtherDeductionsCents,
		NetPayCents:             s.NetPayCents,
		HoursWorked:             s.HoursWorked,
		OvertimeHours:           s.OvertimeHours,
		HourlyRateCents:         s.HourlyRateCents,
		ReversedAt:              s.ReversedAt,
		ReversalReason:          s.ReversalReason,
	}
}

func mapStubsToResponse(rows []PayStub) []StubResponse {
	resp := make([]StubResponse, len(rows))
	for i := range rows {
		resp[i] = mapStubToResponse(&rows[i])
	}
	return resp
}
