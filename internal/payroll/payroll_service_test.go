package payroll

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/cocomgroup/hub-hrms-sub002/internal/benefits"
	"github.com/cocomgroup/hub-hrms-sub002/internal/compensation"
	compensationerrors "github.com/cocomgroup/hub-hrms-sub002/internal/compensation/errors"
	"github.com/cocomgroup/hub-hrms-sub002/internal/employee"
	"github.com/cocomgroup/hub-hrms-sub002/internal/messaging/kafka"
	payrollerrors "github.com/cocomgroup/hub-hrms-sub002/internal/payroll/errors"
	"github.com/cocomgroup/hub-hrms-sub002/internal/timesheet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn               func(tx *sql.Tx) Repository
	createPeriodFn         func(ctx context.Context, p *PayrollPeriod) error
	findPeriodByIDFn       func(ctx context.Context, id string) (*PayrollPeriod, error)
	listPeriodsFn          func(ctx context.Context) ([]PayrollPeriod, error)
	markPeriodProcessingFn func(ctx context.Context, id string) (int64, error)
	markPeriodClosedFn     func(ctx context.Context, id, processedBy string) (int64, error)
	reopenPeriodFn         func(ctx context.Context, id string) error
	hasActiveStubFn        func(ctx context.Context, employeeID, periodID string) (bool, error)
	createStubFn           func(ctx context.Context, stub *PayStub) error
	findStubByIDFn         func(ctx context.Context, id string) (*PayStub, error)
	listStubsByEmployeeFn  func(ctx context.Context, employeeID string) ([]PayStub, error)
	listStubsByPeriodFn    func(ctx context.Context, periodID string) ([]PayStub, error)
	reverseStubFn          func(ctx context.Context, id, reversedBy, reason string) (int64, error)
	listTimesheetsFn       func(ctx context.Context, employeeID string, start, end time.Time) ([]TimesheetRef, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) CreatePeriod(ctx context.Context, p *PayrollPeriod) error {
	return f.createPeriodFn(ctx, p)
}
func (f *fakeRepo) FindPeriodByID(ctx context.Context, id string) (*PayrollPeriod, error) {
	return f.findPeriodByIDFn(ctx, id)
}
func (f *fakeRepo) ListPeriods(ctx context.Context) ([]PayrollPeriod, error) {
	return f.listPeriodsFn(ctx)
}
func (f *fakeRepo) MarkPeriodProcessing(ctx context.Context, id string) (int64, error) {
	return f.markPeriodProcessingFn(ctx, id)
}
func (f *fakeRepo) MarkPeriodClosed(ctx context.Context, id, processedBy string) (int64, error) {
	return f.markPeriodClosedFn(ctx, id, processedBy)
}
func (f *fakeRepo) ReopenPeriod(ctx context.Context, id string) error {
	return f.reopenPeriodFn(ctx, id)
}
func (f *fakeRepo) HasActiveStub(ctx context.Context, employeeID, periodID string) (bool, error) {
	return f.hasActiveStubFn(ctx, employeeID, periodID)
}
func (f *fakeRepo) CreateStub(ctx context.Context, stub *PayStub) error {
	return f.createStubFn(ctx, stub)
}
func (f *fakeRepo) FindStubByID(ctx context.Context, id string) (*PayStub, error) {
	return f.findStubByIDFn(ctx, id)
}
func (f *fakeRepo) ListStubsByEmployee(ctx context.Context, employeeID string) ([]PayStub, error) {
	return f.listStubsByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) ListStubsByPeriod(ctx context.Context, periodID string) ([]PayStub, error) {
	return f.listStubsByPeriodFn(ctx, periodID)
}
func (f *fakeRepo) ReverseStub(ctx context.Context, id, reversedBy, reason string) (int64, error) {
	return f.reverseStubFn(ctx, id, reversedBy, reason)
}
func (f *fakeRepo) ListTimesheetsOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]TimesheetRef, error) {
	return f.listTimesheetsFn(ctx, employeeID, start, end)
}

type fakeEmployeeRepo struct {
	findAllActiveFn func(ctx context.Context) ([]employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	return f.findAllActiveFn(ctx)
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) IsManagerOf(ctx context.Context, managerID, employeeID string) (bool, error) {
	return false, nil
}

type fakeCompensationService struct {
	getActiveFn func(ctx context.Context, employeeID string, asOf time.Time) (compensation.ActiveCompensation, error)
}

func (f *fakeCompensationService) Create(ctx context.Context, req compensation.CreatePlanRequest) (compensation.PlanResponse, error) {
	return compensation.PlanResponse{}, nil
}
func (f *fakeCompensationService) GetAllByEmployee(ctx context.Context, employeeID string) ([]compensation.PlanResponse, error) {
	return nil, nil
}
func (f *fakeCompensationService) GetActiveCompensation(ctx context.Context, employeeID string, asOf time.Time) (compensation.ActiveCompensation, error) {
	return f.getActiveFn(ctx, employeeID, asOf)
}

type fakeBenefitsService struct {
	deductions int64
	err        error
}

func (f *fakeBenefitsService) Enroll(ctx context.Context, req benefits.EnrollRequest) (benefits.EnrollmentResponse, error) {
	return benefits.EnrollmentResponse{}, nil
}
func (f *fakeBenefitsService) GetAllByEmployee(ctx context.Context, employeeID string) ([]benefits.EnrollmentResponse, error) {
	return nil, nil
}
func (f *fakeBenefitsService) Deactivate(ctx context.Context, id string) (benefits.EnrollmentResponse, error) {
	return benefits.EnrollmentResponse{}, nil
}
func (f *fakeBenefitsService) GetActiveDeductions(ctx context.Context, employeeID string) (int64, error) {
	return f.deductions, f.err
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error {
	return nil
}

type runFixture struct {
	period   *PayrollPeriod
	repo     *fakeRepo
	emp      uuid.UUID
	reopened bool
	closed   bool
	outbox   *fakeOutbox
}

func newRunFixture() *runFixture {
	fx := &runFixture{
		period: &PayrollPeriod{
			ID:        uuid.New(),
			StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			PayDate:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
			Status:    PeriodStatusOpen,
		},
		emp:    uuid.New(),
		outbox: &fakeOutbox{},
	}
	fx.repo = &fakeRepo{
		findPeriodByIDFn: func(ctx context.Context, id string) (*PayrollPeriod, error) {
			return fx.period, nil
		},
		markPeriodProcessingFn: func(ctx context.Context, id string) (int64, error) { return 1, nil },
		markPeriodClosedFn: func(ctx context.Context, id, processedBy string) (int64, error) {
			fx.closed = true
			return 1, nil
		},
		reopenPeriodFn: func(ctx context.Context, id string) error {
			fx.reopened = true
			return nil
		},
		hasActiveStubFn: func(ctx context.Context, employeeID, periodID string) (bool, error) {
			return false, nil
		},
		createStubFn: func(ctx context.Context, stub *PayStub) error { return nil },
		listTimesheetsFn: func(ctx context.Context, employeeID string, start, end time.Time) ([]TimesheetRef, error) {
			return nil, nil
		},
	}
	return fx
}

func (fx *runFixture) service(db *sql.DB, comp compensation.ActiveCompensation) Service {
	return NewService(
		db,
		fx.repo,
		&fakeEmployeeRepo{
			findAllActiveFn: func(ctx context.Context) ([]employee.Employee, error) {
				return []employee.Employee{{ID: fx.emp}}, nil
			},
		},
		&fakeCompensationService{
			getActiveFn: func(ctx context.Context, employeeID string, asOf time.Time) (compensation.ActiveCompensation, error) {
				return comp, nil
			},
		},
		&fakeBenefitsService{},
		fx.outbox,
		timesheet.DefaultPolicy(),
		DefaultDeductionRates(),
	)
}

func TestService_RunPayroll_HourlyWithOvertime(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	fx := newRunFixture()
	var stub *PayStub
	fx.repo.createStubFn = func(ctx context.Context, s *PayStub) error {
		stub = s
		return nil
	}
	fx.repo.listTimesheetsFn = func(ctx context.Context, employeeID string, start, end time.Time) ([]TimesheetRef, error) {
		return []TimesheetRef{{
			EmployeeID:    fx.emp,
			WeekStart:     fx.period.StartDate,
			Status:        timesheet.StatusApproved,
			TotalHours:    45,
			RegularHours:  40,
			OvertimeHours: 5,
		}}, nil
	}

	svc := fx.service(db, compensation.ActiveCompensation{
		Type:            compensation.TypeHourly,
		HourlyRateCents: 2000,
	})

	mock.ExpectBegin()
	mock.ExpectCommit()
	result, err := svc.RunPayroll(context.Background(), fx.period.ID.String(), uuid.New().String())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Warnings)

	// 40h at $20 plus 5h at time-and-a-half.
	assert.Equal(t, int64(95000), stub.GrossPayCents)
	assert.Equal(t, int64(9500), stub.FederalTaxCents)
	assert.Equal(t, int64(3800), stub.StateTaxCents)
	assert.Equal(t, int64(5890), stub.SocialSecurityCents)
	assert.Equal(t, int64(1378), stub.MedicareCents)
	assert.Equal(t, int64(74432), stub.NetPayCents)
	assert.Equal(t, 45.0, stub.HoursWorked)
	assert.Equal(t, 5.0, stub.OvertimeHours)

	assert.True(t, fx.closed)
	// One stub-created event in the stub's transaction, one run-completed
	// after the close.
	assert.Len(t, fx.outbox.created, 2)
	assert.Equal(t, "paystub.created", fx.outbox.created[0].EventType)
	assert.Equal(t, "payroll.run.completed", fx.outbox.created[1].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_RunPayroll_Salary(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	fx := newRunFixture()
	var stub *PayStub
	fx.repo.createStubFn = func(ctx context.Context, s *PayStub) error {
		stub = s
		return nil
	}

	svc := fx.service(db, compensation.ActiveCompensation{
		Type:              compensation.TypeSalary,
		AnnualSalaryCents: 5_200_000,
		PayFrequency:      compensation.FrequencyBiweekly,
	})

	mock.ExpectBegin()
	mock.ExpectCommit()
	result, err := svc.RunPayroll(context.Background(), fx.period.ID.String(), uuid.New().String())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, int64(200_000), stub.GrossPayCents)
	assert.Equal(t, 0.0, stub.HoursWorked)
}

func TestService_RunPayroll_UnapprovedTimesheetWarns(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	fx := newRunFixture()
	fx.repo.createStubFn = func(ctx context.Context, s *PayStub) error {
		t.Fatal("no stub expected for an unapproved timesheet")
		return nil
	}
	fx.repo.listTimesheetsFn = func(ctx context.Context, employeeID string, start, end time.Time) ([]TimesheetRef, error) {
		return []TimesheetRef{{
			EmployeeID: fx.emp,
			WeekStart:  fx.period.StartDate,
			Status:     timesheet.StatusSubmitted,
		}}, nil
	}

	svc := fx.service(db, compensation.ActiveCompensation{
		Type:            compensation.TypeHourly,
		HourlyRateCents: 2000,
	})

	result, err := svc.RunPayroll(context.Background(), fx.period.ID.String(), uuid.New().String())

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Len(t, result.Warnings, 1)
	assert.Equal(t, fx.emp.String(), result.Warnings[0].EmployeeID)
	assert.Contains(t, result.Warnings[0].Reason, "not approved")
	// The run still closes; the employee just sat this one out.
	assert.True(t, fx.closed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_RunPayroll_NoTimesheetsWarns(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	fx := newRunFixture()

	svc := fx.service(db, compensation.ActiveCompensation{
		Type:            compensation.TypeHourly,
		HourlyRateCents: 2000,
	})

	result, err := svc.RunPayroll(context.Background(), fx.period.ID.String(), uuid.New().String())

	assert.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
	assert.Equal(t, "no timesheets for period", result.Warnings[0].Reason)
}

func TestService_RunPayroll_SkipsExistingStub(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	fx := newRunFixture()
	fx.repo.hasActiveStubFn = func(ctx context.Context, employeeID, periodID string) (bool, error) {
		return true, nil
	}
	fx.repo.createStubFn = func(ctx context.Context, s *PayStub) error {
		t.Fatal("no second stub expected")
		return nil
	}

	svc := fx.service(db, compensation.ActiveCompensation{
		Type:              compensation.TypeSalary,
		AnnualSalaryCents: 5_200_000,
		PayFrequency:      compensation.FrequencyBiweekly,
	})

	mock.ExpectBegin()
	mock.ExpectRollback()
	result, err := svc.RunPayroll(context.Background(), fx.period.ID.String(), uuid.New().String())

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, []string{fx.emp.String()}, result.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_RunPayroll_NoCompensationOutOfScope(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	fx := newRunFixture()

	svc := NewService(
		db,
		fx.repo,
		&fakeEmployeeRepo{
			findAllActiveFn: func(ctx context.Context) ([]employee.Employee, error) {
				return []employee.Employee{{ID: fx.emp}}, nil
			},
		},
		&fakeCompensationService{
			getActiveFn: func(ctx context.Context, employeeID string, asOf time.Time) (compensation.ActiveCompensation, error) {
				return compensation.ActiveCompensation{}, compensationerrors.ErrNoActiveCompensation
			},
		},
		&fakeBenefitsService{},
		fx.outbox,
		timesheet.DefaultPolicy(),
		DefaultDeductionRates(),
	)

	result, err := svc.RunPayroll(context.Background(), fx.period.ID.String(), uuid.New().String())

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Warnings)
	assert.True(t, fx.closed)
}

func TestService_RunPayroll_BenefitsDeducted(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	fx := newRunFixture()
	var stub *PayStub
	fx.repo.createStubFn = func(ctx context.Context, s *PayStub) error {
		stub = s
		return nil
	}

	svc := NewService(
		db,
		fx.repo,
		&fakeEmployeeRepo{
			findAllActiveFn: func(ctx context.Context) ([]employee.Employee, error) {
				return []employee.Employee{{ID: fx.emp}}, nil
			},
		},
		&fakeCompensationService{
			getActiveFn: func(ctx context.Context, employeeID string, asOf time.Time) (compensation.ActiveCompensation, error) {
				return compensation.ActiveCompensation{
					Type:              compensation.TypeSalary,
					AnnualSalaryCents: 5_200_000,
					PayFrequency:      compensation.FrequencyBiweekly,
				}, nil
			},
		},
		&fakeBenefitsService{deductions: 15_000},
		fx.outbox,
		timesheet.DefaultPolicy(),
		DefaultDeductionRates(),
	)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.RunPayroll(context.Background(), fx.period.ID.String(), uuid.New().String())

	assert.NoError(t, err)
	assert.Equal(t, int64(15_000), stub.BenefitsDeductionsCents)
	// 200000 gross minus 20000 federal, 8000 state, 12400 ss, 2900 medicare,
	// 15000 benefits.
	assert.Equal(t, int64(141_700), stub.NetPayCents)
}

func TestService_RunPayroll_AlreadyProcessing(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	fx := newRunFixture()
	fx.period.Status = PeriodStatusProcessing
	fx.repo.markPeriodProcessingFn = func(ctx context.Context, id string) (int64, error) {
		return 0, nil
	}

	svc := fx.service(db, compensation.ActiveCompensation{})

	_, err := svc.RunPayroll(context.Background(), fx.period.ID.String(), uuid.New().String())

	assert.ErrorIs(t, err, payrollerrors.ErrAlreadyProcessing)
}

func TestService_RunPayroll_PeriodClosed(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	fx := newRunFixture()
	fx.period.Status = PeriodStatusClosed
	fx.repo.markPeriodProcessingFn = func(ctx context.Context, id string) (int64, error) {
		return 0, nil
	}

	svc := fx.service(db, compensation.ActiveCompensation{})

	_, err := svc.RunPayroll(context.Background(), fx.period.ID.String(), uuid.New().String())

	assert.ErrorIs(t, err, payrollerrors.ErrPeriodNotOpen)
}

func TestService_RunPayroll_ErrorReopensPeriod(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	fx := newRunFixture()
	fx.repo.createStubFn = func(ctx context.Context, s *PayStub) error {
		return errors.New("pay_stubs table on fire")
	}

	svc := fx.service(db, compensation.ActiveCompensation{
		Type:              compensation.TypeSalary,
		AnnualSalaryCents: 5_200_000,
		PayFrequency:      compensation.FrequencyBiweekly,
	})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.RunPayroll(context.Background(), fx.period.ID.String(), uuid.New().String())

	assert.Error(t, err)
	assert.True(t, fx.reopened)
	assert.False(t, fx.closed)
}

func TestService_ReverseStub(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	stubID := uuid.New()
	reversedAt := time.Now().UTC()
	reason := "duplicate payment"
	repo := &fakeRepo{
		reverseStubFn: func(ctx context.Context, id, reversedBy, r string) (int64, error) {
			return 1, nil
		},
		findStubByIDFn: func(ctx context.Context, id string) (*PayStub, error) {
			return &PayStub{
				ID:              stubID,
				EmployeeID:      uuid.New(),
				PayrollPeriodID: uuid.New(),
				ReversedAt:      &reversedAt,
				ReversalReason:  &reason,
			}, nil
		},
	}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, &fakeCompensationService{}, &fakeBenefitsService{}, &fakeOutbox{}, timesheet.DefaultPolicy(), DefaultDeductionRates())

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ReverseStub(context.Background(), stubID.String(), uuid.New().String(), reason)

	assert.NoError(t, err)
	assert.NotNil(t, resp.ReversedAt)
	assert.Equal(t, &reason, resp.ReversalReason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ReverseStub_AlreadyReversed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		reverseStubFn: func(ctx context.Context, id, reversedBy, reason string) (int64, error) {
			return 0, nil
		},
		findStubByIDFn: func(ctx context.Context, id string) (*PayStub, error) {
			return &PayStub{ID: uuid.New()}, nil
		},
	}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, &fakeCompensationService{}, &fakeBenefitsService{}, &fakeOutbox{}, timesheet.DefaultPolicy(), DefaultDeductionRates())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ReverseStub(context.Background(), uuid.New().String(), uuid.New().String(), "double entry")

	assert.ErrorIs(t, err, payrollerrors.ErrStubAlreadyReversed)
}

func TestService_ReverseStub_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		reverseStubFn: func(ctx context.Context, id, reversedBy, reason string) (int64, error) {
			return 0, nil
		},
		findStubByIDFn: func(ctx context.Context, id string) (*PayStub, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, &fakeCompensationService{}, &fakeBenefitsService{}, &fakeOutbox{}, timesheet.DefaultPolicy(), DefaultDeductionRates())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ReverseStub(context.Background(), uuid.New().String(), uuid.New().String(), "ghost stub")

	assert.ErrorIs(t, err, payrollerrors.ErrStubNotFound)
}

func TestService_ReverseStub_RequiresReason(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeEmployeeRepo{}, &fakeCompensationService{}, &fakeBenefitsService{}, &fakeOutbox{}, timesheet.DefaultPolicy(), DefaultDeductionRates())

	_, err := svc.ReverseStub(context.Background(), uuid.New().String(), uuid.New().String(), "  ")

	assert.ErrorIs(t, err, payrollerrors.ErrReversalReasonRequired)
}

func TestService_GetStub_NotOwner(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	stubID := uuid.New()
	repo := &fakeRepo{
		findStubByIDFn: func(ctx context.Context, id string) (*PayStub, error) {
			return &PayStub{ID: stubID, EmployeeID: uuid.New()}, nil
		},
	}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, &fakeCompensationService{}, &fakeBenefitsService{}, &fakeOutbox{}, timesheet.DefaultPolicy(), DefaultDeductionRates())

	_, err := svc.GetStub(context.Background(), stubID.String(), uuid.New().String(), "EMPLOYEE")

	assert.ErrorIs(t, err, payrollerrors.ErrNotOwner)
}

func TestService_GetStub_HRCanRead(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	stubID := uuid.New()
	repo := &fakeRepo{
		findStubByIDFn: func(ctx context.Context, id string) (*PayStub, error) {
			return &PayStub{ID: stubID, EmployeeID: uuid.New(), GrossPayCents: 95000}, nil
		},
	}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, &fakeCompensationService{}, &fakeBenefitsService{}, &fakeOutbox{}, timesheet.DefaultPolicy(), DefaultDeductionRates())

	resp, err := svc.GetStub(context.Background(), stubID.String(), uuid.New().String(), "HR")

	assert.NoError(t, err)
	assert.Equal(t, int64(95000), resp.GrossPayCents)
}

func TestService_CreatePeriod_InvalidRange(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeEmployeeRepo{}, &fakeCompensationService{}, &fakeBenefitsService{}, &fakeOutbox{}, timesheet.DefaultPolicy(), DefaultDeductionRates())

	_, err := svc.CreatePeriod(context.Background(), CreatePeriodRequest{
		StartDate: "2026-03-15",
		EndDate:   "2026-03-02",
		PayDate:   "2026-03-20",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidDateRange)
}
