package compensation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	compensationerrors "github.com/cocomgroup/hub-hrms-sub002/internal/compensation/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActiveCompensation is the resolver result payroll consumes: a tagged
// variant, not a hierarchy. Exactly one of the two amounts is meaningful
// depending on Type.
type ActiveCompensation struct {
	EmployeeID        string
	Type              string
	HourlyRateCents   int64
	AnnualSalaryCents int64
	PayFrequency      string
	EffectiveDate     time.Time
}

//go:generate mockgen -source=compensation_service.go -destination=mock/compensation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePlanRequest) (PlanResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]PlanResponse, error)
	GetActiveCompensation(ctx context.Context, employeeID string, asOf time.Time) (ActiveCompensation, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreatePlanRequest) (PlanResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PlanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PlanResponse{}, compensationerrors.ErrInvalidEmployeeID
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return PlanResponse{}, compensationerrors.ErrInvalidDateFormat
	}

	if req.Type != TypeHourly && req.Type != TypeSalary {
		return PlanResponse{}, compensationerrors.ErrInvalidCompensationType
	}
	switch req.PayFrequency {
	case FrequencyWeekly, FrequencyBiweekly, FrequencySemimonthly, FrequencyMonthly:
	default:
		return PlanResponse{}, compensationerrors.ErrInvalidPayFrequency
	}
	if req.HourlyRateCents < 0 || req.AnnualSalaryCents < 0 {
		return PlanResponse{}, compensationerrors.ErrInvalidAmount
	}
	if req.Type == TypeHourly && req.HourlyRateCents == 0 {
		return PlanResponse{}, compensationerrors.ErrMissingRate
	}
	if req.Type == TypeSalary && req.AnnualSalaryCents == 0 {
		return PlanResponse{}, compensationerrors.ErrMissingRate
	}

	p := &CompensationPlan{
		ID:                uuid.New(),
		EmployeeID:        employeeID,
		Type:              req.Type,
		HourlyRateCents:   req.HourlyRateCents,
		AnnualSalaryCents: req.AnnualSalaryCents,
		PayFrequency:      req.PayFrequency,
		EffectiveDate:     effectiveDate,
	}

	if err := qtx.Create(ctx, p); err != nil {
		return PlanResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PlanResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]PlanResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, compensationerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]PlanResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetActiveCompensation(ctx context.Context, employeeID string, asOf time.Time) (ActiveCompensation, error) {
	p, err := s.repo.FindActiveByEmployee(ctx, employeeID, asOf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ActiveCompensation{}, compensationerrors.ErrNoActiveCompensation
		}
		return ActiveCompensation{}, err
	}

	return ActiveCompensation{
		EmployeeID:        p.EmployeeID.String(),
		Type:              p.Type,
		HourlyRateCents:   p.HourlyRateCents,
		AnnualSalaryCents: p.AnnualSalaryCents,
		PayFrequency:      p.PayFrequency,
		EffectiveDate:     p.EffectiveDate,
	}, nil
}

func mapToResponse(p CompensationPlan) PlanResponse {
	return PlanResponse{
		ID:                p.ID.String(),
		EmployeeID:        p.EmployeeID.String(),
		Type:              p.Type,
		HourlyRateCents:   p.HourlyRateCents,
		AnnualSalaryCents: p.AnnualSalaryCents,
		PayFrequency:      p.PayFrequency,
		EffectiveDate:     p.EffectiveDate.Format("2006-01-02"),
	}
}
