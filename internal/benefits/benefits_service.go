package benefits

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errInvalidEmployeeID  = apperror.New(apperror.CodeInvalidInput, "invalid employee id", http.StatusBadRequest)
	errEnrollmentNotFound = apperror.New(apperror.CodeNotFound, "benefit enrollment not found", http.StatusNotFound)
)

//go:generate mockgen -source=benefits_service.go -destination=mock/benefits_service_mock.go -package=mock
type Service interface {
	Enroll(ctx context.Context, req EnrollRequest) (EnrollmentResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID string) ([]EnrollmentResponse, error)
	Deactivate(ctx context.Context, id string) (EnrollmentResponse, error)
	// GetActiveDeductions returns the per-period employee contribution in
	// cents; payroll subtracts it from gross.
	GetActiveDeductions(ctx context.Context, employeeID string) (int64, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Enroll(ctx context.Context, req EnrollRequest) (EnrollmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EnrollmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EnrollmentResponse{}, errInvalidEmployeeID
	}

	b := &BenefitEnrollment{
		ID:                        uuid.New(),
		EmployeeID:                employeeID,
		PlanName:                  req.PlanName,
		EmployeeContributionCents: req.EmployeeContributionCents,
		Active:                    true,
	}

	if err := qtx.Create(ctx, b); err != nil {
		return EnrollmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EnrollmentResponse{}, err
	}

	return mapToResponse(*b), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string) ([]EnrollmentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, errInvalidEmployeeID
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]EnrollmentResponse, len(rows))
	for i, b := range rows {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) Deactivate(ctx context.Context, id string) (EnrollmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EnrollmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EnrollmentResponse{}, errEnrollmentNotFound
		}
		return EnrollmentResponse{}, err
	}

	b.Active = false
	if err := qtx.Update(ctx, b); err != nil {
		return EnrollmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EnrollmentResponse{}, err
	}

	return mapToResponse(*b), nil
}

func (s *service) GetActiveDeductions(ctx context.Context, employeeID string) (int64, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return 0, errInvalidEmployeeID
	}
	return s.repo.SumActiveContributions(ctx, employeeID)
}

func mapToResponse(b BenefitEnrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:                        b.ID.String(),
		EmployeeID:                b.EmployeeID.String(),
		PlanName:                  b.PlanName,
		EmployeeContributionCents: b.EmployeeContributionCents,
		Active:                    b.Active,
	}
}
