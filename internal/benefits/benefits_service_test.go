package benefits

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn                 func(ctx context.Context, b *BenefitEnrollment) error
	findByIDFn               func(ctx context.Context, id string) (*BenefitEnrollment, error)
	findAllByEmployeeFn      func(ctx context.Context, employeeID string) ([]BenefitEnrollment, error)
	sumActiveContributionsFn func(ctx context.Context, employeeID string) (int64, error)
	updateFn                 func(ctx context.Context, b *BenefitEnrollment) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, b *BenefitEnrollment) error {
	return f.createFn(ctx, b)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*BenefitEnrollment, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]BenefitEnrollment, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) SumActiveContributions(ctx context.Context, employeeID string) (int64, error) {
	return f.sumActiveContributionsFn(ctx, employeeID)
}
func (f *fakeRepo) Update(ctx context.Context, b *BenefitEnrollment) error {
	return f.updateFn(ctx, b)
}

func TestService_Enroll(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var created *BenefitEnrollment
	repo := &fakeRepo{
		createFn: func(ctx context.Context, b *BenefitEnrollment) error {
			created = b
			return nil
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Enroll(context.Background(), EnrollRequest{
		EmployeeID:                uuid.New().String(),
		PlanName:                  "Dental Plus",
		EmployeeContributionCents: 2500,
	})

	assert.NoError(t, err)
	assert.True(t, created.Active)
	assert.Equal(t, int64(2500), resp.EmployeeContributionCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Deactivate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, fid string) (*BenefitEnrollment, error) {
			return &BenefitEnrollment{ID: id, EmployeeID: uuid.New(), Active: true}, nil
		},
		updateFn: func(ctx context.Context, b *BenefitEnrollment) error { return nil },
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Deactivate(context.Background(), id.String())

	assert.NoError(t, err)
	assert.False(t, resp.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Deactivate_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*BenefitEnrollment, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Deactivate(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, errEnrollmentNotFound)
}

func TestService_GetActiveDeductions(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		sumActiveContributionsFn: func(ctx context.Context, employeeID string) (int64, error) {
			return 4200, nil
		},
	}

	svc := NewService(db, repo)

	total, err := svc.GetActiveDeductions(context.Background(), uuid.New().String())

	assert.NoError(t, err)
	assert.Equal(t, int64(4200), total)
}

func TestService_GetActiveDeductions_BadID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	_, err := svc.GetActiveDeductions(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, errInvalidEmployeeID)
}
