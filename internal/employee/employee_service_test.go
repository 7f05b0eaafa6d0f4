package employee

import (
	"context"
	"database/sql"
	"testing"

	employeeerrors "github.com/cocomgroup/hub-hrms-sub002/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn        func(tx *sql.Tx) Repository
	createFn        func(ctx context.Context, e *Employee) error
	findByIDFn      func(ctx context.Context, id string) (*Employee, error)
	findAllFn       func(ctx context.Context) ([]Employee, error)
	findAllActiveFn func(ctx context.Context) ([]Employee, error)
	updateFn        func(ctx context.Context, e *Employee) error
	isManagerOfFn   func(ctx context.Context, managerID, employeeID string) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindAllActive(ctx context.Context) ([]Employee, error) {
	return f.findAllActiveFn(ctx)
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) IsManagerOf(ctx context.Context, managerID, employeeID string) (bool, error) {
	return f.isManagerOfFn(ctx, managerID, employeeID)
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	managerID := uuid.New()
	var created *Employee
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			assert.Equal(t, managerID.String(), id)
			return &Employee{ID: managerID}, nil
		},
		createFn: func(ctx context.Context, e *Employee) error {
			created = e
			return nil
		},
	}

	svc := NewService(db, repo, nil)

	managerRef := managerID.String()
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName:  "Dana Hale",
		Email:     "dana.hale@example.com",
		ManagerID: &managerRef,
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusActive, created.Status)
	assert.Equal(t, managerID, *created.ManagerID)
	assert.Equal(t, "Dana Hale", resp.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_ManagerNotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo, nil)

	managerRef := uuid.New().String()
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName:  "Dana Hale",
		Email:     "dana.hale@example.com",
		ManagerID: &managerRef,
	})

	assert.ErrorIs(t, err, employeeerrors.ErrManagerNotFound)
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, e *Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
		},
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName: "Dana Hale",
		Email:    "dana.hale@example.com",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
}

func TestService_GetOptions_NoCache(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findAllActiveFn: func(ctx context.Context) ([]Employee, error) {
			return []Employee{
				{ID: uuid.New(), FullName: "Dana Hale"},
				{ID: uuid.New(), FullName: "Riley Okafor"},
			}, nil
		},
	}

	svc := NewService(db, repo, nil)

	options, err := svc.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Len(t, options, 2)
	assert.Equal(t, "Dana Hale", options[0].FullName)
}

func TestService_GetByID_InvalidID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil)

	_, err := svc.GetByID(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}

func TestService_Update_ClearsManagerWhenOmitted(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	managerID := uuid.New()
	var updated *Employee
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, fid string) (*Employee, error) {
			return &Employee{ID: id, FullName: "Dana Hale", ManagerID: &managerID, Status: StatusActive}, nil
		},
		updateFn: func(ctx context.Context, e *Employee) error {
			updated = e
			return nil
		},
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Update(context.Background(), id.String(), UpdateEmployeeRequest{
		FullName: "Dana Hale",
		Status:   StatusInactive,
	})

	assert.NoError(t, err)
	assert.Nil(t, updated.ManagerID)
	assert.Equal(t, StatusInactive, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
