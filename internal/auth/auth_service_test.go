package auth

import (
	"context"
	"database/sql"
	"testing"

	autherrors "github.com/cocomgroup/hub-hrms-sub002/internal/auth/errors"
	"github.com/cocomgroup/hub-hrms-sub002/internal/employee"
	employeeerrors "github.com/cocomgroup/hub-hrms-sub002/internal/employee/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn     func(ctx context.Context, user *User) error
	getByEmailFn func(ctx context.Context, email string) (*User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*User, error)
}

func (f *fakeRepo) Create(ctx context.Context, user *User) error { return f.createFn(ctx, user) }
func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return f.getByEmailFn(ctx, email)
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.getByIDFn(ctx, id)
}

type fakeEmployeeRepo struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) IsManagerOf(ctx context.Context, managerID, employeeID string) (bool, error) {
	return false, nil
}

func activeUser(t *testing.T, password string) *User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	employeeID := uuid.New()
	return &User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		Name:       "Dana Hale",
		Email:      "dana.hale@example.com",
		Password:   string(hashed),
		Role:       "MANAGER",
		IsActive:   true,
	}
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := activeUser(t, "hunter2!")

	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			assert.Equal(t, user.Email, email)
			return user, nil
		},
	}

	svc := NewService(repo, &fakeEmployeeRepo{})

	access, refresh, resp, err := svc.Login(context.Background(), user.Email, "hunter2!")

	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, "MANAGER", resp.Role)

	token, err := jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, user.EmployeeID.String(), claims["employee_id"])
	assert.Equal(t, "MANAGER", claims["role"])
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := activeUser(t, "hunter2!")

	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}

	svc := NewService(repo, &fakeEmployeeRepo{})

	_, _, _, err := svc.Login(context.Background(), user.Email, "letmein")

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_InactiveUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := activeUser(t, "hunter2!")
	user.IsActive = false

	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}

	svc := NewService(repo, &fakeEmployeeRepo{})

	_, _, _, err := svc.Login(context.Background(), user.Email, "hunter2!")

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(repo, &fakeEmployeeRepo{})

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter2!")

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Register_DefaultsRole(t *testing.T) {
	employeeID := uuid.New()
	var created *User
	repo := &fakeRepo{
		createFn: func(ctx context.Context, user *User) error {
			created = user
			return nil
		},
	}
	employees := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: employeeID}, nil
		},
	}

	svc := NewService(repo, employees)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		EmployeeID: employeeID.String(),
		Email:      "dana.hale@example.com",
		Name:       "Dana Hale",
		Password:   "hunter2!",
	})

	assert.NoError(t, err)
	assert.Equal(t, "EMPLOYEE", created.Role)
	assert.NotEqual(t, "hunter2!", created.Password)
	assert.Equal(t, employeeID.String(), resp.EmployeeID)
}

func TestService_Register_UnknownEmployee(t *testing.T) {
	repo := &fakeRepo{}
	employees := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(repo, employees)

	_, err := svc.Register(context.Background(), RegisterRequest{
		EmployeeID: uuid.New().String(),
		Email:      "dana.hale@example.com",
		Name:       "Dana Hale",
		Password:   "hunter2!",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestService_RefreshToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(&fakeRepo{}, &fakeEmployeeRepo{})

	_, _, _, err := svc.RefreshToken(context.Background(), "not.a.jwt")

	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}
