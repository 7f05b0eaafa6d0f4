package clock_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cocomgroup/hub-hrms-sub002/internal/clock"
	clockerrors "github.com/cocomgroup/hub-hrms-sub002/internal/clock/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	clockInFn  func(ctx context.Context, employeeID string, req clock.ClockInRequest) (clock.SessionResponse, error)
	clockOutFn func(ctx context.Context, employeeID string, req clock.ClockOutRequest) (clock.SessionResponse, error)
	getOpenFn  func(ctx context.Context, employeeID string) (clock.SessionResponse, error)
}

func (f *fakeService) ClockIn(ctx context.Context, employeeID string, req clock.ClockInRequest) (clock.SessionResponse, error) {
	return f.clockInFn(ctx, employeeID, req)
}
func (f *fakeService) ClockOut(ctx context.Context, employeeID string, req clock.ClockOutRequest) (clock.SessionResponse, error) {
	return f.clockOutFn(ctx, employeeID, req)
}
func (f *fakeService) AmendNotes(ctx context.Context, sessionID, employeeID, notes string) (clock.SessionResponse, error) {
	return clock.SessionResponse{}, nil
}
func (f *fakeService) GetOpen(ctx context.Context, employeeID string) (clock.SessionResponse, error) {
	return f.getOpenFn(ctx, employeeID)
}
func (f *fakeService) ListByEmployee(ctx context.Context, employeeID string) ([]clock.SessionResponse, error) {
	return nil, nil
}

func TestHandler_ClockIn_EmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		clockInFn: func(ctx context.Context, eid string, req clock.ClockInRequest) (clock.SessionResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Nil(t, req.At)
			return clock.SessionResponse{
				ID:         uuid.New().String(),
				EmployeeID: eid,
				ClockIn:    time.Now().UTC(),
			}, nil
		},
	}

	h := clock.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/clock/in", nil)
	h.ClockIn(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "\"ok\":true")
}

func TestHandler_ClockIn_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		clockInFn: func(ctx context.Context, eid string, req clock.ClockInRequest) (clock.SessionResponse, error) {
			return clock.SessionResponse{}, clockerrors.ErrAlreadyClockedIn
		},
	}

	h := clock.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/clock/in", nil)
	h.ClockIn(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_CLOCKED_IN")
}

func TestHandler_ClockOut_RequiresSessionID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		clockOutFn: func(ctx context.Context, eid string, req clock.ClockOutRequest) (clock.SessionResponse, error) {
			t.Fatal("service should not be reached without a session id")
			return clock.SessionResponse{}, nil
		},
	}

	h := clock.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/clock/out", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockOut(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetOpen_NoSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getOpenFn: func(ctx context.Context, employeeID string) (clock.SessionResponse, error) {
			return clock.SessionResponse{}, clockerrors.ErrNoOpenSession
		},
	}

	h := clock.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodGet, "/clock/sessions/open", nil)
	h.GetOpen(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "NO_OPEN_SESSION")
}
