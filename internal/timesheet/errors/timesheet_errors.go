package timesheeterrors

import (
	"net/http"

	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/apperror"
)

var (
	ErrTimesheetNotFound = apperror.New(apperror.CodeNotFound, "timesheet not found", http.StatusNotFound)

	ErrInvalidTimesheetID = apperror.New(apperror.CodeInvalidInput, "invalid timesheet id", http.StatusBadRequest)

	ErrNotOwner = apperror.New("NOT_OWNER", "timesheet belongs to another employee", http.StatusForbidden)

	ErrNotAuthorized = apperror.New("NOT_AUTHORIZED", "not authorized to review this timesheet", http.StatusForbidden)

	ErrEmptyTimesheet = apperror.New("EMPTY_TIMESHEET", "timesheet has no hours to submit", http.StatusBadRequest)

	ErrInvalidTransition = apperror.New(apperror.CodeInvalidState, "timesheet status does not allow this transition", http.StatusConflict)

	ErrTimesheetLocked = apperror.New("TIMESHEET_LOCKED", "timesheet is submitted or approved and can no longer be modified", http.StatusConflict)

	ErrRejectionReasonRequired = apperror.New(apperror.CodeInvalidInput, "rejection reason is required", http.StatusBadRequest)

	ErrInvalidWeekStart = apperror.New(apperror.CodeInvalidInput, "invalid week_start date", http.StatusBadRequest)
)
