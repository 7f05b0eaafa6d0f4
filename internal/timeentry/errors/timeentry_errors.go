package timeentryerrors

import (
	"net/http"

	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/apperror"
)

var (
	ErrEntryNotFound = apperror.New(apperror.CodeNotFound, "time entry not found", http.StatusNotFound)

	ErrInvalidEntryID = apperror.New(apperror.CodeInvalidInput, "invalid time entry id", http.StatusBadRequest)

	ErrInvalidHours = apperror.New("INVALID_HOURS", "hours must be between 0 and 24 in quarter-hour increments", http.StatusBadRequest)

	ErrInvalidEntryType = apperror.New(apperror.CodeInvalidInput, "type must be REGULAR, OVERTIME or PTO", http.StatusBadRequest)

	ErrInvalidDateFormat = apperror.New(apperror.CodeInvalidInput, "date must be formatted YYYY-MM-DD", http.StatusBadRequest)

	ErrInvalidProjectID = apperror.New(apperror.CodeInvalidInput, "invalid project id", http.StatusBadRequest)

	ErrNotOwner = apperror.New("NOT_OWNER", "time entry belongs to another employee", http.StatusForbidden)

	ErrClockEntryImmutable = apperror.New(apperror.CodeInvalidState, "clock-derived entries cannot be edited manually", http.StatusConflict)

	ErrEmptyBulkRequest = apperror.New(apperror.CodeInvalidInput, "bulk request contains no entries", http.StatusBadRequest)

	// ErrBulkValidationFailed carries per-index details attached at the
	// call site via WithDetails.
	ErrBulkValidationFailed = apperror.New(apperror.CodeInvalidInput, "one or more entries failed validation", http.StatusBadRequest)
)
