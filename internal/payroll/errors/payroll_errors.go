package payrollerrors

import (
	"net/http"

	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/apperror"
)

var (
	ErrPeriodNotFound = apperror.New(apperror.CodeNotFound, "payroll period not found", http.StatusNotFound)

	ErrInvalidPeriodID = apperror.New(apperror.CodeInvalidInput, "invalid payroll period id", http.StatusBadRequest)

	ErrInvalidDateRange = apperror.New(apperror.CodeInvalidInput, "period end date must be after start date", http.StatusBadRequest)

	ErrInvalidDateFormat = apperror.New(apperror.CodeInvalidInput, "dates must be formatted YYYY-MM-DD", http.StatusBadRequest)

	ErrPeriodNotOpen = apperror.New("PERIOD_NOT_OPEN", "payroll period is not open", http.StatusConflict)

	ErrAlreadyProcessing = apperror.New("ALREADY_PROCESSING", "payroll period is already being processed", http.StatusConflict)

	ErrStubNotFound = apperror.New(apperror.CodeNotFound, "pay stub not found", http.StatusNotFound)

	ErrInvalidStubID = apperror.New(apperror.CodeInvalidInput, "invalid pay stub id", http.StatusBadRequest)

	ErrStubAlreadyReversed = apperror.New(apperror.CodeInvalidState, "pay stub is already reversed", http.StatusConflict)

	ErrReversalReasonRequired = apperror.New(apperror.CodeInvalidInput, "reversal reason is required", http.StatusBadRequest)

	ErrNotOwner = apperror.New("NOT_OWNER", "pay stub belongs to another employee", http.StatusForbidden)
)
