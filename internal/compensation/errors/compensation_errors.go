package compensationerrors

import (
	"net/http"

	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidCompensationType = apperror.New(
		apperror.CodeInvalidInput,
		"compensation type must be HOURLY or SALARY",
		http.StatusBadRequest,
	)
	ErrInvalidPayFrequency = apperror.New(
		apperror.CodeInvalidInput,
		"pay_frequency must be WEEKLY, BIWEEKLY, SEMIMONTHLY or MONTHLY",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"compensation amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrMissingRate = apperror.New(
		apperror.CodeInvalidInput,
		"hourly plans require hourly_rate_cents, salary plans require annual_salary_cents",
		http.StatusBadRequest,
	)
	ErrNoActiveCompensation = apperror.New(
		apperror.CodeNotFound,
		"no active compensation plan for employee",
		http.StatusNotFound,
	)
)
