package clockerrors

import (
	"net/http"

	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New("ALREADY_CLOCKED_IN", "employee already has an open clock session", http.StatusConflict)

	ErrNoOpenSession = apperror.New("NO_OPEN_SESSION", "no open clock session to close", http.StatusConflict)

	ErrInvalidOrder = apperror.New("INVALID_ORDER", "clock-out time must be after clock-in time", http.StatusBadRequest)

	ErrSessionNotFound = apperror.New(apperror.CodeNotFound, "clock session not found", http.StatusNotFound)

	ErrInvalidSessionID = apperror.New(apperror.CodeInvalidInput, "invalid clock session id", http.StatusBadRequest)

	ErrSessionStillOpen = apperror.New(apperror.CodeInvalidState, "notes can only be amended on closed sessions", http.StatusConflict)

	ErrNotOwner = apperror.New("NOT_OWNER", "clock session belongs to another employee", http.StatusForbidden)

	ErrInvalidTimestamp = apperror.New(apperror.CodeInvalidInput, "timestamp must be RFC 3339 formatted", http.StatusBadRequest)
)
