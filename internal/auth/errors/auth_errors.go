package autherrors

import (
	"net/http"

	"github.com/cocomgroup/hub-hrms-sub002/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(apperror.CodeUnauthorized, "invalid email or password", http.StatusUnauthorized)

	ErrInvalidToken = apperror.New("INVALID_TOKEN", "invalid token", http.StatusUnauthorized)

	ErrTokenExpired = apperror.New("TOKEN_EXPIRED", "token has expired", http.StatusUnauthorized)

	ErrInvalidRefreshToken = apperror.New("INVALID_REFRESH_TOKEN", "invalid refresh token", http.StatusUnauthorized)

	ErrInvalidUserID = apperror.New(apperror.CodeInvalidInput, "invalid user id", http.StatusBadRequest)

	ErrUserNotFound = apperror.New(apperror.CodeNotFound, "user not found", http.StatusNotFound)

	ErrEmailAlreadyRegistered = apperror.New(apperror.CodeConflict, "email already registered", http.StatusConflict)

	ErrTokenGenerationFailed = apperror.New(apperror.CodeInternalError, "failed to generate token", http.StatusInternalServerError)
)
