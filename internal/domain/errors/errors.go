package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidState      = errors.New("invalid state")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrExceedsBalance    = errors.New("amount exceeds remaining balance")
	ErrConflict          = errors.New("conflict")
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "FORBIDDEN", message, ErrForbidden)
}

func InvalidArgument(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "INVALID_ARGUMENT", message, ErrInvalidArgument)
}

func InvalidState(message string) *AppError {
	return NewAppError(http.StatusConflict, "INVALID_STATE", message, ErrInvalidState)
}

func InsufficientFunds(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", message, ErrInsufficientFunds)
}

func ExceedsBalance(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, "EXCEEDS_BALANCE", message, ErrExceedsBalance)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, "CONFLICT", message, ErrConflict)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", err)
}

// FromError converts any error into an AppError. Bare sentinels get their
// default status; anything unknown becomes an internal error.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound("resource not found")
	case errors.Is(err, ErrUnauthorized):
		return Unauthorized("unauthorized")
	case errors.Is(err, ErrForbidden):
		return Forbidden("forbidden")
	case errors.Is(err, ErrInvalidArgument):
		return InvalidArgument(err.Error())
	case errors.Is(err, ErrInvalidState):
		return InvalidState(err.Error())
	case errors.Is(err, ErrInsufficientFunds):
		return InsufficientFunds("Insufficient balance")
	case errors.Is(err, ErrExceedsBalance):
		return ExceedsBalance(err.Error())
	case errors.Is(err, ErrConflict):
		return Conflict(err.Error())
	default:
		return InternalError(err)
	}
}
