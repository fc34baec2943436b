package shared

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrRateLimited          = errors.New("rate limit exceeded")
	ErrUpstreamUnavailable  = errors.New("text generation unavailable")
)

// AppError carries an HTTP status alongside the wrapped cause.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(status int, err error, message string) *AppError {
	appErr := &AppError{StatusCode: status, Message: message, Err: err}
	if err != nil && status < http.StatusInternalServerError {
		appErr.Data = err.Error()
	}
	return appErr
}

func NewBadRequestError(err error, message string) *AppError {
	return newAppError(http.StatusBadRequest, err, message)
}

func NewUnauthorizedError(err error, message string) *AppError {
	return newAppError(http.StatusUnauthorized, err, message)
}

func NewForbiddenError(err error, message string) *AppError {
	return newAppError(http.StatusForbidden, err, message)
}

func NewNotFoundError(err error, message string) *AppError {
	return newAppError(http.StatusNotFound, err, message)
}

func NewConflictError(err error, message string) *AppError {
	return newAppError(http.StatusConflict, err, message)
}

func NewTooManyRequestsError(err error, message string) *AppError {
	return newAppError(http.StatusTooManyRequests, err, message)
}

func NewUpstreamError(err error, message string) *AppError {
	return newAppError(http.StatusBadGateway, err, message)
}

func NewInternalError(err error, message string) *AppError {
	return newAppError(http.StatusInternalServerError, err, message)
}

// GetAppError reports the first AppError in err's chain.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound matches both typed not-found errors and the conversation sentinel.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrConversationNotFound) {
		return true
	}
	appErr, ok := GetAppError(err)
	return ok && appErr.StatusCode == http.StatusNotFound
}

func IsConflict(err error) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.StatusCode == http.StatusConflict
}
