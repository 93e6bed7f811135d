package http

import (
	"fmt"
	"net/http"
)

// Error codes carried in the envelope's errors list.
const (
	CodeBadRequest  = "ERR_BAD_REQUEST"
	CodeNotFound    = "ERR_NOT_FOUND"
	CodeUnavailable = "ERR_UNAVAILABLE"
	CodeInternal    = "ERR_INTERNAL"
)

// AppError is a usecase failure translated for HTTP. Message is shown to the
// caller as the detail; Err is kept for logs only.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
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

func newAppError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

// WithError attaches the underlying cause.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func NotFoundError(message string) *AppError {
	return newAppError(CodeNotFound, http.StatusNotFound, message)
}

func BadRequestError(message string) *AppError {
	return newAppError(CodeBadRequest, http.StatusBadRequest, message)
}

func ServiceUnavailableError(message string) *AppError {
	return newAppError(CodeUnavailable, http.StatusServiceUnavailable, message)
}

// InternalError hides its cause from the response body.
func InternalError(message string) *AppError {
	return newAppError(CodeInternal, http.StatusInternalServerError, message)
}
