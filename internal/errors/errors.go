package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeNotFound      ErrCode = "NOT_FOUND"
	ErrCodeUpstreamHTTP  ErrCode = "UPSTREAM_HTTP_ERROR"
	ErrCodeNoResponse    ErrCode = "NO_RESPONSE"
	ErrCodeRequestConfig ErrCode = "REQUEST_CONFIG"
	ErrCodeValidation    ErrCode = "VALIDATION_ERROR"
	ErrCodeInternal      ErrCode = "INTERNAL_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string

	// Field names the offending input for validation errors.
	Field string

	// Status and RawBody are set for upstream HTTP errors.
	Status  int
	RawBody string

	Err error
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.Code == ErrCodeUpstreamHTTP {
		msg = fmt.Sprintf("%d - %s", e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewUpstreamHTTPError creates an error for a non-2xx upstream response
func NewUpstreamHTTPError(status int, message, rawBody string) *AppError {
	return &AppError{
		Code:    ErrCodeUpstreamHTTP,
		Message: message,
		Status:  status,
		RawBody: rawBody,
	}
}

// NewNoResponseError creates an error for a request that never got an HTTP status
func NewNoResponseError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeNoResponse,
		Message: "no response from quality service",
		Err:     err,
	}
}

// NewRequestConfigError creates an error for a request that could not be built
func NewRequestConfigError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeRequestConfig,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a new validation error for the given field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Field:   field,
		Message: fmt.Sprintf("invalid %s: %s", field, message),
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// As returns the AppError in err's chain, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsUpstreamHTTP checks if the error is an upstream HTTP error
func IsUpstreamHTTP(err error) bool {
	return hasCode(err, ErrCodeUpstreamHTTP)
}

// IsNoResponse checks if the error is a no-response error
func IsNoResponse(err error) bool {
	return hasCode(err, ErrCodeNoResponse)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

func hasCode(err error, code ErrCode) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}
