// Package errors provides the error taxonomy shared by the recommendation
// pipeline and the HTTP layer.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Recommendation pipeline
const (
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// Government record lookup
const (
	ErrCodeInvalidPlate      ErrorCode = "INVALID_PLATE"
	ErrCodeGovRecordNotFound ErrorCode = "GOV_RECORD_NOT_FOUND"
	ErrCodeGovLookupFailed   ErrorCode = "GOV_LOOKUP_FAILED"
)

// PublicMessage is the only error text ever returned to API clients.
const PublicMessage = "System Error"

// StandardError represents a structured application error. Details and
// Cause are for server-side logs only.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// Is matches another StandardError by code, so callers can write
// errors.Is(err, &StandardError{Code: ErrCodeStoreUnavailable}).
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMetadata attaches a key/value pair for logging and returns e.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

func newError(code ErrorCode, message string, cause error) *StandardError {
	se := &StandardError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Cause:     cause,
	}
	if cause != nil {
		se.Details = cause.Error()
	}
	return se
}

// NewInvalidRequestError reports a malformed or missing request field.
func NewInvalidRequestError(details string) *StandardError {
	se := newError(ErrCodeInvalidRequest, "Invalid recommendation request", nil)
	se.Details = details
	return se
}

// NewStoreUnavailableError wraps a listing-store failure. It is never retried.
func NewStoreUnavailableError(cause error) *StandardError {
	return newError(ErrCodeStoreUnavailable, "Listing store query failed", cause)
}

// NewInternalError wraps an unexpected defect.
func NewInternalError(cause error) *StandardError {
	return newError(ErrCodeInternalError, "Unexpected error", cause)
}

func NewInvalidPlateError(plate string) *StandardError {
	se := newError(ErrCodeInvalidPlate, "Invalid plate number", nil)
	se.Details = plate
	return se
}

func NewGovRecordNotFoundError(plate string) *StandardError {
	se := newError(ErrCodeGovRecordNotFound, "Government record not found", nil)
	se.Details = plate
	return se
}

func NewGovLookupFailedError(cause error) *StandardError {
	return newError(ErrCodeGovLookupFailed, "Government record lookup failed", cause)
}

// ==========================
// 3. Helpers
// ==========================

// AsStandardError returns err as a StandardError, wrapping anything
// unrecognised as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var se *StandardError
	if stderrors.As(err, &se) {
		return se
	}
	return NewInternalError(err)
}

// CodeOf returns the error code carried by err, INTERNAL_ERROR if none.
func CodeOf(err error) ErrorCode {
	return AsStandardError(err).Code
}

// HTTPStatus maps an error code to the status written to clients. Every
// recommendation failure is a 500.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidPlate:
		return http.StatusBadRequest
	case ErrCodeGovRecordNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory groups codes for metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeInvalidPlate:
		return "client"
	case ErrCodeStoreUnavailable, ErrCodeGovLookupFailed:
		return "dependency"
	case ErrCodeGovRecordNotFound:
		return "not_found"
	default:
		return "internal"
	}
}
