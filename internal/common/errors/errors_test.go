package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type recordingLogger struct {
	errors []map[string]interface{}
	warns  []map[string]interface{}
}

func (l *recordingLogger) Error(_ string, fields map[string]interface{}) {
	l.errors = append(l.errors, fields)
}

func (l *recordingLogger) Warn(_ string, fields map[string]interface{}) {
	l.warns = append(l.warns, fields)
}

// ==========================
// Taxonomy Tests
// ==========================

func TestStandardError_Wrapping(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("plan: %w", NewStoreUnavailableError(cause))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, &StandardError{Code: ErrCodeStoreUnavailable})
	assert.NotErrorIs(t, err, &StandardError{Code: ErrCodeInternalError})
	assert.Equal(t, ErrCodeStoreUnavailable, CodeOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsStandardError_UnknownBecomesInternal(t *testing.T) {
	se := AsStandardError(stderrors.New("nil pointer"))
	require.NotNil(t, se)
	assert.Equal(t, ErrCodeInternalError, se.Code)
	assert.Equal(t, "nil pointer", se.Details)

	assert.Nil(t, AsStandardError(nil))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeInvalidRequest, http.StatusInternalServerError},
		{ErrCodeStoreUnavailable, http.StatusInternalServerError},
		{ErrCodeInternalError, http.StatusInternalServerError},
		{ErrCodeGovLookupFailed, http.StatusInternalServerError},
		{ErrCodeInvalidPlate, http.StatusBadRequest},
		{ErrCodeGovRecordNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

// ==========================
// Handler Tests
// ==========================

func TestErrorHandler_WriteHTTPError_Opaque(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid request", NewInvalidRequestError("budget must be a positive number")},
		{"store unavailable", NewStoreUnavailableError(stderrors.New("pq: password authentication failed"))},
		{"unclassified", stderrors.New("index out of range")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLogger{}
			h := NewErrorHandler(log)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/recommendations", nil)
			h.WriteHTTPError(rec, req, tt.err)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"error": "System Error"}, body)

			require.Len(t, log.errors, 1)
			assert.Equal(t, "/api/recommendations", log.errors[0]["path"])
			assert.NotEmpty(t, log.errors[0]["details"])
		})
	}
}

func TestErrorHandler_ClientErrorsLogAtWarn(t *testing.T) {
	log := &recordingLogger{}
	h := NewErrorHandler(log)

	rec := httptest.NewRecorder()
	h.WriteHTTPError(rec, nil, NewGovRecordNotFoundError("12-345-67"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, log.errors)
	assert.Len(t, log.warns, 1)
}
