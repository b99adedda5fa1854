package govcheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "motomind/internal/common/errors"
	"motomind/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2026, time.June, 1, 15, 30, 0, 0, time.UTC)

func createTestConfig() *Config {
	return &Config{
		KeyPrefix: "gov:vehicle:",
		Timeout:   time.Second,
	}
}

func createTestHandler(t *testing.T, client *redis.Client) *Handler {
	h := NewHandler(createTestConfig(), client, logger.NewTestLogger(t))
	h.now = func() time.Time { return fixedNow }
	return h
}

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Lookup(t *testing.T) {
	mr, client := setupMiniredis(t)
	mr.Set("gov:vehicle:12-345-67", `{"safety":8,"test_validity":"2026-12-01","stolen":false}`)
	mr.Set("gov:vehicle:88-999-00", `{"safety":5,"test_validity":"2023-01-01","stolen":false}`)
	mr.Set("gov:vehicle:66-666-66", `{"safety":2,"test_validity":"2027-01-01","stolen":true}`)
	mr.Set("gov:vehicle:11-111-11", `{"safety":7,"test_validity":"2026-06-01","stolen":false}`)

	tests := []struct {
		plate      string
		wantStatus Status
		wantSafety int
	}{
		{"12-345-67", StatusValid, 8},
		{"88-999-00", StatusTestExpired, 5},
		{"66-666-66", StatusStolen, 2},
		{"11-111-11", StatusValid, 7},
	}

	h := createTestHandler(t, client)
	for _, tt := range tests {
		t.Run(tt.plate, func(t *testing.T) {
			out, err := h.Lookup(context.Background(), tt.plate)
			require.NoError(t, err)
			assert.Equal(t, tt.plate, out.Plate)
			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Equal(t, tt.wantSafety, out.SafetyGrade)
		})
	}
}

func TestHandler_Lookup_NotFound(t *testing.T) {
	_, client := setupMiniredis(t)

	_, err := createTestHandler(t, client).Lookup(context.Background(), "10-200-30")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeGovRecordNotFound, apperrors.CodeOf(err))
}

func TestHandler_Lookup_InvalidPlate(t *testing.T) {
	_, client := setupMiniredis(t)
	h := createTestHandler(t, client)

	for _, plate := range []string{"", "1234567", "12-345-678", "ab-cde-fg", "12-345-67*"} {
		_, err := h.Lookup(context.Background(), plate)
		require.Error(t, err, plate)
		assert.Equal(t, apperrors.ErrCodeInvalidPlate, apperrors.CodeOf(err))
	}
}

func TestHandler_Lookup_CorruptRecord(t *testing.T) {
	mr, client := setupMiniredis(t)
	mr.Set("gov:vehicle:12-345-67", `not json`)
	mr.Set("gov:vehicle:12-345-68", `{"safety":8,"test_validity":"soon"}`)

	h := createTestHandler(t, client)
	for _, plate := range []string{"12-345-67", "12-345-68"} {
		_, err := h.Lookup(context.Background(), plate)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeGovLookupFailed, apperrors.CodeOf(err))
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Lookup_RedisFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("gov:vehicle:12-345-67").SetErr(errors.New("READONLY You can't write against a read only replica"))

	_, err := createTestHandler(t, client).Lookup(context.Background(), "12-345-67")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeGovLookupFailed, apperrors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Lookup_RedisNil(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("gov:vehicle:12-345-67").RedisNil()

	_, err := createTestHandler(t, client).Lookup(context.Background(), "12-345-67")
	assert.Equal(t, apperrors.ErrCodeGovRecordNotFound, apperrors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Ping(t *testing.T) {
	mr, client := setupMiniredis(t)
	h := createTestHandler(t, client)

	assert.NoError(t, h.Ping(context.Background()))

	mr.Close()
	assert.Error(t, h.Ping(context.Background()))
}
