package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "motomind/internal/common/errors"
	"motomind/internal/common/logger"
	"motomind/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var candidateCols = []string{
	"id", "price", "mileage", "is_external", "external_url", "ownership_type",
	"is_gov_verified", "is_cleared_by_police", "safety_grade", "test_validity_date",
	"is_suspicious", "make", "model", "year",
	"smart_score", "reliability_score", "projected_annual_maintenance_cost",
	"future_resale_value_24m", "confidence_index", "negotiation_strategy",
	"end_of_life_warning", "persona_match_score",
}

func createTestStore(t *testing.T) (*PostgresListingStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresListingStore(db, logger.NewTestLogger(t)), mock
}

func safetyFirstQuery() *models.CandidateQuery {
	return &models.CandidateQuery{
		Persona:      models.PersonaSafetyFirst,
		PriceCeiling: decimal.NewFromInt(11500),
		Status:       models.ListingStatusActive,
		OrderBy: []models.SortKey{
			{Column: models.SortSafetyGrade, Direction: models.Descending},
			{Column: models.SortReliabilityScore, Direction: models.Descending},
		},
		Limit: 10,
	}
}

const selectPrefix = `SELECT l\.id, l\.price, l\.mileage, l\.is_external, .* FROM listings l JOIN car_models cm ON l\.car_model_id = cm\.id JOIN oracle_scores os ON l\.id = os\.listing_id WHERE l\.price <= \$1 AND l\.status = 'active'`

// ==========================
// SQL Rendering Tests
// ==========================

func TestBuildCandidateSQL_OrderByPersona(t *testing.T) {
	tests := []struct {
		name    string
		orderBy []models.SortKey
		want    string
	}{
		{
			name: "safety first",
			orderBy: []models.SortKey{
				{Column: models.SortSafetyGrade, Direction: models.Descending},
				{Column: models.SortReliabilityScore, Direction: models.Descending},
			},
			want: "ORDER BY l.safety_grade DESC NULLS LAST, os.reliability_score DESC NULLS LAST",
		},
		{
			name: "economizer",
			orderBy: []models.SortKey{
				{Column: models.SortMaintenanceCost, Direction: models.Ascending},
				{Column: models.SortResaleValue24m, Direction: models.Descending},
			},
			want: "ORDER BY os.projected_annual_maintenance_cost ASC NULLS LAST, os.future_resale_value_24m DESC NULLS LAST",
		},
		{
			name:    "smart score",
			orderBy: []models.SortKey{{Column: models.SortSmartScore, Direction: models.Descending}},
			want:    "ORDER BY os.smart_score DESC NULLS LAST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := safetyFirstQuery()
			q.OrderBy = tt.orderBy

			query, args, err := BuildCandidateSQL(q)
			require.NoError(t, err)
			assert.Contains(t, collapse(query), tt.want+" LIMIT 10")
			assert.Equal(t, []interface{}{"11500"}, args)
		})
	}
}

func TestBuildCandidateSQL_Rejects(t *testing.T) {
	q := safetyFirstQuery()
	q.OrderBy = []models.SortKey{{Column: "price; DROP TABLE listings", Direction: models.Ascending}}
	_, _, err := BuildCandidateSQL(q)
	assert.ErrorIs(t, err, ErrUnknownSortColumn)

	q = safetyFirstQuery()
	q.Status = "sold"
	_, _, err = BuildCandidateSQL(q)
	assert.ErrorIs(t, err, ErrUnsupportedStatus)

	q = safetyFirstQuery()
	q.Limit = 0
	_, _, err = BuildCandidateSQL(q)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func collapse(s string) string {
	return regexp.MustCompile(`\s+`).ReplaceAllString(s, " ")
}

// ==========================
// Query Execution Tests
// ==========================

func TestPostgresListingStore_FindCandidates(t *testing.T) {
	s, mock := createTestStore(t)

	testDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(candidateCols).
		AddRow("l-1", 9500.0, int64(120000), false, nil, "private",
			true, true, int64(3), testDate,
			false, "Toyota", "Corolla", int64(2006),
			81.5, 7.2, 1400.0,
			6000.0, 0.8, "Offer 8% below asking",
			false, nil).
		AddRow("l-2", 11500.0, nil, true, "https://example.com/car/2", nil,
			false, false, nil, nil,
			nil, "Mazda", "3", int64(2019),
			nil, nil, nil,
			nil, nil, nil,
			nil, 0.4)

	mock.ExpectQuery(selectPrefix+` ORDER BY l\.safety_grade DESC NULLS LAST, os\.reliability_score DESC NULLS LAST LIMIT 10`).
		WithArgs("11500").
		WillReturnRows(rows)

	out, err := s.FindCandidates(context.Background(), safetyFirstQuery())
	require.NoError(t, err)
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, "l-1", first.ID)
	assert.Equal(t, 9500.0, first.Price)
	assert.Equal(t, int64(120000), *first.Mileage)
	assert.False(t, first.IsExternal)
	assert.Nil(t, first.ExternalURL)
	assert.Equal(t, "private", *first.OwnershipType)
	assert.True(t, first.GovVerified)
	assert.Equal(t, 3, *first.SafetyGrade)
	assert.Equal(t, testDate, *first.TestValidityDate)
	assert.Equal(t, 2006, first.Year)
	assert.Equal(t, 1400.0, *first.MaintenanceCost)
	assert.Equal(t, "Offer 8% below asking", *first.NegotiationStrategy)
	assert.Nil(t, first.PersonaMatchScore)

	second := out[1]
	assert.True(t, second.IsExternal)
	assert.Equal(t, "https://example.com/car/2", *second.ExternalURL)
	assert.Nil(t, second.SafetyGrade)
	assert.Nil(t, second.Mileage)
	assert.Nil(t, second.MaintenanceCost)
	assert.Nil(t, second.NegotiationStrategy)
	assert.False(t, second.Suspicious)
	assert.Equal(t, 0.4, *second.PersonaMatchScore)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListingStore_Empty(t *testing.T) {
	s, mock := createTestStore(t)
	mock.ExpectQuery(selectPrefix).WithArgs("11500").WillReturnRows(sqlmock.NewRows(candidateCols))

	out, err := s.FindCandidates(context.Background(), safetyFirstQuery())
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Error Handling Tests
// ==========================

func TestPostgresListingStore_Errors(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
	}{
		{
			name: "query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(selectPrefix).WithArgs("11500").
					WillReturnError(errors.New("dial tcp: connection refused"))
			},
		},
		{
			name: "row cannot be scanned",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(candidateCols).AddRow(
					"l-1", "not-a-price", nil, false, nil, nil,
					false, false, nil, nil,
					false, "Fiat", "Punto", int64(2001),
					nil, nil, nil, nil, nil, nil, false, nil)
				mock.ExpectQuery(selectPrefix).WithArgs("11500").WillReturnRows(rows)
			},
		},
		{
			name: "iteration fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(candidateCols).
					AddRow("l-1", 9000.0, nil, false, nil, nil,
						false, false, nil, nil,
						false, "Fiat", "Punto", int64(2001),
						nil, nil, nil, nil, nil, nil, false, nil).
					RowError(0, errors.New("connection reset"))
				mock.ExpectQuery(selectPrefix).WithArgs("11500").WillReturnRows(rows)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := createTestStore(t)
			tt.setupMock(mock)

			out, err := s.FindCandidates(context.Background(), safetyFirstQuery())
			assert.Nil(t, out)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeStoreUnavailable, apperrors.CodeOf(err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresListingStore_InvalidQueryNeverHitsDB(t *testing.T) {
	s, mock := createTestStore(t)
	q := safetyFirstQuery()
	q.Limit = -1

	_, err := s.FindCandidates(context.Background(), q)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternalError, apperrors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
