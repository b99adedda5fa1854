// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	apperrors "motomind/internal/common/errors"
	"motomind/internal/common/logger"
	"motomind/internal/models"
)

// PostgresListingStore runs the candidate query against the listings,
// car_models and oracle_scores tables.
type PostgresListingStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresListingStore(db *sql.DB, log logger.Logger) *PostgresListingStore {
	return &PostgresListingStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "listing-store"}),
	}
}

// FindCandidates executes exactly one query. Failures are not retried and
// come back as STORE_UNAVAILABLE.
func (s *PostgresListingStore) FindCandidates(ctx context.Context, q *models.CandidateQuery) ([]models.Recommendation, error) {
	query, args, err := BuildCandidateSQL(q)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	defer rows.Close()

	out := make([]models.Recommendation, 0, q.Limit)
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, apperrors.NewStoreUnavailableError(fmt.Errorf("scan candidate: %w", err))
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}

	s.logger.Debug("candidate query executed", map[string]interface{}{
		"persona":         q.Persona.String(),
		"rows":            len(out),
		"executionTimeMs": time.Since(start).Milliseconds(),
	})

	return out, nil
}

func scanRecommendation(rows *sql.Rows) (models.Recommendation, error) {
	var (
		rec              models.Recommendation
		mileage          sql.NullInt64
		isExternal       sql.NullBool
		externalURL      sql.NullString
		ownershipType    sql.NullString
		govVerified      sql.NullBool
		policeCleared    sql.NullBool
		safetyGrade      sql.NullInt64
		testValidityDate sql.NullTime
		suspicious       sql.NullBool
		smartScore       sql.NullFloat64
		reliability      sql.NullFloat64
		maintenance      sql.NullFloat64
		resale           sql.NullFloat64
		confidence       sql.NullFloat64
		strategy         sql.NullString
		endOfLife        sql.NullBool
		personaMatch     sql.NullFloat64
	)

	err := rows.Scan(
		&rec.ID, &rec.Price, &mileage, &isExternal, &externalURL, &ownershipType,
		&govVerified, &policeCleared, &safetyGrade, &testValidityDate,
		&suspicious, &rec.Make, &rec.Model, &rec.Year,
		&smartScore, &reliability, &maintenance,
		&resale, &confidence, &strategy,
		&endOfLife, &personaMatch,
	)
	if err != nil {
		return models.Recommendation{}, err
	}

	if mileage.Valid {
		rec.Mileage = &mileage.Int64
	}
	rec.IsExternal = isExternal.Bool
	rec.ExternalURL = nullString(externalURL)
	rec.OwnershipType = nullString(ownershipType)
	rec.GovVerified = govVerified.Bool
	rec.PoliceCleared = policeCleared.Bool
	if safetyGrade.Valid {
		g := int(safetyGrade.Int64)
		rec.SafetyGrade = &g
	}
	if testValidityDate.Valid {
		rec.TestValidityDate = &testValidityDate.Time
	}
	rec.Suspicious = suspicious.Bool

	rec.SmartScore = nullFloat(smartScore)
	rec.ReliabilityScore = nullFloat(reliability)
	rec.MaintenanceCost = nullFloat(maintenance)
	rec.ResaleValue24m = nullFloat(resale)
	rec.ConfidenceIndex = nullFloat(confidence)
	rec.NegotiationStrategy = nullString(strategy)
	rec.EndOfLifeWarning = endOfLife.Bool
	rec.PersonaMatchScore = nullFloat(personaMatch)

	return rec, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
