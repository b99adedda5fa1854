// internal/store/query.go
package store

import (
	"errors"
	"fmt"
	"strings"

	"motomind/internal/models"
)

var (
	ErrUnknownSortColumn = errors.New("unknown sort column")
	ErrUnsupportedStatus = errors.New("unsupported listing status")
	ErrInvalidLimit      = errors.New("limit must be positive")
)

const candidateColumns = `
		SELECT l.id, l.price, l.mileage, l.is_external, l.external_url, l.ownership_type,
		       l.is_gov_verified, l.is_cleared_by_police, l.safety_grade, l.test_validity_date,
		       l.is_suspicious, cm.make, cm.model, cm.year,
		       os.smart_score, os.reliability_score, os.projected_annual_maintenance_cost,
		       os.future_resale_value_24m, os.confidence_index, os.negotiation_strategy,
		       os.end_of_life_warning, os.persona_match_score
		FROM listings l
		JOIN car_models cm ON l.car_model_id = cm.id
		JOIN oracle_scores os ON l.id = os.listing_id
		WHERE l.price <= $1 AND l.status = 'active'`

// sortExpressions whitelists the orderable columns; nothing from a request
// is ever spliced into SQL.
var sortExpressions = map[models.SortColumn]string{
	models.SortSafetyGrade:      "l.safety_grade",
	models.SortReliabilityScore: "os.reliability_score",
	models.SortMaintenanceCost:  "os.projected_annual_maintenance_cost",
	models.SortResaleValue24m:   "os.future_resale_value_24m",
	models.SortSmartScore:       "os.smart_score",
}

// BuildCandidateSQL renders q as a parameterized statement. The only bound
// argument is the price ceiling.
func BuildCandidateSQL(q *models.CandidateQuery) (string, []interface{}, error) {
	if q.Status != models.ListingStatusActive {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedStatus, q.Status)
	}
	if q.Limit <= 0 {
		return "", nil, ErrInvalidLimit
	}

	var b strings.Builder
	b.WriteString(candidateColumns)

	if len(q.OrderBy) > 0 {
		parts := make([]string, 0, len(q.OrderBy))
		for _, key := range q.OrderBy {
			expr, ok := sortExpressions[key.Column]
			if !ok {
				return "", nil, fmt.Errorf("%w: %s", ErrUnknownSortColumn, key.Column)
			}
			dir := "ASC"
			if key.Direction == models.Descending {
				dir = "DESC"
			}
			// explicit: Postgres would put NULLs first under DESC
			parts = append(parts, fmt.Sprintf("%s %s NULLS LAST", expr, dir))
		}
		b.WriteString("\n\t\tORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
	}

	fmt.Fprintf(&b, "\n\t\tLIMIT %d", q.Limit)

	return b.String(), []interface{}{q.PriceCeiling.String()}, nil
}
