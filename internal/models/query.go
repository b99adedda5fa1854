// internal/models/query.go
package models

import "github.com/shopspring/decimal"

// SortColumn names an orderable score or listing column.
type SortColumn string

const (
	SortSafetyGrade      SortColumn = "safety_grade"
	SortReliabilityScore SortColumn = "reliability_score"
	SortMaintenanceCost  SortColumn = "projected_annual_maintenance_cost"
	SortResaleValue24m   SortColumn = "future_resale_value_24m"
	SortSmartScore       SortColumn = "smart_score"
)

type SortDirection string

const (
	Ascending  SortDirection = "ASC"
	Descending SortDirection = "DESC"
)

type SortKey struct {
	Column    SortColumn
	Direction SortDirection
}

// ListingStatusActive is the only status eligible for recommendation.
const ListingStatusActive = "active"

// CandidateQuery is what the planner hands to the listing store: a price
// ceiling, a status filter, an ordering and a row limit.
type CandidateQuery struct {
	Persona      Persona
	PriceCeiling decimal.Decimal
	Status       string
	OrderBy      []SortKey
	Limit        int
}

// Admits reports whether a listing at price passes the price filter.
func (q CandidateQuery) Admits(price decimal.Decimal) bool {
	return price.LessThanOrEqual(q.PriceCeiling)
}
