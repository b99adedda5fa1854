// internal/models/listing.go
package models

import "time"

// Listing is a row of the external listing store joined with its model
// metadata. JSON names follow the store columns.
type Listing struct {
	ID               string     `json:"id"`
	Price            float64    `json:"price"`
	Mileage          *int64     `json:"mileage"`
	IsExternal       bool       `json:"is_external"`
	ExternalURL      *string    `json:"external_url"`
	OwnershipType    *string    `json:"ownership_type"`
	GovVerified      bool       `json:"is_gov_verified"`
	PoliceCleared    bool       `json:"is_cleared_by_police"`
	SafetyGrade      *int       `json:"safety_grade"`
	TestValidityDate *time.Time `json:"test_validity_date"`
	Suspicious       bool       `json:"is_suspicious"`
	Make             string     `json:"make"`
	Model            string     `json:"model"`
	Year             int        `json:"year"`
}

// ScoreBundle holds the upstream scores for one listing. Nil pointers are
// NULL columns.
type ScoreBundle struct {
	SmartScore          *float64 `json:"smart_score"`
	ReliabilityScore    *float64 `json:"reliability_score"`
	MaintenanceCost     *float64 `json:"projected_annual_maintenance_cost"`
	ResaleValue24m      *float64 `json:"future_resale_value_24m"`
	ConfidenceIndex     *float64 `json:"confidence_index"`
	NegotiationStrategy *string  `json:"negotiation_strategy"`
	EndOfLifeWarning    bool     `json:"end_of_life_warning"`
	PersonaMatchScore   *float64 `json:"persona_match_score"`
}

// Clone returns a deep copy; no pointer is shared with s.
func (s ScoreBundle) Clone() ScoreBundle {
	out := s
	out.SmartScore = cloneFloat(s.SmartScore)
	out.ReliabilityScore = cloneFloat(s.ReliabilityScore)
	out.MaintenanceCost = cloneFloat(s.MaintenanceCost)
	out.ResaleValue24m = cloneFloat(s.ResaleValue24m)
	out.ConfidenceIndex = cloneFloat(s.ConfidenceIndex)
	out.PersonaMatchScore = cloneFloat(s.PersonaMatchScore)
	if s.NegotiationStrategy != nil {
		v := *s.NegotiationStrategy
		out.NegotiationStrategy = &v
	}
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Recommendation is one entry of the response: the listing and its
// (enriched) scores serialised as a single flat object.
type Recommendation struct {
	Listing
	ScoreBundle
}
