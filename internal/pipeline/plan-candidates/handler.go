// internal/pipeline/plan-candidates/handler.go
package plancandidates

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	apperrors "motomind/internal/common/errors"
	"motomind/internal/models"
)

const (
	StageName = "plan-candidates"
)

type Handler struct {
	config *Config
}

func NewHandler(config *Config) *Handler {
	return &Handler{config: config}
}

// Plan builds the store query for a budget and persona. The price ceiling
// is budget * ToleranceFactor computed in decimal, so a budget of 10000 at
// 1.15 yields exactly 11500.
func (h *Handler) Plan(budget float64, persona models.Persona) (*models.CandidateQuery, error) {
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget <= 0 {
		return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("budget must be a positive number, got %v", budget))
	}

	order, err := SortOrder(persona)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &models.CandidateQuery{
		Persona:      persona,
		PriceCeiling: decimal.NewFromFloat(budget).Mul(h.config.ToleranceFactor),
		Status:       models.ListingStatusActive,
		OrderBy:      order,
		Limit:        h.config.PageSize,
	}, nil
}

// SortOrder returns the ranking keys for a persona.
func SortOrder(persona models.Persona) ([]models.SortKey, error) {
	switch persona {
	case models.PersonaSafetyFirst:
		return []models.SortKey{
			{Column: models.SortSafetyGrade, Direction: models.Descending},
			{Column: models.SortReliabilityScore, Direction: models.Descending},
		}, nil
	case models.PersonaEconomizer:
		return []models.SortKey{
			{Column: models.SortMaintenanceCost, Direction: models.Ascending},
			{Column: models.SortResaleValue24m, Direction: models.Descending},
		}, nil
	case models.PersonaStandard, models.PersonaEnthusiast:
		return []models.SortKey{
			{Column: models.SortSmartScore, Direction: models.Descending},
		}, nil
	default:
		return nil, fmt.Errorf("no sort order for %s", persona)
	}
}
