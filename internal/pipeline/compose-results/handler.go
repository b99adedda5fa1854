// internal/pipeline/compose-results/handler.go
package composeresults

import (
	"motomind/internal/common/config"
	"motomind/internal/models"
)

const (
	StageName = "compose-results"
)

// InclusionMode records how the external listing entered the result.
type InclusionMode string

const (
	InclusionNone     InclusionMode = "none"
	InclusionAppended InclusionMode = "appended"
	InclusionReplaced InclusionMode = "replaced"
)

type Config struct {
	ResultSize int
}

func LoadConfig(cfg config.RecommendationConfig) *Config {
	return &Config{ResultSize: cfg.ResultSize}
}

func DefaultConfig() *Config {
	return &Config{ResultSize: 3}
}

type Handler struct {
	config *Config
}

func NewHandler(config *Config) *Handler {
	return &Handler{config: config}
}

// Compose keeps the top internal candidates and guarantees the first
// external candidate a slot: appended when there is room, otherwise it
// takes the last position.
func (h *Handler) Compose(enriched []models.Recommendation) ([]models.Recommendation, InclusionMode) {
	size := h.config.ResultSize

	internal := make([]models.Recommendation, 0, size)
	var external *models.Recommendation
	for i := range enriched {
		c := enriched[i]
		if c.IsExternal {
			if external == nil {
				external = &c
			}
			continue
		}
		if len(internal) < size {
			internal = append(internal, c)
		}
	}

	if external == nil {
		return internal, InclusionNone
	}
	if len(internal) < size {
		return append(internal, *external), InclusionAppended
	}
	internal[size-1] = *external
	return internal, InclusionReplaced
}
