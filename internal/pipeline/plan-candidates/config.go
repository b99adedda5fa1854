// internal/pipeline/plan-candidates/config.go
package plancandidates

import (
	"github.com/shopspring/decimal"

	"motomind/internal/common/config"
)

// Config is immutable after construction.
type Config struct {
	ToleranceFactor decimal.Decimal
	PageSize        int
}

// LoadConfig derives the planner settings from the recommendation section.
func LoadConfig(cfg config.RecommendationConfig) *Config {
	return &Config{
		ToleranceFactor: decimal.NewFromFloat(cfg.ToleranceFactor),
		PageSize:        cfg.PageSize,
	}
}

func DefaultConfig() *Config {
	return &Config{
		ToleranceFactor: decimal.RequireFromString("1.15"),
		PageSize:        10,
	}
}
