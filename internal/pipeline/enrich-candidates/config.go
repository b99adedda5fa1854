// internal/pipeline/enrich-candidates/config.go
package enrichcandidates

import (
	"github.com/shopspring/decimal"

	"motomind/internal/common/config"
)

// Config is immutable after construction.
type Config struct {
	SurchargeFactor decimal.Decimal
	EndOfLifeAge    int // strictly older than this is end of life
	AgingAge        int // strictly older than this gets the surcharge
	LowSafetyGrade  int // grades strictly below this get the family warning
}

func LoadConfig(cfg config.RecommendationConfig) *Config {
	return &Config{
		SurchargeFactor: decimal.NewFromFloat(cfg.SurchargeFactor),
		EndOfLifeAge:    cfg.EndOfLifeAge,
		AgingAge:        cfg.AgingAge,
		LowSafetyGrade:  cfg.LowSafetyGrade,
	}
}

func DefaultConfig() *Config {
	return &Config{
		SurchargeFactor: decimal.RequireFromString("1.15"),
		EndOfLifeAge:    18,
		AgingAge:        12,
		LowSafetyGrade:  4,
	}
}
