// internal/govcheck/config.go
package govcheck

import (
	"time"

	"motomind/internal/common/config"
)

type Config struct {
	KeyPrefix string
	Timeout   time.Duration
}

func LoadConfig(cfg config.GovCheckConfig) *Config {
	return &Config{
		KeyPrefix: cfg.KeyPrefix,
		Timeout:   config.GetDuration(cfg.Timeout),
	}
}
