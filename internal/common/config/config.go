// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	GovCheck       GovCheckConfig       `mapstructure:"gov_check"`
	Logging        LoggingConfig        `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	MetricsPort     int      `mapstructure:"metrics_port"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// Addr returns the listen address of the API server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// MetricsAddr returns the listen address of the health/metrics server.
func (s ServerConfig) MetricsAddr() string {
	return fmt.Sprintf(":%d", s.MetricsPort)
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	URL            string `mapstructure:"url"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string. An explicit URL wins
// over the discrete fields.
func (p PostgresConfig) GetDSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RecommendationConfig holds the ranking and enrichment constants. It is
// read once at startup and handed to the pipeline stages by value.
type RecommendationConfig struct {
	ToleranceFactor float64 `mapstructure:"tolerance_factor" validate:"gte=1,lte=2"`
	PageSize        int     `mapstructure:"page_size" validate:"gt=0,lte=100"`
	ResultSize      int     `mapstructure:"result_size" validate:"gt=0,ltefield=PageSize"`
	SurchargeFactor float64 `mapstructure:"surcharge_factor" validate:"gte=1"`
	EndOfLifeAge    int     `mapstructure:"end_of_life_age" validate:"gt=0"`
	AgingAge        int     `mapstructure:"aging_age" validate:"gt=0,ltfield=EndOfLifeAge"`
	LowSafetyGrade  int     `mapstructure:"low_safety_grade" validate:"gte=0,lte=10"`
}

// GovCheckConfig configures the read-only government record lookup.
type GovCheckConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	KeyPrefix string `mapstructure:"key_prefix"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
