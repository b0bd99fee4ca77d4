package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// HTTP
	Port           string `envconfig:"PORT" default:"5300"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Redis (optional answer cache; disabled when empty)
	RedisAddr      string        `envconfig:"REDIS_ADDR" default:""`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB        int           `envconfig:"REDIS_DB" default:"0"`
	AnswerCacheTTL time.Duration `envconfig:"ANSWER_CACHE_TTL" default:"5m"`

	// Maintenance surface (admin upserts, imports, image uploads)
	ServiceToken string `envconfig:"STATS_SERVICE_TOKEN" default:""`

	// Upstream sync services (workers disabled when empty)
	RankingsServiceURL string        `envconfig:"RANKINGS_SERVICE_URL" default:""`
	OddsServiceURL     string        `envconfig:"ODDS_SERVICE_URL" default:""`
	SyncInterval       time.Duration `envconfig:"SYNC_INTERVAL" default:"1h"`

	// Daily puzzle
	PuzzleTimezone string `envconfig:"PUZZLE_TIMEZONE" default:"UTC"`

	// Analytics aggregation
	EnableAnalyticsJob bool          `envconfig:"ENABLE_ANALYTICS_JOB" default:"true"`
	AnalyticsInterval  time.Duration `envconfig:"ANALYTICS_INTERVAL" default:"24h"`

	// Media storage (S3-compatible; local uploads/ fallback when unset)
	S3AccountID       string `envconfig:"S3_ACCOUNT_ID" default:""`
	S3AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID" default:""`
	S3AccessKeySecret string `envconfig:"S3_ACCESS_KEY_SECRET" default:""`
	S3Bucket          string `envconfig:"S3_BUCKET_NAME" default:""`
	CDNBaseURL        string `envconfig:"CDN_BASE_URL" default:""`

	// Monitoring
	EnableMetrics bool   `envconfig:"ENABLE_METRICS" default:"true"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load loads configuration from environment variables, reading a .env file
// first when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if _, err := time.LoadLocation(c.PuzzleTimezone); err != nil {
		return fmt.Errorf("invalid PUZZLE_TIMEZONE %q: %w", c.PuzzleTimezone, err)
	}
	return nil
}

// MediaEnabled reports whether the S3 media store is configured
func (c *Config) MediaEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKeyID != ""
}

// PuzzleLocation returns the reference timezone for the daily puzzle.
// Validate already guaranteed it parses.
func (c *Config) PuzzleLocation() *time.Location {
	loc, _ := time.LoadLocation(c.PuzzleTimezone)
	return loc
}

// MustLoad loads configuration or exits; use in main() to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
