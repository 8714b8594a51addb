package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds every application setting read from the environment.
type Config struct {
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL"`
	JWTSecretKey   string `env:"JWT_SECRET_KEY"`
	ServerPort     int    `env:"SERVER_PORT" envDefault:"8080"`

	DefaultAdminPassword string   `env:"DEFAULT_ADMIN_PASSWORD" envDefault:"admin"`
	CORSAllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3Region          string `env:"S3_REGION" envDefault:"auto"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3BucketName      string `env:"S3_BUCKET_NAME"`
	S3PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`

	BannerMaxBytes int64 `env:"BANNER_MAX_BYTES" envDefault:"1048576"`
}

// StorageEnabled reports whether an object store is configured for banner uploads.
func (c *Config) StorageEnabled() bool {
	return c.S3BucketName != ""
}

// Load reads configuration from the environment. A .env file is loaded first
// when present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	if c.DatabaseDriver != DriverPostgres && c.DatabaseDriver != DriverSQLite {
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is not set")
	}
	if c.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY environment variable is not set")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if c.BannerMaxBytes <= 0 {
		return fmt.Errorf("BANNER_MAX_BYTES must be positive, got %d", c.BannerMaxBytes)
	}
	if c.StorageEnabled() && (c.S3AccessKeyID == "" || c.S3SecretAccessKey == "" || c.S3PublicBaseURL == "") {
		return errors.New("S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY and S3_PUBLIC_BASE_URL are required when S3_BUCKET_NAME is set")
	}
	return nil
}
