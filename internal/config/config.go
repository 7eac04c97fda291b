package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/cors"
)

type R2Config struct {
	AccountID       string `envconfig:"ACCOUNT_ID"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
	BucketName      string `envconfig:"BUCKET_NAME"`
	Region          string `envconfig:"REGION" default:"auto"`
}

// Enabled reports whether asset file storage is configured.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != ""
}

type GoogleConfig struct {
	ClientID     string `envconfig:"CLIENT_ID"`
	ClientSecret string `envconfig:"CLIENT_SECRET"`
	RedirectURL  string `envconfig:"REDIRECT_URL" default:"http://localhost:8080/api/v1/auth/google/callback"`
}

func (c GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DB_URL      string `envconfig:"DB_URL"`
	StoreDriver string `envconfig:"STORE_DRIVER" default:"auto"`

	JWTSecret  string        `envconfig:"JWT_SECRET" default:"not-so-secret-now-is-it?"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	CorsOrigins      []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	SuperAdminEmails []string `envconfig:"SUPER_ADMIN_EMAILS"`
	FrontendURL      string   `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`

	// Nested keys are prefixed: R2_ACCOUNT_ID, GOOGLE_CLIENT_ID, ...
	R2     R2Config     `envconfig:"R2"`
	Google GoogleConfig `envconfig:"GOOGLE"`
}

const (
	DriverAuto     = "auto"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	// DriverDisabled is what "auto" resolves to when no database URL is set.
	DriverDisabled = "disabled"
)

// Load reads ENV_FILE (default .env) when present and then the process
// environment.
func Load() (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.resolveDriver(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolveDriver() error {
	switch strings.ToLower(c.StoreDriver) {
	case "", DriverAuto:
		if c.DB_URL == "" {
			c.StoreDriver = DriverDisabled
		} else {
			c.StoreDriver = DriverPostgres
		}
	case DriverPostgres:
		if c.DB_URL == "" {
			return fmt.Errorf("STORE_DRIVER=postgres requires DB_URL")
		}
		c.StoreDriver = DriverPostgres
	case DriverMemory:
		c.StoreDriver = DriverMemory
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}
	return nil
}

func (c Config) IsProduction() bool { return c.Environment == "production" }

// IsSuperAdminEmail reports whether email is bootstrapped as super admin.
func (c Config) IsSuperAdminEmail(email string) bool {
	for _, e := range c.SuperAdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

func (c Config) CorsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:   c.CorsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
