package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/zatekoja/wanderlust/pkg/secrets"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Typesense   TypesenseConfig
	Geolocation GeolocationConfig
	ImageStore  ImageStoreConfig
	Email       EmailConfig
	Session     SessionConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL     string
	APIKey  string
	Enabled bool
}

// GeolocationConfig holds geocoder configuration
type GeolocationConfig struct {
	Provider  string
	APIKey    string
	BaseURL   string
	UserAgent string
}

// ImageStoreConfig holds image storage credentials
type ImageStoreConfig struct {
	Provider  string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// EmailConfig holds outbound email configuration
type EmailConfig struct {
	Provider       string
	User           string
	Password       string
	SMTPHost       string
	SMTPPort       int
	FromName       string
	SendGridAPIKey string
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present, then Vault secrets when
// VAULT_ENABLED is set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	if _, err := secrets.Apply(context.Background(), secrets.ConfigFromEnv()); err != nil {
		return nil, fmt.Errorf("failed to load vault secrets: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENV", "development"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("PORT", getEnvAsInt("SERVER_PORT", 8080)),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "wanderlust"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},
		Typesense: TypesenseConfig{
			URL:     getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey:  getEnv("TYPESENSE_API_KEY", "xyz"),
			Enabled: getEnvAsBool("TYPESENSE_ENABLED", false),
		},
		Geolocation: GeolocationConfig{
			Provider:  getEnv("GEOCODER_PROVIDER", "nominatim"),
			APIKey:    getEnv("GOOGLE_MAPS_API_KEY", ""),
			BaseURL:   getEnv("GEOCODER_BASE_URL", ""),
			UserAgent: getEnv("GEOCODER_USER_AGENT", "Wanderlust-App/1.0"),
		},
		ImageStore: ImageStoreConfig{
			Provider:  getEnv("IMAGE_STORE_PROVIDER", "cloudinary"),
			CloudName: getEnv("CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUD_API_KEY", ""),
			APISecret: getEnv("CLOUD_API_SECRET", ""),
			Folder:    getEnv("CLOUD_FOLDER", "wanderlust_listings"),
		},
		Email: EmailConfig{
			Provider:       getEnv("EMAIL_PROVIDER", "smtp"),
			User:           getEnv("EMAIL_USER", ""),
			Password:       getEnv("EMAIL_PASS", ""),
			SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:       getEnvAsInt("SMTP_PORT", 587),
			FromName:       getEnv("EMAIL_FROM_NAME", "WanderLust Support"),
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", ""),
			CookieName: getEnv("SESSION_COOKIE_NAME", "wanderlust.sid"),
			MaxAge:     getEnvAsDuration("SESSION_MAX_AGE", 7*24*time.Hour),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "wanderlust"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) validate() error {
	if c.Session.Secret == "" {
		if c.IsProduction() {
			return fmt.Errorf("SESSION_SECRET is required in production")
		}
		c.Session.Secret = "development-session-secret"
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// DatabaseURL returns the connection string in URL form, as expected by the
// migration runner
func (c *DatabaseConfig) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMTPAddr returns the SMTP server address
func (c *EmailConfig) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTPHost, c.SMTPPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
