package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Store    StoreConfig
	Mail     MailConfig
	Tracing  TracingConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	AllowedOrigins  []string
}

type DatabaseConfig struct {
	Driver        string // memory or postgres
	URL           string
	MaxConns      int32
	MinConns      int32
	RunMigrations bool
}

type RedisConfig struct {
	URL string // empty means in-process cache
}

type AuthConfig struct {
	JWTSecret        string
	JWTIssuer        string
	TokenTTL         time.Duration
	AllowAdminSignUp bool
	// created at startup when both are set and the admin does not exist yet
	BootstrapEmail    string
	BootstrapPassword string
}

type StorageConfig struct {
	UploadDir     string
	PublicBaseURL string // prefix for uploaded image URLs
	MaxDimension  int
	JPEGQuality   int
	MaxUploadSize int64
}

type StoreConfig struct {
	DefaultWhatsAppPhone string
	CartTTL              time.Duration
	SettingsTTL          time.Duration
}

type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type TracingConfig struct {
	ServiceName  string
	OTLPEndpoint string // empty disables OTLP export
	Stdout       bool
}

// Enabled reports whether order notification mail is configured
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}

// Load reads configuration from environment variables, after loading .env if present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 30),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
			URL:           getEnv("DATABASE_URL", ""),
			MaxConns:      int32(getEnvAsInt("DB_MAX_CONNS", 10)),
			MinConns:      int32(getEnvAsInt("DB_MIN_CONNS", 2)),
			RunMigrations: getEnvAsBool("DB_RUN_MIGRATIONS", true),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			JWTIssuer:         getEnv("JWT_ISSUER", "boutique-store"),
			TokenTTL:          time.Duration(getEnvAsInt("JWT_TTL_MIN", 12*60)) * time.Minute,
			AllowAdminSignUp:  getEnvAsBool("ALLOW_ADMIN_SIGNUP", false),
			BootstrapEmail:    getEnv("ADMIN_EMAIL", ""),
			BootstrapPassword: getEnv("ADMIN_PASSWORD", ""),
		},
		Storage: StorageConfig{
			UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
			PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
			MaxDimension:  getEnvAsInt("IMAGE_MAX_DIMENSION", 1600),
			JPEGQuality:   getEnvAsInt("IMAGE_JPEG_QUALITY", 85),
			MaxUploadSize: int64(getEnvAsInt("MAX_UPLOAD_MB", 10)) << 20,
		},
		Store: StoreConfig{
			DefaultWhatsAppPhone: getEnv("DEFAULT_WHATSAPP_PHONE", "96171786787"),
			CartTTL:              time.Duration(getEnvAsInt("CART_TTL_HOURS", 7*24)) * time.Hour,
			SettingsTTL:          time.Duration(getEnvAsInt("SETTINGS_TTL_SEC", 60)) * time.Second,
		},
		Mail: MailConfig{
			Host: getEnv("SMTP_HOST", ""),
			Port: getEnvAsInt("SMTP_PORT", 587),
			User: getEnv("SMTP_USER", ""),
			Pass: getEnv("SMTP_PASS", ""),
			From: getEnv("SMTP_FROM", ""),
		},
		Tracing: TracingConfig{
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "boutique-api"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Stdout:       getEnvAsBool("OTEL_TRACES_STDOUT", false),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (must be memory or postgres)", c.Database.Driver)
	}

	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}

	if c.Storage.MaxDimension <= 0 {
		return fmt.Errorf("IMAGE_MAX_DIMENSION must be positive")
	}
	if c.Storage.JPEGQuality < 1 || c.Storage.JPEGQuality > 100 {
		return fmt.Errorf("IMAGE_JPEG_QUALITY must be between 1 and 100")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
