package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Driver != DriverMemory {
		t.Errorf("driver = %s, want %s", cfg.Database.Driver, DriverMemory)
	}
	if cfg.Store.DefaultWhatsAppPhone != "96171786787" {
		t.Errorf("default whatsapp phone = %s", cfg.Store.DefaultWhatsAppPhone)
	}
	if cfg.Store.SettingsTTL != 60*time.Second {
		t.Errorf("settings ttl = %v, want 60s", cfg.Store.SettingsTTL)
	}
	if cfg.Storage.MaxUploadSize != 10<<20 {
		t.Errorf("max upload size = %d", cfg.Storage.MaxUploadSize)
	}
	if cfg.Auth.AllowAdminSignUp {
		t.Error("admin sign-up should be disabled by default")
	}
	if cfg.Tracing.OTLPEndpoint != "" || cfg.Tracing.Stdout {
		t.Errorf("tracing should be off by default: %+v", cfg.Tracing)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example, https://admin.example ,")
	t.Setenv("ALLOW_ADMIN_SIGNUP", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example/")
	t.Setenv("STORAGE_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/shop")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://admin.example" {
		t.Errorf("allowed origins = %v", cfg.Server.AllowedOrigins)
	}
	if !cfg.Auth.AllowAdminSignUp {
		t.Error("expected admin sign-up enabled")
	}
	if cfg.Storage.PublicBaseURL != "https://cdn.example" {
		t.Errorf("public base url = %s", cfg.Storage.PublicBaseURL)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("driver = %s", cfg.Database.Driver)
	}
	if cfg.Tracing.OTLPEndpoint != "collector:4318" {
		t.Errorf("otlp endpoint = %s", cfg.Tracing.OTLPEndpoint)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Driver: DriverMemory},
			Auth:     AuthConfig{JWTSecret: "0123456789abcdef"},
			Storage:  StorageConfig{MaxDimension: 1600, JPEGQuality: 85},
			LogLevel: "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, true},
		{"postgres without url", func(c *Config) { c.Database.Driver = DriverPostgres }, true},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"bad quality", func(c *Config) { c.Storage.JPEGQuality = 0 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
