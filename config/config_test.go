package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			Environment: "development",
		},
		USDA: USDAConfig{
			BaseURL:         "https://api.nal.usda.gov/fdc",
			Timeout:         30 * time.Second,
			RequestsPerHour: 1000,
		},
		Cache: CacheConfig{
			Type: "memory",
			TTL:  time.Hour,
		},
		RateLimit: RateLimitConfig{
			PerIP: 100,
			Burst: 20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		chdir(t, t.TempDir())

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Server.ShutdownTimeout != 10*time.Second {
			t.Errorf("Server.ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout)
		}
		if cfg.USDA.BaseURL != "https://api.nal.usda.gov/fdc" {
			t.Errorf("USDA.BaseURL = %s, want https://api.nal.usda.gov/fdc", cfg.USDA.BaseURL)
		}
		if cfg.USDA.Timeout != 30*time.Second {
			t.Errorf("USDA.Timeout = %v, want 30s", cfg.USDA.Timeout)
		}
		if cfg.USDA.RequestsPerHour != 1000 {
			t.Errorf("USDA.RequestsPerHour = %d, want 1000", cfg.USDA.RequestsPerHour)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 720*time.Hour {
			t.Errorf("Cache.TTL = %v, want 720h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Burst != 20 {
			t.Errorf("RateLimit.Burst = %d, want 20", cfg.RateLimit.Burst)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
		}
	})

	t.Run("food database is disabled without an API key", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("DIETDESK_USDA_API_KEY", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.FoodDatabaseEnabled() {
			t.Error("FoodDatabaseEnabled() = true, want false")
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("DIETDESK_SERVER_PORT", "9090")
		t.Setenv("DIETDESK_SERVER_ENVIRONMENT", "production")
		t.Setenv("DIETDESK_SERVER_SHUTDOWN_TIMEOUT", "5s")
		t.Setenv("DIETDESK_USDA_API_KEY", "custom-api-key")
		t.Setenv("DIETDESK_USDA_BASE_URL", "https://custom.api.com")
		t.Setenv("DIETDESK_USDA_REQUESTS_PER_HOUR", "3600")
		t.Setenv("DIETDESK_CACHE_TTL", "24h")
		t.Setenv("DIETDESK_RATELIMIT_PER_IP", "200")
		t.Setenv("DIETDESK_RATELIMIT_BURST", "50")
		t.Setenv("DIETDESK_LOGGING_LEVEL", "debug")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Server.ShutdownTimeout != 5*time.Second {
			t.Errorf("Server.ShutdownTimeout = %v, want 5s", cfg.Server.ShutdownTimeout)
		}
		if cfg.USDA.APIKey != "custom-api-key" {
			t.Errorf("USDA.APIKey = %s, want custom-api-key", cfg.USDA.APIKey)
		}
		if !cfg.FoodDatabaseEnabled() {
			t.Error("FoodDatabaseEnabled() = false, want true")
		}
		if cfg.USDA.BaseURL != "https://custom.api.com" {
			t.Errorf("USDA.BaseURL = %s, want https://custom.api.com", cfg.USDA.BaseURL)
		}
		if cfg.USDA.RequestsPerHour != 3600 {
			t.Errorf("USDA.RequestsPerHour = %d, want 3600", cfg.USDA.RequestsPerHour)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Burst != 50 {
			t.Errorf("RateLimit.Burst = %d, want 50", cfg.RateLimit.Burst)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
		}
	})

	t.Run("reads a config file", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		content := "server:\n  port: \"7070\"\n  allowed_origins:\n    - https://app.dietdesk.io\ncache:\n  ttl: 1h\n"
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("Server.Port = %s, want 7070", cfg.Server.Port)
		}
		if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://app.dietdesk.io" {
			t.Errorf("Server.AllowedOrigins = %v, want [https://app.dietdesk.io]", cfg.Server.AllowedOrigins)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: \"7070\"\n"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		t.Setenv("DIETDESK_SERVER_PORT", "6060")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "6060" {
			t.Errorf("Server.Port = %s, want 6060", cfg.Server.Port)
		}
	})

	t.Run("loads values from .env file", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DIETDESK_USDA_API_KEY=from-dotenv\n"), 0o644); err != nil {
			t.Fatalf("Failed to create .env file: %v", err)
		}
		// Registers cleanup of the variable godotenv is about to set
		t.Setenv("DIETDESK_USDA_API_KEY", "")
		os.Unsetenv("DIETDESK_USDA_API_KEY")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.USDA.APIKey != "from-dotenv" {
			t.Errorf("USDA.APIKey = %s, want from-dotenv", cfg.USDA.APIKey)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("DIETDESK_CACHE_TYPE", "redis")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for unsupported cache type")
		}
		if !strings.HasPrefix(err.Error(), "invalid configuration: cache type must be 'memory'") {
			t.Errorf("Load() error = %v, want cache type error", err)
		}
	})

	t.Run("fails to decode malformed durations", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("DIETDESK_CACHE_TTL", "forever")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want decode error")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		chdir(t, t.TempDir())

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("skips comments and keeps existing variables", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)

		envContent := `
# This is a comment
TEST_DIETDESK_LOADED=value1

TEST_DIETDESK_OVERRIDE=new-value
# TEST_DIETDESK_COMMENTED=should_not_load
`
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(envContent), 0o644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		t.Setenv("TEST_DIETDESK_OVERRIDE", "existing-value")
		t.Setenv("TEST_DIETDESK_LOADED", "")
		os.Unsetenv("TEST_DIETDESK_LOADED")

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if got := os.Getenv("TEST_DIETDESK_LOADED"); got != "value1" {
			t.Errorf("TEST_DIETDESK_LOADED = %s, want value1", got)
		}
		if got := os.Getenv("TEST_DIETDESK_OVERRIDE"); got != "existing-value" {
			t.Errorf("TEST_DIETDESK_OVERRIDE = %s, want existing-value (should not override)", got)
		}
		if _, ok := os.LookupEnv("TEST_DIETDESK_COMMENTED"); ok {
			t.Error("TEST_DIETDESK_COMMENTED should not be loaded from comment")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid configuration",
			mutate: func(*Config) {},
		},
		{
			name:   "missing API key is allowed",
			mutate: func(c *Config) { c.USDA.APIKey = "" },
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Server.Environment = "staging" },
			wantErr: "environment must be one of",
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "server port is required",
		},
		{
			name:    "unsupported cache type",
			mutate:  func(c *Config) { c.Cache.Type = "redis" },
			wantErr: "cache type must be 'memory'",
		},
		{
			name:    "zero cache TTL",
			mutate:  func(c *Config) { c.Cache.TTL = 0 },
			wantErr: "cache TTL must be positive",
		},
		{
			name:    "zero USDA timeout",
			mutate:  func(c *Config) { c.USDA.Timeout = 0 },
			wantErr: "USDA timeout must be positive",
		},
		{
			name:    "negative USDA quota",
			mutate:  func(c *Config) { c.USDA.RequestsPerHour = -1 },
			wantErr: "USDA requests per hour must be positive",
		},
		{
			name:    "zero burst",
			mutate:  func(c *Config) { c.RateLimit.Burst = 0 },
			wantErr: "rate limit per_ip and burst must be positive",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatal(err)
		}
	})
}
