package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string // development, production

	// Session persistence; empty runs on the in-memory demo store.
	SessionDBPath string

	// Backend (Supabase)
	SupabaseURL     string
	SupabaseAnonKey string
	SupabaseDBURL   string

	// Credential allow-list
	AdminPhone      string
	SuperAdminPhone string

	// Simulated network latency applied to login attempts.
	LoginDelay time.Duration

	AuditLogPath  string
	SecureCookies bool
}

func Load() (*Config, error) {
	// Load .env file if it exists (don't error if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		SessionDBPath:   getEnv("SESSION_DB_PATH", "admin_session.db"),
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseDBURL:   getEnv("SUPABASE_DB_URL", ""),
		AdminPhone:      getEnv("ADMIN_PHONE", "8888888888"),
		SuperAdminPhone: getEnv("SUPER_ADMIN_PHONE", "9999999999"),
		AuditLogPath:    getEnv("AUDIT_LOG_PATH", ""),
		SecureCookies:   getEnv("SECURE_COOKIES", "false") == "true",
	}

	if raw := getEnv("LOGIN_DELAY", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LOGIN_DELAY: %w", err)
		}
		cfg.LoginDelay = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.AdminPhone == "" || c.SuperAdminPhone == "" {
		return fmt.Errorf("ADMIN_PHONE and SUPER_ADMIN_PHONE are required")
	}
	if c.AdminPhone == c.SuperAdminPhone {
		return fmt.Errorf("ADMIN_PHONE and SUPER_ADMIN_PHONE must differ")
	}
	if c.LoginDelay < 0 {
		return fmt.Errorf("LOGIN_DELAY must not be negative")
	}
	if c.SupabaseURL != "" && c.SupabaseAnonKey == "" {
		return fmt.Errorf("SUPABASE_ANON_KEY is required when SUPABASE_URL is set")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
