package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string // empty selects the in-memory store
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	RunMigrations  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	Location         *time.Location // defines the calendar "today"
	LockTimeout      time.Duration
	StrictThresholds bool

	AuditBufferSize int
	PosthogAPIKey   string
	PosthogEndpoint string

	RateLimit          string // ulule/limiter format, e.g. "100-M"
	CORSAllowedOrigins []string
	MetricsEnabled     bool
	LogLevel           slog.Level
}

// DatabaseURLKey is the environment key of the Postgres URL. Empty selects the in-memory store.
const DatabaseURLKey = "PGSQL_URL"

func setDefaults(v *viper.Viper) {
	v.SetDefault(DatabaseURLKey, "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "stock-ledger")
	v.SetDefault("LEDGER_TIMEZONE", "UTC")
	v.SetDefault("LEDGER_LOCK_TIMEOUT", "3s")
	v.SetDefault("STRICT_THRESHOLDS", false)
	v.SetDefault("AUDIT_BUFFER_SIZE", 256)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("LOG_LEVEL", "info")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:      v.GetString(DatabaseURLKey),
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:    v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:    v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:   v.GetString("MIGRATIONS_PATH"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		StrictThresholds: v.GetBool("STRICT_THRESHOLDS"),
		AuditBufferSize:  v.GetInt("AUDIT_BUFFER_SIZE"),
		PosthogAPIKey:    v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:  v.GetString("POSTHOG_ENDPOINT"),
		RateLimit:        v.GetString("RATE_LIMIT"),
		MetricsEnabled:   v.GetBool("METRICS_ENABLED"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	tz := v.GetString("LEDGER_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	lockStr := v.GetString("LEDGER_LOCK_TIMEOUT")
	cfg.LockTimeout, err = time.ParseDuration(lockStr)
	if err != nil || cfg.LockTimeout <= 0 {
		cfg.LockTimeout = 3 * time.Second
		log.Printf("Warning: Invalid value for LEDGER_LOCK_TIMEOUT ('%s'). Defaulting to %s.\n", lockStr, cfg.LockTimeout)
	}

	if cfg.AuditBufferSize <= 0 {
		cfg.AuditBufferSize = 256
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	return cfg, nil
}
