package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"signyard/internal/integrations/googlesheets"
	"signyard/internal/syncer"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	AppHost     string
	AppEnv      string
	DatabaseURL string

	JWTSecret            string
	OperatorUsername     string
	OperatorPasswordHash string
	TokenTTL             time.Duration

	DataEncryptionKey string
	SeedOnStart       bool

	Sheets       googlesheets.Config
	SyncInterval time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	// TrustedProxies may set X-Forwarded-For; empty trusts none.
	TrustedProxies []string
}

// Load reads .env (without overriding the environment) and then the
// process environment.
func Load() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any key lookup, typically os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	env := envReader{lookup: lookup}

	cfg := &Config{
		AppHost:              env.getString("APP_HOST", ":8080"),
		AppEnv:               strings.ToLower(env.getString("APP_ENV", EnvDevelopment)),
		DatabaseURL:          env.getString("DATABASE_URL", "sqlite://signyard.db"),
		JWTSecret:            env.getString("JWT_SECRET", ""),
		OperatorUsername:     env.getString("OPERATOR_USERNAME", "operator"),
		OperatorPasswordHash: env.getString("OPERATOR_PASSWORD_HASH", ""),
		TokenTTL:             env.getDuration("TOKEN_TTL", 120*time.Hour),
		DataEncryptionKey:    env.getString("DATA_ENCRYPTION_KEY", ""),
		SeedOnStart:          env.getBool("SEED_ON_START", false),
		Sheets: googlesheets.Config{
			SpreadsheetID:   env.getString("SHEETS_SPREADSHEET_ID", ""),
			Range:           env.getString("SHEETS_RANGE", googlesheets.DefaultRange),
			CredentialsJSON: env.getString("GOOGLE_SHEETS_CREDENTIALS_JSON", ""),
			CredentialsFile: env.getString("GOOGLE_SHEETS_CREDENTIALS_FILE", "credentials.json"),
		},
		SyncInterval:   env.getDuration("SYNC_INTERVAL", syncer.DefaultInterval),
		RateLimitRPS:   env.getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: env.getInt("RATE_LIMIT_BURST", 20),
		RequestTimeout: env.getDuration("REQUEST_TIMEOUT", 30*time.Second),
		TrustedProxies: env.getList("TRUSTED_PROXIES"),
	}

	if len(env.errs) > 0 {
		return nil, errors.Join(env.errs...)
	}

	if cfg.AppEnv != EnvDevelopment && cfg.AppEnv != EnvProduction {
		return nil, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.AppEnv)
	}
	if cfg.SyncInterval <= 0 {
		return nil, errors.New("SYNC_INTERVAL must be positive")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}

// ValidateServer checks the settings only the HTTP server needs.
func (c *Config) ValidateServer() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.OperatorPasswordHash == "" {
		errs = append(errs, errors.New("OPERATOR_PASSWORD_HASH is not set (see `signyard hash-password`)"))
	}
	if c.DataEncryptionKey == "" {
		errs = append(errs, errors.New("DATA_ENCRYPTION_KEY is not set (see `signyard keygen`)"))
	}
	return errors.Join(errs...)
}

func (c *Config) SheetsEnabled() bool {
	return c.Sheets.SpreadsheetID != ""
}

type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *envReader) getString(key, fallback string) string {
	if value, ok := e.lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func (e *envReader) getList(key string) []string {
	var values []string
	for _, value := range strings.Split(e.getString(key, ""), ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values
}

func (e *envReader) getBool(key string, fallback bool) bool {
	raw := e.getString(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return value
}

func (e *envReader) getInt(key string, fallback int) int {
	raw := e.getString(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return value
}

func (e *envReader) getFloat(key string, fallback float64) float64 {
	raw := e.getString(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return value
}

func (e *envReader) getDuration(key string, fallback time.Duration) time.Duration {
	raw := e.getString(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return value
}
