package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Environment string
	Port        string
	PostgresDSN string
	LogLevel    string

	Redis RedisConfig

	SessionTTL        time.Duration
	SessionCookieName string
	SecureCookies     bool
	PasswordHashCost  int

	UploadDir      string
	AllowedOrigins []string

	LoginRateLimit float64
	LoginRateBurst int
}

// RedisConfig points at the optional shared session cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// IsProduction reports whether the process runs in production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// LoadConfig reads .env (when present) and environment variables, applies
// defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Environment: strings.TrimSpace(v.GetString("ENVIRONMENT")),
		Port:        strings.TrimSpace(v.GetString("PORT")),
		PostgresDSN: strings.TrimSpace(v.GetString("POSTGRES_DSN")),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		SessionCookieName: strings.TrimSpace(v.GetString("SESSION_COOKIE_NAME")),
		SecureCookies:     v.GetBool("SECURE_COOKIES"),
		PasswordHashCost:  v.GetInt("PASSWORD_HASH_COST"),
		UploadDir:         strings.TrimSpace(v.GetString("UPLOAD_DIR")),
		AllowedOrigins:    splitAndTrim(v.GetString("ALLOWED_ORIGINS")),
		LoginRateLimit:    v.GetFloat64("LOGIN_RATE_LIMIT"),
		LoginRateBurst:    v.GetInt("LOGIN_RATE_BURST"),
	}

	ttl, err := time.ParseDuration(strings.TrimSpace(v.GetString("SESSION_TTL")))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be a positive duration")
	}
	cfg.SessionTTL = ttl

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.SessionCookieName == "" {
		errs = append(errs, errors.New("SESSION_COOKIE_NAME is required"))
	}
	if c.PasswordHashCost < bcrypt.MinCost || c.PasswordHashCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("PASSWORD_HASH_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.LoginRateLimit < 0 || c.LoginRateBurst < 0 {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT and LOGIN_RATE_BURST must not be negative"))
	}
	if c.UploadDir == "" {
		errs = append(errs, errors.New("UPLOAD_DIR is required"))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", EnvLocal)
	v.SetDefault("PORT", "8080")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE_NAME", "session_token")
	v.SetDefault("SECURE_COOKIES", false)
	v.SetDefault("PASSWORD_HASH_COST", bcrypt.DefaultCost)

	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("ALLOWED_ORIGINS", "")

	v.SetDefault("LOGIN_RATE_LIMIT", 1.0)
	v.SetDefault("LOGIN_RATE_BURST", 5)
}

func splitAndTrim(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
