package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"
)

type Config struct {
	AppEnv string `mapstructure:"APP_ENV"`
	Port   string `mapstructure:"SERVER_PORT"`

	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	ReportCacheTTL   time.Duration `mapstructure:"REPORT_CACHE_TTL"`
	LoginMaxAttempts int           `mapstructure:"LOGIN_MAX_ATTEMPTS"`
	LoginWindow      time.Duration `mapstructure:"LOGIN_WINDOW"`

	SchedulerEnabled bool   `mapstructure:"SCHEDULER_ENABLED"`
	OverdueScanSpec  string `mapstructure:"OVERDUE_SCAN_SPEC"`

	PenaltyLostAmount    string `mapstructure:"PENALTY_LOST_AMOUNT"`
	PenaltyDamagedAmount string `mapstructure:"PENALTY_DAMAGED_AMOUNT"`
	PenaltyLateAmount    string `mapstructure:"PENALTY_LATE_AMOUNT"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DATABASE_URL", "sportequip.db")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("REPORT_CACHE_TTL", "30s")
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_WINDOW", "15m")
	v.SetDefault("SCHEDULER_ENABLED", false)
	v.SetDefault("OVERDUE_SCAN_SPEC", "0 0 7 * * *")
	v.SetDefault("PENALTY_LOST_AMOUNT", "100")
	v.SetDefault("PENALTY_DAMAGED_AMOUNT", "50")
	v.SetDefault("PENALTY_LATE_AMOUNT", "20")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.CORSAllowedOrigins = splitOrigins(cfg.CORSAllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if c.LoginMaxAttempts <= 0 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be > 0")
	}
	if c.LoginWindow <= 0 {
		return fmt.Errorf("LOGIN_WINDOW must be > 0")
	}
	if c.ReportCacheTTL < 0 {
		return fmt.Errorf("REPORT_CACHE_TTL must not be negative")
	}

	for name, raw := range map[string]string{
		"PENALTY_LOST_AMOUNT":    c.PenaltyLostAmount,
		"PENALTY_DAMAGED_AMOUNT": c.PenaltyDamagedAmount,
		"PENALTY_LATE_AMOUNT":    c.PenaltyLateAmount,
	} {
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s must be a valid decimal: %w", name, err)
		}
		if !d.IsPositive() {
			return fmt.Errorf("%s must be > 0", name)
		}
	}

	if c.IsProdLike() && isEmptyOrDefault(c.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

// PenaltyAmounts returns the lost, damaged and late-return amounts. Validate
// has already checked that they parse.
func (c *Config) PenaltyAmounts() (lost, damaged, late decimal.Decimal) {
	lost = decimal.RequireFromString(strings.TrimSpace(c.PenaltyLostAmount))
	damaged = decimal.RequireFromString(strings.TrimSpace(c.PenaltyDamagedAmount))
	late = decimal.RequireFromString(strings.TrimSpace(c.PenaltyLateAmount))
	return lost, damaged, late
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

// splitOrigins flattens comma-separated entries coming from the environment.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
