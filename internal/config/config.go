package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppName         = "CoinRamp"
	defaultEnv             = "development"
	defaultPort            = "8080"
	defaultMetricsPort     = "9090"
	defaultLogLevel        = "info"
	defaultShutdownDelay   = 10 * time.Second
	defaultIdempotencyTTL  = 24 * time.Hour
	defaultVerificationTTL = 60 * 24 * time.Hour
	defaultSettleDelay     = 2 * time.Second
	defaultSubmitRate      = 10
	idemTTLSecondsEnvVar   = "IDEMPOTENCY_TTL_SECONDS"
	idemTTLDurEnvVar       = "IDEMPOTENCY_TTL"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
	verifTTLDaysEnvVar     = "VERIFICATION_TTL_DAYS"
	verifTTLDurEnvVar      = "VERIFICATION_TTL"
	settleMillisEnvVar     = "SIGNOUT_SETTLE_MS"
	settleDurationEnvVar   = "SIGNOUT_SETTLE"
)

// Config captures application runtime configuration loaded from environment
// variables. There is deliberately no variable for the safety mode: the
// service always boots in sandbox and an operator flips it at runtime.
type Config struct {
	AppName            string
	Env                string
	Port               string
	MetricsPort        string
	LogLevel           string
	DatabaseURL        string
	RedisURL           string
	SessionTokenSecret string
	ShutdownPeriod     time.Duration
	IdempotencyTTL     time.Duration
	VerificationTTL    time.Duration
	SettleDelay        time.Duration
	SubmitRatePerMin   int
}

// Load reads configuration values from the environment and populates a Config
// instance. A .env file is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppName:            getEnv("APP_NAME", defaultAppName),
		Env:                strings.ToLower(getEnv("APP_ENV", defaultEnv)),
		Port:               getEnv("PORT", defaultPort),
		MetricsPort:        getEnv("METRICS_PORT", defaultMetricsPort),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		SessionTokenSecret: os.Getenv("SESSION_TOKEN_SECRET"),
		ShutdownPeriod:     defaultShutdownDelay,
		IdempotencyTTL:     defaultIdempotencyTTL,
		VerificationTTL:    defaultVerificationTTL,
		SettleDelay:        defaultSettleDelay,
		SubmitRatePerMin:   defaultSubmitRate,
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv(idemTTLSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLSecondsEnvVar, err)
		}
		cfg.IdempotencyTTL = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(idemTTLDurEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLDurEnvVar, err)
		}
		cfg.IdempotencyTTL = d
	}

	if v := os.Getenv(verifTTLDaysEnvVar); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", verifTTLDaysEnvVar, err)
		}
		cfg.VerificationTTL = time.Duration(days) * 24 * time.Hour
	} else if v := os.Getenv(verifTTLDurEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", verifTTLDurEnvVar, err)
		}
		cfg.VerificationTTL = d
	}

	if v := os.Getenv(settleMillisEnvVar); v != "" {
		millis, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", settleMillisEnvVar, err)
		}
		cfg.SettleDelay = time.Duration(millis) * time.Millisecond
	} else if v := os.Getenv(settleDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", settleDurationEnvVar, err)
		}
		cfg.SettleDelay = d
	}

	if v := os.Getenv("SUBMIT_RATE_PER_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SUBMIT_RATE_PER_MIN: %w", err)
		}
		cfg.SubmitRatePerMin = n
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.Env)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.Env)
		}
		if cfg.SessionTokenSecret == "" {
			return Config{}, fmt.Errorf("SESSION_TOKEN_SECRET must be set when APP_ENV=%s", cfg.Env)
		}
	}

	return cfg, nil
}

// IsDev reports whether the service runs with development fallbacks
// (in-memory backends, unauthenticated routes).
func (c Config) IsDev() bool {
	switch c.Env {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// MetricsAddress returns the listen address for the metrics endpoint.
func (c Config) MetricsAddress() string {
	if strings.HasPrefix(c.MetricsPort, ":") {
		return c.MetricsPort
	}
	return fmt.Sprintf(":%s", c.MetricsPort)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
