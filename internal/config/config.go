package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	Port     string `validate:"required,numeric"`
	AppEnv   string `validate:"oneof=dev prod"`
	LogLevel slog.Level

	// Upstream dataset. AppToken is optional.
	SensorAPIURL     string         `validate:"required,url"`
	AppToken         string
	HTTPTimeout      time.Duration  `validate:"gt=0"`
	UpstreamTimezone string         `validate:"required"`
	Location         *time.Location `validate:"-"`

	// Cache behaviour.
	BucketSize  time.Duration `validate:"gt=0"`
	FetchWindow time.Duration `validate:"gt=0"`
	WarmCache   bool
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.AppEnv = getenvDefault("APP_ENV", "dev")

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.SensorAPIURL = getenvDefault("SENSOR_API_URL", "https://data.austintexas.gov/resource/ypbq-i42h.json")
	cfg.AppToken = os.Getenv("SOCRATA_APP_TOKEN")

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	// Buckets of 15 minutes line up with the dataset's reporting cadence.
	if cfg.BucketSize, err = getenvDuration("CACHE_BUCKET", "15m"); err != nil {
		return nil, err
	}
	if cfg.FetchWindow, err = getenvDuration("FETCH_WINDOW", "15m"); err != nil {
		return nil, err
	}
	cfg.WarmCache = getenvBool("WARM_CACHE", true)

	cfg.UpstreamTimezone = getenvDefault("UPSTREAM_TIMEZONE", "America/Chicago")
	loc, err := time.LoadLocation(cfg.UpstreamTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
