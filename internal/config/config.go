package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// USGS feed client.
	USGSBaseURL   string
	USGSTimeout   time.Duration
	USGSRateLimit float64 // requests per second

	// In-process caching and background refresh.
	CacheTTL        time.Duration
	DetailCacheTTL  time.Duration
	RefreshSchedule string // cron spec; empty disables the warmer

	// Reading history persistence; empty path disables the store.
	HistoryDBPath   string
	HistoryGageDays int

	// Status-change alerting over Kafka.
	KafkaBrokers    []string
	KafkaAlertTopic string
	AlertsEnabled   bool
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	usgsTimeout, err := envDuration("USGS_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := envDuration("CACHE_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	detailTTL, err := envDuration("DETAIL_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	alertsEnabled := len(brokers) > 0
	if v := os.Getenv("ALERTS_ENABLED"); v != "" {
		alertsEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		USGSBaseURL:   envOrDefault("USGS_BASE_URL", "https://waterservices.usgs.gov/nwis/iv/"),
		USGSTimeout:   usgsTimeout,
		USGSRateLimit: envFloat("USGS_RATE_LIMIT", 2),

		CacheTTL:        cacheTTL,
		DetailCacheTTL:  detailTTL,
		RefreshSchedule: envOrDefault("REFRESH_SCHEDULE", "@every 15m"),

		HistoryDBPath:   os.Getenv("HISTORY_DB_PATH"),
		HistoryGageDays: envInt("HISTORY_RETENTION_DAYS", 7),

		KafkaBrokers:    brokers,
		KafkaAlertTopic: envOrDefault("KAFKA_ALERT_TOPIC", "water-status-alerts"),
		AlertsEnabled:   alertsEnabled,
	}

	if cfg.USGSRateLimit <= 0 {
		return nil, errors.New("USGS_RATE_LIMIT must be positive")
	}
	if cfg.AlertsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("ALERTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.AlertsEnabled && cfg.KafkaAlertTopic == "" {
		return nil, errors.New("ALERTS_ENABLED is true but KAFKA_ALERT_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func envFloat(key string, def float64) float64 {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return def
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
