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

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	LogLevel    string

	// Batch passes
	BatchSize          int
	RecategorizeLimit  int
	AnomalyContextDays int
	AnomalyRecheckDays int

	CacheMaxCost   int64
	CacheTTL       time.Duration
	AllowedOrigins []string
	ReadOnly       bool
}

// Load reads the environment, after loading .env if present.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	var errs []error
	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	ints := []struct {
		key      string
		fallback int
		dst      *int
	}{
		{"BATCH_SIZE", 100, &cfg.BatchSize},
		{"RECATEGORIZE_LIMIT", 500, &cfg.RecategorizeLimit},
		{"ANOMALY_CONTEXT_DAYS", 90, &cfg.AnomalyContextDays},
		{"ANOMALY_RECHECK_DAYS", 30, &cfg.AnomalyRecheckDays},
	}
	for _, f := range ints {
		v, err := getPositiveInt(f.key, f.fallback)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*f.dst = v
	}

	maxCost, err := getPositiveInt("CACHE_MAX_COST", 10000)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.CacheMaxCost = int64(maxCost)

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil || ttl <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be a positive duration, got %q", getEnv("CACHE_TTL", "")))
	}
	cfg.CacheTTL = ttl

	readOnly, err := strconv.ParseBool(getEnv("READ_ONLY", "false"))
	if err != nil {
		errs = append(errs, fmt.Errorf("READ_ONLY must be a boolean, got %q", getEnv("READ_ONLY", "")))
	}
	cfg.ReadOnly = readOnly

	if cfg.AnomalyRecheckDays > cfg.AnomalyContextDays {
		errs = append(errs, fmt.Errorf("ANOMALY_RECHECK_DAYS (%d) must not exceed ANOMALY_CONTEXT_DAYS (%d)",
			cfg.AnomalyRecheckDays, cfg.AnomalyContextDays))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getPositiveInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
