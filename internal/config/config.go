package config

import (
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	HRMSAPI HRMSAPIConfig
	Cache   CacheConfig
	CORS    CORSConfig
	View    ViewConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// HRMSAPIConfig points at the upstream HRMS REST API
type HRMSAPIConfig struct {
	BaseURL string
	Timeout time.Duration
	// FanOutLimit caps concurrent per-employee attendance lookups
	FanOutLimit int
}

// CacheConfig controls background refresh of cached entities
type CacheConfig struct {
	RefreshInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type ViewConfig struct {
	DefaultPageSize int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Upstream API configuration
	apiTimeout, err := time.ParseDuration(getEnv("HRMS_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRMS_API_TIMEOUT: %w", err)
	}

	fanOutLimit, err := strconv.Atoi(getEnv("FANOUT_LIMIT", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid FANOUT_LIMIT: %w", err)
	}

	config.HRMSAPI = HRMSAPIConfig{
		BaseURL:     strings.TrimRight(getEnv("HRMS_API_URL", "http://localhost:8000"), "/"),
		Timeout:     apiTimeout,
		FanOutLimit: fanOutLimit,
	}

	// Cache configuration
	refreshInterval, err := time.ParseDuration(getEnv("REFRESH_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}

	config.Cache = CacheConfig{
		RefreshInterval: refreshInterval,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}

	pageSize, err := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_PAGE_SIZE: %w", err)
	}

	config.View = ViewConfig{
		DefaultPageSize: pageSize,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	u, err := url.Parse(c.HRMSAPI.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("HRMS_API_URL must be an absolute URL")
	}
	if c.HRMSAPI.Timeout <= 0 {
		return fmt.Errorf("HRMS_API_TIMEOUT must be positive")
	}
	if c.HRMSAPI.FanOutLimit < 1 {
		return fmt.Errorf("FANOUT_LIMIT must be at least 1")
	}
	if c.Cache.RefreshInterval < 0 {
		return fmt.Errorf("REFRESH_INTERVAL must not be negative")
	}
	if c.View.DefaultPageSize < 0 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must not be negative")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
