package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Setup
	for _, key := range []string{"APP_PORT", "HRMS_API_URL", "HRMS_API_TIMEOUT", "FANOUT_LIMIT",
		"REFRESH_INTERVAL", "CORS_ALLOWED_ORIGINS", "DEFAULT_PAGE_SIZE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "http://localhost:8000", cfg.HRMSAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.HRMSAPI.Timeout)
	assert.Equal(t, 8, cfg.HRMSAPI.FanOutLimit)
	assert.Equal(t, time.Minute, cfg.Cache.RefreshInterval)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10, cfg.View.DefaultPageSize)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_FromEnvironment(t *testing.T) {
	// Setup
	t.Setenv("HRMS_API_URL", "https://hrms.example.com/")
	t.Setenv("HRMS_API_TIMEOUT", "3s")
	t.Setenv("FANOUT_LIMIT", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://hrms.example.com", cfg.HRMSAPI.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.HRMSAPI.Timeout)
	assert.Equal(t, 4, cfg.HRMSAPI.FanOutLimit)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"APP_PORT", "eighty"},
		{"HRMS_API_TIMEOUT", "soon"},
		{"FANOUT_LIMIT", "0"},
		{"HRMS_API_URL", "not a url"},
		{"DEFAULT_PAGE_SIZE", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}
