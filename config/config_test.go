package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.RetryDelay)
	assert.Equal(t, 2*time.Minute, cfg.OverallTimeout)
	assert.Equal(t, 3, cfg.LoopMaxIterations)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.WeatherAPIURL)
	assert.Empty(t, cfg.TimeAPIURL)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRIPMESH_MAX_RETRIES", "5")
	t.Setenv("TRIPMESH_RETRY_DELAY", "250ms")
	t.Setenv("TRIPMESH_OVERALL_TIMEOUT", "30s")
	t.Setenv("TRIPMESH_LOOP_MAX_ITERATIONS", "7")
	t.Setenv("TRIPMESH_WEATHER_API_URL", "https://api.example.com/v1/forecast.json")
	t.Setenv("TRIPMESH_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 30*time.Second, cfg.OverallTimeout)
	assert.Equal(t, 7, cfg.LoopMaxIterations)
	assert.Equal(t, "https://api.example.com/v1/forecast.json", cfg.WeatherAPIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("TRIPMESH_MAX_RETRIES", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries")
}

func TestConfig_Validate(t *testing.T) {
	base := Config{
		MaxRetries:        3,
		RetryDelay:        5 * time.Second,
		OverallTimeout:    2 * time.Minute,
		LoopMaxIterations: 3,
	}

	assert.NoError(t, base.Validate())

	bad := base
	bad.RetryDelay = -time.Second
	assert.Error(t, bad.Validate())

	bad = base
	bad.OverallTimeout = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.LoopMaxIterations = 0
	assert.Error(t, bad.Validate())
}
