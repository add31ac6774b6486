// Package config loads the environment-style configuration surface for
// tripmesh deployments: the coordinator's retry/timeout envelope, the
// planning loop ceiling, collaborator credentials and base URLs, and the
// logging/metrics knobs. All values are bound under the TRIPMESH_ prefix
// (e.g. TRIPMESH_MAX_RETRIES, TRIPMESH_WEATHER_API_URL).
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved deployment configuration.
type Config struct {
	// Coordinator envelope.
	MaxRetries     int
	RetryDelay     time.Duration
	OverallTimeout time.Duration

	// Planning loop ceiling.
	LoopMaxIterations int

	// Collaborator endpoints; opaque strings passed through to tools.
	WeatherAPIKey string
	WeatherAPIURL string
	TimeAPIURL    string

	// Observability.
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

// Load resolves the configuration from the environment, applying defaults
// for anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRIPMESH")
	v.AutomaticEnv()

	v.SetDefault("max_retries", 3)
	v.SetDefault("retry_delay", "5s")
	v.SetDefault("overall_timeout", "2m")
	v.SetDefault("loop_max_iterations", 3)
	v.SetDefault("weather_api_key", "")
	v.SetDefault("weather_api_url", "")
	v.SetDefault("time_api_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("metrics_addr", "")

	cfg := &Config{
		MaxRetries:        v.GetInt("max_retries"),
		RetryDelay:        v.GetDuration("retry_delay"),
		OverallTimeout:    v.GetDuration("overall_timeout"),
		LoopMaxIterations: v.GetInt("loop_max_iterations"),
		WeatherAPIKey:     v.GetString("weather_api_key"),
		WeatherAPIURL:     v.GetString("weather_api_url"),
		TimeAPIURL:        v.GetString("time_api_url"),
		LogLevel:          v.GetString("log_level"),
		LogFormat:         v.GetString("log_format"),
		MetricsAddr:       v.GetString("metrics_addr"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the resolved values for internal consistency.
func (c *Config) Validate() error {
	if c.MaxRetries < 1 {
		return fmt.Errorf("config: max retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("config: retry delay must not be negative, got %v", c.RetryDelay)
	}
	if c.OverallTimeout <= 0 {
		return fmt.Errorf("config: overall timeout must be positive, got %v", c.OverallTimeout)
	}
	if c.LoopMaxIterations < 1 {
		return fmt.Errorf("config: loop max iterations must be at least 1, got %d", c.LoopMaxIterations)
	}
	return nil
}
