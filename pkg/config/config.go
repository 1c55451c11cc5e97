package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis (empty disables the reference cache)
	RedisURL        string        `mapstructure:"REDIS_URL"`
	CacheExpiration time.Duration `mapstructure:"CACHE_EXPIRATION"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Sample data
	SeedOnStartup bool  `mapstructure:"SEED_ON_STARTUP"`
	SeedRandom    int64 `mapstructure:"SEED_RANDOM"`

	// Background jobs
	StandingsSchedule string `mapstructure:"STANDINGS_SCHEDULE"`

	// Dashboard
	DashboardPort         string        `mapstructure:"DASHBOARD_PORT"`
	APIBaseURL            string        `mapstructure:"API_BASE_URL"`
	DashboardPollInterval time.Duration `mapstructure:"DASHBOARD_POLL_INTERVAL"`
	APIClientTimeout      time.Duration `mapstructure:"API_CLIENT_TIMEOUT"`
	APIClientRPS          float64       `mapstructure:"API_CLIENT_RPS"`
	CircuitBreakerTimeout time.Duration `mapstructure:"CIRCUIT_BREAKER_TIMEOUT"`
}

// LoadConfig reads .env from the working directory or its parent, then the
// environment. Missing files are not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DATABASE_URL", "sqlite://nba_betting.db")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_EXPIRATION", "5m")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("SEED_ON_STARTUP", true)
	v.SetDefault("SEED_RANDOM", 0) // 0 seeds from the clock
	v.SetDefault("STANDINGS_SCHEDULE", "@every 10m")
	v.SetDefault("DASHBOARD_PORT", "8050")
	v.SetDefault("API_BASE_URL", "http://127.0.0.1:8000/api")
	v.SetDefault("DASHBOARD_POLL_INTERVAL", "30s")
	v.SetDefault("API_CLIENT_TIMEOUT", "10s")
	v.SetDefault("API_CLIENT_RPS", 20)
	v.SetDefault("CIRCUIT_BREAKER_TIMEOUT", "30s")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := v.GetString("CORS_ORIGINS"); corsStr != "" {
		origins := strings.Split(corsStr, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		config.CorsOrigins = origins
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
