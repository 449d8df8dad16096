package config

import (
	"os"
	"time"

	"github.com/mvens/tvlens/internal/fetcher"
)

// Config holds application configuration. Everything has a working
// default, so the app runs with no environment and no config file.
type Config struct {
	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"-"`
	LogFile     string        `yaml:"log_file"`
	PlayerPath  string        `yaml:"player_path"`
	DatabaseURL string        `yaml:"database_url"` // optional: enables the channel vault
	RedisURL    string        `yaml:"redis_url"`    // optional: enables the playlist cache
	CacheTTL    time.Duration `yaml:"-"`
}

// DefaultLogFile is where diagnostics are appended.
const DefaultLogFile = "tvlens.log"

// DefaultCacheTTL bounds how long a fetched playlist body stays cached.
const DefaultCacheTTL = 15 * time.Minute

// Load builds config from environment variables. If none of the tvlens
// variables are set, Load tries .env.local and .env from the current
// directory first. All variables are optional.
func Load() (*Config, error) {
	if os.Getenv("TVLENS_LOG_FILE") == "" && os.Getenv("DATABASE_URL") == "" {
		loadEnvFiles()
	}
	c := defaults()
	c.UserAgent = envOr("TVLENS_USER_AGENT", c.UserAgent)
	c.LogFile = envOr("TVLENS_LOG_FILE", c.LogFile)
	c.PlayerPath = os.Getenv("TVLENS_PLAYER_PATH")
	c.DatabaseURL = os.Getenv("DATABASE_URL")
	c.RedisURL = os.Getenv("REDIS_URL")
	if s := os.Getenv("TVLENS_FETCH_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			c.Timeout = d
		}
	}
	if s := os.Getenv("TVLENS_CACHE_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			c.CacheTTL = d
		}
	}
	return c, nil
}

func defaults() *Config {
	return &Config{
		UserAgent: "tvlens/1.0",
		Timeout:   fetcher.DefaultTimeout,
		LogFile:   DefaultLogFile,
		CacheTTL:  DefaultCacheTTL,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
