package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	UserAgent   string `yaml:"user_agent"`
	Timeout     string `yaml:"timeout"`
	LogFile     string `yaml:"log_file"`
	PlayerPath  string `yaml:"player_path"`
	DatabaseURL string `yaml:"database_url"`
	RedisURL    string `yaml:"redis_url"`
	CacheTTL    string `yaml:"cache_ttl"`
}

// LoadFromFile loads config from a YAML file. Every key is optional;
// missing keys keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	c := defaults()
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.LogFile != "" {
		c.LogFile = f.LogFile
	}
	c.PlayerPath = f.PlayerPath
	c.DatabaseURL = f.DatabaseURL
	c.RedisURL = f.RedisURL
	if f.Timeout != "" {
		if d, err := time.ParseDuration(f.Timeout); err == nil {
			c.Timeout = d
		}
	}
	if f.CacheTTL != "" {
		if d, err := time.ParseDuration(f.CacheTTL); err == nil {
			c.CacheTTL = d
		}
	}
	return c, nil
}
