// Package config loads the service configuration from a YAML file with
// environment-variable expansion on secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ProviderConfig configures one completion provider instance.
type ProviderConfig struct {
	Type              string        `yaml:"type"` // "gemini", "groq" or "openrouter"
	APIKey            string        `yaml:"api_key"`
	ModelName         string        `yaml:"model_name"`
	MaxRetries        int           `yaml:"max_retries"`
	RetryDelay        time.Duration `yaml:"retry_delay"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

// Config holds the application configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Providers []ProviderConfig `yaml:"providers"`

	LLM struct {
		RequestTimeout          time.Duration `yaml:"request_timeout"`
		MaxFailuresBeforeSwitch int           `yaml:"max_failures_before_switch"`
	} `yaml:"llm"`

	Database struct {
		Type           string `yaml:"type"` // "postgres", "sqlite" or "none"
		URL            string `yaml:"url"`  // Postgres DSN
		Path           string `yaml:"path"` // SQLite path
		MigrationsPath string `yaml:"migrations_path"`
	} `yaml:"database"`

	Cache struct {
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"cache"`

	Auth struct {
		Enabled bool   `yaml:"enabled"`
		Secret  string `yaml:"secret"`
	} `yaml:"auth"`

	Questions struct {
		Path string `yaml:"path"`
	} `yaml:"questions"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Defaults
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.LLM.RequestTimeout == 0 {
		config.LLM.RequestTimeout = 30 * time.Second
	}
	if config.LLM.MaxFailuresBeforeSwitch == 0 {
		config.LLM.MaxFailuresBeforeSwitch = 3
	}
	if config.Database.Type == "" {
		config.Database.Type = "sqlite"
	}
	if config.Database.Path == "" {
		config.Database.Path = "./data/reports.db"
	}
	if config.Database.MigrationsPath == "" {
		config.Database.MigrationsPath = "migrations"
	}
	if config.Cache.TTL == 0 {
		config.Cache.TTL = 24 * time.Hour
	}

	// Expand environment variables in secrets
	for i := range config.Providers {
		config.Providers[i].APIKey = os.ExpandEnv(config.Providers[i].APIKey)
	}
	config.Database.URL = os.ExpandEnv(config.Database.URL)
	config.Auth.Secret = os.ExpandEnv(config.Auth.Secret)

	return config, nil
}
