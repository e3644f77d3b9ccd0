package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Discord DiscordConfig `yaml:"discord"`
	Catalog CatalogConfig `yaml:"catalog"`
	Workers WorkersConfig `yaml:"workers"`
	Slack   SlackConfig   `yaml:"slack"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" env:"RANOBEBOT_PORT"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MetricsPort     int           `yaml:"metricsPort" env:"RANOBEBOT_METRICS_PORT"`
}

type DiscordConfig struct {
	PublicKey       string        `yaml:"publicKey" env:"DISCORD_PUBLIC_KEY"`
	BotToken        string        `yaml:"botToken" env:"DISCORD_BOT_TOKEN"`
	ApplicationID   string        `yaml:"applicationID" env:"DISCORD_APPLICATION_ID"`
	FollowUpTimeout time.Duration `yaml:"followUpTimeout"`
}

type CatalogConfig struct {
	BaseURL     string        `yaml:"baseURL" env:"RANOBEDB_BASE_URL"`
	Timeout     time.Duration `yaml:"timeout"`
	SearchLimit int           `yaml:"searchLimit"`
	Sort        string        `yaml:"sort"`
	SiteURL     string        `yaml:"siteURL"`
	ImageURL    string        `yaml:"imageURL"`
}

type WorkersConfig struct {
	Count        int           `yaml:"count"`
	QueueSize    int           `yaml:"queueSize"`
	DrainTimeout time.Duration `yaml:"drainTimeout"`
}

type SlackConfig struct {
	Enabled  bool   `yaml:"enabled" env:"SLACK_ENABLED"`
	BotToken string `yaml:"botToken" env:"SLACK_BOT_TOKEN"`
	Channel  string `yaml:"channel" env:"SLACK_CHANNEL"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"RANOBEBOT_LOG_LEVEL"`
	Format string `yaml:"format" env:"RANOBEBOT_LOG_FORMAT"`
}

// Load builds a Config from defaults, the optional YAML file at path and the
// environment, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MetricsPort:     9090,
		},
		Discord: DiscordConfig{
			FollowUpTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			BaseURL:     "https://ranobedb.org/api/v0",
			Timeout:     10 * time.Second,
			SearchLimit: 5,
			Sort:        "Release date asc",
			SiteURL:     "https://ranobedb.org/",
			ImageURL:    "https://images.ranobedb.org/",
		},
		Workers: WorkersConfig{
			Count:        8,
			QueueSize:    64,
			DrainTimeout: 30 * time.Second,
		},
		Slack: SlackConfig{
			Enabled: false,
			Channel: "#ranobe-bot-ops",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// expandEnvVars replaces ${VAR} patterns with environment variable values.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "${" + key + "}"
	})
}

// VerifyKey decodes the hex application public key.
func (c *DiscordConfig) VerifyKey() (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(c.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("decoding discord public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("discord public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}
