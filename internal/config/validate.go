package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the config for errors.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}
	if cfg.Server.MetricsPort <= 0 || cfg.Server.MetricsPort > 65535 {
		errs = append(errs, "server.metricsPort must be between 1 and 65535")
	}
	if cfg.Server.MetricsPort == cfg.Server.Port {
		errs = append(errs, "server.metricsPort must differ from server.port")
	}

	if cfg.Discord.PublicKey == "" {
		errs = append(errs, "discord.publicKey is required")
	} else if _, err := cfg.Discord.VerifyKey(); err != nil {
		errs = append(errs, fmt.Sprintf("discord.publicKey is invalid: %v", err))
	}
	if cfg.Discord.BotToken == "" {
		errs = append(errs, "discord.botToken is required")
	}
	if cfg.Discord.ApplicationID == "" {
		errs = append(errs, "discord.applicationID is required")
	}

	if u, err := url.Parse(cfg.Catalog.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("catalog.baseURL must be an absolute URL (got %q)", cfg.Catalog.BaseURL))
	}
	if cfg.Catalog.SearchLimit <= 0 || cfg.Catalog.SearchLimit > 25 {
		errs = append(errs, "catalog.searchLimit must be between 1 and 25")
	}

	if cfg.Workers.Count <= 0 {
		errs = append(errs, "workers.count must be positive")
	}
	if cfg.Workers.QueueSize < 0 {
		errs = append(errs, "workers.queueSize must not be negative")
	}

	if cfg.Slack.Enabled {
		if cfg.Slack.BotToken == "" {
			errs = append(errs, "slack.botToken is required when slack is enabled")
		}
		if cfg.Slack.Channel == "" {
			errs = append(errs, "slack.channel is required when slack is enabled")
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("logging.level must be debug, info, warn or error (got %q)", cfg.Logging.Level))
	}
	if cfg.Logging.Format != "json" && cfg.Logging.Format != "text" {
		errs = append(errs, fmt.Sprintf("logging.format must be json or text (got %q)", cfg.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
