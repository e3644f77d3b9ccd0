package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testPublicKey = "a3f1c2d4e5b60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90"

// validConfig returns defaults plus the required Discord credentials.
func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Discord.PublicKey = testPublicKey
	cfg.Discord.BotToken = "bot-token"
	cfg.Discord.ApplicationID = "123456789"
	return cfg
}

// setDiscordEnv provides the required secrets through the environment.
func setDiscordEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_PUBLIC_KEY", testPublicKey)
	t.Setenv("DISCORD_BOT_TOKEN", "env-bot-token")
	t.Setenv("DISCORD_APPLICATION_ID", "987654321")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Server defaults
	if cfg.Server.Port != 8080 {
		t.Errorf("expected server.port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected server.readTimeout 10s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.ShutdownTimeout != 15*time.Second {
		t.Errorf("expected server.shutdownTimeout 15s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Server.MetricsPort != 9090 {
		t.Errorf("expected server.metricsPort 9090, got %d", cfg.Server.MetricsPort)
	}

	// Catalog defaults
	if cfg.Catalog.BaseURL != "https://ranobedb.org/api/v0" {
		t.Errorf("expected catalog.baseURL https://ranobedb.org/api/v0, got %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.SearchLimit != 5 {
		t.Errorf("expected catalog.searchLimit 5, got %d", cfg.Catalog.SearchLimit)
	}
	if cfg.Catalog.Sort != "Release date asc" {
		t.Errorf("expected catalog.sort %q, got %q", "Release date asc", cfg.Catalog.Sort)
	}

	// Worker defaults
	if cfg.Workers.Count != 8 || cfg.Workers.QueueSize != 64 {
		t.Errorf("unexpected workers defaults: %+v", cfg.Workers)
	}

	if cfg.Slack.Enabled {
		t.Error("expected slack.enabled false by default")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoad(t *testing.T) {
	yaml := `
server:
  port: 9000
  metricsPort: 9091
discord:
  publicKey: "` + testPublicKey + `"
  botToken: "file-token"
  applicationID: "42"
catalog:
  baseURL: "http://catalog.test/api/v0"
  timeout: 3s
workers:
  count: 2
logging:
  format: text
`
	f := writeTempYAML(t, yaml)

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9091 {
		t.Errorf("expected metricsPort 9091, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Catalog.BaseURL != "http://catalog.test/api/v0" {
		t.Errorf("expected catalog baseURL http://catalog.test/api/v0, got %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Timeout != 3*time.Second {
		t.Errorf("expected catalog timeout 3s, got %v", cfg.Catalog.Timeout)
	}
	if cfg.Workers.Count != 2 {
		t.Errorf("expected workers.count 2, got %d", cfg.Workers.Count)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected logging.format text, got %q", cfg.Logging.Format)
	}
	// Verify defaults still apply to unset fields
	if cfg.Workers.QueueSize != 64 {
		t.Errorf("expected default queueSize 64, got %d", cfg.Workers.QueueSize)
	}
}

func TestLoad_WithoutFile(t *testing.T) {
	setDiscordEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Discord.BotToken != "env-bot-token" {
		t.Errorf("expected bot token from env, got %q", cfg.Discord.BotToken)
	}
	if cfg.Discord.ApplicationID != "987654321" {
		t.Errorf("expected application id from env, got %q", cfg.Discord.ApplicationID)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	setDiscordEnv(t)
	t.Setenv("RANOBEBOT_LOG_LEVEL", "debug")

	f := writeTempYAML(t, "discord:\n  botToken: file-token\nlogging:\n  level: warn\n")

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Discord.BotToken != "env-bot-token" {
		t.Errorf("expected env to win for botToken, got %q", cfg.Discord.BotToken)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env to win for logging.level, got %q", cfg.Logging.Level)
	}
}

func TestLoad_MissingSecrets(t *testing.T) {
	_, err := Load("")
	if err == nil {
		t.Fatal("expected error without discord credentials, got nil")
	}
	for _, want := range []string{"discord.publicKey", "discord.botToken", "discord.applicationID"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %s: %v", want, err)
		}
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	f := writeTempYAML(t, ":::invalid yaml:::")
	_, err := Load(f)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_TOKEN", "secret-token-123")
	t.Setenv("TEST_PORT", "9999")

	input := "token: ${TEST_TOKEN}\nport: ${TEST_PORT}\nmissing: ${MISSING_VAR}"
	result := expandEnvVars(input)

	if result != "token: secret-token-123\nport: 9999\nmissing: ${MISSING_VAR}" {
		t.Errorf("unexpected expansion result:\n%s", result)
	}
}

func TestExpandEnvVars_InLoad(t *testing.T) {
	setDiscordEnv(t)
	t.Setenv("TEST_SLACK_TOKEN", "xoxb-expanded")

	yaml := `
slack:
  enabled: true
  botToken: "${TEST_SLACK_TOKEN}"
`
	f := writeTempYAML(t, yaml)

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Slack.BotToken != "xoxb-expanded" {
		t.Errorf("expected env-expanded token xoxb-expanded, got %q", cfg.Slack.BotToken)
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("expected valid config to pass validation, got: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 99999 }},
		{"metrics port clash", func(c *Config) { c.Server.MetricsPort = c.Server.Port }},
		{"public key not hex", func(c *Config) { c.Discord.PublicKey = "zz" }},
		{"public key short", func(c *Config) { c.Discord.PublicKey = testPublicKey[:32] }},
		{"relative catalog url", func(c *Config) { c.Catalog.BaseURL = "/api/v0" }},
		{"search limit zero", func(c *Config) { c.Catalog.SearchLimit = 0 }},
		{"search limit above menu size", func(c *Config) { c.Catalog.SearchLimit = 26 }},
		{"no workers", func(c *Config) { c.Workers.Count = 0 }},
		{"negative queue", func(c *Config) { c.Workers.QueueSize = -1 }},
		{"slack without token", func(c *Config) { c.Slack.Enabled = true }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestVerifyKey(t *testing.T) {
	d := DiscordConfig{PublicKey: testPublicKey}
	key, err := d.VerifyKey()
	if err != nil {
		t.Fatalf("VerifyKey() error: %v", err)
	}
	if len(key) != 32 {
		t.Errorf("expected 32-byte key, got %d", len(key))
	}
}

// writeTempYAML writes content to a temp file and returns its path.
func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	f := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(f, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp yaml: %v", err)
	}
	return f
}
