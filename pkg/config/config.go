package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	envConfigPath     = "HOLLOWBOT_CONFIG"
	envTelegramToken  = "TELEGRAM_BOT_TOKEN"
	envAdminAllowlist = "HOLLOWBOT_ADMIN_ALLOWLIST"
)

// Config is the root runtime configuration loaded from config.json.
type Config struct {
	Channels   ChannelsConfig   `json:"channels"`
	Privilege  PrivilegeConfig  `json:"privilege"`
	Moderation ModerationConfig `json:"moderation"`
	Commands   CommandsConfig   `json:"commands,omitempty"`
	Media      MediaConfig      `json:"media,omitempty"`
	Status     StatusConfig     `json:"status,omitempty"`
	Logging    LoggingConfig    `json:"logging,omitempty"`
}

// StatusConfig configures the optional HTTP health/readiness endpoint.
type StatusConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host,omitempty"`
	Port    int    `json:"port,omitempty"`
}

// LoggingConfig controls structured log output format and verbosity.
type LoggingConfig struct {
	Format    string `json:"format,omitempty"`
	Level     string `json:"level,omitempty"`
	AddSource bool   `json:"add_source,omitempty"`
}

// ChannelsConfig stores transport adapter settings.
type ChannelsConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

// TelegramConfig configures the Telegram channel.
type TelegramConfig struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
}

// PrivilegeConfig holds the static allow-list of identities that may invoke
// privileged commands even when the live role lookup misses or fails.
// Configured at startup, immutable afterwards.
type PrivilegeConfig struct {
	AdminAllowlist []string `json:"admin_allowlist"`
}

// ModerationConfig locates the persisted mute state.
type ModerationConfig struct {
	MutedFile string `json:"muted_file,omitempty"`
}

// CommandsConfig tunes command recognition.
type CommandsConfig struct {
	Prefix string `json:"prefix,omitempty"`
}

// MediaConfig configures the media acquisition pipeline.
type MediaConfig struct {
	DownloadsDir string `json:"downloads_dir,omitempty"`
	FFmpegPath   string `json:"ffmpeg_path,omitempty"`
	AssetsDir    string `json:"assets_dir,omitempty"`
}

// LoadConfig resolves config.json, unmarshals it, applies environment
// overrides, and fills defaults.
func LoadConfig() (*Config, error) {
	configPath, err := findConfigPath()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides injects selected env-driven settings on top of file config.
func applyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if token := strings.TrimSpace(os.Getenv(envTelegramToken)); token != "" {
		cfg.Channels.Telegram.Token = token
	}

	if rawAllowlist := strings.TrimSpace(os.Getenv(envAdminAllowlist)); rawAllowlist != "" {
		cfg.Privilege.AdminAllowlist = parseCSV(rawAllowlist)
	}
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Moderation.MutedFile) == "" {
		cfg.Moderation.MutedFile = filepath.Join("session", "muted.json")
	}
	if strings.TrimSpace(cfg.Commands.Prefix) == "" {
		cfg.Commands.Prefix = "#"
	}
	if strings.TrimSpace(cfg.Media.DownloadsDir) == "" {
		cfg.Media.DownloadsDir = "downloads"
	}
	if strings.TrimSpace(cfg.Media.FFmpegPath) == "" {
		cfg.Media.FFmpegPath = "ffmpeg"
	}
	if strings.TrimSpace(cfg.Media.AssetsDir) == "" {
		cfg.Media.AssetsDir = "assets"
	}
}

// parseCSV splits comma-separated values and returns a trimmed compact slice.
func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		clean = append(clean, trimmed)
	}

	return slices.Clip(clean)
}

// findConfigPath resolves the active config file location.
//
// Precedence is HOLLOWBOT_CONFIG first, then cwd-local fallback paths.
func findConfigPath() (string, error) {
	if value := strings.TrimSpace(os.Getenv(envConfigPath)); value != "" {
		if info, err := os.Stat(value); err == nil && !info.IsDir() {
			return value, nil
		}
		return "", fmt.Errorf("%s does not point to a file: %s", envConfigPath, value)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current working directory: %w", err)
	}

	candidates := []string{
		filepath.Join(cwd, "config.json"),
		filepath.Join(cwd, "config", "config.json"),
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("config.json not found (checked %s and %s)", candidates[0], candidates[1])
}
