package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("HOLLOWBOT_CONFIG", path)
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	writeConfig(t, `{
	  "channels": {"telegram": {"enabled": true, "token": "file-token"}},
	  "privilege": {"admin_allowlist": ["267971784106012", "23266257297645"]},
	  "moderation": {"muted_file": "state/muted.json"},
	  "commands": {"prefix": "!"},
	  "media": {"downloads_dir": "dl", "ffmpeg_path": "/usr/bin/ffmpeg"},
	  "logging": {"format": "json", "level": "debug", "add_source": true}
	}`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if !cfg.Channels.Telegram.Enabled || cfg.Channels.Telegram.Token != "file-token" {
		t.Fatalf("telegram config = %+v", cfg.Channels.Telegram)
	}
	if len(cfg.Privilege.AdminAllowlist) != 2 {
		t.Fatalf("allowlist len = %d, want 2", len(cfg.Privilege.AdminAllowlist))
	}
	if cfg.Moderation.MutedFile != "state/muted.json" {
		t.Fatalf("muted_file = %q", cfg.Moderation.MutedFile)
	}
	if cfg.Commands.Prefix != "!" {
		t.Fatalf("prefix = %q, want %q", cfg.Commands.Prefix, "!")
	}
	if cfg.Media.FFmpegPath != "/usr/bin/ffmpeg" {
		t.Fatalf("ffmpeg_path = %q", cfg.Media.FFmpegPath)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" || !cfg.Logging.AddSource {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	writeConfig(t, `{"channels": {"telegram": {"enabled": true}}}`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Commands.Prefix != "#" {
		t.Fatalf("prefix default = %q, want %q", cfg.Commands.Prefix, "#")
	}
	if cfg.Moderation.MutedFile != filepath.Join("session", "muted.json") {
		t.Fatalf("muted_file default = %q", cfg.Moderation.MutedFile)
	}
	if cfg.Media.DownloadsDir != "downloads" || cfg.Media.FFmpegPath != "ffmpeg" || cfg.Media.AssetsDir != "assets" {
		t.Fatalf("media defaults = %+v", cfg.Media)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	writeConfig(t, `{
	  "channels": {"telegram": {"token": "file-token"}},
	  "privilege": {"admin_allowlist": ["1"]}
	}`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("HOLLOWBOT_ADMIN_ALLOWLIST", " 10 , ,20 ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Channels.Telegram.Token != "env-token" {
		t.Fatalf("token = %q, want env override", cfg.Channels.Telegram.Token)
	}
	if len(cfg.Privilege.AdminAllowlist) != 2 || cfg.Privilege.AdminAllowlist[0] != "10" || cfg.Privilege.AdminAllowlist[1] != "20" {
		t.Fatalf("allowlist = %v, want [10 20]", cfg.Privilege.AdminAllowlist)
	}
}

func TestLoadConfigInvalidEnvPath(t *testing.T) {
	t.Setenv("HOLLOWBOT_CONFIG", filepath.Join(t.TempDir(), "missing.json"))

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing config path")
	}
}
