package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
bot:
  token: "123:abc"
  admin_ids: [111, 222]
database:
  url: "postgres://localhost/moodbot"
checkin:
  cooldown_seconds: 3600
  day: "mon"
  hour: 9
  timezone: "Europe/Berlin"
privacy:
  log_raw_text: true
server:
  port: ":9000"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Bot.Token != "123:abc" {
		t.Errorf("token = %q", cfg.Bot.Token)
	}
	if cfg.Checkin.CooldownSeconds != 3600 {
		t.Errorf("cooldown = %d", cfg.Checkin.CooldownSeconds)
	}
	if cfg.Checkin.Day != "MON" {
		t.Errorf("day = %q, want upper-cased MON", cfg.Checkin.Day)
	}
	if cfg.Checkin.Hour != 9 {
		t.Errorf("hour = %d", cfg.Checkin.Hour)
	}
	if !cfg.Privacy.LogRawText {
		t.Error("log_raw_text should be true")
	}
	if cfg.Server.Port != ":9000" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/moodbot"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Checkin.CooldownSeconds != 604800 {
		t.Errorf("default cooldown = %d, want 604800", cfg.Checkin.CooldownSeconds)
	}
	if cfg.Stats.WindowSeconds != 604800 {
		t.Errorf("default stats window = %d, want 604800", cfg.Stats.WindowSeconds)
	}
	if cfg.Checkin.Day != "SUN" || cfg.Checkin.Hour != 18 {
		t.Errorf("default schedule = %s %d, want SUN 18", cfg.Checkin.Day, cfg.Checkin.Hour)
	}
	if cfg.Content.Dir != "content" || cfg.Content.MediaDir != "media" {
		t.Errorf("default content dirs = %q %q", cfg.Content.Dir, cfg.Content.MediaDir)
	}
	if cfg.Server.Port != ":8080" {
		t.Errorf("default port = %q", cfg.Server.Port)
	}
	if cfg.Privacy.LogRawText {
		t.Error("raw text retention must default to off")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
bot:
  token: "from-file"
database:
  url: "from-file"
`)

	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("DATABASE_URL", "postgres://env/moodbot")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bot.Token != "from-env" {
		t.Errorf("token = %q, want env override", cfg.Bot.Token)
	}
	if cfg.Database.URL != "postgres://env/moodbot" {
		t.Errorf("database url = %q, want env override", cfg.Database.URL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{}
	cfg.Bot.AdminIDs = []int64{111, 222}

	if !cfg.IsAdmin(111) || !cfg.IsAdmin(222) {
		t.Error("configured ids must be admins")
	}
	if cfg.IsAdmin(333) {
		t.Error("unknown id must not be an admin")
	}
}
