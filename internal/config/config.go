package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Bot struct {
		Token    string  `yaml:"token"`
		AdminIDs []int64 `yaml:"admin_ids"`
	} `yaml:"bot"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Checkin struct {
		CooldownSeconds int64  `yaml:"cooldown_seconds"`
		Day             string `yaml:"day"`
		Hour            int    `yaml:"hour"`
		Timezone        string `yaml:"timezone"`
	} `yaml:"checkin"`
	Privacy struct {
		LogRawText bool `yaml:"log_raw_text"`
	} `yaml:"privacy"`
	Content struct {
		Dir      string `yaml:"dir"`
		MediaDir string `yaml:"media_dir"`
	} `yaml:"content"`
	Stats struct {
		WindowSeconds int64 `yaml:"window_seconds"`
	} `yaml:"stats"`
	Server struct {
		Port      string `yaml:"port"`
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"server"`
}

// Defaults applied when the YAML leaves a knob unset.
const (
	defaultCooldownSeconds = 7 * 24 * 60 * 60
	defaultWindowSeconds   = 7 * 24 * 60 * 60
	defaultCheckinDay      = "SUN"
	defaultCheckinHour     = 18
	defaultTimezone        = "Asia/Qyzylorda"
	defaultContentDir      = "content"
	defaultMediaDir        = "media"
	defaultPort            = ":8080"
)

// LoadConfig reads configuration from the specified YAML file.
// BOT_TOKEN and DATABASE_URL environment variables override the file
// so secrets can stay out of it.
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

	if token := os.Getenv("BOT_TOKEN"); token != "" {
		config.Bot.Token = token
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.Database.URL = url
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Server.JWTSecret = secret
	}

	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Checkin.CooldownSeconds <= 0 {
		c.Checkin.CooldownSeconds = defaultCooldownSeconds
	}
	if c.Stats.WindowSeconds <= 0 {
		c.Stats.WindowSeconds = defaultWindowSeconds
	}
	if c.Checkin.Day == "" {
		c.Checkin.Day = defaultCheckinDay
	} else {
		c.Checkin.Day = strings.ToUpper(c.Checkin.Day)
	}
	if c.Checkin.Hour <= 0 || c.Checkin.Hour > 23 {
		c.Checkin.Hour = defaultCheckinHour
	}
	if c.Checkin.Timezone == "" {
		c.Checkin.Timezone = defaultTimezone
	}
	if c.Content.Dir == "" {
		c.Content.Dir = defaultContentDir
	}
	if c.Content.MediaDir == "" {
		c.Content.MediaDir = defaultMediaDir
	}
	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}
}

// IsAdmin reports whether the Telegram user id belongs to a configured
// bot admin.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Bot.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
