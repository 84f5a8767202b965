package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Storage     StorageConfig    `toml:"storage"`
	Display     DisplayConfig    `toml:"display"`
	Clock       ClockConfig      `toml:"clock"`
	Keybindings KeybindingConfig `toml:"keybindings"`
	Log         LogConfig        `toml:"log"`
}

// StorageConfig describes where setlists live
type StorageConfig struct {
	Root           string `toml:"root"`
	DefaultFile    string `toml:"default_file"`
	SetlistPattern string `toml:"setlist_pattern"`
	MaxLines       int    `toml:"max_lines"`
}

// DisplayConfig holds the panel colours and size
type DisplayConfig struct {
	Width      int    `toml:"width"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Accent     string `toml:"accent"`
	Error      string `toml:"error"`
}

// ClockConfig configures the RTC display and NTP sync
type ClockConfig struct {
	NTPServer     string   `toml:"ntp_server"`
	Timezone      string   `toml:"timezone"`
	SyncTimeout   Duration `toml:"sync_timeout"`
	RefreshPeriod Duration `toml:"refresh_period"`
	SyncOnBoot    bool     `toml:"sync_on_boot"`
}

// KeybindingConfig maps the two pedal buttons onto keys
type KeybindingConfig struct {
	Left      []string `toml:"left"`
	Right     []string `toml:"right"`
	LeftLong  []string `toml:"left_long"`
	RightLong []string `toml:"right_long"`
	Quit      []string `toml:"quit"`
}

// LogConfig holds logger options
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Duration is a time.Duration that reads and writes as "5s" in TOML
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Root:           ".",
			DefaultFile:    "",
			SetlistPattern: "*.txt",
			MaxLines:       100,
		},
		Display: DisplayConfig{
			Width:      48,
			Foreground: "#FFFFFF",
			Background: "#000000",
			Accent:     "214", // Orange
			Error:      "167", // Soft red
		},
		Clock: ClockConfig{
			NTPServer:     "pool.ntp.org",
			Timezone:      "America/Vancouver",
			SyncTimeout:   Duration{5 * time.Second},
			RefreshPeriod: Duration{5 * time.Second},
			SyncOnBoot:    true,
		},
		Keybindings: KeybindingConfig{
			Left:      []string{"left", "h"},
			Right:     []string{"right", "l"},
			LeftLong:  []string{"shift+left", "H"},
			RightLong: []string{"shift+right", "L"},
			Quit:      []string{"q", "ctrl+c"},
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Load loads config from path, falling back to defaults. An empty path uses
// the XDG location.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = getConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path, or to the XDG location when path is empty
func Save(cfg *Config, path string) error {
	if path == "" {
		path = getConfigPath()
	}
	if path == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Location loads the configured timezone
func (c *ClockConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "setlist", "config.toml")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "setlist", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
