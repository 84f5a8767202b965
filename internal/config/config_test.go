package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Root = t.TempDir()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Storage.MaxLines)
	assert.Equal(t, 5*time.Second, cfg.Clock.RefreshPeriod.Duration)
}

func TestValidate_AcceptsMissingRoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Root = filepath.Join(t.TempDir(), "card")

	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[storage]
root = "/media/sd"
default_file = "/Setlist C.txt"
max_lines = 250

[display]
foreground = "#00FF00"

[clock]
ntp_server = "time.google.com"
sync_timeout = "2s"
sync_on_boot = false

[keybindings]
left = ["a"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/media/sd", cfg.Storage.Root)
	assert.Equal(t, "/Setlist C.txt", cfg.Storage.DefaultFile)
	assert.Equal(t, 250, cfg.Storage.MaxLines)
	assert.Equal(t, "*.txt", cfg.Storage.SetlistPattern)
	assert.Equal(t, "#00FF00", cfg.Display.Foreground)
	assert.Equal(t, "#000000", cfg.Display.Background)
	assert.Equal(t, "time.google.com", cfg.Clock.NTPServer)
	assert.Equal(t, 2*time.Second, cfg.Clock.SyncTimeout.Duration)
	assert.False(t, cfg.Clock.SyncOnBoot)
	assert.Equal(t, []string{"a"}, cfg.Keybindings.Left)
	assert.Equal(t, []string{"right", "l"}, cfg.Keybindings.Right)
}

func TestLoad_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage\nroot="), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[clock]\nsync_timeout = \"soon\"\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Storage.MaxLines = 42
	cfg.Clock.SyncTimeout = Duration{1500 * time.Millisecond}

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"empty root", func(c *Config) { c.Storage.Root = " " }, "storage.root"},
		{"zero max lines", func(c *Config) { c.Storage.MaxLines = 0 }, "storage.max_lines"},
		{"bad pattern", func(c *Config) { c.Storage.SetlistPattern = "[" }, "storage.setlist_pattern"},
		{"narrow display", func(c *Config) { c.Display.Width = 4 }, "display.width"},
		{"no foreground", func(c *Config) { c.Display.Foreground = " " }, "display.foreground"},
		{"no server", func(c *Config) { c.Clock.NTPServer = "" }, "clock.ntp_server"},
		{"bad timezone", func(c *Config) { c.Clock.Timezone = "Mars/Olympus" }, "clock.timezone"},
		{"zero timeout", func(c *Config) { c.Clock.SyncTimeout = Duration{} }, "clock.sync_timeout"},
		{"fast refresh", func(c *Config) { c.Clock.RefreshPeriod = Duration{time.Millisecond} }, "clock.refresh_period"},
		{"no quit key", func(c *Config) { c.Keybindings.Quit = nil }, "keybindings.quit"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Storage.Root = t.TempDir()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestClockLocation(t *testing.T) {
	c := ClockConfig{Timezone: "America/Vancouver"}
	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Vancouver", loc.String())

	c.Timezone = ""
	loc, err = c.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/setlist/config.toml", GetConfigPath())
}
