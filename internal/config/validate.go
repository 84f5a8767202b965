package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

// Validate checks the configuration for values the viewer cannot run with.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateStorage(),
		c.validateDisplay(),
		c.validateClock(),
		c.validateKeybindings(),
		criterio.Run("log.level", c.Log.Level, logLevel),
	)
}

func (c *Config) validateStorage() error {
	var errs criterio.FieldErrorsBuilder

	if err := required(c.Storage.Root); err != nil {
		errs = errs.Append("storage.root", err)
	}
	if c.Storage.MaxLines <= 0 {
		errs = errs.Append("storage.max_lines", fmt.Errorf("must be positive, got %d", c.Storage.MaxLines))
	}
	if c.Storage.SetlistPattern != "" && !doublestar.ValidatePattern(c.Storage.SetlistPattern) {
		errs = errs.Append("storage.setlist_pattern", fmt.Errorf("invalid pattern %q", c.Storage.SetlistPattern))
	}

	return errs.ToError()
}

func (c *Config) validateDisplay() error {
	var errs criterio.FieldErrorsBuilder

	if c.Display.Width < 16 {
		errs = errs.Append("display.width", fmt.Errorf("must be at least 16, got %d", c.Display.Width))
	}

	return criterio.ValidateStruct(
		errs.ToError(),
		criterio.Run("display.foreground", c.Display.Foreground, required),
		criterio.Run("display.background", c.Display.Background, required),
		criterio.Run("display.accent", c.Display.Accent, required),
		criterio.Run("display.error", c.Display.Error, required),
	)
}

func (c *Config) validateClock() error {
	var errs criterio.FieldErrorsBuilder

	if c.Clock.SyncTimeout.Duration <= 0 {
		errs = errs.Append("clock.sync_timeout", fmt.Errorf("must be positive"))
	}
	if c.Clock.RefreshPeriod.Duration < time.Second {
		errs = errs.Append("clock.refresh_period", fmt.Errorf("must be at least 1s"))
	}

	return criterio.ValidateStruct(
		errs.ToError(),
		criterio.Run("clock.ntp_server", c.Clock.NTPServer, required),
		criterio.Run("clock.timezone", c.Clock.Timezone, timezone),
	)
}

func (c *Config) validateKeybindings() error {
	var errs criterio.FieldErrorsBuilder

	bindings := map[string][]string{
		"keybindings.left":       c.Keybindings.Left,
		"keybindings.right":      c.Keybindings.Right,
		"keybindings.left_long":  c.Keybindings.LeftLong,
		"keybindings.right_long": c.Keybindings.RightLong,
		"keybindings.quit":       c.Keybindings.Quit,
	}
	for field, keys := range bindings {
		if len(keys) == 0 {
			errs = errs.Append(field, fmt.Errorf("at least one key is required"))
		}
	}

	return errs.ToError()
}

func required(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func timezone(name string) error {
	if name == "" {
		return nil // host local time
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("unknown timezone %q", name)
	}
	return nil
}

func logLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}
