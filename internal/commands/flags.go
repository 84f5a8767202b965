package commands

import (
	"github.com/rs/zerolog"

	"github.com/TimelordUK/setlist/internal/config"
	"github.com/TimelordUK/setlist/internal/storage"
)

type Flags struct {
	ConfigPath string
	Root       string
	File       string
	SkipSync   bool
	LogLevel   string
	LogFile    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Logger is the root logger, set up from Config.Log
	Logger zerolog.Logger
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	return config.GetConfigPath()
}

// mount opens the configured card root
func (f *Flags) mount() (*storage.Card, error) {
	return storage.Mount(f.Config.Storage.Root)
}
