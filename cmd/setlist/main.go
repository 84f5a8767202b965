package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/TimelordUK/setlist/internal/commands"
	"github.com/TimelordUK/setlist/internal/config"
	"github.com/TimelordUK/setlist/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "setlist",
		Usage:     "Show a setlist three lines at a time",
		UsageText: "setlist [global options] [command [command options]]",
		Description: `Setlist is the display of a two-button stage pedal. It reads plain-text
setlists from a card directory and shows them three lines at a time. The left
and right buttons are mapped onto keys; hold a button with shift.

Run 'setlist' with no arguments to start the viewer.
Run 'setlist window <file> <line>' to print a single window.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SETLIST_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "root",
				Aliases:     []string{"r"},
				Usage:       "card directory (overrides storage.root)",
				Sources:     cli.EnvVars("SETLIST_ROOT"),
				Destination: &flags.Root,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SETLIST_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs are discarded when unset)",
				Sources:     cli.EnvVars("SETLIST_LOG_FILE"),
				Destination: &flags.LogFile,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Flags win over the config file
			if flags.Root != "" {
				cfg.Storage.Root = flags.Root
			}
			if flags.LogLevel != "" {
				cfg.Log.Level = flags.LogLevel
			}
			if flags.LogFile != "" {
				cfg.Log.File = flags.LogFile
			}

			if err := cfg.Validate(); err != nil {
				return ctx, fmt.Errorf("invalid config: %w", err)
			}

			logger, closer, err := logutils.New(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			flags.Config = cfg
			flags.Logger = logger

			log.Info().Str("version", version).Str("config", flags.ConfigPath).Msg("starting")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	viewCmd := commands.NewViewCmd(flags)

	app = commands.NewLsCmd(flags).Register(app)
	app = commands.NewIndexCmd(flags).Register(app)
	app = commands.NewWindowCmd(flags).Register(app)
	app = commands.NewSyncCmd(flags).Register(app)

	// Register viewer flags on root command
	app.Flags = append(app.Flags, viewCmd.Flags()...)

	// Start the viewer when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'setlist --help' for usage", c.Args().First())
		}
		return viewCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
