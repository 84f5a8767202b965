package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/TimelordUK/setlist/internal/clock"
	"github.com/TimelordUK/setlist/internal/storage"
	"github.com/TimelordUK/setlist/internal/ui"
	"github.com/TimelordUK/setlist/pkg/logutils"
)

type ViewCmd struct {
	flags *Flags
}

// NewViewCmd creates the interactive viewer command
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags}
}

// Flags returns the viewer flags for registration on the root command
func (cmd *ViewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "open this setlist after boot instead of the file picker",
			Sources:     cli.EnvVars("SETLIST_FILE"),
			Destination: &cmd.flags.File,
		},
		&cli.BoolFlag{
			Name:        "skip-sync",
			Usage:       "do not offer a time sync on boot",
			Destination: &cmd.flags.SkipSync,
		},
	}
}

// Run executes the viewer. Exported for use as default command.
func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ViewCmd) run(_ context.Context, _ *cli.Command) error {
	model, err := cmd.newModel()
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// newModel builds the viewer over the card. A card that is not there yet is
// not an error: the viewer starts in its error state and lists the card again
// on the next button press.
func (cmd *ViewCmd) newModel() (*ui.Model, error) {
	cfg := cmd.flags.Config
	logger := cmd.flags.Logger

	card := storage.Attach(cfg.Storage.Root)
	if used, err := card.UsedBytes(); err == nil {
		logger.Info().Str("root", card.Root()).Int64("used_bytes", used).Msg("card mounted")
	} else {
		logger.Warn().Err(err).Str("root", card.Root()).Msg("card not readable")
	}

	loc, err := cfg.Clock.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	rtc := clock.NewSoftRTC(loc)
	syncer := clock.NewSyncer(cfg.Clock.NTPServer, cfg.Clock.SyncTimeout.Duration, logutils.Component(logger, "ntp"))

	file := cmd.flags.File
	if file == "" {
		file = cfg.Storage.DefaultFile
	}

	return ui.NewModel(ui.ModelOptions{
		FS:       card,
		Config:   cfg,
		RTC:      rtc,
		Syncer:   syncer,
		File:     file,
		SkipSync: cmd.flags.SkipSync,
		Logger:   logutils.Component(logger, "ui"),
	}), nil
}
