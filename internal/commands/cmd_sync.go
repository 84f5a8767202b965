package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/TimelordUK/setlist/internal/clock"
	"github.com/TimelordUK/setlist/internal/ui"
	"github.com/TimelordUK/setlist/pkg/logutils"
	"github.com/TimelordUK/setlist/pkg/timefmt"
)

type SyncCmd struct {
	flags *Flags

	// syncer overrides the NTP client in tests
	syncer ui.Syncer
}

// NewSyncCmd creates a new sync command
func NewSyncCmd(flags *Flags) *SyncCmd {
	return &SyncCmd{flags: flags}
}

// Register adds the sync command to the application
func (cmd *SyncCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "sync",
		Usage:     "Query the time server once and print the clock offset",
		UsageText: "setlist sync",
		Action:    cmd.run,
	})

	return app
}

func (cmd *SyncCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config.Clock

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}
	rtc := clock.NewSoftRTC(loc)

	syncer := cmd.syncer
	if syncer == nil {
		syncer = clock.NewSyncer(cfg.NTPServer, cfg.SyncTimeout.Duration, logutils.Component(cmd.flags.Logger, "ntp"))
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.SyncTimeout.Duration)
	defer cancel()

	res, err := syncer.Sync(ctx, rtc)
	if err != nil {
		return fmt.Errorf("sync with %s: %w", cfg.NTPServer, err)
	}

	out := c.Root().Writer
	fmt.Fprintf(out, "server: %s\n", res.Server)
	fmt.Fprintf(out, "offset: %s\n", timefmt.Offset(res.Offset))
	fmt.Fprintf(out, "rtt:    %s\n", res.RTT)
	fmt.Fprintf(out, "time:   %s\n", timefmt.ClockSeconds(rtc.Now()))
	return nil
}
