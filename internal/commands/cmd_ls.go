package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/TimelordUK/setlist/internal/listing"
)

type LsCmd struct {
	flags *Flags

	// flags
	depth    int
	setlists bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List a directory on the card",
		UsageText: "setlist ls [--depth n] [--setlists] [dir]",
		Description: `Prints the visible entries of a card directory, one per line. Hidden
entries (names starting with ".") are never shown.

Use --setlists to print only the files the picker would offer.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "depth",
				Usage:       "descend this many levels into subdirectories",
				Destination: &cmd.depth,
			},
			&cli.BoolFlag{
				Name:        "setlists",
				Usage:       "only list files matching storage.setlist_pattern",
				Destination: &cmd.setlists,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	dir := "/"
	if c.Args().Len() > 0 {
		dir = c.Args().First()
	}

	card, err := cmd.flags.mount()
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.setlists {
		names, err := listing.Setlists(card, dir, cmd.flags.Config.Storage.SetlistPattern)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	}

	text, err := listing.ListDirectory(card, dir, cmd.depth)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, text)
	return err
}
