package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/TimelordUK/setlist/internal/index"
)

type IndexCmd struct {
	flags *Flags
}

// NewIndexCmd creates a new index command
func NewIndexCmd(flags *Flags) *IndexCmd {
	return &IndexCmd{flags: flags}
}

// Register adds the index command to the application
func (cmd *IndexCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "index",
		Usage:     "Print the line offsets of a setlist",
		UsageText: "setlist index <file>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *IndexCmd) run(_ context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one file, got %d arguments", c.Args().Len())
	}
	file := c.Args().First()

	card, err := cmd.flags.mount()
	if err != nil {
		return err
	}

	idx, err := index.Build(card, file, cmd.flags.Config.Storage.MaxLines)
	if err != nil && !errors.Is(err, index.ErrTooManyLines) {
		return err
	}

	out := c.Root().Writer
	fmt.Fprintf(out, "lines: %d\n", idx.LineCount())
	if idx.Truncated() {
		fmt.Fprintf(out, "indexed: %d (ceiling %d)\n", idx.Reachable(), idx.MaxLines())
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tOFFSET")
	for i, off := range idx.Offsets() {
		fmt.Fprintf(w, "%d\t%d\n", i, off)
	}
	return w.Flush()
}
