package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/TimelordUK/setlist/internal/index"
	"github.com/TimelordUK/setlist/internal/source"
)

type WindowCmd struct {
	flags *Flags
}

// NewWindowCmd creates a new window command
func NewWindowCmd(flags *Flags) *WindowCmd {
	return &WindowCmd{flags: flags}
}

// Register adds the window command to the application
func (cmd *WindowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "window",
		Usage:     "Print the three-line window starting at a line",
		UsageText: "setlist window <file> <line>",
		Description: `Prints exactly what the viewer shows with the window at <line> (0-based),
including the end marker once the window reaches the last lines.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *WindowCmd) run(_ context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected <file> <line>, got %d arguments", c.Args().Len())
	}
	file := c.Args().Get(0)
	line, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid line %q: %w", c.Args().Get(1), err)
	}

	card, err := cmd.flags.mount()
	if err != nil {
		return err
	}

	src, err := source.NewFileSource(card, file, cmd.flags.Config.Storage.MaxLines)
	if err != nil && !errors.Is(err, index.ErrTooManyLines) {
		return err
	}

	text, err := src.Window(line)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.Root().Writer, text)
	return err
}
