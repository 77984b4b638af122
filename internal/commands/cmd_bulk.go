package commands

import (
	"context"

	"github.com/urfave/cli/v3"
)

type BulkCmd struct {
	flags *Flags
	app   *App
}

// NewBulkCmd creates the clear and archive commands
func NewBulkCmd(flags *Flags, app *App) *BulkCmd {
	return &BulkCmd{flags: flags, app: app}
}

// Register adds the commands acting on every completed task
func (cmd *BulkCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "clear",
			Usage:     "Remove every completed task",
			UsageText: "ticklist clear",
			Action:    cmd.runClear,
		},
		&cli.Command{
			Name:      "archive",
			Usage:     "Move completed tasks below active ones",
			UsageText: "ticklist archive",
			Description: `Reorders the list so active tasks come first, keeping the relative order
within both groups. Running it again changes nothing.`,
			Action: cmd.runArchive,
		},
	)

	return app
}

func (cmd *BulkCmd) runClear(_ context.Context, c *cli.Command) error {
	cmd.app.Tasks.Subscribe(notifyListener(c))
	_, err := cmd.app.Tasks.ClearCompleted()
	return err
}

func (cmd *BulkCmd) runArchive(_ context.Context, c *cli.Command) error {
	cmd.app.Tasks.Subscribe(notifyListener(c))
	return cmd.app.Tasks.ArchiveCompleted()
}
