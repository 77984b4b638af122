package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"ticklist/internal/export"
	"ticklist/internal/notify"
)

type ExportCmd struct {
	flags *Flags
	app   *App

	// flags
	format string
	dir    string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export all tasks to a file",
		UsageText: "ticklist export [--format csv|json|yaml|pdf] [--dir DIR]",
		Description: `Writes every task, regardless of filter, to tasks_YYYY-MM-DD.<ext> in the
export directory and prints the path.

CSV fields are quoted only when they contain a comma, a double quote or a
line break, as RFC 4180 allows. Other fields are written bare.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (defaults to export_format from the config)",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "output directory (defaults to export_dir from the config)",
				Destination: &cmd.dir,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(_ context.Context, c *cli.Command) error {
	format := cmd.app.Config.Format()
	if cmd.format != "" {
		var err error
		format, err = export.ParseFormat(cmd.format)
		if err != nil {
			return err
		}
	}
	dir := cmd.app.Config.ExportDir
	if cmd.dir != "" {
		dir = cmd.dir
	}

	path, err := export.ToFile(dir, cmd.app.Tasks.Tasks(), format, time.Now())
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	notifier(c).Notify(notify.LevelSuccess, "Tasks exported to "+strings.ToUpper(string(format)))
	_, _ = fmt.Fprintln(c.Root().Writer, path)
	return nil
}
