package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"ticklist/internal/logging"
	"ticklist/internal/ui"
)

type TuiCmd struct {
	flags *Flags
	app   *App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(_ context.Context, _ *cli.Command) error {
	return ui.Run(cmd.app.Tasks, cmd.app.Storage, cmd.app.Config, logging.Component("ui"))
}
