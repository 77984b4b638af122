package commands

import "github.com/urfave/cli/v3"

// Register adds every subcommand to app.
func Register(app *cli.Command, flags *Flags, a *App) *cli.Command {
	app = NewAddCmd(flags, a).Register(app)
	app = NewListCmd(flags, a).Register(app)
	app = NewTaskCmd(flags, a).Register(app)
	app = NewBulkCmd(flags, a).Register(app)
	app = NewExportCmd(flags, a).Register(app)
	app = NewStatsCmd(flags, a).Register(app)
	app = NewThemeCmd(flags, a).Register(app)
	return app
}
