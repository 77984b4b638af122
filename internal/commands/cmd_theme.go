package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type ThemeCmd struct {
	flags *Flags
	app   *App
}

// NewThemeCmd creates a new theme command
func NewThemeCmd(flags *Flags, app *App) *ThemeCmd {
	return &ThemeCmd{flags: flags, app: app}
}

// Register adds the theme command to the application
func (cmd *ThemeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "theme",
		Usage:     "Show or set the TUI theme",
		UsageText: "ticklist theme [dark|light|toggle]",
		Action:    cmd.run,
	})

	return app
}

func (cmd *ThemeCmd) run(_ context.Context, c *cli.Command) error {
	dark, err := cmd.app.Storage.LoadDarkMode()
	if err != nil {
		return err
	}

	switch arg := c.Args().First(); arg {
	case "":
	case "dark":
		dark = true
	case "light":
		dark = false
	case "toggle":
		dark = !dark
	default:
		return fmt.Errorf("unknown theme %q: use dark, light or toggle", arg)
	}

	if c.Args().Len() > 0 {
		if err := cmd.app.Storage.SaveDarkMode(dark); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(c.Root().Writer, themeName(dark))
	return nil
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
