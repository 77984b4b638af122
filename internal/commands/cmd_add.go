package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"ticklist/internal/task"
)

type AddCmd struct {
	flags *Flags
	app   *App

	// flags
	priority string
	due      string
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "ticklist add [--priority low|medium|high] [--due YYYY-MM-DD|today|tomorrow|none] TEXT...",
		Description: `Adds a task to the top of the list and prints its id.

Priority defaults to the configured default_priority. The due date defaults
to today when default_due_today is set.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "task priority (low, medium, high)",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "due",
				Aliases:     []string{"d"},
				Usage:       "due date (YYYY-MM-DD, today, tomorrow, none)",
				Destination: &cmd.due,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(_ context.Context, c *cli.Command) error {
	text, err := requireArgs(c, "task text")
	if err != nil {
		return err
	}

	priority := cmd.app.Config.Priority()
	if cmd.priority != "" {
		priority, err = task.ParsePriority(cmd.priority)
		if err != nil {
			return err
		}
	}

	today := task.Today(time.Now())
	dueArg := cmd.due
	if !c.IsSet("due") && cmd.app.Config.DefaultDueToday {
		dueArg = "today"
	}
	due, err := task.ParseDue(dueArg, today)
	if err != nil {
		return err
	}

	cmd.app.Tasks.Subscribe(notifyListener(c))
	added, err := cmd.app.Tasks.Add(text, priority, due)
	if err != nil && added.ID == "" {
		return err
	}
	_, _ = fmt.Fprintln(c.Root().Writer, added.ID)
	return err
}
