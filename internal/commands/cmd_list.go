package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"ticklist/internal/task"
)

type ListCmd struct {
	flags *Flags
	app   *App

	// flags
	filter     string
	search     string
	jsonOutput bool
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags, app *App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List tasks",
		UsageText: "ticklist list [--filter all|completed|active|today|overdue] [--search TEXT] [--json]",
		Description: `Displays the tasks matching the filter and search term in list order.

Use --json to print one task record per line.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "filter mode (defaults to default_filter from the config)",
				Destination: &cmd.filter,
			},
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "case-insensitive text to match",
				Destination: &cmd.search,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ListCmd) run(_ context.Context, c *cli.Command) error {
	mode := cmd.app.Config.Filter()
	if cmd.filter != "" {
		var err error
		mode, err = task.ParseMode(cmd.filter)
		if err != nil {
			return err
		}
	}

	today := task.Today(time.Now())
	tasks := task.Filter(cmd.app.Tasks.Tasks(), mode, cmd.search, today)
	out := c.Root().Writer

	if cmd.jsonOutput {
		enc := json.NewEncoder(out)
		for _, t := range tasks {
			if err := enc.Encode(t); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tDUE\tTEXT")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		due := "-"
		if t.HasDue() {
			due = t.DueDate.String()
			if t.Overdue(today) {
				due += " (overdue)"
			}
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(t.ID), done, t.Priority.Label(), due, t.Text)
	}
	return w.Flush()
}
