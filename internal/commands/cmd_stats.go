package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"ticklist/internal/task"
)

type StatsCmd struct {
	flags *Flags
	app   *App

	// flags
	jsonOutput bool
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags, app *App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Show task counts and completion percentage",
		UsageText: "ticklist stats [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type statsInfo struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
	Overdue   int `json:"overdue"`
	Percent   int `json:"percent"`
}

func (cmd *StatsCmd) run(_ context.Context, c *cli.Command) error {
	st := task.Summarize(cmd.app.Tasks.Tasks(), task.Today(time.Now()))
	out := c.Root().Writer

	if cmd.jsonOutput {
		return json.NewEncoder(out).Encode(statsInfo(st))
	}

	_, _ = fmt.Fprintf(out, "Total:     %d\n", st.Total)
	_, _ = fmt.Fprintf(out, "Completed: %d\n", st.Completed)
	_, _ = fmt.Fprintf(out, "Active:    %d\n", st.Active)
	_, _ = fmt.Fprintf(out, "Overdue:   %d\n", st.Overdue)
	_, _ = fmt.Fprintf(out, "Progress:  %d%%\n", st.Percent)
	return nil
}
